package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"esp_panel/internal/gpio"
	"esp_panel/internal/models"
	"esp_panel/internal/repository"
	"esp_panel/internal/telemetry"

	"github.com/google/uuid"
)

// LedService switches the LED and records level changes.
type LedService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	pin       gpio.Pin
	metrics   *telemetry.Metrics
	mu        *sync.Mutex
}

func NewLedService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, pin gpio.Pin, metrics *telemetry.Metrics, mu *sync.Mutex) *LedService {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &LedService{stateRepo: stateRepo, eventRepo: eventRepo, pin: pin, metrics: metrics, mu: mu}
}

// Set drives the pin and persists the new level. The pin is written even when
// the level does not change; an event is only logged on change. If the event or
// the state cannot be stored, the pin goes back to its previous level.
func (s *LedService) Set(ctx context.Context, on bool, source string) (models.DeviceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.DeviceState{}, err
	}
	if st.ID == 0 {
		st = baselineState(s.pin, now)
	}
	undo, err := s.applyLocked(ctx, &st, on, source, now)
	if err != nil {
		return models.DeviceState{}, err
	}
	st.UpdatedAt = now
	if err := s.stateRepo.Save(ctx, st); err != nil {
		undo()
		return models.DeviceState{}, err
	}
	return st, nil
}

// applyLocked writes the pin and updates st; caller holds s.mu and saves st.
// The returned func restores the previous pin level and must be called when
// that save fails.
func (s *LedService) applyLocked(ctx context.Context, st *models.DeviceState, on bool, source string, now time.Time) (func(), error) {
	prev := s.pin.Read()
	if err := s.pin.Write(on); err != nil {
		return nil, fmt.Errorf("write pin %d: %w", s.pin.Number(), err)
	}
	undo := func() { s.restorePin(prev) }

	changed := st.LedOn != on
	st.LedOn = on
	s.metrics.SetLed(on)
	if !changed {
		return undo, nil
	}

	typ, desc := models.EventLedOff, "LED turned OFF"
	if on {
		typ, desc = models.EventLedOn, "LED turned ON"
	}
	err := s.eventRepo.Append(ctx, models.DeviceEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  now,
		Type:        typ,
		Description: desc,
		Metadata:    map[string]any{"source": source, "pin": s.pin.Number()},
	})
	if err != nil {
		undo()
		return nil, fmt.Errorf("append %s event: %w", typ, err)
	}
	s.metrics.CountToggle(source)
	return undo, nil
}

func (s *LedService) restorePin(level bool) {
	if err := s.pin.Write(level); err != nil {
		return
	}
	s.metrics.SetLed(level)
}

// baselineState is the power-on snapshot: LED at the pin's level, no readings yet.
func baselineState(pin gpio.Pin, now time.Time) models.DeviceState {
	st := models.DeviceState{ID: 1, UpdatedAt: now}
	if pin != nil {
		st.LedOn = pin.Read()
	}
	return st
}
