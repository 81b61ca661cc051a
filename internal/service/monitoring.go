package service

import (
	"context"
	"math"
	"time"

	"esp_panel/internal/gpio"
	"esp_panel/internal/models"
	"esp_panel/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
	pin       gpio.Pin
}

func NewMonitoringService(stateRepo repository.StateRepo, pin gpio.Pin) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo, pin: pin}
}

// GetState returns the latest persisted device state, or the power-on
// baseline when nothing was sampled yet.
func (s *MonitoringService) GetState(ctx context.Context) (models.DeviceState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.DeviceState{}, err
	}
	if state.ID == 0 {
		return baselineState(s.pin, time.Now().UTC()), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// Temperatures returns the last sample as served on GET /temperature.
func (s *MonitoringService) Temperatures(ctx context.Context) (models.Temperatures, error) {
	st, err := s.GetState(ctx)
	if err != nil {
		return models.Temperatures{}, err
	}
	return models.Temperatures{
		Temp1: roundCenti(st.Temp1C),
		Temp2: roundCenti(st.Temp2C),
		Temp3: roundCenti(st.Temp3C),
	}, nil
}

// roundCenti keeps two decimals, the precision the firmware prints.
func roundCenti(v float64) float64 {
	return math.Round(v*100) / 100
}

func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
