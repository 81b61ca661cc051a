package service

import (
	"context"
	"fmt"
	"time"

	"esp_panel/internal/logger"
	"esp_panel/internal/models"
	"esp_panel/internal/repository"
	"esp_panel/internal/sensor"
	"esp_panel/internal/telemetry"

	"github.com/google/uuid"
)

const publishTimeout = 2 * time.Second

// SamplerService reads the probes, stores the sample and applies the auto-LED rule.
type SamplerService struct {
	stateRepo repository.StateRepo
	led       *LedService
	probes    []sensor.Probe
	metrics   *telemetry.Metrics
	publisher telemetry.Publisher
	log       *logger.Logger
	cfg       SamplingConfig
	now       func() time.Time
}

func NewSamplerService(stateRepo repository.StateRepo, led *LedService, deps Deps) *SamplerService {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	pub := deps.Publisher
	if pub == nil {
		pub = telemetry.NopPublisher{}
	}
	probes := deps.Probes
	if len(probes) > models.SensorCount {
		probes = probes[:models.SensorCount]
	}
	return &SamplerService{
		stateRepo: stateRepo,
		led:       led,
		probes:    probes,
		metrics:   deps.Metrics,
		publisher: pub,
		log:       log.Named("sampler"),
		cfg:       deps.Sampling,
		now:       time.Now,
	}
}

// Run samples every tick until ctx is canceled.
func (s *SamplerService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.SampleOnce(ctx); err != nil && ctx.Err() == nil {
				s.log.Errorw("sample_failed", "err", err)
			}
		}
	}
}

// SampleOnce reads every probe once (with retries), persists the result and
// returns the new state. A probe that exhausts its retries reads -1.
func (s *SamplerService) SampleOnce(ctx context.Context) (models.DeviceState, error) {
	started := s.now()

	var (
		readings [models.SensorCount]float64
		failed   [models.SensorCount]bool
	)
	for i, p := range s.probes {
		v, err := sensor.ReadWithRetry(ctx, p, s.cfg.Retries, s.cfg.RetryDelay)
		if err != nil {
			if ctx.Err() != nil {
				return models.DeviceState{}, ctx.Err()
			}
			s.log.Errorw("rs485_read_failed", "sensor", i+1, "probe", p.Name(), "err", err)
			v = models.FailedReadingC
			failed[i] = true
		}
		readings[i] = v
		s.log.Debugw("temperature", "sensor", i+1, "temp_c", v)
	}

	st, err := s.store(ctx, readings, failed)
	if err != nil {
		return models.DeviceState{}, err
	}

	s.metrics.ObserveSample(st, failed, s.now().Sub(started).Seconds())

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, st); err != nil {
		s.log.Warnw("state_publish_failed", "err", err)
	}
	return st, nil
}

func (s *SamplerService) store(ctx context.Context, readings [models.SensorCount]float64, failed [models.SensorCount]bool) (models.DeviceState, error) {
	s.led.mu.Lock()
	defer s.led.mu.Unlock()

	now := s.now().UTC()
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.DeviceState{}, err
	}
	if st.ID == 0 {
		st = baselineState(s.led.pin, now)
	}

	prev := st.FaultCodes
	st.SetReadings(readings)
	st.FaultCodes = faultCodes(failed)
	if err := s.logFaultTransitions(ctx, prev, st.FaultCodes, now); err != nil {
		return models.DeviceState{}, err
	}

	undo := func() {}
	if s.cfg.AutoLed {
		if undo, err = s.led.applyLocked(ctx, &st, anyAboveZero(readings), SourceAuto, now); err != nil {
			return models.DeviceState{}, err
		}
	}

	st.UpdatedAt = now
	if err := s.stateRepo.Save(ctx, st); err != nil {
		undo()
		return models.DeviceState{}, err
	}
	return st, nil
}

// logFaultTransitions appends SENSOR_FAULT for new faults and SENSOR_RECOVERED for cleared ones.
func (s *SamplerService) logFaultTransitions(ctx context.Context, prev, cur []string, now time.Time) error {
	for _, code := range cur {
		if hasString(prev, code) {
			continue
		}
		err := s.led.eventRepo.Append(ctx, models.DeviceEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  now,
			Type:        models.EventSensorFault,
			Description: "RS485 connection failed",
			Metadata:    map[string]any{"code": code, "retries": s.cfg.Retries},
		})
		if err != nil {
			return err
		}
	}
	for _, code := range prev {
		if hasString(cur, code) {
			continue
		}
		err := s.led.eventRepo.Append(ctx, models.DeviceEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  now,
			Type:        models.EventRecovered,
			Description: "Probe answering again",
			Metadata:    map[string]any{"code": code},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func faultCodes(failed [models.SensorCount]bool) []string {
	var codes []string
	for i, f := range failed {
		if f {
			codes = append(codes, fmt.Sprintf("SENSOR_%d_OFFLINE", i+1))
		}
	}
	return codes
}

// anyAboveZero is the firmware's LED rule: lit while any probe reads above 0 °C.
func anyAboveZero(readings [models.SensorCount]float64) bool {
	for _, v := range readings {
		if v > 0 {
			return true
		}
	}
	return false
}

func hasString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
