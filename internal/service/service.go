package service

import (
	"context"
	"sync"
	"time"

	"esp_panel/internal/logger"
	"esp_panel/internal/models"
	"esp_panel/internal/repository"
	"esp_panel/internal/telemetry"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Led drives the output pin.
type Led interface {
	Set(ctx context.Context, on bool, source string) (models.DeviceState, error)
}

// Monitoring exposes read-only state (LED level, temperatures, faults).
type Monitoring interface {
	GetState(ctx context.Context) (models.DeviceState, error)
	Temperatures(ctx context.Context) (models.Temperatures, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// Sampler reads the probes periodically. Stop it by canceling ctx.
type Sampler interface {
	Run(ctx context.Context, tick time.Duration)
	SampleOnce(ctx context.Context) (models.DeviceState, error)
}

// Service aggregates all sub-services.
type Service struct {
	Led
	Monitoring
	EventLog
	Sampler
	Authorization
}

// NewService wires the repositories and hardware into concrete services.
// The LED and sampler services share one lock around the state row.
func NewService(repos *repository.Repository, deps Deps) *Service {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Publisher == nil {
		deps.Publisher = telemetry.NopPublisher{}
	}
	stateMu := &sync.Mutex{}
	led := NewLedService(repos.StateRepo, repos.EventRepo, deps.Pin, deps.Metrics, stateMu)
	return &Service{
		Led:           led,
		Monitoring:    NewMonitoringService(repos.StateRepo, deps.Pin),
		EventLog:      NewEventLogService(repos.EventRepo),
		Sampler:       NewSamplerService(repos.StateRepo, led, deps),
		Authorization: NewAuthService(repos.Auth, deps.Auth.SigningKey, deps.Auth.TokenTTL),
	}
}
