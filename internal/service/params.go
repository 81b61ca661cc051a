package service

import (
	"time"

	"esp_panel/internal/gpio"
	"esp_panel/internal/logger"
	"esp_panel/internal/sensor"
	"esp_panel/internal/telemetry"
)

// LED change sources recorded in events and metrics.
const (
	SourceHTTP = "http" // GET /toggle-led
	SourceAPI  = "api"  // POST /api/v1/led
	SourceAuto = "auto" // sampler rule
)

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "LED_ON", "LED_OFF", "SENSOR_FAULT", "SENSOR_RECOVERED"
}

// SamplingConfig tunes the probe loop.
type SamplingConfig struct {
	Retries    int
	RetryDelay time.Duration
	AutoLed    bool
}

// AuthConfig configures token signing.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Deps are the hardware and telemetry collaborators of the services.
type Deps struct {
	Pin       gpio.Pin
	Probes    []sensor.Probe
	Metrics   *telemetry.Metrics
	Publisher telemetry.Publisher
	Log       *logger.Logger
	Sampling  SamplingConfig
	Auth      AuthConfig
}
