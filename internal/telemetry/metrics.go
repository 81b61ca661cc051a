// Package telemetry exports device samples to Prometheus and MQTT.
package telemetry

import (
	"strconv"

	"esp_panel/internal/models"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the device gauges and counters.
type Metrics struct {
	temperature   *prometheus.GaugeVec
	sensorOK      *prometheus.GaugeVec
	readFailures  *prometheus.CounterVec
	ledOn         prometheus.Gauge
	ledToggles    *prometheus.CounterVec
	lastSampleTS  prometheus.Gauge
	sampleSeconds prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "esp_panel_temperature_celsius",
			Help: "Last temperature read from each probe (celsius, -1 when offline)",
		}, []string{"sensor"}),
		sensorOK: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "esp_panel_sensor_up",
			Help: "1 if the probe answered in the last sample",
		}, []string{"sensor"}),
		readFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esp_panel_sensor_read_failures_total",
			Help: "Probe reads that exhausted their retry budget",
		}, []string{"sensor"}),
		ledOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esp_panel_led_on",
			Help: "LED output level (1=on)",
		}),
		ledToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esp_panel_led_toggles_total",
			Help: "LED level changes by source",
		}, []string{"source"}),
		lastSampleTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esp_panel_last_sample_timestamp_seconds",
			Help: "Last completed sample (epoch seconds)",
		}),
		sampleSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "esp_panel_sample_duration_seconds",
			Help:    "Time spent reading all probes",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.temperature,
			m.sensorOK,
			m.readFailures,
			m.ledOn,
			m.ledToggles,
			m.lastSampleTS,
			m.sampleSeconds,
		)
	}
	return m
}

func sensorLabel(i int) string { return strconv.Itoa(i + 1) }

// ObserveSample records one sampling cycle. failed[i] marks probes that gave up.
func (m *Metrics) ObserveSample(st models.DeviceState, failed [models.SensorCount]bool, seconds float64) {
	if m == nil {
		return
	}
	for i, v := range st.Readings() {
		label := sensorLabel(i)
		m.temperature.WithLabelValues(label).Set(v)
		if failed[i] {
			m.sensorOK.WithLabelValues(label).Set(0)
			m.readFailures.WithLabelValues(label).Inc()
		} else {
			m.sensorOK.WithLabelValues(label).Set(1)
		}
	}
	m.lastSampleTS.Set(float64(st.UpdatedAt.Unix()))
	m.sampleSeconds.Observe(seconds)
	m.SetLed(st.LedOn)
}

// SetLed mirrors the LED level.
func (m *Metrics) SetLed(on bool) {
	if m == nil {
		return
	}
	if on {
		m.ledOn.Set(1)
	} else {
		m.ledOn.Set(0)
	}
}

// CountToggle counts an LED level change caused by source (http, api, auto).
func (m *Metrics) CountToggle(source string) {
	if m == nil {
		return
	}
	m.ledToggles.WithLabelValues(source).Inc()
}
