package sensor

import (
	"fmt"
	"io"

	"esp_panel/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// simulatedBaseC are the resting temperatures of the three simulated probes.
var simulatedBaseC = []float64{21.5, 22.0, 19.0}

// NewProbes builds the probes described by cfg. The returned closer releases
// the bus and must be called on shutdown.
func NewProbes(cfg config.SensorsConfig) ([]Probe, io.Closer, error) {
	switch cfg.Transport {
	case "sim":
		probes := make([]Probe, 0, len(cfg.SlaveIDs))
		for i, id := range cfg.SlaveIDs {
			probes = append(probes, NewSimulatedProbe(id, simulatedBaseC[i%len(simulatedBaseC)]))
		}
		return probes, nopCloser{}, nil
	case "rtu", "tcp":
		var (
			bus *Bus
			err error
		)
		if cfg.Transport == "rtu" {
			bus, err = OpenRTU(RTUConfig{Device: cfg.Device, BaudRate: cfg.BaudRate, Timeout: cfg.Timeout})
		} else {
			bus, err = OpenTCP(cfg.Device, cfg.Timeout)
		}
		if err != nil {
			return nil, nil, err
		}
		probes := make([]Probe, 0, len(cfg.SlaveIDs))
		for _, id := range cfg.SlaveIDs {
			if id < 1 || id > 247 {
				_ = bus.Close()
				return nil, nil, fmt.Errorf("slave id %d out of range 1..247", id)
			}
			probes = append(probes, bus.Probe(byte(id), cfg.Register))
		}
		return probes, bus, nil
	default:
		return nil, nil, fmt.Errorf("unknown sensor transport %q", cfg.Transport)
	}
}
