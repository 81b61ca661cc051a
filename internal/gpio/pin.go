// Package gpio models the board's digital output pins.
package gpio

import (
	"sync"

	"esp_panel/internal/logger"
)

// Pin is a digital output.
type Pin interface {
	Number() int
	Write(high bool) error
	Read() bool
}

// MemoryPin is a pin whose level lives in memory; level changes are logged.
// It stands in for the LED on boards without a GPIO driver.
type MemoryPin struct {
	mu     sync.Mutex
	number int
	high   bool
	log    *logger.Logger
}

// NewMemoryPin returns a pin driven LOW, as the firmware does at boot.
func NewMemoryPin(number int, log *logger.Logger) *MemoryPin {
	if log == nil {
		log = logger.Nop()
	}
	return &MemoryPin{number: number, log: log}
}

func (p *MemoryPin) Number() int { return p.number }

func (p *MemoryPin) Write(high bool) error {
	p.mu.Lock()
	changed := p.high != high
	p.high = high
	p.mu.Unlock()

	if changed {
		p.log.Debugw("gpio_write", "pin", p.number, "high", high)
	}
	return nil
}

func (p *MemoryPin) Read() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}
