package sensor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

var errSimulatedTimeout = errors.New("simulated rs485 timeout")

// SimulatedProbe produces a slow sine wave around Base with a little noise.
// FailureRate (0..1) makes a share of reads fail like a disconnected slave.
type SimulatedProbe struct {
	ID          int
	Base        float64
	Amplitude   float64
	Period      time.Duration
	FailureRate float64

	mu    sync.Mutex
	rng   *rand.Rand
	start time.Time
	now   func() time.Time
}

// NewSimulatedProbe returns a probe seeded by id so runs are reproducible.
func NewSimulatedProbe(id int, base float64) *SimulatedProbe {
	return &SimulatedProbe{
		ID:        id,
		Base:      base,
		Amplitude: 1.5,
		Period:    10 * time.Minute,
		rng:       rand.New(rand.NewPCG(uint64(id), 0x5eed)),
		start:     time.Now(),
		now:       time.Now,
	}
}

func (p *SimulatedProbe) Name() string { return fmt.Sprintf("sim %d", p.ID) }

func (p *SimulatedProbe) ReadCelsius(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailureRate > 0 && p.rng.Float64() < p.FailureRate {
		return 0, errSimulatedTimeout
	}
	phase := 0.0
	if p.Period > 0 {
		phase = 2 * math.Pi * float64(p.now().Sub(p.start)) / float64(p.Period)
	}
	noise := (p.rng.Float64() - 0.5) * 0.2
	v := p.Base + p.Amplitude*math.Sin(phase) + noise
	// the register only carries tenths of a degree
	return math.Round(v*rawPerDegree) / rawPerDegree, nil
}
