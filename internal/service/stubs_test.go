package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"esp_panel/internal/models"
)

type stateRepoStub struct {
	mu      sync.Mutex
	state   models.DeviceState
	loadErr error
	saveErr error
	saves   []models.DeviceState
}

func (s *stateRepoStub) Load(ctx context.Context) (models.DeviceState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.loadErr
}

func (s *stateRepoStub) Save(ctx context.Context, st models.DeviceState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	st.ID = 1
	s.state = st
	s.saves = append(s.saves, st)
	return nil
}

type eventRepoStub struct {
	mu        sync.Mutex
	appends   []models.DeviceEvent
	listed    []models.DeviceEvent
	err       error
	appendErr error

	calls   int
	gotFrom time.Time
	gotTo   time.Time
	gotType string
}

func (e *eventRepoStub) Append(ctx context.Context, ev models.DeviceEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.appendErr != nil {
		return e.appendErr
	}
	e.appends = append(e.appends, ev)
	return nil
}

func (e *eventRepoStub) List(ctx context.Context, from, to time.Time, typ string) ([]models.DeviceEvent, error) {
	e.calls++
	e.gotFrom, e.gotTo, e.gotType = from, to, typ
	return e.listed, e.err
}

func (e *eventRepoStub) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.appends))
	for _, ev := range e.appends {
		out = append(out, ev.Type)
	}
	return out
}

type pinStub struct {
	high   bool
	writes []bool
	err    error
}

func (p *pinStub) Number() int { return 2 }
func (p *pinStub) Read() bool  { return p.high }
func (p *pinStub) Write(high bool) error {
	if p.err != nil {
		return p.err
	}
	p.high = high
	p.writes = append(p.writes, high)
	return nil
}

type probeStub struct {
	name  string
	value float64
	err   error
	calls int
}

func (p *probeStub) Name() string { return p.name }
func (p *probeStub) ReadCelsius(ctx context.Context) (float64, error) {
	p.calls++
	return p.value, p.err
}

var errProbeTimeout = errors.New("timeout")

type publisherStub struct {
	published []models.DeviceState
	err       error
}

func (p *publisherStub) Publish(ctx context.Context, st models.DeviceState) error {
	p.published = append(p.published, st)
	return p.err
}
func (p *publisherStub) Close() {}
