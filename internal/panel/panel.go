// Package panel drives the device's control page: an LED switch that calls
// /toggle-led and three temperature cells refreshed from /temperature.
package panel

import (
	"context"
	"errors"
	"sync"
	"time"

	"esp_panel/internal/logger"
	"esp_panel/internal/models"
)

// Element ids and classes of the control page.
const (
	IDSwitch    = "ledSwitch"
	IDContainer = "switchContainer"
	IDToggle    = "switchToggle"

	ClassTrackOff = "bg-gray-300"
	ClassTrackOn  = "bg-green-500"
	ClassKnobOn   = "translate-x-8"
)

// PollInterval is the fixed period of temperature refreshes.
const PollInterval = 2000 * time.Millisecond

// TempIDs are the temperature cells in probe order.
var TempIDs = [models.SensorCount]string{"temp1", "temp2", "temp3"}

// RequiredIDs lists every element the panel needs on the page.
func RequiredIDs() []string {
	return append([]string{IDSwitch, IDContainer, IDToggle}, TempIDs[:]...)
}

// API is the device surface the panel uses; *Client implements it.
type API interface {
	ToggleLED(ctx context.Context, on bool) (string, error)
	Temperatures(ctx context.Context) (Reading, error)
}

// Panel binds a Document to the device API. The toggle and the poll loop
// share nothing but the document.
type Panel struct {
	doc      *Document
	api      API
	log      *logger.Logger
	interval time.Duration
	onRender func(Reading)

	// newTicker is swapped in tests.
	newTicker func(time.Duration) (<-chan time.Time, func())

	inflight sync.WaitGroup
}

type Option func(*Panel)

// WithInterval overrides PollInterval.
func WithInterval(d time.Duration) Option {
	return func(p *Panel) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithRenderHook is called after every successful refresh.
func WithRenderHook(fn func(Reading)) Option {
	return func(p *Panel) { p.onRender = fn }
}

// New checks that doc carries every required element and returns a panel.
func New(doc *Document, api API, log *logger.Logger, opts ...Option) (*Panel, error) {
	if doc == nil || api == nil {
		return nil, errors.New("panel: document and api are required")
	}
	if err := doc.Require(RequiredIDs()...); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	p := &Panel{
		doc:       doc,
		api:       api,
		log:       log,
		interval:  PollInterval,
		newTicker: realTicker,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Document returns the bound document.
func (p *Panel) Document() *Document { return p.doc }

// SetSwitch reflects a change of the LED switch. The view is updated before
// returning, whatever happens to the request; the request itself runs in the
// background and its outcome is only logged.
func (p *Panel) SetSwitch(ctx context.Context, checked bool) {
	p.doc.SetChecked(IDSwitch, checked)
	p.renderSwitch(checked)

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		p.sendToggle(ctx, checked)
	}()
}

func (p *Panel) renderSwitch(on bool) {
	if on {
		p.doc.ReplaceClass(IDContainer, ClassTrackOff, ClassTrackOn)
		p.doc.AddClass(IDToggle, ClassKnobOn)
		return
	}
	p.doc.ReplaceClass(IDContainer, ClassTrackOn, ClassTrackOff)
	p.doc.RemoveClass(IDToggle, ClassKnobOn)
}

func (p *Panel) sendToggle(ctx context.Context, on bool) {
	body, err := p.api.ToggleLED(ctx, on)
	var se *StatusError
	switch {
	case errors.As(err, &se):
		p.log.Warnw("led_toggle_rejected", "on", on, "status", se.Code, "body", body)
	case err != nil:
		p.log.Errorw("led_toggle_failed", "on", on, "err", err)
	default:
		p.log.Infow("led_toggle_response", "on", on, "body", body)
	}
}

// Run refreshes the temperatures every interval until ctx is done. Each tick
// starts its own refresh; a slow one does not delay or suppress the next.
// Run returns after in-flight refreshes finish.
func (p *Panel) Run(ctx context.Context) {
	ticks, stop := p.newTicker(p.interval)
	defer stop()
	var refreshes sync.WaitGroup
	defer refreshes.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			refreshes.Add(1)
			go func() {
				defer refreshes.Done()
				p.Refresh(ctx)
			}()
		}
	}
}

// Refresh fetches the temperatures once and writes them into the cells.
// On failure the cells keep their previous text.
func (p *Panel) Refresh(ctx context.Context) {
	r, err := p.api.Temperatures(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Errorw("temperature_fetch_failed", "err", err)
		}
		return
	}
	for i, v := range r.Fields() {
		p.doc.SetText(TempIDs[i], FormatCelsius(v))
	}
	if p.onRender != nil {
		p.onRender(r)
	}
}

// Wait blocks until every toggle request started by SetSwitch has finished.
func (p *Panel) Wait() { p.inflight.Wait() }
