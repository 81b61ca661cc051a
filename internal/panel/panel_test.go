package panel

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPanel(t *testing.T, dev *fakeDevice, opts ...Option) *Panel {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(testPage))
	require.NoError(t, err)
	c, err := NewClient(dev.srv.URL, time.Second)
	require.NoError(t, err)
	p, err := New(doc, c, nil, opts...)
	require.NoError(t, err)
	return p
}

// manualTicks replaces the ticker with a channel the test drives.
func manualTicks(p *Panel) chan time.Time {
	ch := make(chan time.Time)
	p.newTicker = func(time.Duration) (<-chan time.Time, func()) { return ch, func() {} }
	return ch
}

func TestNewRequiresElements(t *testing.T) {
	_, err := New(NewDocument(IDSwitch), &stubAPI{}, nil)
	require.ErrorIs(t, err, ErrMissingElement)
}

func TestSetSwitchSendsStateAndUpdatesClasses(t *testing.T) {
	dev := newFakeDevice(t)
	p := newTestPanel(t, dev)
	doc := p.Document()

	p.SetSwitch(context.Background(), true)
	assert.True(t, doc.Checked(IDSwitch))
	assert.True(t, doc.HasClass(IDContainer, ClassTrackOn))
	assert.False(t, doc.HasClass(IDContainer, ClassTrackOff))
	assert.True(t, doc.HasClass(IDToggle, ClassKnobOn))
	p.Wait()

	p.SetSwitch(context.Background(), false)
	assert.False(t, doc.Checked(IDSwitch))
	assert.True(t, doc.HasClass(IDContainer, ClassTrackOff))
	assert.False(t, doc.HasClass(IDContainer, ClassTrackOn))
	assert.False(t, doc.HasClass(IDToggle, ClassKnobOn))
	p.Wait()

	assert.Equal(t, []string{"1", "0"}, dev.toggles())
}

func TestSetSwitchViewIgnoresRequestOutcome(t *testing.T) {
	dev := newFakeDevice(t)
	p := newTestPanel(t, dev)
	dev.srv.Close()

	p.SetSwitch(context.Background(), true)
	p.Wait()
	assert.True(t, p.Document().HasClass(IDContainer, ClassTrackOn))
	assert.True(t, p.Document().HasClass(IDToggle, ClassKnobOn))

	dev2 := newFakeDevice(t)
	dev2.set(func(d *fakeDevice) { d.toggleCode = 500 })
	p2 := newTestPanel(t, dev2)
	p2.SetSwitch(context.Background(), true)
	p2.Wait()
	assert.True(t, p2.Document().HasClass(IDContainer, ClassTrackOn))
}

func TestRefreshRendersReadings(t *testing.T) {
	dev := newFakeDevice(t)
	var rendered []Reading
	p := newTestPanel(t, dev, WithRenderHook(func(r Reading) { rendered = append(rendered, r) }))
	doc := p.Document()

	dev.set(func(d *fakeDevice) { d.tempBody = `{"temp1":21.5,"temp2":22}` })
	p.Refresh(context.Background())
	assert.Equal(t, "21.5°C", doc.Text("temp1"))
	assert.Equal(t, "22°C", doc.Text("temp2"))
	assert.Equal(t, "0°C", doc.Text("temp3"))
	require.Len(t, rendered, 1)

	dev.set(func(d *fakeDevice) { d.tempBody = `{"temp1":null,"temp2":0,"temp3":-1}` })
	p.Refresh(context.Background())
	assert.Equal(t, "0°C", doc.Text("temp1"))
	assert.Equal(t, "0°C", doc.Text("temp2"))
	assert.Equal(t, "-1°C", doc.Text("temp3"))
}

func TestRefreshMatchesKeysExactly(t *testing.T) {
	dev := newFakeDevice(t)
	p := newTestPanel(t, dev)
	doc := p.Document()

	dev.set(func(d *fakeDevice) { d.tempBody = `{"TEMP1":5,"Temp2":7,"temp3":8}` })
	p.Refresh(context.Background())
	assert.Equal(t, "0°C", doc.Text("temp1"))
	assert.Equal(t, "0°C", doc.Text("temp2"))
	assert.Equal(t, "8°C", doc.Text("temp3"))
}

func TestRefreshKeepsTextOnBadResponse(t *testing.T) {
	dev := newFakeDevice(t)
	p := newTestPanel(t, dev)
	doc := p.Document()

	dev.set(func(d *fakeDevice) { d.tempBody = `{"temp1":19}` })
	p.Refresh(context.Background())
	require.Equal(t, "19°C", doc.Text("temp1"))

	for _, body := range []string{``, `not json`, `{"temp1":`, `null`, `[21.5]`, `21.5`} {
		dev.set(func(d *fakeDevice) { d.tempBody = body })
		assert.NotPanics(t, func() { p.Refresh(context.Background()) })
		assert.Equal(t, "19°C", doc.Text("temp1"), "body %q", body)
	}
}

func TestRunRefreshesOncePerTick(t *testing.T) {
	dev := newFakeDevice(t)
	p := newTestPanel(t, dev)
	ticks := manualTicks(p)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		ticks <- time.Now()
	}
	require.Eventually(t, func() bool { return dev.hits() == 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, 3, dev.hits())
}

func TestRunDoesNotWaitForSlowRefresh(t *testing.T) {
	dev := newFakeDevice(t)
	gate := make(chan struct{})
	dev.set(func(d *fakeDevice) { d.gate = gate })
	p := newTestPanel(t, dev)
	ticks := manualTicks(p)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	ticks <- time.Now()
	ticks <- time.Now()
	require.Eventually(t, func() bool { return dev.hits() == 2 }, 2*time.Second, 5*time.Millisecond,
		"second tick must start a request while the first is pending")

	cancel()
	close(gate)
	<-done
}

func TestRunUsesPollInterval(t *testing.T) {
	dev := newFakeDevice(t)
	p := newTestPanel(t, dev)
	var got time.Duration
	var mu sync.Mutex
	p.newTicker = func(d time.Duration) (<-chan time.Time, func()) {
		mu.Lock()
		got = d
		mu.Unlock()
		return make(chan time.Time), func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Run(ctx)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2000*time.Millisecond, got)
}

func TestFormatCelsius(t *testing.T) {
	cases := map[string]any{
		"21.5°C":  21.5,
		"22°C":    22.0,
		"0°C":     nil,
		"-1°C":    -1.0,
		"20.25°C": 20.25,
		"abc°C":   "abc",
	}
	for want, in := range cases {
		assert.Equal(t, want, FormatCelsius(in))
	}
	assert.Equal(t, "0°C", FormatCelsius(0.0))
	assert.Equal(t, "0°C", FormatCelsius(""))
	assert.Equal(t, "0°C", FormatCelsius(false))
	assert.Equal(t, "1e+21°C", FormatCelsius(1e21))
	assert.Equal(t, "-2.5e+22°C", FormatCelsius(-2.5e22))
	assert.Equal(t, "1.5e-7°C", FormatCelsius(1.5e-7))
	assert.Equal(t, "0.000001°C", FormatCelsius(1e-6))
	assert.Equal(t, "999999999999999900000°C", FormatCelsius(999999999999999900000.0))
}

func TestParseReading(t *testing.T) {
	r, err := ParseReading([]byte(`{"temp1":21.5,"Temp2":3,"extra":1}`))
	require.NoError(t, err)
	assert.Equal(t, 21.5, r.Temp1)
	assert.Nil(t, r.Temp2)
	assert.Nil(t, r.Temp3)

	_, err = ParseReading([]byte(`null`))
	require.ErrorIs(t, err, ErrNotObject)

	_, err = ParseReading([]byte(`[1,2,3]`))
	require.Error(t, err)
}

type stubAPI struct{}

func (stubAPI) ToggleLED(context.Context, bool) (string, error) { return "", nil }
func (stubAPI) Temperatures(context.Context) (Reading, error)   { return Reading{}, nil }
