package panel

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeDevice records /toggle-led calls and serves a configurable /temperature.
type fakeDevice struct {
	mu         sync.Mutex
	states     []string
	toggleCode int
	tempBody   string
	tempCode   int
	tempHits   int
	gate       chan struct{} // when set, /temperature blocks until it is closed
	srv        *httptest.Server
}

func newFakeDevice(t *testing.T) *fakeDevice {
	t.Helper()
	d := &fakeDevice{toggleCode: http.StatusOK, tempCode: http.StatusOK, tempBody: `{}`}
	mux := http.NewServeMux()
	mux.HandleFunc("/toggle-led", func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		d.states = append(d.states, r.URL.Query().Get("state"))
		code := d.toggleCode
		d.mu.Unlock()
		w.WriteHeader(code)
		if code == http.StatusOK {
			_, _ = w.Write([]byte("LED turned ON"))
			return
		}
		_, _ = w.Write([]byte("nope"))
	})
	mux.HandleFunc("/temperature", func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		d.tempHits++
		body, code, gate := d.tempBody, d.tempCode, d.gate
		d.mu.Unlock()
		if gate != nil {
			<-gate
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testPage))
	})
	d.srv = httptest.NewServer(mux)
	t.Cleanup(d.srv.Close)
	return d
}

func (d *fakeDevice) set(fn func(d *fakeDevice)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d)
}

func (d *fakeDevice) toggles() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.states...)
}

func (d *fakeDevice) hits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tempHits
}

const testPage = `<!DOCTYPE html><html><body>
<input type="checkbox" id="ledSwitch" class="sr-only">
<div id="switchContainer" class="track bg-gray-300"><div id="switchToggle" class="knob"></div></div>
<span id="temp1">--</span><span id="temp2">--</span><span id="temp3">--</span>
</body></html>`
