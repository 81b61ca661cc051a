package handlers

import (
	"context"
	"net/http"
	"time"

	"esp_panel/internal/models"
	"esp_panel/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type ledCall struct {
	on     bool
	source string
}

type mockLed struct {
	state models.DeviceState
	err   error
	calls []ledCall
}

func (m *mockLed) Set(ctx context.Context, on bool, source string) (models.DeviceState, error) {
	m.calls = append(m.calls, ledCall{on: on, source: source})
	st := m.state
	st.LedOn = on
	return st, m.err
}

type mockMonitoring struct {
	state models.DeviceState
	temps models.Temperatures
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.DeviceState, error) {
	return m.state, m.err
}

func (m *mockMonitoring) Temperatures(ctx context.Context) (models.Temperatures, error) {
	return m.temps, m.err
}

type mockEventLog struct {
	resp     []models.DeviceEvent
	err      error
	calls    int
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, nil).InitRoutes()
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
