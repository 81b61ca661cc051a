package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"esp_panel/internal/repository"
	"esp_panel/internal/service"
)

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandlers(t *testing.T) {
	cases := []struct {
		name     string
		auth     *mockAuth
		path     string
		body     string
		wantCode int
		wantKey  string
		wantVal  any
	}{
		{"sign-up ok", &mockAuth{signUpID: 42}, "/auth/sign-up", `{"username":"u","password":"p"}`, http.StatusOK, "id", float64(42)},
		{"sign-up service error", &mockAuth{signUpErr: service.ErrEmptyUsername}, "/auth/sign-up", `{"username":" ","password":"p"}`, http.StatusBadRequest, "error", service.ErrEmptyUsername.Error()},
		{"sign-up taken", &mockAuth{signUpErr: fmt.Errorf("%w: %q", repository.ErrUsernameTaken, "u")}, "/auth/sign-up", `{"username":"u","password":"p"}`, http.StatusConflict, "error", repository.ErrUsernameTaken.Error()},
		{"sign-up storage error", &mockAuth{signUpErr: errors.New("disk full")}, "/auth/sign-up", `{"username":"u","password":"p"}`, http.StatusInternalServerError, "error", "failed to create user"},
		{"sign-up missing password", &mockAuth{}, "/auth/sign-up", `{"username":"u"}`, http.StatusBadRequest, "", nil},
		{"sign-in ok", &mockAuth{genTokenToken: "tok123"}, "/auth/sign-in", `{"username":"u","password":"p"}`, http.StatusOK, "token", "tok123"},
		{"sign-in bad credentials", &mockAuth{genTokenErr: errors.New("nope")}, "/auth/sign-in", `{"username":"u","password":"x"}`, http.StatusUnauthorized, "error", "invalid credentials"},
		{"sign-in bad body", &mockAuth{}, "/auth/sign-in", `{"username":1}`, http.StatusBadRequest, "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tc.auth})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, postJSON(tc.path, tc.body))

			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantKey == "" {
				return
			}
			var m map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if m[tc.wantKey] != tc.wantVal {
				t.Fatalf("%s = %v, want %v", tc.wantKey, m[tc.wantKey], tc.wantVal)
			}
		})
	}
}
