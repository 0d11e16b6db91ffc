package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vet-practice/internal/platform/logger"
	"vet-practice/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedVerifier string

func (v fixedVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != string(v) {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{Subject: "tester"}, nil
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight no debe llegar al handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/Dog", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rr.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_SimpleRequestPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/Dog", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	CORS(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Expose-Headers"), "Location")
}

func TestRequireAuth(t *testing.T) {
	v := fixedVerifier("t0k")
	h := AuthContext(v, logger.Nop())(RequireAuth(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		require.True(t, ok)
		assert.Equal(t, "tester", c.Subject)
		w.WriteHeader(http.StatusOK)
	})))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"sin header", "", http.StatusUnauthorized},
		{"token inválido", "Bearer nope", http.StatusUnauthorized},
		{"esquema incorrecto", "Basic t0k", http.StatusUnauthorized},
		{"ok", "Bearer t0k", http.StatusOK},
		{"ok case-insensitive", "bearer t0k", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/Dog", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestRequireAuth_NoVerifierIsOpen(t *testing.T) {
	h := AuthContext(nil, logger.Nop())(RequireAuth(nil)(http.HandlerFunc(okHandler)))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/Dog", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRecover(t *testing.T) {
	var buf strings.Builder
	log := logger.New(logger.Options{Level: logger.Error, Format: logger.FormatJSON, Output: &buf})

	h := Recover(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/Dog/1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "boom")
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/Dog/{id}", okHandler)

	for _, p := range []string{"/Dog/1", "/Dog/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/Dog/{id}", "200"))
	assert.Equal(t, float64(2), got)
}

func TestAccessLog(t *testing.T) {
	var buf strings.Builder
	log := logger.New(logger.Options{Level: logger.Info, Format: logger.FormatJSON, Output: &buf})

	rr := httptest.NewRecorder()
	AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/health"`)
}
