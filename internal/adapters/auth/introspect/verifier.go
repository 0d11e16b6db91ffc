package introspect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vet-practice/internal/platform/httpclient"
	"vet-practice/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("introspection not configured")
	ErrUpstream      = errors.New("introspection upstream error")
)

type Config struct {
	URL    string
	APIKey string

	// Header de la API key. Vacío => "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration
}

// Verifier valida tokens contra un endpoint de introspección estilo
// RFC 7662: POST {"token": ...} => {"active": bool, "sub": ..., "scope": ...}.
type Verifier struct {
	url          string
	apiKey       string
	apiKeyHeader string
	client       *httpclient.Client
}

func New(cfg Config) *Verifier {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	return &Verifier{
		url:          strings.TrimSpace(cfg.URL),
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		client:       httpclient.New(cfg.Timeout),
	}
}

type introspectionResponse struct {
	Active bool   `json:"active"`
	Sub    string `json:"sub"`
	Name   string `json:"name"`
	Scope  string `json:"scope"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.url == "" {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	headers := map[string]string{}
	if v.apiKey != "" {
		headers[v.apiKeyHeader] = v.apiKey
	}

	var out introspectionResponse
	err := v.client.DoJSON(ctx, http.MethodPost, v.url, headers, map[string]string{"token": token}, &out)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.Claims{}, auth.ErrInvalidToken
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if !out.Active || strings.TrimSpace(out.Sub) == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	return auth.Claims{
		Subject: strings.TrimSpace(out.Sub),
		Name:    strings.TrimSpace(out.Name),
		Scopes:  strings.Fields(out.Scope),
	}, nil
}
