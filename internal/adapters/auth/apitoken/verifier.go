package apitoken

import (
	"context"
	"crypto/subtle"
	"strings"

	"vet-practice/internal/ports/auth"
)

// Verifier acepta un único token estático compartido (instalaciones chicas,
// una sola clínica).
type Verifier struct {
	token []byte
}

func New(token string) *Verifier {
	return &Verifier{token: []byte(strings.TrimSpace(token))}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if len(v.token) == 0 {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), v.token) != 1 {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{Subject: "api-token", Name: "static token"}, nil
}
