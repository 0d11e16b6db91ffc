package auth

import "context"

// Verifier valida un bearer token y devuelve sus claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
