package auth

import "errors"

// ErrInvalidToken lo devuelven los verifiers cuando el token no es válido.
var ErrInvalidToken = errors.New("invalid token")

// Claims identifica a quien llama (persona de la clínica o integración).
type Claims struct {
	Subject string
	Name    string
	Scopes  []string
}
