package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken lo envuelven los verifiers cuando el token no es aceptable
// (firma, expiración, issuer, subject). Otro error es falla de infraestructura.
var ErrInvalidToken = errors.New("invalid token")

// AuthVerifier verifica un bearer token y devuelve los claims del usuario.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
