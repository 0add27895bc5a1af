package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"petmatch/internal/platform/logger"
	"petmatch/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey ctxKey = "claims"
	slotKey   ctxKey = "auth_slot"
)

// authSlot lo instala RequestLog antes de AuthContext para poder loguear
// quién hizo el request: el request que ve RequestLog no tiene los claims.
type authSlot struct {
	claims auth.Claims
	ok     bool
	failed string
}

// AuthContext:
// - Con verifier y Bearer token => Verify() y setea claims.
// - Sin verifier (modo dev) => usa el header X-Debug-User-ID si viene.
// - Sin claims el request sigue igual; cada handler decide 401/403.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					next.ServeHTTP(w, withClaims(r, auth.Claims{UserID: uid}))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrInvalidToken) {
					log.Debug("bearer token rejected", map[string]any{"path": r.URL.Path, "error": err.Error()})
				} else {
					reason = "verifier_error"
					log.Warn("auth verifier failed", map[string]any{"path": r.URL.Path, "error": err.Error()})
				}
				if slot, ok := r.Context().Value(slotKey).(*authSlot); ok {
					slot.failed = reason
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, withClaims(r, claims))
		})
	}
}

func withClaims(r *http.Request, c auth.Claims) *http.Request {
	if slot, ok := r.Context().Value(slotKey).(*authSlot); ok {
		slot.claims, slot.ok = c, true
	}
	return r.WithContext(context.WithValue(r.Context(), claimsKey, c))
}

func withAuthSlot(r *http.Request) (*http.Request, *authSlot) {
	slot := &authSlot{}
	return r.WithContext(context.WithValue(r.Context(), slotKey, slot)), slot
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
