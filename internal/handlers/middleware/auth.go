// internal/handlers/middleware/auth.go
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sheimsito/picm-server/internal/pkg/logger"
)

type contextKey string

const (
	contextKeyUserID   contextKey = "auth_user_id"
	contextKeyUsername contextKey = "auth_username"
	contextKeyRole     contextKey = "auth_role"
)

// Authenticate validates the Bearer token and stores the caller's identity
// in the request context. Statistics handlers key their cache entries on the
// user ID set here.
func Authenticate(secret string, slogger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				unauthorized(w, "Missing or malformed Authorization header")
				return
			}

			token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "),
				func(t *jwt.Token) (interface{}, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
					}
					return key, nil
				})
			if err != nil || !token.Valid {
				slogger.WarnContext(r.Context(), "token rejected", "err", err)
				unauthorized(w, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w, "Invalid token claims")
				return
			}

			userID, _ := claims["sub"].(string)
			username, _ := claims["username"].(string)
			role, _ := claims["role"].(string)
			if userID == "" {
				unauthorized(w, "Invalid token claims")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, contextKeyUserID, userID)
			ctx = context.WithValue(ctx, contextKeyUsername, username)
			ctx = context.WithValue(ctx, contextKeyRole, role)
			ctx = context.WithValue(ctx, logger.ContextKeyUserID, userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated caller's ID, empty outside the
// authenticated group
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyUserID).(string)
	return id
}

// Username returns the authenticated caller's username
func Username(ctx context.Context) string {
	name, _ := ctx.Value(contextKeyUsername).(string)
	return name
}

// Role returns the authenticated caller's role
func Role(ctx context.Context) string {
	role, _ := ctx.Value(contextKeyRole).(string)
	return role
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
