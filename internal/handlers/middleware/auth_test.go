// internal/handlers/middleware/auth_test.go
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheimsito/picm-server/internal/handlers/middleware"
	"github.com/Sheimsito/picm-server/test/helpers"
)

const testSecret = "test-secret-at-least-32-chars-long!"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	slogger := helpers.TestLogger()

	var gotUserID, gotUsername, gotRole string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = middleware.UserID(r.Context())
		gotUsername = middleware.Username(r.Context())
		gotRole = middleware.Role(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrapped := middleware.Authenticate(testSecret, slogger)(handler)

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{
			name: "valid_token",
			authorization: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub":      "7e7f9f6e-8f7f-4d2a-9a52-111111111111",
				"username": "mperez",
				"role":     "employee",
				"exp":      time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing_header",
			authorization:  "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed_header",
			authorization:  "Token abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "wrong_secret",
			authorization: "Bearer " + signToken(t, "some-other-secret-32-chars-long!!!!", jwt.MapClaims{
				"sub": "x",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired_token",
			authorization: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": "x",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing_subject",
			authorization: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"username": "ghost",
				"exp":      time.Now().Add(time.Hour).Unix(),
			}),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotUsername, gotRole = "", "", ""

			req := httptest.NewRequest("GET", "/api/v1/products", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "7e7f9f6e-8f7f-4d2a-9a52-111111111111", gotUserID)
				assert.Equal(t, "mperez", gotUsername)
				assert.Equal(t, "employee", gotRole)
			} else {
				assert.Empty(t, gotUserID)
			}
		})
	}
}
