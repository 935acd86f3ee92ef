// internal/core/services/auth_service_test.go
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/services"
	"github.com/Sheimsito/picm-server/test/helpers"
	"github.com/Sheimsito/picm-server/test/mocks"
)

func TestAuthService_Login(t *testing.T) {
	const secret = "test-secret-key"

	makeUser := func(t *testing.T) *domain.User {
		user := &domain.User{ID: uuid.New(), Username: "ana", Role: domain.RoleEmployee, Active: true}
		require.NoError(t, user.SetPassword("correct-horse"))
		return user
	}

	t.Run("issues_token_for_valid_credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		user := makeUser(t)

		users.EXPECT().FindByUsername(gomock.Any(), "ana").Return(user, nil)

		svc := services.NewAuthService(users, secret, time.Hour, helpers.TestLogger())
		token, loggedIn, err := svc.Login(context.Background(), "ana", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, user.ID.String(), claims["sub"])
		assert.Equal(t, "ana", claims["username"])
	})

	t.Run("rejects_wrong_password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().FindByUsername(gomock.Any(), "ana").Return(makeUser(t), nil)

		svc := services.NewAuthService(users, secret, time.Hour, helpers.TestLogger())
		_, _, err := svc.Login(context.Background(), "ana", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("rejects_unknown_user_with_same_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, nil)

		svc := services.NewAuthService(users, secret, time.Hour, helpers.TestLogger())
		_, _, err := svc.Login(context.Background(), "ghost", "whatever")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("rejects_empty_credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := mocks.NewMockUserRepository(ctrl)

		svc := services.NewAuthService(users, secret, time.Hour, helpers.TestLogger())
		_, _, err := svc.Login(context.Background(), "", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
