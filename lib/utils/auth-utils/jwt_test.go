package authutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"mail-approval-backend/config"
	apperrors "mail-approval-backend/lib/utils/app-errors"
	"mail-approval-backend/models"
)

func initTestConfig() {
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 60
	conf.Auth.JWTRefreshExpireInSec = 120
	conf.Auth.BcryptCost = 4
	config.Conf = conf
}

func TestTokens(t *testing.T) {
	initTestConfig()

	t.Run(`access token claims`, func(t *testing.T) {
		token, err := GetToken("user-1", "Иван", models.TeamLeaderRole)
		require.Nil(t, err)

		claims, err := ParseToken(token)
		require.Nil(t, err)
		require.Equal(t, "user-1", GetUserID(claims))
		require.Equal(t, models.TeamLeaderRole, GetRole(claims))
		require.Equal(t, TokenTypeAccess, GetTokenType(claims))
		require.NotEmpty(t, GetTokenID(claims))
		require.WithinDuration(t, time.Now().Add(time.Minute), GetExpiresAt(claims), 5*time.Second)
	})

	t.Run(`refresh token type`, func(t *testing.T) {
		token, err := GetRefreshToken("user-1", "Иван")
		require.Nil(t, err)
		claims, err := ParseToken(token)
		require.Nil(t, err)
		require.Equal(t, TokenTypeRefresh, GetTokenType(claims))
		require.Equal(t, models.UserRole(""), GetRole(claims))
	})

	t.Run(`tokens are unique`, func(t *testing.T) {
		first, err := GetToken("user-1", "Иван", models.ManagerRole)
		require.Nil(t, err)
		second, err := GetToken("user-1", "Иван", models.ManagerRole)
		require.Nil(t, err)
		require.NotEqual(t, first, second)
	})

	t.Run(`foreign signature`, func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		signed, err := token.SignedString([]byte("other-secret"))
		require.Nil(t, err)
		_, err = ParseToken(signed)
		require.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run(`expired`, func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		signed, err := token.SignedString([]byte(config.Conf.Auth.JWTSecret))
		require.Nil(t, err)
		_, err = ParseToken(signed)
		require.True(t, apperrors.IsUnauthorized(err))
	})
}

func TestPassword(t *testing.T) {
	initTestConfig()

	hash, err := HashPassword("Secret#123")
	require.Nil(t, err)
	require.NotEqual(t, "Secret#123", hash)
	require.True(t, CheckPassword(hash, "Secret#123"))
	require.False(t, CheckPassword(hash, "secret#123"))
}
