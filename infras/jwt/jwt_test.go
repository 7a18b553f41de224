package jwt_test

import (
	"testing"
	"time"

	goJwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"plek/config"
	"plek/infras/jwt"
)

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testAccessSecret
	cfg.JWT.RefreshSecret = testRefreshSecret

	return jwt.New(cfg)
}

func signToken(t *testing.T, tokenType jwt.TokenType, secret string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.Claims{
		UserID:  "user-1",
		Email:   "user@example.com",
		Role:    "renter",
		TokenID: "token-1",
		Type:    tokenType,
		RegisteredClaims: goJwt.RegisteredClaims{
			ExpiresAt: goJwt.NewNumericDate(expiresAt),
			Subject:   "user-1",
		},
	}

	signed, err := goJwt.NewWithClaims(goJwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)

	return signed
}

func TestValidateToken(t *testing.T) {
	service := newService()
	expiry := time.Now().Add(time.Hour)

	t.Run("accepts a valid access token", func(t *testing.T) {
		token := signToken(t, jwt.AccessToken, testAccessSecret, expiry)

		claims, err := service.ValidateToken(token, jwt.AccessToken)

		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, "renter", claims.Role)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := signToken(t, jwt.AccessToken, testAccessSecret, time.Now().Add(-time.Hour))

		_, err := service.ValidateToken(token, jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("rejects a token signed with the wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.AccessToken, "not-the-secret", expiry)

		_, err := service.ValidateToken(token, jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("rejects a refresh token presented as an access token", func(t *testing.T) {
		token := signToken(t, jwt.RefreshToken, testAccessSecret, expiry)

		_, err := service.ValidateToken(token, jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token", jwt.AccessToken)

		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("rejects an unknown token type", func(t *testing.T) {
		token := signToken(t, jwt.AccessToken, testAccessSecret, expiry)

		_, err := service.ValidateToken(token, jwt.TokenType("session"))

		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "", wantErr: true},
		{name: "missing scheme", header: "abc.def.ghi", wantErr: true},
		{name: "wrong scheme", header: "Basic abc.def.ghi", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}
