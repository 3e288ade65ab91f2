package jwt_test

import (
	"testing"
	"time"

	golangJWT "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentopia/config"
	"rentopia/infras/jwt"
)

func newService() (jwt.JWT, *config.Config) {
	cfg := &config.Config{}
	cfg.App.Name = "rentopia"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60 * 24

	return jwt.New(cfg), cfg
}

var guest = jwt.Identity{UserID: "u-1", Email: "guest@example.com", Name: "Guest", Role: "user"}

func TestGenerateTokenPair(t *testing.T) {
	svc, _ := newService()

	pair, err := svc.GenerateTokenPair(guest)
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", access.UserID)
	assert.Equal(t, "user", access.Role)
	assert.Equal(t, access.ID, access.TokenID)
	assert.InDelta(t, (15 * time.Minute).Seconds(), access.Remaining().Seconds(), 5)

	refresh, err := svc.ValidateToken(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, access.TokenID, refresh.TokenID)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc, cfg := newService()

	pair, err := svc.GenerateTokenPair(guest)
	require.NoError(t, err)

	t.Run("refresh token used as access token", func(t *testing.T) {
		_, err := svc.ValidateToken(pair.RefreshToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token", jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		other := *cfg
		other.App.Name = "someone-else"

		_, err := jwt.New(&other).ValidateToken(pair.AccessToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		claims := jwt.Claims{
			UserID: "u-1",
			Type:   jwt.AccessToken,
			RegisteredClaims: golangJWT.RegisteredClaims{
				Issuer:    cfg.App.Name,
				IssuedAt:  golangJWT.NewNumericDate(past),
				ExpiresAt: golangJWT.NewNumericDate(past.Add(time.Minute)),
			},
		}

		signed, err := golangJWT.NewWithClaims(golangJWT.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.AccessSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("wrong type claim under the right secret", func(t *testing.T) {
		claims := jwt.Claims{
			UserID: "u-1",
			Type:   jwt.RefreshToken,
			RegisteredClaims: golangJWT.RegisteredClaims{
				Issuer:    cfg.App.Name,
				ExpiresAt: golangJWT.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}

		signed, err := golangJWT.NewWithClaims(golangJWT.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.AccessSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})
}

func TestRefreshTokens(t *testing.T) {
	svc, _ := newService()

	pair, err := svc.GenerateTokenPair(guest)
	require.NoError(t, err)

	next, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(next.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, guest.Email, claims.Email)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic dXNlcjpwYXNz")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
