package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, sub, jti uuid.UUID, secret string) string {
	t.Helper()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub.String(),
		"email": "user@example.com",
		"role":  "customer",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
		"jti":   jti.String(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseToken(t *testing.T) {
	sub, jti := uuid.New(), uuid.New()
	signed := signTestToken(t, sub, jti, testSecret)

	claims, err := ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, sub, claims.Sub)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, jti, claims.Jti)
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed := signTestToken(t, uuid.New(), uuid.New(), testSecret)

	_, err := ParseToken(signed, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "user@example.com",
		"role":  "customer",
		"iat":   past.Unix(),
		"exp":   past.Add(time.Hour).Unix(),
		"jti":   uuid.New().String(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestExtractClaimsFromCookie(t *testing.T) {
	sub, jti := uuid.New(), uuid.New()
	signed := signTestToken(t, sub, jti, testSecret)

	r := httptest.NewRequest("GET", "/wishlist", nil)
	r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: signed})

	claims, err := ExtractClaims(r, testSecret)
	require.NoError(t, err)
	assert.Equal(t, sub, claims.Sub)
}

func TestExtractClaimsMissingCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/wishlist", nil)

	_, err := ExtractClaims(r, testSecret)
	assert.Error(t, err)
}
