package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/varun134127/serene-sale-spot/internal/config"
	"github.com/varun134127/serene-sale-spot/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

var mwCfg = config.Config{JWTSecret: "test-secret"}

type mwErrorResponse struct {
	Error string `json:"error"`
}

// AuthJWT配下のテスト用エンドポイント。context値をそのまま返す。
func newProtectedEcho() *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		userID, _ := c.Get(middleware.CtxUserIDKey).(int64)
		email, _ := c.Get(middleware.CtxEmailKey).(string)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user_id": userID,
			"email":   email,
		})
	}, middleware.AuthJWT(mwCfg))
	return e
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

// Test: ヘッダ無しは401
func TestAuthJWT_MissingHeader(t *testing.T) {
	e := newProtectedEcho()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body mwErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Error)
}

// Test: Bearer形式でないヘッダは401
func TestAuthJWT_NotBearer(t *testing.T) {
	e := newProtectedEcho()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Test: 正しいtokenは通ってuser_id/emailがcontextに入る
func TestAuthJWT_ValidToken(t *testing.T) {
	e := newProtectedEcho()

	now := time.Now()
	token := signToken(t, mwCfg.JWTSecret, jwt.MapClaims{
		"sub":   "42",
		"email": "alice@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		UserID int64  `json:"user_id"`
		Email  string `json:"email"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "alice@example.com", body.Email)
}

// Test: subが数値claimでも通る
func TestAuthJWT_NumericSub(t *testing.T) {
	e := newProtectedEcho()

	now := time.Now()
	token := signToken(t, mwCfg.JWTSecret, jwt.MapClaims{
		"sub": 7,
		"exp": now.Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// Test: 期限切れは401
func TestAuthJWT_ExpiredToken(t *testing.T) {
	e := newProtectedEcho()

	now := time.Now()
	token := signToken(t, mwCfg.JWTSecret, jwt.MapClaims{
		"sub": "42",
		"iat": now.Add(-2 * time.Hour).Unix(),
		"exp": now.Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Test: 署名シークレット違いは401
func TestAuthJWT_WrongSecret(t *testing.T) {
	e := newProtectedEcho()

	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
