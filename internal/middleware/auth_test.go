package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantonize/internal/config"
	"plantonize/internal/models"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{
		JWTSecret:       testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
}

func testUser(role models.Role) *models.User {
	return &models.User{
		Base:     models.Base{ID: "0190b8d2-5f7e-7c3a-8e21-4b5f2d9a1c00"},
		Username: "enfermeira.ana",
		Role:     role,
	}
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(AuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString(UserIDKey),
			"username": c.GetString(UsernameKey),
			"role":     c.MustGet(RoleKey),
		})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", http.NoBody)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signClaims(t *testing.T, claims *JWTClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_access_token", func(t *testing.T) {
		user := testUser(models.RoleAdmin)
		token, err := GenerateAccessToken(user)
		require.NoError(t, err)

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		require.Equal(t, http.StatusOK, rec.Code)

		body := parseBody(t, rec)
		assert.Equal(t, user.ID, body["user_id"])
		assert.Equal(t, user.Username, body["username"])
		assert.Equal(t, "admin", body["role"])
	})

	t.Run("missing_header", func(t *testing.T) {
		rec := doAuthRequest(setupAuthRouter(), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
	})

	t.Run("malformed_header", func(t *testing.T) {
		rec := doAuthRequest(setupAuthRouter(), "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
	})

	t.Run("refresh_token_rejected", func(t *testing.T) {
		token, err := GenerateRefreshToken(testUser(models.RoleCollaborator))
		require.NoError(t, err)

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired_token", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		token := signClaims(t, &JWTClaims{
			UserID:    "u1",
			Role:      models.RoleCollaborator,
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(past),
				Issuer:    tokenIssuer,
			},
		}, testSecret)

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		token := signClaims(t, &JWTClaims{
			UserID:    "u1",
			Role:      models.RoleAdmin,
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Issuer:    tokenIssuer,
			},
		}, "another-secret")

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown_role_rejected", func(t *testing.T) {
		token := signClaims(t, &JWTClaims{
			UserID:    "u1",
			Role:      models.Role("superuser"),
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Issuer:    tokenIssuer,
			},
		}, testSecret)

		rec := doAuthRequest(setupAuthRouter(), "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestValidateRefreshToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		user := testUser(models.RoleCollaborator)
		token, err := GenerateRefreshToken(user)
		require.NoError(t, err)

		claims, err := ValidateRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, models.RoleCollaborator, claims.Role)
	})

	t.Run("access_token_rejected", func(t *testing.T) {
		token, err := GenerateAccessToken(testUser(models.RoleCollaborator))
		require.NoError(t, err)

		_, err = ValidateRefreshToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ValidateRefreshToken("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-a")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("token-a"))
	assert.NotEqual(t, a, HashToken("token-b"))
}
