package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyport/internal/shared/config"
	"skyport/internal/users"
)

const testSecret = "middleware-test-secret"

func testJWTConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: testSecret},
	}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func accessClaims(userID uuid.UUID, role users.Role) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": userID.String(),
		"email":   "alice@example.com",
		"role":    string(role),
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func jwtProbeEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(JWTAuthWithConfig(cfg))
	engine.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("user_role"),
		})
	})
	return engine
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	engine := jwtProbeEngine(testJWTConfig())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	engine := jwtProbeEngine(testJWTConfig())

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	engine := jwtProbeEngine(testJWTConfig())

	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	engine := jwtProbeEngine(testJWTConfig())

	claims := accessClaims(uuid.New(), users.RoleUser)
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Refresh tokens are only good for the refresh endpoint. Presenting one
// as an access token must fail even though the signature checks out.
func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	engine := jwtProbeEngine(testJWTConfig())

	claims := accessClaims(uuid.New(), users.RoleUser)
	claims["type"] = "refresh"
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	engine := jwtProbeEngine(testJWTConfig())

	userID := uuid.New()
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, accessClaims(userID, users.RoleAdmin)))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), string(users.RoleAdmin))
}

func TestAdminOrReadOnly(t *testing.T) {
	testCases := []struct {
		name     string
		method   string
		role     string
		wantCode int
	}{
		{"regular user may read", http.MethodGet, string(users.RoleUser), http.StatusOK},
		{"regular user may not create", http.MethodPost, string(users.RoleUser), http.StatusForbidden},
		{"regular user may not delete", http.MethodDelete, string(users.RoleUser), http.StatusForbidden},
		{"admin may create", http.MethodPost, string(users.RoleAdmin), http.StatusOK},
		{"admin may delete", http.MethodDelete, string(users.RoleAdmin), http.StatusOK},
		{"missing role may read", http.MethodGet, "", http.StatusOK},
		{"missing role may not mutate", http.MethodPut, "", http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			engine := gin.New()
			engine.Use(func(c *gin.Context) {
				if tc.role != "" {
					c.Set("user_role", tc.role)
				}
			})
			engine.Use(AdminOrReadOnly())
			engine.Handle(tc.method, "/probe", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tc.method, "/probe", nil))

			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	testCases := []struct {
		name     string
		role     string
		wantCode int
	}{
		{"admin passes", string(users.RoleAdmin), http.StatusOK},
		{"regular user is rejected", string(users.RoleUser), http.StatusForbidden},
		{"missing role is unauthorized", "", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			engine := gin.New()
			engine.Use(func(c *gin.Context) {
				if tc.role != "" {
					c.Set("user_role", tc.role)
				}
			})
			engine.Use(RequireAdmin())
			engine.POST("/probe", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/probe", nil))

			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}
