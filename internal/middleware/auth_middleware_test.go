package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubpuntos/loyalty-backend/internal/config"
	"github.com/clubpuntos/loyalty-backend/internal/models"
	"github.com/clubpuntos/loyalty-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}}
}

func protectedRouter(cfg *config.Config, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", JWTAuthMiddleware(cfg))
	if adminOnly {
		group.Use(AdminRequired())
	}
	group.GET("/ping", func(c *gin.Context) {
		email, _ := c.Get(ContextUserEmail)
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	router := protectedRouter(cfg, false)

	token, err := utils.GenerateJWT("64f000000000000000000001", "ana@test.local", models.RoleClient, cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "ana@test.local")
}

func TestJWTAuthMiddlewareRejects(t *testing.T) {
	cfg := testConfig()
	router := protectedRouter(cfg, false)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			assert.Equal(t, http.StatusUnauthorized, resp.Code)
		})
	}
}

func TestAdminRequired(t *testing.T) {
	cfg := testConfig()
	router := protectedRouter(cfg, true)

	clientToken, err := utils.GenerateJWT("id", "ana@test.local", models.RoleClient, cfg)
	require.NoError(t, err)
	adminToken, err := utils.GenerateJWT("id", "root@test.local", models.RoleAdmin, cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+clientToken)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}
