package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupGatedRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/gated", func(c *gin.Context) {
		username, _ := c.Get("username")
		c.JSON(http.StatusOK, gin.H{"username": username})
	})
	return r
}

func doGatedRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/gated", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid_session_token", func(t *testing.T) {
		token, err := GenerateSessionToken("analyst")
		if err != nil {
			t.Fatalf("failed to generate session token: %v", err)
		}

		rec := doGatedRequest(setupGatedRouter(), "Bearer "+token)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if want := `"username":"analyst"`; !strings.Contains(rec.Body.String(), want) {
			t.Errorf("expected body to contain %s, got %s", want, rec.Body.String())
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		rec := doGatedRequest(setupGatedRouter(), "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
			rec := doGatedRequest(setupGatedRouter(), header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401 for header %q, got %d", header, rec.Code)
			}
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		rec := doGatedRequest(setupGatedRouter(), "Bearer not-a-jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}
	})
}
