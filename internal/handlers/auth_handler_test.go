package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"stockfinder/internal/logger"
	"stockfinder/internal/services"
	"stockfinder/internal/validator"
)

// --- mock auth service ---

type mockAuthService struct {
	verifyFn func(username, password string) bool
}

var _ services.AuthServicer = (*mockAuthService)(nil)

func (m *mockAuthService) Verify(username, password string) bool {
	if m.verifyFn != nil {
		return m.verifyFn(username, password)
	}
	return false
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", handler.Login)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 and token on success", func(t *testing.T) {
		authSvc := &mockAuthService{
			verifyFn: func(username, password string) bool {
				return username == "analyst" && password == "hunter2"
			},
		}
		r := setupAuthRouter(NewAuthHandler(authSvc))

		rec := doRequest(r, "POST", "/auth/login", `{"username":"analyst","password":"hunter2"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == nil || result["token"] == "" {
			t.Error("expected non-empty token")
		}
		if result["username"] != "analyst" {
			t.Errorf("expected username analyst, got %v", result["username"])
		}
	})

	t.Run("returns 401 on wrong credentials", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"username":"analyst","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing username", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"password":"hunter2"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockAuthService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"username":"analyst"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
