package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockfinder/internal/errors"
	"stockfinder/internal/middleware"
	"stockfinder/internal/services"
)

// AuthHandler handles the credential gate in front of the dashboard.
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse represents a successful login with a session token
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login verifies the submitted credentials and issues a session token.
// Failure is retriable indefinitely; there is no lockout. The credentials
// are not retained beyond the verification call.
// @Summary     Log in to the dashboard
// @Description Verify a username/password pair and get a session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Dashboard credentials"
// @Success     200 {object} LoginResponse "Session token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if !h.authService.Verify(req.Username, req.Password) {
		respondWithError(c, apperrors.ErrInvalidCredentials)
		return
	}

	token, err := middleware.GenerateSessionToken(req.Username)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Username: req.Username})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
