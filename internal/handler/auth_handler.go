package handler

import (
	"errors"
	"net/http"

	"github.com/egrafes/egrafes-backend/internal/middleware"
	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/egrafes/egrafes-backend/internal/repository"
	"github.com/egrafes/egrafes-backend/internal/response"
	"github.com/egrafes/egrafes-backend/internal/service"
	"github.com/egrafes/egrafes-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
	credentialRepo *repository.CredentialRepository
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	sessionService *service.SessionService,
	credentialRepo *repository.CredentialRepository,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		credentialRepo: credentialRepo,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates username + password against the credential store, creates a
// fresh session context, returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.credentialRepo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.authService.CheckPassword(entry.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateToken(entry)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.sessionService.Create(c.Request.Context(), entry.Username); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"username":    entry.Username,
			"school_name": entry.SchoolName,
			"school_code": entry.SchoolCode,
		},
	})
}

// Logout godoc
// POST /api/v1/auth/logout
// Destroys the session context of the currently authenticated user.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.sessionService.Destroy(c.Request.Context(), claims.Username); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile and current edit state of the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sess, err := h.sessionService.Get(c.Request.Context(), claims.Username)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"username":    claims.Username,
			"school_name": claims.SchoolName,
			"school_code": claims.SchoolCode,
		},
		"editing": sess.EditRecordID != "",
		"prefill": sess.Prefill,
	})
}
