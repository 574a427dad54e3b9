package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/internal/interfaces/http/middleware"
	"plateshare.backend/internal/interfaces/http/response"
	"plateshare.backend/internal/usecases"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register starts a registration and sends the verification code
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrInvalidInput))
		return
	}

	if err := h.authUsecase.RequestRegistration(c.Request.Context(), &input); err != nil {
		if err == domainerrors.ErrAlreadyExists {
			response.Error(c, domainerrors.Conflict("Email already registered", err))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"message": "Verification code sent. Please check your email.",
	})
}

// VerifyRegistration completes a registration with the emailed code
// POST /api/v1/auth/verify-registration
func (h *AuthHandler) VerifyRegistration(c *gin.Context) {
	var input entities.VerifyRegistrationInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrMissingField))
		return
	}

	authResponse, err := h.authUsecase.VerifyRegistration(c.Request.Context(), input.Email, input.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, authResponse)
}

// RequestLogin sends a login code to a verified user
// POST /api/v1/auth/request-login
func (h *AuthHandler) RequestLogin(c *gin.Context) {
	var input entities.RequestLoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrMissingField))
		return
	}

	if err := h.authUsecase.RequestLogin(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Login code sent. Please check your email.",
	})
}

// Login completes a login with the emailed code
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.CompleteLoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrMissingField))
		return
	}

	authResponse, err := h.authUsecase.CompleteLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// RequestVerification issues a standalone verification code
// POST /api/v1/auth/request-verification
func (h *AuthHandler) RequestVerification(c *gin.Context) {
	var input entities.RequestLoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrMissingField))
		return
	}

	if err := h.authUsecase.RequestStandaloneVerification(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Verification code sent. Please check your email.",
	})
}

// CheckVerification validates a standalone verification code
// POST /api/v1/auth/check-verification
func (h *AuthHandler) CheckVerification(c *gin.Context) {
	var input entities.VerifyRegistrationInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrMissingField))
		return
	}

	if err := h.authUsecase.CheckStandaloneVerification(c.Request.Context(), input.Email, input.OTP); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"verified": true,
	})
}

// RegisterVerified registers a user whose email was verified up front
// POST /api/v1/auth/register-verified
func (h *AuthHandler) RegisterVerified(c *gin.Context) {
	var input entities.RegisterVerifiedInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrMissingField))
		return
	}

	authResponse, err := h.authUsecase.RegisterPreVerified(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrAlreadyExists {
			response.Error(c, domainerrors.Conflict("Email already registered", err))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, authResponse)
}

// GetMe returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Authorization("Not authenticated", domainerrors.ErrNotAuthorized))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
