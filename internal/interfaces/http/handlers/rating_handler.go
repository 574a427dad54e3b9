package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/internal/interfaces/http/middleware"
	"plateshare.backend/internal/interfaces/http/response"
	"plateshare.backend/internal/usecases"
)

// RatingHandler handles rating endpoints
type RatingHandler struct {
	ratingUsecase *usecases.RatingUsecase
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingUsecase *usecases.RatingUsecase) *RatingHandler {
	return &RatingHandler{
		ratingUsecase: ratingUsecase,
	}
}

// CreateRating submits a rating for a completed post
// POST /api/v1/ratings
func (h *RatingHandler) CreateRating(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Authorization("Not authenticated", domainerrors.ErrNotAuthorized))
		return
	}

	var input entities.CreateRatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrInvalidInput))
		return
	}

	rating, err := h.ratingUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rating)
}

// ListUserRatings lists ratings received by a user
// GET /api/v1/users/:id/ratings
func (h *RatingHandler) ListUserRatings(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("Invalid user id", domainerrors.ErrInvalidInput))
		return
	}

	ratings, err := h.ratingUsecase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"ratings": ratings,
	})
}
