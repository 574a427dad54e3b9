package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"plateshare.backend/internal/domain/entities"
	domainerrors "plateshare.backend/internal/domain/errors"
	"plateshare.backend/internal/interfaces/http/middleware"
	"plateshare.backend/internal/interfaces/http/response"
	"plateshare.backend/internal/usecases"
)

// PostHandler handles post lifecycle endpoints
type PostHandler struct {
	postUsecase *usecases.PostUsecase
}

// NewPostHandler creates a new post handler
func NewPostHandler(postUsecase *usecases.PostUsecase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
	}
}

// CreatePost creates a new post
// POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Authorization("Not authenticated", domainerrors.ErrNotAuthorized))
		return
	}

	var input entities.CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrInvalidInput))
		return
	}

	post, err := h.postUsecase.CreatePost(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, post)
}

// GetPost gets a post by ID
// GET /api/v1/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("Invalid post id", domainerrors.ErrInvalidInput))
		return
	}

	post, err := h.postUsecase.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, post)
}

// ListPosts lists posts with optional type/status filters
// GET /api/v1/posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	var filter entities.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrInvalidInput))
		return
	}

	var pagination struct {
		Page  int `form:"page"`
		Limit int `form:"limit"`
	}
	if err := c.ShouldBindQuery(&pagination); err != nil {
		response.Error(c, domainerrors.Validation(err.Error(), domainerrors.ErrInvalidInput))
		return
	}

	posts, meta, err := h.postUsecase.ListPosts(c.Request.Context(), filter, pagination.Page, pagination.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": meta,
	})
}

// ClaimPost claims an active donation
// POST /api/v1/posts/:id/claim
func (h *PostHandler) ClaimPost(c *gin.Context) {
	h.transition(c, h.postUsecase.Claim)
}

// FulfillPost fulfills an active request
// POST /api/v1/posts/:id/fulfill
func (h *PostHandler) FulfillPost(c *gin.Context) {
	h.transition(c, h.postUsecase.Fulfill)
}

// MarkPickedUp marks a claimed post as picked up
// POST /api/v1/posts/:id/pickup
func (h *PostHandler) MarkPickedUp(c *gin.Context) {
	h.transition(c, h.postUsecase.MarkPickedUp)
}

// MarkCompleted marks a picked-up post as completed
// POST /api/v1/posts/:id/complete
func (h *PostHandler) MarkCompleted(c *gin.Context) {
	h.transition(c, h.postUsecase.MarkCompleted)
}

// DeletePost deletes an active post (owner only)
// DELETE /api/v1/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Authorization("Not authenticated", domainerrors.ErrNotAuthorized))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("Invalid post id", domainerrors.ErrInvalidInput))
		return
	}

	if err := h.postUsecase.Delete(c.Request.Context(), postID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Post deleted",
	})
}

func (h *PostHandler) transition(c *gin.Context, op func(context.Context, uuid.UUID, uuid.UUID) (*entities.Post, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Authorization("Not authenticated", domainerrors.ErrNotAuthorized))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.Validation("Invalid post id", domainerrors.ErrInvalidInput))
		return
	}

	post, err := op(c.Request.Context(), postID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, post)
}
