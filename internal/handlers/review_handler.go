package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reviewService.CreateReview(c.Request.Context(), principal, &review); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetMyReviews handles GET /reviews/my
func (h *ReviewHandler) GetMyReviews(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetMyReviews(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// GetAllReviews handles GET /reviews
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	reviews, err := h.reviewService.GetAllReviews(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// UpdateReview handles PATCH /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), principal, id, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview handles DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
