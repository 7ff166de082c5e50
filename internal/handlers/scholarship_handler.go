package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/services"
	"github.com/scholarsource/scholarsource-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScholarshipHandler handles scholarship-related HTTP requests
type ScholarshipHandler struct {
	scholarshipService services.ScholarshipService
	reviewService      services.ReviewService
	uploader           utils.ImageUploader
}

// NewScholarshipHandler creates a new ScholarshipHandler. uploader may be nil
// when media uploads are not configured.
func NewScholarshipHandler(scholarshipService services.ScholarshipService, reviewService services.ReviewService, uploader utils.ImageUploader) *ScholarshipHandler {
	return &ScholarshipHandler{
		scholarshipService: scholarshipService,
		reviewService:      reviewService,
		uploader:           uploader,
	}
}

// SearchScholarships handles GET /scholarships
func (h *ScholarshipHandler) SearchScholarships(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	query := models.ScholarshipQuery{
		Search:   c.Query("search"),
		Country:  c.Query("country"),
		Category: c.Query("category"),
		Degree:   c.Query("degree"),
		SortBy:   c.Query("sortBy"),
		Page:     page,
		Limit:    limit,
	}

	result, err := h.scholarshipService.SearchScholarships(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTopScholarships handles GET /scholarships/top
func (h *ScholarshipHandler) GetTopScholarships(c *gin.Context) {
	scholarships, err := h.scholarshipService.GetTopScholarships(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scholarships)
}

// GetScholarshipByID handles GET /scholarships/:id
func (h *ScholarshipHandler) GetScholarshipByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	scholarship, err := h.scholarshipService.GetScholarshipByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scholarship)
}

// GetScholarshipReviews handles GET /scholarships/:id/reviews
func (h *ScholarshipHandler) GetScholarshipReviews(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	reviews, err := h.reviewService.GetReviewsByScholarship(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateScholarship handles POST /scholarships
func (h *ScholarshipHandler) CreateScholarship(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var scholarship models.Scholarship
	if err := c.ShouldBindJSON(&scholarship); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.scholarshipService.CreateScholarship(c.Request.Context(), principal, &scholarship); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scholarship)
}

// UpdateScholarship handles PUT /scholarships/:id
func (h *ScholarshipHandler) UpdateScholarship(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var scholarship models.Scholarship
	if err := c.ShouldBindJSON(&scholarship); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	scholarship.ID = id

	if err := h.scholarshipService.UpdateScholarship(c.Request.Context(), &scholarship); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scholarship)
}

// UploadLogo handles POST /scholarships/:id/logo
func (h *ScholarshipHandler) UploadLogo(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read logo file"})
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadImage(c.Request.Context(), file, "university-logos")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload logo: " + err.Error()})
		return
	}

	if err := h.scholarshipService.SetScholarshipImage(c.Request.Context(), id, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"universityImage": url})
}

// DeleteScholarship handles DELETE /scholarships/:id
func (h *ScholarshipHandler) DeleteScholarship(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.scholarshipService.DeleteScholarship(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Scholarship deleted successfully"})
}
