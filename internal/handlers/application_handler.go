package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationHandler handles application-related HTTP requests
type ApplicationHandler struct {
	applicationService services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply handles POST /applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req models.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

// GetMyApplications handles GET /applications/my
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.GetMyApplications(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// GetAllApplications handles GET /applications
func (h *ApplicationHandler) GetAllApplications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	applications, err := h.applicationService.GetAllApplications(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// UpdateApplication handles PUT /applications/:id
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req models.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.applicationService.UpdateOwnApplication(c.Request.Context(), principal, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// UpdateStatus handles PATCH /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.applicationService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application status updated"})
}

// SetFeedback handles PATCH /applications/:id/feedback
func (h *ApplicationHandler) SetFeedback(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req struct {
		Feedback string `json:"feedback" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.applicationService.SetFeedback(c.Request.Context(), id, req.Feedback); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback saved"})
}

// CancelApplication handles DELETE /applications/:id
func (h *ApplicationHandler) CancelApplication(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.applicationService.CancelApplication(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application cancelled"})
}
