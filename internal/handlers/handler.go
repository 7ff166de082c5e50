package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scholarsource/scholarsource-backend/internal/apperrors"
	"github.com/scholarsource/scholarsource-backend/internal/middleware"
	"github.com/scholarsource/scholarsource-backend/internal/models"
)

// respondError maps a service error onto the HTTP taxonomy and writes the
// JSON error body.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
}

// requirePrincipal fetches the authenticated principal or aborts with 401.
func requirePrincipal(c *gin.Context) (models.Principal, bool) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return principal, ok
}
