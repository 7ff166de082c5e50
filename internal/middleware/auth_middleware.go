package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/scholarsource/scholarsource-backend/internal/config"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/services"
)

const principalKey = "principal"

// JWTAuthMiddleware creates a gin middleware for JWT authentication. On
// success the principal (email + role claim) is attached to the request
// context for downstream handlers.
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	if cfg.JWT.Secret == "" {
		log.Fatal("[FATAL] JWTAuthMiddleware: JWT_SECRET is not configured")
	}
	jwtSecret := []byte(cfg.JWT.Secret)

	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			return
		}
		tokenString := authHeader[len(bearerSchema):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token carries no email claim"})
			return
		}

		c.Set(principalKey, models.Principal{Email: email, Role: role})
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal attached by
// JWTAuthMiddleware.
func PrincipalFromContext(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}

// RequireRoles creates a middleware that only lets through principals whose
// stored role is one of the given roles. The role is re-read from the users
// collection so a demotion takes effect without waiting for token expiry.
func RequireRoles(userService services.UserService, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := userService.GetUserByEmail(c.Request.Context(), principal.Email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				// Refresh the principal role with the stored value.
				c.Set(principalKey, models.Principal{Email: principal.Email, Role: user.Role})
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	}
}
