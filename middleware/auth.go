package middleware

import (
	"github.com/gin-gonic/gin"

	"vikendica/constants"
	"vikendica/models"
	"vikendica/response"
	"vikendica/services"
)

// AuthMiddleware verifies the bearer token and stores the caller in the context.
// When roles are given the caller must hold one of them.
func AuthMiddleware(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing authorization header")
			return
		}

		claims, err := services.ParseToken(secret, authHeader)
		if err != nil {
			response.Error(c, err)
			return
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			response.Forbidden(c, "Insufficient permissions")
			return
		}

		c.Set(constants.ContextUsername, claims.Username)
		c.Set(constants.ContextUserRole, claims.Role)
		c.Next()
	}
}

// RoleMiddleware restricts a route already behind AuthMiddleware to the given roles.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextUserRole)
		if role == "" {
			response.Unauthorized(c, "Not authenticated")
			return
		}
		if !hasRole(role, roles) {
			response.Forbidden(c, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// AuthorizeSelfOrRoles lets the request through when the path parameter names the caller,
// or when the caller holds one of the roles.
func AuthorizeSelfOrRoles(param string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			response.Unauthorized(c, "Not authenticated")
			return
		}
		if c.Param(param) == actor.Username || hasRole(actor.Role, roles) {
			c.Next()
			return
		}
		response.Forbidden(c, "You can only access your own resources")
	}
}

// CurrentActor returns the caller stored by AuthMiddleware.
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	username := c.GetString(constants.ContextUsername)
	if username == "" {
		return models.Actor{}, false
	}
	return models.Actor{
		Username: username,
		Role:     c.GetString(constants.ContextUserRole),
	}, true
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
