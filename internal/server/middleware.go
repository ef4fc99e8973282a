package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	userdomain "github.com/parkwiselabs/parkwise/internal/user/domain"
)

const (
	contextUserIDKey   = "user_id"
	contextUserNameKey = "user_name"
	contextUserRoleKey = "user_role"

	requestIDHeader = "X-Request-ID"
)

// RequestID attaches a request id to the context and response, keeping
// the inbound value when the caller already set one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AuthRequired verifies the bearer token and stores the acting user's
// identity on the gin context for the handlers downstream.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		claims, err := s.tokens.Verify(parts[1])
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserIDKey, claims.Subject)
		c.Set(contextUserNameKey, claims.Name)
		c.Set(contextUserRoleKey, claims.Role)
		c.Next()
	}
}

// AdminRequired gates administration endpoints. It must run after
// AuthRequired.
func (s *Server) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(contextUserRoleKey) != userdomain.RoleAdministrator {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}

func actorID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}
