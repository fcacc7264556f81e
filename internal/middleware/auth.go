package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-registry/internal/handler"
	"github.com/jwalitptl/clinic-registry/pkg/auth"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

const ContextOperator = "operator"

type AuthMiddleware struct {
	jwt auth.JWTService
}

func NewAuthMiddleware(jwt auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate verifies the bearer token and sets the operator in context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.reject(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.reject(c, "invalid authorization format")
			return
		}

		claims, err := m.jwt.ValidateToken(parts[1])
		if err != nil {
			m.reject(c, "invalid token")
			return
		}

		c.Set(ContextOperator, claims.Operator)
		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, msg string) {
	status, _ := handler.StatusFor(apperrors.Unauthorized(nil))
	c.AbortWithStatusJSON(status, handler.NewErrorResponse(msg))
}
