package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainUser "stocky-backend/internal/domain/user"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

// RequireRole gates the request on the caller's role meeting the required
// level. Insufficient role is Forbidden, distinct from the Unauthenticated
// failures raised while resolving identity.
func RequireRole(required domainUser.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, appErrors.ErrMissingToken.Error())
			c.Abort()
			return
		}

		if !user.Role.Satisfies(required) {
			utils.ErrorResponse(c, http.StatusForbidden, appErrors.ErrForbidden.Error())
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(domainUser.RoleAdmin)
}

func MemberOnly() gin.HandlerFunc {
	return RequireRole(domainUser.RoleMember)
}

func ScannerOnly() gin.HandlerFunc {
	return RequireRole(domainUser.RoleScanner)
}
