package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/model"
	"jobposter-backend/internal/policy"
	"jobposter-backend/internal/utilities"
)

// CheckRole will protect endpoint from user that is not a specific roles
func CheckRole(roles ...model.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			utilities.RespondError(ctx, err)
			return
		}

		if !utilities.Contains(roles, user.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "User doesn't have permission to access",
			})
			return
		}
		ctx.Next()
	}
}

// RequireAction protect endpoint with the route level part of the access policy:
// the caller's role must be allowed to perform action. Ownership is checked later by the service.
func RequireAction(action policy.Action) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := utilities.ExtractUser(ctx)
		if err != nil {
			utilities.RespondError(ctx, err)
			return
		}

		if !policy.Permits(user.Role, action) {
			utilities.RespondError(ctx, policy.Check(policy.FromUser(user), action, user.ID))
			return
		}
		ctx.Next()
	}
}
