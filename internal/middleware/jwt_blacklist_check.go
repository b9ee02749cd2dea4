package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/auth"
	"jobposter-backend/internal/utilities"
)

// JwtBlacklistCheck is a middleware that reject token revoked by logout.
// It must run after RequireAuth.
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := auth.ExtractClaims(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		isBlacklisted, err := bl.IsBlacklisted(ctx.Request.Context(), claims.ID)
		if err != nil {
			_ = ctx.Error(err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to validate token",
			})
			return
		}

		if isBlacklisted {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Token has been revoked",
			})
			return
		}

		ctx.Next()
	}
}
