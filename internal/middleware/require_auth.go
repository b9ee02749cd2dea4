// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/auth"
	"jobposter-backend/internal/service"
	"jobposter-backend/internal/utilities"
)

// RequireAuth function is a middleware that validates a Bearer token in the Authorization
// header and checks if the account associated with the token exists before allowing
// access to the endpoint. It stores "claims" and "user" in the context.
func RequireAuth(tokens *auth.TokenIssuer, accounts *service.AccountService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		claims, err := tokens.ValidatedToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Error: "Access token expired",
				})
				return
			}

			if errors.Is(err, jwt.ErrTokenInvalidIssuer) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Error: "Invalid token issuer",
				})
				return
			}

			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to validate token: %s", err.Error()),
			})
			return
		}
		ctx.Set("claims", claims)

		userID, err := auth.SubjectID(claims)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Invalid token subject",
			})
			return
		}

		foundUser, err := accounts.Get(ctx.Request.Context(), userID)
		if err != nil {
			if apperror.Is(err, apperror.Unauthenticated) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
					Error: "User not exist",
				})
				return
			}
			utilities.RespondError(ctx, err)
			return
		}

		ctx.Set("user", foundUser)
		ctx.Next()
	}
}
