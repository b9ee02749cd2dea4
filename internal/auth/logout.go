package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"jobposter-backend/internal/logging"
	"jobposter-backend/internal/utilities"
)

// LogoutController handles user logout by blacklisting JWT tokens
type LogoutController struct {
	BlacklistStore JwtBlacklistStore
	Audit          logrus.FieldLogger
}

// NewLogoutController creates a new instance of LogoutController. A nil audit logger disable auditing.
func NewLogoutController(blacklistStore JwtBlacklistStore, audit logrus.FieldLogger) *LogoutController {
	if audit == nil {
		audit = logging.Discard()
	}
	return &LogoutController{
		BlacklistStore: blacklistStore,
		Audit:          audit,
	}
}

// LogoutHandler handles user logout by blacklisting the JWT token
// @Summary Revoke the access token used for this request
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Failed to logout"
// @Router /auth/logout [post]
func (lc *LogoutController) LogoutHandler(c *gin.Context) {
	if _, err := utilities.ExtractBearerToken(c); err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	claims, err := ExtractClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	err = lc.BlacklistStore.AddToBlacklist(c.Request.Context(), claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to logout"})
		return
	}

	lc.Audit.WithFields(logrus.Fields{
		"auth_type":  "Local",
		"action":     "Logout",
		"status":     "Success",
		"identifier": claims.Subject,
	}).Info()
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Successfully logged out"})
}

// ExtractClaims return token claims stored in context by the auth middleware.
func ExtractClaims(c *gin.Context) (*jwt.RegisteredClaims, error) {
	claims, ok := c.Get("claims")
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	realClaims, okCast := claims.(*jwt.RegisteredClaims)
	if !okCast || realClaims.ExpiresAt == nil {
		return nil, fmt.Errorf("invalid token claims type")
	}
	return realClaims, nil
}
