package utilities

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractBearerToken return token part of "Authorization: Bearer <token>" header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	const BearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(BearerSchema) || !strings.EqualFold(authHeader[:len(BearerSchema)], BearerSchema) {
		return "", fmt.Errorf("Invalid authorization header")
	}

	return strings.TrimSpace(authHeader[len(BearerSchema):]), nil
}
