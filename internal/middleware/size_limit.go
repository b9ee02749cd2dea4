package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobposter-backend/internal/utilities"
)

// SizeLimit reject request body larger than maxBodyBytes with 413.
// Declared length is checked up front, chunked body is cut by http.MaxBytesReader
// and surface as *http.MaxBytesError when the handler read it.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBodyBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
				Error: "Request body too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
