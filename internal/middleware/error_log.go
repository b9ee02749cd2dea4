package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorLogger log errors attached to the context by handlers, such as internal causes
// hidden from the client.
func ErrorLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			log.WithError(e.Err).WithFields(logrus.Fields{
				"method": c.Request.Method,
				"route":  c.FullPath(),
				"status": c.Writer.Status(),
			}).Error("request failed")
		}
	}
}
