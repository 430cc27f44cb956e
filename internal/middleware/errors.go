package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"appointment-booking-api/internal/apperr"
)

// Errors renders the last error attached with c.Error.
// Application errors keep their message and status. Anything else becomes a 500.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		if e, ok := apperr.As(err); ok {
			c.JSON(e.Status, gin.H{"status": "error", "message": e.Message})
			return
		}

		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}
