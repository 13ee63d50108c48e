package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery is the single top-level error handler: any panic escaping a
// route handler becomes a 500, with the raw message exposed only in
// development.
func Recovery(log *logrus.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Errorf("Error: %v", err)
		message := "Something went wrong"
		if !production {
			message = fmt.Sprintf("%v", err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": message,
		})
	})
}
