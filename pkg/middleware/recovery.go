package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manzanit0/addressmap/pkg/alert"
)

func Recovery(n alert.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Re-panicking lets the notifier recover and report while the request
		// still gets aborted with a 500.
		defer n.Recover(c.Request.Context())
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				panic(r)
			}
		}()

		c.Next()
	}
}
