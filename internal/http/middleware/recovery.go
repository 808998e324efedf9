package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONRecovery converts handler panics into the structured -99 envelope.
// Every code path answers JSON; the process never drops a request.
func JSONRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("PANIC_RECOVERED: path=%s panic=%v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code": -99, "msg": "internal server error",
		})
	})
}
