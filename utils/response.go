// utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError aborts the request with a JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// RespondWithFieldErrors is RespondWithError plus per-field messages.
func RespondWithFieldErrors(c *gin.Context, status int, message string, fields map[string]string) {
	if len(fields) == 0 {
		RespondWithError(c, status, message)
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message, "fields": fields})
}
