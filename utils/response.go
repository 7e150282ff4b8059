package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes the standard {"message": ...} error body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
