package utils

import (
	"github.com/gin-gonic/gin"
)

// Every response carries a success flag; errors come back either as a
// single message or as an aggregated list of validation messages.

func SendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

func SendValidationErrors(c *gin.Context, errors []string) {
	c.JSON(400, gin.H{
		"success": false,
		"errors":  errors,
	})
}

func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
