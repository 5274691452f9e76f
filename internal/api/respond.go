package api

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope so clients can branch on
// success without inspecting status codes.

func sendSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func sendError(c *gin.Context, status int, message string, errs any) {
	if errs == nil {
		errs = gin.H{}
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}
