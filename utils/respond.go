// utils/respond.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondWithError writes the standard JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithAppError maps a workflow error onto the HTTP boundary.
func RespondWithAppError(c *gin.Context, err error) {
	RespondWithError(c, HTTPStatus(err), err.Error())
}
