// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// Error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: status})
}
