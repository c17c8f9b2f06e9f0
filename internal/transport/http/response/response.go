package response

import "github.com/gin-gonic/gin"

// ErrorBody is the flat error shape every failure response uses.
type ErrorBody struct {
	Message    string `json:"message"`
	IsError    bool   `json:"isError"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{
		Message: message,
		IsError: true,
	})
}

// RateLimited writes a 429 with the retry hint the client should surface.
func RateLimited(c *gin.Context, message string, retryAfter int) {
	c.JSON(429, ErrorBody{
		Message:    message,
		IsError:    true,
		RetryAfter: retryAfter,
	})
}
