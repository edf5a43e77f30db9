package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/investguard/investguard/pkg/validation"
)

// ValidateAndBind binds the JSON body into req and validates its struct tags.
// On failure it writes the error response and returns false.
func ValidateAndBind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return false
	}

	if err := validation.ValidateStruct(req); err != nil {
		body := gin.H{
			"code":    "VALIDATION_FAILED",
			"message": err.Error(),
		}
		if valErr, ok := err.(*validation.ValidationError); ok {
			body["fields"] = valErr.Errors
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": body})
		return false
	}

	return true
}

// MaxBodySize limits the request body size. Analysis content is capped well
// below this, so anything larger is noise or abuse.
func MaxBodySize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "BODY_TOO_LARGE",
					"message": "request body too large",
				},
			})
			c.Abort()
			return
		}

		// Restore the body so downstream handlers can read it.
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		c.Next()
	}
}
