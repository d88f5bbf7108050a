// Package response writes the JSON envelope every handler replies with:
// {"success": bool, "data": ...} on success, {"success": false, "error":
// {"code", "message", "details"?}} on failure. Codes are stable strings the
// client switches on; messages are human-readable and may change.
package response

import "github.com/gin-gonic/gin"

// Success writes data under the success envelope.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes a failure envelope with a stable code and a message.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails is Error with a structured details payload, used for
// field-level validation maps and rollback state.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
