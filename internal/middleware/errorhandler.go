package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pmarinho/fintrack/internal/domain/dto"
	"github.com/pmarinho/fintrack/internal/logger"
)

// ErrorHandler is a Gin middleware that converts errors attached to the
// context (via c.Error) into a standardized JSON error response.
//
// Behavior:
//   - Runs the rest of the chain first.
//   - If handlers attached errors and no response was written yet, responds
//     with 500 and the last error's message.
//
// Handlers that already wrote a response are left alone.
var ErrorHandler gin.HandlerFunc = func(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last()
	logger.L().Error().Err(last.Err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last.Err))
}

// AbortWithError aborts the request with a standardized JSON error body.
//
// Parameters:
//   - c: the request context.
//   - status: HTTP status code to return.
//   - message: human-readable summary.
//   - err: optional underlying error included in the body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
