package responding

import (
	"errors"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandleError logs err against the request logger and aborts with a JSON
// error body. The code follows the status when err carries none.
func HandleError(c *gin.Context, status int, message string, err error) {
	body := &schema.ResponseError{
		Code:    codeFor(status),
		Message: message,
	}

	var responseError *schema.ResponseError
	if errors.As(err, &responseError) {
		body.Code = responseError.Code
		body.Field = responseError.Field
	}

	event := requestLogger(c).Warn()
	if status >= 500 {
		event = requestLogger(c).Error()
	}

	event.
		Err(err).
		Str("label", "response-error").
		Int("code", status).
		Msg(message)

	c.AbortWithStatusJSON(status, body)
}

// HandleResponseError answers with the taxonomy of err; errors without a
// user facing message get the fallback.
func HandleResponseError(c *gin.Context, err error, fallback string) {
	described := schema.Describe(err, fallback)
	HandleError(c, described.HTTPStatus(), described.Message, described)
}

func requestLogger(c *gin.Context) *zerolog.Logger {
	if logger, ok := c.Get("logger"); ok {
		if log, ok := logger.(*zerolog.Logger); ok {
			return log
		}
	}

	nop := zerolog.Nop()
	return &nop
}

func codeFor(status int) schema.ErrorCode {
	switch {
	case status == 400 || status == 422:
		return schema.ValidationError
	case status == 401 || status == 403:
		return schema.AuthError
	case status == 404:
		return schema.NotFoundError
	case status == 409:
		return schema.ConflictError
	case status == 504:
		return schema.TimeoutError
	case status >= 500:
		return schema.ServerError
	default:
		return schema.UnknownError
	}
}
