package requesting

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
)

// upstream error bodies bigger than this are not inspected
const maxErrorBodySize = 64 << 10

func isValidResponse(code int) bool {
	return code >= 200 && code <= 299
}

// RequestErrors classifies the outcome of an upstream call. On failure the
// response body is consumed and closed.
func RequestErrors(response *http.Response, err error) (*http.Response, *schema.ResponseError) {
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err):
			return nil, schema.NewTimeoutError(err.Error())
		case errors.Is(err, context.Canceled):
			return nil, schema.NewUnknownError(0, err.Error())
		}

		return nil, schema.NewNetworkError(err.Error())
	}

	if isValidResponse(response.StatusCode) {
		return response, nil
	}

	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusUnauthorized:
		return nil, schema.NewAuthError(response.StatusCode)
	case response.StatusCode >= http.StatusInternalServerError:
		return nil, schema.NewServerError(response.StatusCode)
	}

	body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodySize))

	return nil, schema.NewUnknownError(response.StatusCode, upstreamMessage(body))
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

// upstreamMessage prefers the server detail over the generic message.
func upstreamMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	var detail string
	if err := json.Unmarshal(parsed.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
		return detail
	}

	// validation failures come as [{"msg": "..."}]
	var details []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(parsed.Detail, &details); err == nil && len(details) > 0 && details[0].Msg != "" {
		return details[0].Msg
	}

	return strings.TrimSpace(parsed.Message)
}
