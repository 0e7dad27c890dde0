package responding_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func serve(handler gin.HandlerFunc, out *bytes.Buffer) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	log := zerolog.New(out)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("logger", &log)
	})
	router.GET("/", handler)

	response := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(response, request)

	return response
}

func TestHandleError(t *testing.T) {
	t.Run("should write the error body and log", func(t *testing.T) {
		out := &bytes.Buffer{}
		response := serve(func(c *gin.Context) {
			responding.HandleError(c, http.StatusNotFound, "Session not found", errors.New("missing"))
		}, out)

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.JSONEq(t, `{"code":"NOT_FOUND","message":"Session not found"}`, response.Body.String())
		assert.Contains(t, out.String(), `"label":"response-error"`)
		assert.Contains(t, out.String(), `"error":"missing"`)
	})

	t.Run("should keep the code and field of classified errors", func(t *testing.T) {
		response := serve(func(c *gin.Context) {
			err := schema.NewValidationError("customer_name", "Please enter customer name")
			responding.HandleError(c, http.StatusUnprocessableEntity, err.Message, err)
		}, &bytes.Buffer{})

		assert.JSONEq(t, `{"code":"VALIDATION_ERROR","message":"Please enter customer name","field":"customer_name"}`, response.Body.String())
	})
}

func TestHandleResponseError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"auth", schema.NewAuthError(401), http.StatusUnauthorized, `{"code":"AUTH_ERROR","message":"Authentication failed, please login again"}`},
		{"server", schema.NewServerError(503), http.StatusBadGateway, `{"code":"SERVER_ERROR","message":"Server error, try again later"}`},
		{"timeout", schema.NewTimeoutError("deadline"), http.StatusGatewayTimeout, `{"code":"TIMEOUT_ERROR","message":"Request timeout, check your connection"}`},
		{"upstream client error", schema.NewUnknownError(400, ""), http.StatusBadRequest, `{"code":"UNKNOWN_ERROR","message":"Failed"}`},
		{"plain error", errors.New("boom"), http.StatusBadGateway, `{"code":"UNKNOWN_ERROR","message":"Failed"}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response := serve(func(c *gin.Context) {
				responding.HandleResponseError(c, test.err, "Failed")
			}, &bytes.Buffer{})

			assert.Equal(t, test.expectedStatus, response.Code)
			assert.JSONEq(t, test.expectedBody, response.Body.String())
		})
	}
}
