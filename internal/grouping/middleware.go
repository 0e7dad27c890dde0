package grouping

import (
	"bytes"
	"context"
	"net/http"

	"bitbucket.org/dropcars/vendor-gateway/internal/tools/caching"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

type RequestManager interface {
	HandleRequest(context.Context, func() (*Response, error)) (*Response, error)
}

type MiddlewareOptions struct {
	CreateManager func(
		cache *caching.Cacher,
		log *zerolog.Logger,
		cacheKey string,
	) RequestManager
	// Without a cache every request reaches the handler.
	Cache *caching.Cacher
	// An empty key skips grouping for the request.
	CacheKey func(c *gin.Context) string
}

func Middleware(o MiddlewareOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if o.Cache == nil || o.CacheKey == nil {
			c.Next()
			return
		}

		cacheKey := o.CacheKey(c)
		if cacheKey == "" {
			c.Next()
			return
		}

		log := c.MustGet("logger").(*zerolog.Logger)

		groupingManager := o.CreateManager(o.Cache, log, cacheKey)

		requester := func() (*Response, error) {
			bodyWriter := &bodyLogWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
			c.Writer = bodyWriter

			// expects the grouped handler to be called
			c.Next()

			code := c.Writer.Status()
			body := bodyWriter.body.String()
			headers := bodyWriter.Header()
			err := c.Err()

			return &Response{
				Code:    code,
				Body:    body,
				Headers: headers,
			}, err
		}

		response, err := groupingManager.HandleRequest(c.Request.Context(), requester)

		if !c.Writer.Written() {
			if err != nil {
				responding.HandleError(
					c,
					http.StatusServiceUnavailable,
					"Error requesting dashboard",
					err,
				)
				return
			}

			for key, values := range response.Headers {
				for _, value := range values {
					c.Writer.Header().Add(key, value)
				}
			}

			c.Data(response.Code, gin.MIMEJSON, []byte(response.Body))
		}

		c.Abort()
	}
}
