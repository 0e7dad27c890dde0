package requesting

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"github.com/rs/zerolog"
)

type TransportMiddleware func(http.RoundTripper) http.RoundTripper

type InterceptorTransport struct {
	Transport   http.RoundTripper
	Middlewares []TransportMiddleware
}

func (t *InterceptorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	for _, middleware := range t.Middlewares {
		transport = middleware(transport)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func requestName(req *http.Request) schema.RequestName {
	name, _ := req.Context().Value(schema.RequestingTypeKey).(schema.RequestName)
	return name
}

type BearerTransportMiddleware struct {
	Transport http.RoundTripper
	token     string
}

// NewBearerTransportMiddleware forwards the caller's token on every request.
func NewBearerTransportMiddleware(token string) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &BearerTransportMiddleware{
			Transport: rt,
			token:     token,
		}
	}
}

func (t *BearerTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.Transport.RoundTrip(req)
	}

	authorized := req.Clone(req.Context())
	authorized.Header.Set("Authorization", "Bearer "+t.token)

	return t.Transport.RoundTrip(authorized)
}

type LoggingTransportMiddleware struct {
	Transport http.RoundTripper
	log       *zerolog.Logger
}

func NewLoggingTransportMiddleware(log *zerolog.Logger) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &LoggingTransportMiddleware{
			log:       log,
			Transport: rt,
		}
	}
}

func (t *LoggingTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	message := t.log.Info().
		Str("label", "outgoing-request").
		Str("name", string(requestName(req))).
		Str("method", req.Method).
		Str("url", req.URL.String())

	defer func() {
		message.
			Float64("duration", time.Since(startTime).Seconds()).
			Msg("")
	}()

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		message.Str("error", err.Error()).Int("code", 0)
		return nil, err
	}

	message.Int("code", resp.StatusCode)

	return resp, nil
}

type RequestBucket interface {
	FinishedRequest(
		requestType schema.RequestName,
		startTime time.Time,
		statusCode int,
		method string,
		url string,
		requestBody string,
		requestHeaders http.Header,
		responseBody string,
		responseHeaders http.Header,
	)
}

type BucketTransportMiddleware struct {
	Transport http.RoundTripper
	Bucket    RequestBucket
}

func NewBucketTransportMiddleware(bucket RequestBucket) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &BucketTransportMiddleware{
			Transport: rt,
			Bucket:    bucket,
		}
	}
}

func (b *BucketTransportMiddleware) RoundTrip(request *http.Request) (*http.Response, error) {
	startTime := time.Now()

	var requestBytes []byte
	if request.Body != nil {
		requestBytes, _ = io.ReadAll(request.Body)
		request.Body.Close()
		request.Body = io.NopCloser(bytes.NewBuffer(requestBytes))
	}

	status := 0
	resBody := ""
	resHeaders := make(http.Header)

	defer func() {
		b.Bucket.FinishedRequest(
			requestName(request),
			startTime,
			status,
			request.Method,
			request.URL.String(),
			string(requestBytes),
			request.Header,
			resBody,
			resHeaders,
		)
	}()

	response, err := b.Transport.RoundTrip(request)
	if err != nil {
		return nil, err
	}

	responseBytes, _ := io.ReadAll(response.Body)
	response.Body.Close()
	response.Body = io.NopCloser(bytes.NewBuffer(responseBytes))

	status = response.StatusCode
	resBody = string(responseBytes)
	resHeaders = response.Header

	return response, nil
}

type RequestObserver interface {
	ObserveUpstreamRequest(name string, code int, duration time.Duration)
}

type MetricsTransportMiddleware struct {
	Transport http.RoundTripper
	observer  RequestObserver
}

func NewMetricsTransportMiddleware(observer RequestObserver) TransportMiddleware {
	return func(rt http.RoundTripper) http.RoundTripper {
		return &MetricsTransportMiddleware{
			Transport: rt,
			observer:  observer,
		}
	}
}

func (t *MetricsTransportMiddleware) RoundTrip(req *http.Request) (*http.Response, error) {
	startTime := time.Now()

	resp, err := t.Transport.RoundTrip(req)

	code := 0
	if err == nil {
		code = resp.StatusCode
	}

	t.observer.ObserveUpstreamRequest(string(requestName(req)), code, time.Since(startTime))

	return resp, err
}
