package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/requesting"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/slowlog"
	"github.com/oapi-codegen/runtime"
	"github.com/rs/zerolog"
)

var (
	ErrNotArray      = errors.New("marketplace response is not an array")
	ErrMalformedBody = errors.New("malformed marketplace response")
)

type historyBucket interface {
	requesting.RequestBucket
	UpstreamRequests() schema.UpstreamRequests
}

// Factory holds what all marketplace clients share. A Client is built per
// gateway request since it carries the caller's token.
type Factory struct {
	options   *Options
	transport *http.Transport
	observer  requesting.RequestObserver
}

func NewFactory(observer requesting.RequestObserver, optionFuncs ...OptionFunc) *Factory {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 32

	return &Factory{
		options:   NewOptions(optionFuncs...),
		transport: transport,
		observer:  observer,
	}
}

func (f *Factory) ForToken(token string, log *zerolog.Logger) *Client {
	bucket := schema.NewUpstreamRequestsBucket()

	middlewares := []requesting.TransportMiddleware{
		requesting.NewBearerTransportMiddleware(token),
		requesting.NewBucketTransportMiddleware(bucket),
		requesting.NewLoggingTransportMiddleware(log),
	}
	if f.observer != nil {
		middlewares = append(middlewares, requesting.NewMetricsTransportMiddleware(f.observer))
	}

	return &Client{
		baseURL:   f.options.BaseURL(),
		userAgent: f.options.Name(),
		http: &http.Client{
			Timeout: f.options.Timeout(),
			Transport: &requesting.InterceptorTransport{
				Transport:   f.transport,
				Middlewares: middlewares,
			},
		},
		log:        log,
		slowLogger: slowlog.CreateLogger(log),
		bucket:     bucket,
	}
}

type Client struct {
	baseURL    string
	userAgent  string
	http       *http.Client
	log        *zerolog.Logger
	slowLogger slowlog.Logger
	bucket     historyBucket
}

// UpstreamRequests lists every marketplace call made by this client so far.
func (c *Client) UpstreamRequests() schema.UpstreamRequests {
	return c.bucket.UpstreamRequests()
}

func (c *Client) LogHistory() {
	requests := c.bucket.UpstreamRequests()
	if len(requests) == 0 {
		return
	}

	c.log.Debug().
		Str("label", "upstream-history").
		Interface("requests", requests).
		Send()
}

func (c *Client) do(ctx context.Context, name schema.RequestName, method string, path string, payload any) ([]byte, error) {
	defer c.slowLogger.Track(string(name))()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", name, err)
		}
		body = bytes.NewReader(data)
	}

	ctx = context.WithValue(ctx, schema.RequestingTypeKey, name)

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, requestErr := requesting.RequestErrors(c.http.Do(request))
	if requestErr != nil {
		return nil, requestErr
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, schema.NewNetworkError(err.Error())
	}

	return data, nil
}

func (c *Client) send(ctx context.Context, name schema.RequestName, method string, path string, payload any) (json.RawMessage, error) {
	data, err := c.do(ctx, name, method, path, payload)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return json.RawMessage("null"), nil
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBody, name)
	}

	return json.RawMessage(data), nil
}

func getJSON[T any](ctx context.Context, c *Client, name schema.RequestName, path string) (T, error) {
	var result T

	data, err := c.do(ctx, name, http.MethodGet, path, nil)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("%w: %s: %s", ErrMalformedBody, name, err)
	}

	return result, nil
}

// FetchList accepts only a JSON array. An empty array is a valid answer.
func FetchList[T any](ctx context.Context, c *Client, name schema.RequestName, path string) ([]T, error) {
	data, err := c.do(ctx, name, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: %s", ErrNotArray, path)
	}

	result := []T{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformedBody, path, err)
	}

	return result, nil
}

// pathWith fills a single path parameter, escaped the way the generated
// clients do it.
func pathWith(format string, name string, value any) (string, error) {
	param, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("path parameter %s: %w", name, err)
	}
	return fmt.Sprintf(format, param), nil
}
