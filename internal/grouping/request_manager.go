package grouping

import (
	"context"
	"encoding/json"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/caching"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/converting"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/slowlog"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HitHeader = "x-grouping-hit"

	DefaultResponseTTL = 15 * time.Second
	DefaultErrorTTL    = 2 * time.Second

	waitInterval = 400 * time.Millisecond
)

type Response struct {
	Code    int
	Headers map[string][]string
	Body    string
}

type Storage interface {
	AcquireLock(ctx context.Context, cacheKey string) (bool, error)
	ReleaseLock(ctx context.Context, cacheKey string)
	StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration)
	FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error)
}

type requestManager struct {
	groupingId  string
	cache       Storage
	log         *zerolog.Logger
	slowLog     slowlog.Logger
	cacheKey    string
	responseTTL time.Duration
	errorTTL    time.Duration
}

type errorBody struct {
	Code *schema.ErrorCode `json:"code"`
}

func isStatusCodeAcceptable(code int) bool {
	return code >= 200 && code < 300
}

func (m *requestManager) isFailure(response *Response) bool {
	if !isStatusCodeAcceptable(response.Code) {
		return true
	}

	var body errorBody
	if err := json.Unmarshal([]byte(response.Body), &body); err != nil {
		return true
	}

	return converting.Unwrap(body.Code) != ""
}

func (m *requestManager) requestAndStore(
	ctx context.Context,
	responseKey string,
	requester func() (*Response, error),
) (*Response, error) {
	defer m.slowLog.Track("grouping:requestAndStore")()
	defer m.cache.ReleaseLock(ctx, m.cacheKey)

	response, err := requester()
	if err != nil {
		m.log.Err(err).Msg("Unable to request marketplace")
		return nil, err
	}

	duration := m.responseTTL
	if m.isFailure(response) {
		duration = m.errorTTL
	}

	m.cache.StoreResponse(context.WithoutCancel(ctx), responseKey, &Response{
		Code:    response.Code,
		Body:    response.Body,
		Headers: response.Headers,
	}, duration)

	return response, nil
}

func (m *requestManager) requestOrWait(ctx context.Context, requester func() (*Response, error)) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	responseKey := "res:" + m.cacheKey

	m.slowLog.Start("grouping:fetchFromCache")
	response, err := m.cache.FetchResponse(ctx, responseKey)
	m.slowLog.Stop("grouping:fetchFromCache")

	if err != nil {
		m.log.Err(err).
			Str("label", "cache").
			Bool("hit", false).
			Str("key", responseKey).
			Msg("Error fetching from cache")

		return requester()
	}

	if response != nil {
		m.log.Info().
			Str("label", "cache").
			Bool("hit", true).
			Str("key", m.cacheKey).
			Msg("Used cache response")

		if response.Headers == nil {
			response.Headers = make(map[string][]string)
		}

		response.Headers[HitHeader] = []string{"hit"}

		return &Response{
			Code:    response.Code,
			Body:    response.Body,
			Headers: response.Headers,
		}, nil
	}

	canMakeTheRequest, err := m.cache.AcquireLock(ctx, m.cacheKey)

	if err != nil || canMakeTheRequest {
		return m.requestAndStore(ctx, responseKey, requester)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(waitInterval):
	}

	return m.requestOrWait(ctx, requester)
}

// HandleRequest runs requester once per cache key at a time; concurrent
// callers wait for its stored response instead of repeating the request.
func (m *requestManager) HandleRequest(ctx context.Context, requester func() (*Response, error)) (*Response, error) {
	defer m.slowLog.Track("grouping:HandleRequest")()
	return m.requestOrWait(ctx, requester)
}

func NewRequestManager(
	cache *caching.Cacher,
	log *zerolog.Logger,
	cacheKey string,
) RequestManager {
	return newRequestManager(cache, log, cacheKey, DefaultResponseTTL, DefaultErrorTTL)
}

// ManagerWithTTL builds managers keeping successful responses for
// responseTTL and failed ones for errorTTL.
func ManagerWithTTL(responseTTL time.Duration, errorTTL time.Duration) func(*caching.Cacher, *zerolog.Logger, string) RequestManager {
	return func(cache *caching.Cacher, log *zerolog.Logger, cacheKey string) RequestManager {
		return newRequestManager(cache, log, cacheKey, responseTTL, errorTTL)
	}
}

func newRequestManager(
	cache *caching.Cacher,
	log *zerolog.Logger,
	cacheKey string,
	responseTTL time.Duration,
	errorTTL time.Duration,
) *requestManager {
	groupingId := uuid.New().String()
	logWithGroupingId := log.With().Str("groupingId", groupingId).Logger()
	slowLog := slowlog.CreateLogger(&logWithGroupingId)

	return &requestManager{
		groupingId: groupingId,
		cacheKey:   cacheKey,
		cache: &storage{
			cache:   cache,
			log:     &logWithGroupingId,
			slowLog: slowLog,
		},
		log:         &logWithGroupingId,
		slowLog:     slowLog,
		responseTTL: responseTTL,
		errorTTL:    errorTTL,
	}
}
