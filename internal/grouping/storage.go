package grouping

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/tools/caching"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/slowlog"
	"github.com/rs/zerolog"
)

const lockTTL = 1 * time.Minute

type CachedValue struct {
	Code    int                 `json:"code"`
	Headers map[string][]string `json:"headers"`
	Body    string              `json:"body"`
}

type storage struct {
	cache   *caching.Cacher
	log     *zerolog.Logger
	slowLog slowlog.Logger
}

func (s *storage) AcquireLock(ctx context.Context, cacheKey string) (bool, error) {
	return s.cache.Claim(ctx, cacheKey, lockTTL)
}

func (s *storage) ReleaseLock(ctx context.Context, cacheKey string) {
	if err := s.cache.Delete(context.WithoutCancel(ctx), cacheKey); err != nil {
		s.log.Err(err).Str("key", cacheKey).Msg("Unable to release grouping lock")
	}
}

func (s *storage) StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
	defer s.slowLog.Track("grouping:compression:compress")()

	err := s.cache.Store(ctx, responseKey, CachedValue{
		Code:    response.Code,
		Body:    response.Body,
		Headers: response.Headers,
	}, duration)

	if err != nil {
		s.log.Err(err).Msg("Unable to store the grouped response")
	}
}

// FetchResponse returns nil without an error on a cache miss.
func (s *storage) FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error) {
	defer s.slowLog.Track("grouping:compression:decompress")()

	value := CachedValue{}
	err := s.cache.Fetch(ctx, responseKey, &value)

	if errors.Is(err, caching.ErrMiss) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &value, nil
}
