package redisfactory

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
)

// Factory owns the redis connections of the gateway. A connection whose URI
// is not configured is nil and callers fall back to in-process state.
type Factory struct {
	sessionsCache *redis.Client
	groupingCache *redis.Client
}

func New(sessionsURI string, groupingURI string) (*Factory, error) {
	sessionsCache, err := newClient(sessionsURI)
	if err != nil {
		return nil, err
	}

	groupingCache, err := newClient(groupingURI)
	if err != nil {
		if sessionsCache != nil {
			_ = sessionsCache.Close()
		}
		return nil, err
	}

	return &Factory{
		sessionsCache: sessionsCache,
		groupingCache: groupingCache,
	}, nil
}

func newClient(uri string) (*redis.Client, error) {
	if uri == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return redis.NewClient(opt), nil
}

func (f *Factory) SessionsClient() *redis.Client {
	return f.sessionsCache
}

func (f *Factory) GroupingClient() *redis.Client {
	return f.groupingCache
}

func (f *Factory) Close() error {
	var err error
	for _, client := range []*redis.Client{f.sessionsCache, f.groupingCache} {
		if client != nil {
			err = multierr.Append(err, client.Close())
		}
	}
	return err
}
