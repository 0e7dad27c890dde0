package marketplace

import (
	"strings"
	"time"
)

const (
	DefaultTimeout    = 15 * time.Second
	DefaultPathPrefix = "/api"
)

type OptionFunc func(o *Options)

type Options struct {
	// Name of the caller service, sent as User-Agent
	name string

	// BaseURL - scheme and host of the marketplace backend
	baseURL string

	// pathPrefix - added before every endpoint path, defaults to /api
	pathPrefix string

	// Timeout - if not set, then default timeout is used
	timeout time.Duration
}

func WithName(name string) OptionFunc {
	return func(o *Options) {
		o.name = name
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(o *Options) {
		o.baseURL = baseURL
	}
}

func WithPathPrefix(pathPrefix string) OptionFunc {
	return func(o *Options) {
		o.pathPrefix = pathPrefix
	}
}

func WithTimeout(timeout time.Duration) OptionFunc {
	return func(o *Options) {
		o.timeout = timeout
	}
}

func NewOptions(optionFuncs ...OptionFunc) *Options {
	options := &Options{
		name:       "vendor-gateway",
		pathPrefix: DefaultPathPrefix,
	}

	for _, optionFunc := range optionFuncs {
		optionFunc(options)
	}

	return options
}

func (o *Options) Name() string {
	return o.name
}

func (o *Options) BaseURL() string {
	return strings.TrimSuffix(o.baseURL, "/") + o.pathPrefix
}

func (o *Options) Timeout() time.Duration {
	if o.timeout != 0 {
		return o.timeout
	}
	return DefaultTimeout
}
