package grouping

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/tools/slowlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type storageMock struct {
	Storage
	acquireLockMock   func(ctx context.Context, cacheKey string) (bool, error)
	releaseLockMock   func(ctx context.Context, cacheKey string)
	storeResponseMock func(ctx context.Context, responseKey string, response *Response, duration time.Duration)
	fetchResponseMock func(ctx context.Context, responseKey string) (*CachedValue, error)
}

func (s *storageMock) AcquireLock(ctx context.Context, cacheKey string) (bool, error) {
	return s.acquireLockMock(ctx, cacheKey)
}

func (s *storageMock) ReleaseLock(ctx context.Context, cacheKey string) {
	s.releaseLockMock(ctx, cacheKey)
}

func (s *storageMock) StoreResponse(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
	s.storeResponseMock(ctx, responseKey, response, duration)
}

func (s *storageMock) FetchResponse(ctx context.Context, responseKey string) (*CachedValue, error) {
	return s.fetchResponseMock(ctx, responseKey)
}

func createManager(storage *storageMock) RequestManager {
	out := &bytes.Buffer{}
	log := zerolog.New(out)
	slowLog := slowlog.CreateLogger(&log)

	return &requestManager{
		cache:       storage,
		log:         &log,
		slowLog:     slowLog,
		cacheKey:    "cacheKey",
		responseTTL: DefaultResponseTTL,
		errorTTL:    DefaultErrorTTL,
	}
}

func TestGroupingManager(t *testing.T) {
	validResponseBody := `{"user_info":{"id":"owner-1"},"cars":[],"drivers":[]}`

	requester := func() (*Response, error) {
		return &Response{
			Code: 200,
			Body: validResponseBody,
			Headers: map[string][]string{
				"Content-Type": {"application/json"},
			},
		}, nil
	}

	cacheValue := "response body from cache"

	t.Run("should pass through the request if not in the cache and store it", func(t *testing.T) {
		responseCache := make(chan *Response, 1)
		durations := make(chan time.Duration, 1)

		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				assert.Equal(t, "res:cacheKey", responseKey)
				return nil, nil
			},
			storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
				responseCache <- response
				durations <- duration
			},
			acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
				return true, nil
			},
			releaseLockMock: func(ctx context.Context, cacheKey string) {},
		})

		response, err := groupingManager.HandleRequest(context.TODO(), requester)

		assert.Equal(t, validResponseBody, (<-responseCache).Body)
		assert.Equal(t, DefaultResponseTTL, <-durations)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, validResponseBody, response.Body)
		assert.Equal(t, map[string][]string{
			"Content-Type": {"application/json"},
		}, response.Headers)
	})

	t.Run("should get the request from cache", func(t *testing.T) {
		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				return &CachedValue{
					Code: http.StatusOK,
					Body: cacheValue,
				}, nil
			},
			storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {},
			releaseLockMock:   func(ctx context.Context, cacheKey string) {},
		})

		response, err := groupingManager.HandleRequest(context.TODO(), requester)

		assert.Nil(t, err)
		assert.Equal(t, "response body from cache", response.Body)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, []string{"hit"}, response.Headers[HitHeader])
	})

	t.Run("should wait for other process to finish requesting", func(t *testing.T) {
		responseChannel := make(chan string, 1)

		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				select {
				case cacheValue := <-responseChannel:
					return &CachedValue{
						Code: http.StatusOK,
						Body: cacheValue,
					}, nil
				default:
					return nil, nil
				}
			},
			storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {},
			acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
				// after first acquireLock call, the response is assigned
				responseChannel <- cacheValue

				return false, nil
			},
			releaseLockMock: func(ctx context.Context, cacheKey string) {},
		})

		response, err := groupingManager.HandleRequest(context.TODO(), requester)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, "response body from cache", response.Body)
	})

	t.Run("should stop waiting when the request is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				return nil, nil
			},
			acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
				cancel()
				return false, nil
			},
		})

		response, err := groupingManager.HandleRequest(ctx, func() (*Response, error) {
			t.Errorf("Should not request while another process holds the lock")
			return nil, nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, response)
	})

	t.Run("should start waiting on the cache, but acquires lock while doing it", func(t *testing.T) {
		acquireLockChannel := make(chan bool, 2)

		groupingManager := createManager(&storageMock{
			fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
				// tries to fetch once, then enable the lock
				acquireLockChannel <- true

				return nil, nil
			},
			storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {},
			acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
				return <-acquireLockChannel, nil
			},
			releaseLockMock: func(ctx context.Context, cacheKey string) {},
		})

		acquireLockChannel <- false
		response, err := groupingManager.HandleRequest(context.TODO(), requester)

		assert.Nil(t, err)
		assert.Equal(t, validResponseBody, response.Body)
		assert.Equal(t, http.StatusOK, response.Code)
	})

	t.Run("should release lock if done", func(t *testing.T) {
		releasedChannel := make(chan bool, 1)

		tests := []struct {
			name             string
			manager          RequestManager
			requester        func() (*Response, error)
			expectedResponse *Response
			expectedError    error
		}{
			{
				name: "requesting failed",
				manager: createManager(&storageMock{
					fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
						return nil, nil
					},
					acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
						return true, nil
					},
					storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
						t.Errorf("Should not store the failed request")
					},
					releaseLockMock: func(ctx context.Context, cacheKey string) {
						releasedChannel <- true
					},
				}),
				requester: func() (*Response, error) {
					return nil, errors.New("Dial TCP error ::8080")
				},
				expectedResponse: nil,
				expectedError:    errors.New("Dial TCP error ::8080"),
			},
			{
				name: "bad response",
				manager: createManager(&storageMock{
					fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
						return nil, nil
					},
					acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
						return true, nil
					},
					storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {
						assert.Equal(t, DefaultErrorTTL, duration)
					},
					releaseLockMock: func(ctx context.Context, cacheKey string) {
						releasedChannel <- true
					},
				}),
				requester: func() (*Response, error) {
					return &Response{
						Code: http.StatusUnauthorized,
						Body: `{"code":"AUTH_ERROR","message":"Authentication failed, please login again"}`,
					}, nil
				},
				expectedResponse: &Response{
					Code: http.StatusUnauthorized,
					Body: `{"code":"AUTH_ERROR","message":"Authentication failed, please login again"}`,
				},
				expectedError: nil,
			},
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				response, err := test.manager.HandleRequest(context.TODO(), test.requester)

				assert.True(t, <-releasedChannel)
				assert.Equal(t, test.expectedError, err)
				assert.Equal(t, test.expectedResponse, response)
			})
		}
	})

	t.Run("should pass through the request if redis is down", func(t *testing.T) {
		tests := []struct {
			name    string
			manager RequestManager
		}{
			{
				name: "fetch from cache fails",
				manager: createManager(&storageMock{
					fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
						return nil, errors.New("Connection error")
					},
					storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {},
					releaseLockMock:   func(ctx context.Context, cacheKey string) {},
				}),
			},
			{
				name: "acquire lock fails",
				manager: createManager(&storageMock{
					fetchResponseMock: func(ctx context.Context, responseKey string) (*CachedValue, error) {
						return nil, nil
					},
					acquireLockMock: func(ctx context.Context, cacheKey string) (bool, error) {
						return false, errors.New("Connection error")
					},
					storeResponseMock: func(ctx context.Context, responseKey string, response *Response, duration time.Duration) {},
					releaseLockMock:   func(ctx context.Context, cacheKey string) {},
				}),
			},
		}

		for _, test := range tests {
			response, err := test.manager.HandleRequest(context.TODO(), requester)

			assert.Nil(t, err, test.name)
			assert.Equal(t, http.StatusOK, response.Code)
			assert.Equal(t, validResponseBody, response.Body)
		}
	})
}

func TestIsFailure(t *testing.T) {
	manager := createManager(&storageMock{}).(*requestManager)

	assert.False(t, manager.isFailure(&Response{Code: http.StatusOK, Body: `{"cars":[]}`}))
	assert.True(t, manager.isFailure(&Response{Code: http.StatusOK, Body: `{"code":"SERVER_ERROR"}`}))
	assert.True(t, manager.isFailure(&Response{Code: http.StatusOK, Body: `not json`}))
	assert.True(t, manager.isFailure(&Response{Code: http.StatusBadGateway, Body: `{}`}))
}
