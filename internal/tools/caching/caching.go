package caching

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

type Engine interface {
	Store(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Fetch(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// Claim stores the value only when the key is free.
	Claim(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Release deletes the key only while it still holds the value.
	Release(ctx context.Context, key string, value []byte) (bool, error)
}

// Cacher stores JSON values deflated.
type Cacher struct {
	engine Engine
}

func NewRedisCache(redisClient *redis.Client) *Cacher {
	return &Cacher{
		engine: &redisCache{
			redis: redisClient,
		},
	}
}

func NewMemoryCache() *Cacher {
	return &Cacher{
		engine: newMemoryCache(),
	}
}

func New(engine Engine) *Cacher {
	return &Cacher{engine: engine}
}

func deflate(uncompressed []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, _ := flate.NewWriter(&buffer, flate.BestSpeed)

	_, err := writer.Write(uncompressed)
	if err != nil {
		return nil, err
	}

	err = writer.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func inflate(compressed []byte) ([]byte, error) {
	buffer := bytes.NewReader(compressed)
	reader := flate.NewReader(buffer)
	defer reader.Close()

	var out bytes.Buffer
	_, err := out.ReadFrom(reader)
	if err != nil {
		return []byte{}, err
	}

	return out.Bytes(), nil
}

func (c *Cacher) Store(ctx context.Context, key string, value any, ttl time.Duration) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}

	compressed, err := deflate(bytes)
	if err != nil {
		return err
	}

	return c.engine.Store(ctx, key, compressed, ttl)
}

// Fetch returns ErrMiss when the key does not exist.
func (c *Cacher) Fetch(ctx context.Context, key string, destination any) error {
	value, err := c.engine.Fetch(ctx, key)
	if err != nil {
		return err
	}

	if value == nil {
		return ErrMiss
	}

	uncompressed, err := inflate(value)
	if err != nil {
		return err
	}

	return json.Unmarshal(uncompressed, destination)
}

func (c *Cacher) Delete(ctx context.Context, key string) error {
	return c.engine.Delete(ctx, key)
}

// Claim is a lock: the first caller gets true until the ttl expires or the
// key is deleted.
func (c *Cacher) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.engine.Claim(ctx, key, []byte("1"), ttl)
}

// Lock claims key with a token of its own. Only the token holder can unlock,
// so a lock that expired and was claimed again survives a late unlock.
func (c *Cacher) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	claimed, err := c.engine.Claim(ctx, key, []byte(token), ttl)
	if err != nil || !claimed {
		return "", false, err
	}

	return token, true, nil
}

// Unlock reports false when the lock is no longer held with token.
func (c *Cacher) Unlock(ctx context.Context, key string, token string) (bool, error) {
	return c.engine.Release(ctx, key, []byte(token))
}
