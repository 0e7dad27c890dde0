package session

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/order"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/caching"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrBusy     = errors.New("session has a request in flight")
)

const (
	keyPrefix  = "session:"
	lockPrefix = "session-lock:"
)

// Store keeps form sessions in the cache, deflated. Every save extends the
// session lifetime.
type Store struct {
	cache   *caching.Cacher
	ttl     time.Duration
	lockTTL time.Duration
}

func NewStore(cache *caching.Cacher, ttl time.Duration, lockTTL time.Duration) *Store {
	return &Store{
		cache:   cache,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

func (s *Store) Save(ctx context.Context, session *order.Session) error {
	return s.cache.Store(ctx, keyPrefix+session.ID, session, s.ttl)
}

func (s *Store) Load(ctx context.Context, id string) (*order.Session, error) {
	session := &order.Session{}

	err := s.cache.Fetch(ctx, keyPrefix+id, session)
	if errors.Is(err, caching.ErrMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, keyPrefix+id); err != nil {
		return err
	}
	return s.cache.Delete(ctx, lockPrefix+id)
}

// Lock gives exclusive access to a session until the returned release is
// called or the lock expires. A release after expiry leaves a lock taken by
// another request in place.
func (s *Store) Lock(ctx context.Context, id string) (func(), error) {
	token, claimed, err := s.cache.Lock(ctx, lockPrefix+id, s.lockTTL)
	if err != nil {
		return nil, err
	}

	if !claimed {
		return nil, ErrBusy
	}

	return func() {
		// the request context may be gone already
		_, _ = s.cache.Unlock(context.WithoutCancel(ctx), lockPrefix+id, token)
	}, nil
}

// Update runs change on the locked session and saves it, also when change
// fails, since a failed quote is still recorded on the flow. The error of
// change is returned with the saved session.
func (s *Store) Update(ctx context.Context, id string, change func(session *order.Session) error) (*order.Session, error) {
	release, err := s.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	session, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	changeErr := change(session)

	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, changeErr
}
