// Package store implements the Vyvoxa social data core: the identity
// store, friend-request ledger, post store, notification ledger, the
// derived query views over them, and the subscription bus that fans out
// snapshots to observers after each mutation.
//
// A Store is an explicit handle, not a process-wide singleton; tests and
// embedders create isolated instances over their own storage backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"vyvoxa/internal/logging"
	"vyvoxa/internal/models"
	"vyvoxa/internal/observability"
	"vyvoxa/internal/storage"

	"github.com/google/uuid"
)

// Persisted collection keys. The layout is the vyvoxa profile format;
// an existing profile loads unchanged.
const (
	KeyUsers          = "vyvoxa_users"
	KeyFriendRequests = "vyvoxa_friend_requests"
	KeyPosts          = "vyvoxa_posts"
	KeyNotifications  = "vyvoxa_notifications"
)

// Store owns all in-memory collections and their persistence. All
// mutation methods apply the change under the write lock, flush the
// affected collections, and then publish a snapshot to subscribers.
type Store struct {
	mu  sync.RWMutex
	kv  storage.Store
	bus *Bus

	now   func() time.Time
	newID func() string

	users         []*models.User
	requests      []*models.FriendRequest
	posts         []*models.Post
	notifications []*models.Notification
}

// Option customizes a Store. Used by tests to pin the clock and ids.
type Option func(*Store)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Open loads every collection from the backend and returns a ready store.
// Missing keys load as empty collections.
func Open(ctx context.Context, kv storage.Store, opts ...Option) (*Store, error) {
	s := &Store{
		kv:    kv,
		bus:   NewBus(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := loadCollection(ctx, kv, KeyUsers, &s.users); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, kv, KeyFriendRequests, &s.requests); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, kv, KeyPosts, &s.posts); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, kv, KeyNotifications, &s.notifications); err != nil {
		return nil, err
	}
	return s, nil
}

func loadCollection[T any](ctx context.Context, kv storage.Store, key string, dst *[]T) error {
	raw, err := kv.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil
		}
		return models.NewPersistenceError(key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return models.NewPersistenceError(key, err)
	}
	return nil
}

// Subscribe registers an observer invoked with a full snapshot after
// every successful mutation. The returned function unsubscribes and is
// safe to call more than once.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// Snapshot is the full read view handed to subscribers.
type Snapshot struct {
	Posts         []*models.Post
	Notifications []*models.Notification
}

// snapshotLocked builds a deep-copied snapshot. Callers hold at least the
// read lock.
func (s *Store) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Posts:         make([]*models.Post, len(s.posts)),
		Notifications: make([]*models.Notification, len(s.notifications)),
	}
	for i, p := range s.posts {
		snap.Posts[i] = p.Clone()
	}
	for i, n := range s.notifications {
		cp := *n
		snap.Notifications[i] = &cp
	}
	return snap
}

// flush serializes one collection and writes it through the backend.
// On failure the in-memory mutation is kept; the error reports the
// inconsistency upward and is counted.
func (s *Store) flush(ctx context.Context, key string, collection interface{}) error {
	raw, err := json.Marshal(collection)
	if err != nil {
		return models.NewPersistenceError(key, err)
	}
	if err := s.kv.Save(ctx, key, raw); err != nil {
		observability.PersistenceFailures.WithLabelValues(key).Inc()
		logging.Logger.Error("flush failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return models.NewPersistenceError(key, err)
	}
	return nil
}

func (s *Store) flushUsers(ctx context.Context) error {
	return s.flush(ctx, KeyUsers, s.users)
}

func (s *Store) flushRequests(ctx context.Context) error {
	return s.flush(ctx, KeyFriendRequests, s.requests)
}

func (s *Store) flushPosts(ctx context.Context) error {
	return s.flush(ctx, KeyPosts, s.posts)
}

func (s *Store) flushNotifications(ctx context.Context) error {
	return s.flush(ctx, KeyNotifications, s.notifications)
}

// findUser returns the live user record, or nil. Callers hold the lock.
func (s *Store) findUser(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// findPost returns the live post record, or nil. Callers hold the lock.
func (s *Store) findPost(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}
