package redis

// Package redis provides the Redis-based session store for production use.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

const defaultSessionTTL = 12 * time.Hour

// SessionStore keeps one JSON-marshaled session per browser session ID, with
// a TTL so abandoned sessions age out of Redis on their own.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// Options configures a Redis session store.
type Options struct {
	Prefix string        // key prefix, defaults to "session:"
	TTL    time.Duration // per-entry TTL, defaults to 12h
	Logger *slog.Logger
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient, opts Options) *SessionStore {
	if opts.Prefix == "" {
		opts.Prefix = "session:"
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		client: client,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
		logger: logger,
	}
}

// Save stores the token and claim as one value, replacing any previous entry.
func (s *SessionStore) Save(ctx context.Context, id string, sess domainauth.Session) error {
	if id == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.prefix+id, data, s.ttl).Err()
}

// Read returns the stored session, or the zero session on a miss or any
// storage/decode error. Errors are logged, never surfaced: an unreadable
// session is indistinguishable from an absent one by contract.
func (s *SessionStore) Read(ctx context.Context, id string) domainauth.Session {
	if id == "" {
		return domainauth.Session{}
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "session read failed", "error", err)
		}
		return domainauth.Session{}
	}

	var sess domainauth.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		s.logger.WarnContext(ctx, "session decode failed", "error", err)
		return domainauth.Session{}
	}
	return sess
}

// Clear removes the session entry. Deleting an absent key is a no-op in
// Redis, which gives us idempotence for free.
func (s *SessionStore) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
