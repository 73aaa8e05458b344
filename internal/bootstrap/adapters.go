package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/itamlab/assetview-ui/config"
	memoryadapter "github.com/itamlab/assetview-ui/internal/adapters/memory"
	redisadapter "github.com/itamlab/assetview-ui/internal/adapters/redis"
	"github.com/itamlab/assetview-ui/internal/ports"
)

// SessionStoreConfig contains the dependencies for building the session
// store.
type SessionStoreConfig struct {
	AppConfig config.AppConfig
	Logger    *slog.Logger
}

// NewSessionStore builds the session store from configuration: Redis when an
// endpoint is configured, the in-process store as a dev-only fallback. The
// returned closer is nil for the in-process store.
//
//nolint:ireturn // callers program against the port, not a concrete store.
func NewSessionStore(cfg SessionStoreConfig) (ports.SessionStore, func() error, error) {
	if !cfg.AppConfig.Redis.Configured() {
		if !cfg.AppConfig.IsDev {
			return nil, nil, errors.New("redis is required outside dev mode: set REDIS_URI")
		}
		if cfg.Logger != nil {
			cfg.Logger.Warn("no redis configured, using in-process session store (dev only)")
		}
		return memoryadapter.NewSessionStore(), nil, nil
	}

	client, err := ConnectRedis(cfg.AppConfig.Redis, cfg.Logger)
	if err != nil {
		return nil, nil, err
	}

	store := redisadapter.NewSessionStore(client, redisadapter.Options{
		Prefix: cfg.AppConfig.Session.KeyPrefix,
		TTL:    cfg.AppConfig.Session.TTL,
		Logger: cfg.Logger,
	})
	return store, client.Close, nil
}

// ConnectRedis establishes a connection to Redis.
//
//nolint:ireturn // returning redis.UniversalClient lets us pick direct or sentinel clients at runtime.
func ConnectRedis(cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	var (
		client   redis.UniversalClient
		addrDesc string
		err      error
	)
	if cfg.UseSentinel {
		client, addrDesc, err = newSentinelClient(cfg)
	} else {
		client, addrDesc, err = newDirectClient(cfg)
	}
	if err != nil {
		return nil, err
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		// Log connection without credentials
		if u, parseErr := url.Parse(addrDesc); parseErr == nil && u.User != nil {
			u.User = url.User("*")
			addrDesc = u.Redacted()
		} else if i := strings.LastIndex(addrDesc, "@"); i > -1 {
			addrDesc = addrDesc[i+1:]
		}
		logger.Info("redis connected", "addr", addrDesc)
	}

	return client, nil
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newSentinelClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	nodes := make([]string, 0, len(cfg.SentinelNodes))
	for _, n := range cfg.SentinelNodes {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			nodes = append(nodes, trimmed)
		}
	}
	if len(nodes) == 0 {
		return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
	}

	opts := &redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    nodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
		DB:               cfg.DB,
	}
	return redis.NewFailoverClient(opts), "sentinel:" + cfg.SentinelMasterName, nil
}

//nolint:ireturn // returning redis.UniversalClient keeps client selection flexible.
func newDirectClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis direct configuration requires a URI")
	}

	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, "", fmt.Errorf("parse redis url: %w", err)
		}
		if cfg.DB != 0 {
			opt.DB = cfg.DB
		}
		return redis.NewClient(opt), opt.Addr, nil
	}

	opts := &redis.Options{
		Addr:     uri,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	return redis.NewClient(opts), uri, nil
}
