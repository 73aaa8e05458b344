package testutil

// Package testutil provides shared helpers for integration-style tests.

import (
	"context"
	"net"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestingTB is the subset of testing.TB these helpers need. Using a local
// interface keeps testutil importable from non-test packages without pulling
// in testing.
type TestingTB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Skip(args ...any)
	Skipf(format string, args ...any)
	Logf(format string, args ...any)
	Cleanup(func())
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// requireRedis reports whether tests must fail (rather than skip) when Redis
// is unavailable. Set TEST_REQUIRE_REDIS=1 in CI to catch missing services.
func requireRedis() bool {
	v := strings.ToLower(os.Getenv("TEST_REQUIRE_REDIS"))
	return v == "1" || v == "true"
}

// GetTestRedisAddr returns the test Redis address and whether it is reachable.
func GetTestRedisAddr(t TestingTB) (string, bool) {
	t.Helper()

	addr := getEnvOrDefault("TEST_REDIS_ADDR", "localhost:6379")
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		return addr, false
	}
	if cerr := conn.Close(); cerr != nil {
		t.Logf("close redis probe: %v", cerr)
	}
	return addr, true
}

// SetupTestRedis creates a Redis client against the test instance and flushes
// it. Tests are skipped when no instance is reachable, unless
// TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr, ok := GetTestRedisAddr(t)
	if !ok {
		if requireRedis() {
			t.Fatal("Redis not available for testing")
		}
		t.Skip("Redis not available for testing")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: close redis client after ping error: %v", cerr)
		}
		if requireRedis() {
			t.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		if cerr := client.Close(); cerr != nil {
			t.Logf("close test redis client: %v", cerr)
		}
	})
	return client
}
