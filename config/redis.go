package config

// RedisConfig contains Redis connection configuration for the session store.
// All variables carry the REDIS_ prefix. When URI is empty and the app runs
// in dev mode, sessions fall back to an in-process store.
type RedisConfig struct {
	// URI is either a host:port pair or a redis:// / rediss:// URL.
	URI      string `env:"URI"      envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`

	// Sentinel failover settings (used when USE_SENTINEL=true).
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
}

// Configured reports whether any Redis endpoint was provided.
func (r RedisConfig) Configured() bool {
	return r.URI != "" || r.UseSentinel
}
