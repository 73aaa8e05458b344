package config

import "time"

// SessionConfig contains session cookie and lifetime configuration. All
// variables carry the SESSION_ prefix.
type SessionConfig struct {
	// CookieName is the name of the browser session cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"assetview_session"`

	// CookieDomain is the domain for the session cookie.
	// Leave empty to use the request domain.
	CookieDomain string `env:"COOKIE_DOMAIN" envDefault:""`

	// CookieSecure marks the session cookie Secure. Disable only for local
	// plain-HTTP development.
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	// TTL is how long a stored session lives without re-login.
	TTL time.Duration `env:"TTL" envDefault:"12h"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"session:"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.CookieName == "" {
		s.CookieName = "assetview_session"
	}
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "session:"
	}
}
