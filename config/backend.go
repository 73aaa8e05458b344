package config

import "time"

// BackendConfig contains configuration for the asset-management backend API
// client. All variables carry the BACKEND_ prefix.
type BackendConfig struct {
	// BaseURL is the backend API root, including the path prefix,
	// e.g. "http://localhost:8000/api".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000/api"`

	// Timeout is the per-request timeout for backend calls.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// ErrorMessageExpr is the JMESPath expression used to pull the
	// human-readable message out of backend error bodies. The default fits
	// bodies of the form {"message": "..."}.
	ErrorMessageExpr string `env:"ERROR_MESSAGE_EXPR" envDefault:"message"`
}

// Sanitize applies guardrails to backend client configuration values.
func (b *BackendConfig) Sanitize() {
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
}
