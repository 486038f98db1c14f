// Package transportx provides environment-based transport configuration.
package transportx

import (
	"time"

	"go.eggybyte.com/outcall/configx"
)

// EnvConfig holds transport settings read from environment variables.
type EnvConfig struct {
	Timeout          time.Duration `env:"OUTCALL_TIMEOUT" default:"30s" validate:"gt=0"`
	MaxRetries       int           `env:"OUTCALL_MAX_RETRIES" default:"3" validate:"gte=0,lte=10"`
	RetryBackoff     time.Duration `env:"OUTCALL_RETRY_BACKOFF" default:"100ms" validate:"gt=0"`
	EnableCircuit    bool          `env:"OUTCALL_CIRCUIT_ENABLED" default:"true"`
	CircuitThreshold uint32        `env:"OUTCALL_CIRCUIT_THRESHOLD" default:"5" validate:"gt=0"`
	IdempotencyKey   string        `env:"OUTCALL_IDEMPOTENCY_HEADER" default:"X-Idempotency-Key"`
}

// OptionsFromEnv reads OUTCALL_* environment variables and returns the
// matching transport options.
//
// Usage:
//
//	opts, err := transportx.OptionsFromEnv()
//	if err != nil {
//		// misconfigured environment
//	}
//	transport := transportx.New(opts...)
func OptionsFromEnv() ([]Option, error) {
	var cfg EnvConfig
	if err := configx.Bind(&cfg); err != nil {
		return nil, err
	}
	return cfg.options(), nil
}

func (c EnvConfig) options() []Option {
	return []Option{
		WithTimeout(c.Timeout),
		WithRetry(c.MaxRetries),
		WithBackoff(c.RetryBackoff),
		WithCircuitBreaker(c.EnableCircuit),
		WithCircuitThreshold(c.CircuitThreshold),
		WithIdempotencyKey(c.IdempotencyKey),
	}
}
