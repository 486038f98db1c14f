// Package configx provides environment-based configuration binding.
//
// # Overview
//
// configx binds process environment variables to struct fields tagged with
// `env` and `default`, then validates the result with `validate` tags.
// outcall components use it to load collaborator settings, notably
// transportx.OptionsFromEnv.
//
// # Usage
//
//	type Config struct {
//		Timeout time.Duration `env:"OUTCALL_TIMEOUT" default:"30s" validate:"required"`
//		Retries int           `env:"OUTCALL_MAX_RETRIES" default:"3" validate:"gte=0"`
//	}
//
//	var cfg Config
//	if err := configx.Bind(&cfg); err != nil {
//		// misconfigured environment
//	}
//
// # Stability
//
// Stable since v0.1.0.
package configx
