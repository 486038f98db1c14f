// Package configx provides environment configuration binding and validation.
//
// Overview:
//   - Responsibility: Decode env vars into tagged structs with defaults
//   - Key Types: Bind and BindMap entry points
//   - Concurrency Model: Functions are safe for concurrent use
//   - Error Semantics: Binding and validation failures are returned, never logged
//   - Performance Notes: Reflection-based; intended for startup paths only
package configx

import (
	"os"
	"strings"

	"go.eggybyte.com/outcall/configx/internal"
)

// Bind decodes the process environment into target, a pointer to a struct
// with `env` and `default` tags, then validates it using `validate` tags.
func Bind(target any) error {
	return BindMap(environSnapshot(), target)
}

// BindMap decodes the given key-value snapshot into target. It exists so
// tests and alternative sources can bypass the process environment.
func BindMap(snapshot map[string]string, target any) error {
	if err := internal.Decode(snapshot, target); err != nil {
		return err
	}
	return ValidateStruct(nil, target)
}

func environSnapshot() map[string]string {
	environ := os.Environ()
	snapshot := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			snapshot[k] = v
		}
	}
	return snapshot
}
