package registry

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures Registry.
type Option func(*Registry)

// WithLogger sets logger, nil keeps the default no-op one.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log.Named("registry")
		}
	}
}

// WithPrefix sets prefix of generated class names.
func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		r.prefix = normalizePrefix(prefix)
	}
}

// WithIDSource replaces random identifiers used for class names.
func WithIDSource(fn func() uuid.UUID) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithLint enables grammar check of css before it is injected.
func WithLint(enable bool) Option {
	return func(r *Registry) {
		r.lint = enable
	}
}
