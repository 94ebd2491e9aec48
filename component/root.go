// Package component connects style builders to component lifecycle. A Root
// owns the builder of one styled component tree and keeps its class rules in
// the registry up to date, Nodes attach contributors to a builder they are
// given explicitly.
package component

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"stylekit/registry"
	"stylekit/style"
)

// ErrNotMounted is returned when rendering a root that is not mounted.
var ErrNotMounted = errors.New("styled root is not mounted")

// Root is a styled root component. It is not safe for concurrent use, one
// render pass completes before the next one starts.
type Root struct {
	log     *zap.Logger
	reg     *registry.Registry
	builder *style.Builder

	preferred string
	class     string
	last      string
	renders   int
	injects   int
}

// RootOption configures Root.
type RootOption func(*Root)

// WithClassName asks for a fixed class name instead of a generated one.
func WithClassName(name string) RootOption {
	return func(r *Root) {
		r.preferred = name
	}
}

// WithLogger sets logger used by root and its builder.
func WithLogger(log *zap.Logger) RootOption {
	return func(r *Root) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRoot creates unmounted root publishing to reg.
func NewRoot(reg *registry.Registry, options ...RootOption) *Root {
	r := &Root{log: zap.NewNop(), reg: reg}
	for _, opt := range options {
		opt(r)
	}
	r.log = r.log.Named("root")
	r.builder = style.NewBuilder(r.log)
	return r
}

// Builder returns the builder nodes should attach to.
func (r *Root) Builder() *style.Builder {
	return r.builder
}

// ClassName returns class acquired on mount, empty when not mounted.
func (r *Root) ClassName() string {
	return r.class
}

// Mounted reports whether the root holds a class.
func (r *Root) Mounted() bool {
	return r.class != ""
}

// Attach creates a node for c on the root builder and mounts it.
func (r *Root) Attach(c style.Contributor) *Node {
	n := NewNode(r.builder, c)
	n.Mount()
	return n
}

// Mount acquires class name and performs the first render so rules are in
// the document before first paint.
func (r *Root) Mount(ctx context.Context) error {
	if r.Mounted() {
		return nil
	}
	r.class = r.reg.Acquire(r.preferred)
	r.log.Debug("Mounted", zap.String("class", r.class))
	return r.Render(ctx)
}

// Render recomposes the style and pushes it to the registry when it differs
// from the text pushed by the previous render.
func (r *Root) Render(ctx context.Context) error {
	if !r.Mounted() {
		return ErrNotMounted
	}
	r.renders++

	r.builder.Compose()
	css, err := r.builder.BuildScoped(r.class)
	if err != nil {
		return fmt.Errorf("unable to build style for %s: %w", r.class, err)
	}
	if css == r.last {
		return nil
	}

	text := css
	if text == "" {
		// replace stale rules, registry ignores empty text
		text = "." + r.class + "{}"
	}
	if err := r.reg.UpsertScoped(ctx, text, r.class); err != nil {
		return err
	}
	r.last = css
	r.injects++
	r.log.Debug("Style updated", zap.String("class", r.class), zap.Int("render", r.renders))
	return nil
}

// Unmount releases the class. It returns true if rules were removed from the
// document.
func (r *Root) Unmount(ctx context.Context) bool {
	if !r.Mounted() {
		return false
	}
	removed := r.reg.Release(ctx, r.class)
	r.log.Debug("Unmounted", zap.String("class", r.class), zap.Bool("removed", removed))
	r.class, r.last = "", ""
	return removed
}

// Stats returns number of renders and of renders which produced new text.
func (r *Root) Stats() (renders, injects int) {
	return r.renders, r.injects
}
