package style

import (
	"slices"

	"go.uber.org/zap"
)

// Contributor adds declarations and fragments to a builder during Compose.
// Contributors are identified by equality so implementations should use
// pointer receivers.
type Contributor interface {
	Contribute(b *Builder)
}

type funcContributor struct {
	fn func(*Builder)
}

func (f *funcContributor) Contribute(b *Builder) {
	if f.fn != nil {
		f.fn(b)
	}
}

// ContributorFunc wraps fn into a Contributor with its own identity.
func ContributorFunc(fn func(*Builder)) Contributor {
	return &funcContributor{fn: fn}
}

// Register attaches c. Registering the same contributor twice is a no-op.
func (b *Builder) Register(c Contributor) {
	if c == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if slices.Contains(b.contributors, c) {
		return
	}
	b.contributors = append(b.contributors, c)
}

// Unregister detaches c, unknown contributors are ignored.
func (b *Builder) Unregister(c Contributor) {
	if c == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.contributors = slices.DeleteFunc(b.contributors, func(x Contributor) bool {
		return x == c
	})
}

// Contributors returns number of registered contributors.
func (b *Builder) Contributors() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.contributors)
}

// Compose resets the builder and invokes every registered contributor in
// registration order. Contributors registered or removed while composing
// take effect on the next pass.
func (b *Builder) Compose() {
	b.mu.Lock()
	snapshot := slices.Clone(b.contributors)
	b.mu.Unlock()

	b.Reset()
	for _, c := range snapshot {
		c.Contribute(b)
	}
	b.log.Debug("Composed style",
		zap.Int("contributors", len(snapshot)),
		zap.Int("declarations", b.base.Len()),
		zap.Int("fragments", len(b.fragments)))
}
