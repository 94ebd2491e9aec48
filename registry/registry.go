// Package registry tracks generated class names shared by mounted components,
// remembers the CSS last injected for each of them and removes rules from the
// document once the last user releases a class.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"stylekit/style"
)

// Injector is the document side of the registry. Implementations must make
// InjectScoped replace every rule previously associated with className in a
// single visible step.
type Injector interface {
	InjectScoped(ctx context.Context, css, className string) error
	ClearRule(ctx context.Context, className string) error
	ClearAll(ctx context.Context) error
}

// entry is one managed class. refs < 0 marks an entry that was removed from
// the map and must not be revived.
type entry struct {
	refs atomic.Int64

	mu  sync.Mutex // serializes document mutations for the class
	css string
}

// Registry is safe for concurrent use. Map operations are lock free, work on a
// single class is serialized by the entry lock. An entry is removed from the
// map only while its lock is held.
type Registry struct {
	log     *zap.Logger
	inj     Injector
	prefix  string
	newID   idSource
	lint    bool
	entries sync.Map     // class name -> *entry
	gate    sync.RWMutex // held exclusively by ClearAll
}

// New creates registry which mutates the document through inj.
func New(inj Injector, options ...Option) *Registry {
	r := &Registry{
		log:    zap.NewNop(),
		inj:    inj,
		prefix: DefaultPrefix,
		newID:  newUUID,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Acquire returns preferred (trimmed) or, when it is blank, a newly generated
// class name, and adds a reference to it.
func (r *Registry) Acquire(preferred string) string {
	name := strings.TrimSpace(preferred)
	if name == "" {
		return r.reserve()
	}

	for {
		v, _ := r.entries.LoadOrStore(name, &entry{})
		e := v.(*entry)
		if n, ok := e.retain(); ok {
			r.log.Debug("Acquired class", zap.String("class", name), zap.Int64("refs", n))
			return name
		}
		r.bury(name, e)
	}
}

// retain increments reference count unless entry is dead.
func (e *entry) retain() (int64, bool) {
	for {
		n := e.refs.Load()
		if n < 0 {
			return n, false
		}
		if e.refs.CompareAndSwap(n, n+1) {
			return n + 1, true
		}
	}
}

// bury waits until cleanup of the dead entry e finishes and makes sure it is
// gone from the map, so a replacement never races with its ClearRule.
func (r *Registry) bury(className string, e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r.entries.CompareAndDelete(className, e)
}

// live returns locked entry for className creating a single reference one if
// the class was never acquired.
func (r *Registry) live(className string) *entry {
	for {
		fresh := &entry{}
		fresh.refs.Store(1)
		v, loaded := r.entries.LoadOrStore(className, fresh)
		e := v.(*entry)
		if !loaded {
			r.log.Debug("Class injected without acquire", zap.String("class", className))
		}
		e.mu.Lock()
		if e.refs.Load() >= 0 {
			return e
		}
		e.mu.Unlock()
		r.bury(className, e)
	}
}

// UpsertScoped replaces the document rules of className with css unless css
// is identical to what was injected last time. Blank arguments are ignored.
// Injection errors are returned and leave the remembered text unchanged.
func (r *Registry) UpsertScoped(ctx context.Context, css, className string) error {
	className = strings.TrimSpace(className)
	if strings.TrimSpace(css) == "" || className == "" {
		return nil
	}

	r.gate.RLock()
	defer r.gate.RUnlock()

	e := r.live(className)
	defer e.mu.Unlock()

	if e.css == css {
		return nil
	}
	if r.lint {
		if err := style.Lint(css); err != nil {
			return fmt.Errorf("css for class %s: %w", className, err)
		}
	}
	if err := r.inj.InjectScoped(ctx, css, className); err != nil {
		return fmt.Errorf("unable to inject css for class %s: %w", className, err)
	}
	e.css = css
	r.log.Debug("Injected css", zap.String("class", className), zap.Int("bytes", len(css)))
	return nil
}

// Release drops a reference to className. It returns true when this was the
// last reference and the class rules were removed from the document. Errors
// from the document are logged and otherwise ignored.
func (r *Registry) Release(ctx context.Context, className string) bool {
	className = strings.TrimSpace(className)
	v, ok := r.entries.Load(className)
	if !ok {
		return false
	}
	e := v.(*entry)

	for {
		n := e.refs.Load()
		if n <= 0 {
			return false
		}
		if e.refs.CompareAndSwap(n, n-1) {
			if n-1 > 0 {
				return false
			}
			break
		}
	}

	r.gate.RLock()
	defer r.gate.RUnlock()

	// entry stays in the map while its rules are cleared, a concurrent
	// Acquire waits in bury before it can create a replacement
	e.mu.Lock()
	defer e.mu.Unlock()

	// last reference is gone, unless somebody acquired it in the meantime
	if !e.refs.CompareAndSwap(0, -1) {
		return false
	}
	if err := r.inj.ClearRule(ctx, className); err != nil {
		r.log.Warn("Unable to clear class rules", zap.String("class", className), zap.Error(err))
	}
	e.css = ""
	r.entries.CompareAndDelete(className, e)
	r.log.Debug("Released class", zap.String("class", className))
	return true
}

// ClearAll forgets every class and wipes all managed rules. Upserts and
// releases wait until it is done. Errors from the document are logged and
// otherwise ignored.
func (r *Registry) ClearAll(ctx context.Context) {
	r.gate.Lock()
	defer r.gate.Unlock()

	var count int
	r.entries.Range(func(key, value any) bool {
		e := value.(*entry)
		e.mu.Lock()
		e.refs.Store(-1)
		e.css = ""
		r.entries.CompareAndDelete(key, e)
		e.mu.Unlock()
		count++
		return true
	})
	if err := r.inj.ClearAll(ctx); err != nil {
		r.log.Warn("Unable to clear all rules", zap.Error(err))
	}
	r.log.Debug("Cleared all classes", zap.Int("classes", count))
}

// RefCount returns the number of references held for className.
func (r *Registry) RefCount(className string) int {
	v, ok := r.entries.Load(strings.TrimSpace(className))
	if !ok {
		return 0
	}
	return int(max(v.(*entry).refs.Load(), 0))
}

// CSS returns text last injected for className.
func (r *Registry) CSS(className string) (string, bool) {
	v, ok := r.entries.Load(strings.TrimSpace(className))
	if !ok {
		return "", false
	}
	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.css, e.css != ""
}

// Classes returns managed class names in natural order.
func (r *Registry) Classes() []string {
	var names []string
	r.entries.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Sort(natural.StringSlice(names))
	return names
}
