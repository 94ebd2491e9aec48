// Package theme holds explicitly registered theme variants. A theme emits its
// palette and spacing scale as CSS custom properties.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"

	"stylekit/style"
	"stylekit/units"
)

var (
	ErrDuplicate = errors.New("theme already registered")
	ErrUnnamed   = errors.New("theme has no name")
)

// Theme is a named set of design tokens.
type Theme struct {
	Name    string
	Palette map[string]units.Color
	Spacing map[string]units.Size
	Radius  units.Size
}

// Contribute emits tokens as custom properties at the current scope.
func (t *Theme) Contribute(b *style.Builder) {
	for _, name := range sortedKeys(t.Palette) {
		b.Set("--color-"+slug.Make(name), t.Palette[name].String())
	}
	for _, name := range sortedKeys(t.Spacing) {
		b.Set("--space-"+slug.Make(name), t.Spacing[name].String())
	}
	if !t.Radius.IsZero() {
		b.Set("--radius", t.Radius.String())
	}
}

// Color returns var() reference to a palette entry.
func Color(name string) string {
	return "var(--color-" + slug.Make(name) + ")"
}

// Space returns var() reference to a spacing entry.
func Space(name string) string {
	return "var(--space-" + slug.Make(name) + ")"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	return keys
}

// Registry keeps themes by name. Themes are only known when registered.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]*Theme
}

// NewRegistry creates registry holding given themes.
func NewRegistry(themes ...*Theme) (*Registry, error) {
	r := &Registry{themes: make(map[string]*Theme)}
	for _, t := range themes {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds theme.
func (r *Registry) Register(t *Theme) error {
	if t == nil || t.Name == "" {
		return ErrUnnamed
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.themes[t.Name]; exists {
		return fmt.Errorf("%s: %w", t.Name, ErrDuplicate)
	}
	r.themes[t.Name] = t
	return nil
}

// Get returns theme by name.
func (r *Registry) Get(name string) (*Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	return t, ok
}

// Names returns registered theme names in natural order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.themes)
}

// Light and Dark are built in variants.
var (
	Light = &Theme{
		Name: "light",
		Palette: map[string]units.Color{
			"background": units.White,
			"foreground": units.MustHex("#1f2328"),
			"primary":    units.MustHex("#0969da"),
			"muted":      units.MustHex("#656d76"),
		},
		Spacing: map[string]units.Size{
			"xs": units.Rem(0.25),
			"sm": units.Rem(0.5),
			"md": units.Rem(1),
			"lg": units.Rem(1.5),
		},
		Radius: units.Px(6),
	}
	Dark = &Theme{
		Name: "dark",
		Palette: map[string]units.Color{
			"background": units.MustHex("#0d1117"),
			"foreground": units.MustHex("#e6edf3"),
			"primary":    units.MustHex("#2f81f7"),
			"muted":      units.MustHex("#7d8590"),
		},
		Spacing: Light.Spacing,
		Radius:  units.Px(6),
	}
)

// Builtin returns registry with Light and Dark registered.
func Builtin() *Registry {
	r, _ := NewRegistry(Light, Dark)
	return r
}
