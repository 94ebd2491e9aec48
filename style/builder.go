package style

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrEmptyClassName is returned by BuildScoped when no class name is given.
var ErrEmptyClassName = errors.New("class name must not be empty")

// Builder accumulates base declarations and fragments for one styled root.
// The same instance is reused across renders, Compose is the reset point.
// Only contributor registration is safe for concurrent use.
type Builder struct {
	log *zap.Logger

	base      *Declarations
	fragments []Fragment

	mu           sync.Mutex
	contributors []Contributor
}

// NewBuilder creates an empty builder.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log, base: NewDeclarations()}
}

// nested builders share the logger but never carry contributors.
func (b *Builder) nested() *Builder {
	return &Builder{log: b.log, base: NewDeclarations()}
}

// Base returns the root declaration set.
func (b *Builder) Base() *Declarations {
	return b.base
}

// Fragments returns fragments in insertion order.
func (b *Builder) Fragments() []Fragment {
	return slices.Clone(b.fragments)
}

// IsEmpty returns true if the builder would contribute nothing.
func (b *Builder) IsEmpty() bool {
	return b.base.IsEmpty() && len(b.fragments) == 0
}

// Set adds a base declaration. Empty property or value is ignored.
func (b *Builder) Set(property, value string) *Builder {
	b.base.Add(property, value)
	return b
}

// SetIf adds a base declaration only when cond holds.
func (b *Builder) SetIf(cond bool, property, value string) *Builder {
	if cond {
		b.base.Add(property, value)
	}
	return b
}

// SetIfNotNull adds a base declaration when value is present.
func (b *Builder) SetIfNotNull(property string, value *string) *Builder {
	if value != nil {
		b.base.Add(property, *value)
	}
	return b
}

// SetValue adds a base declaration from a value type (units.Size,
// units.Color...). Nil values are ignored.
func (b *Builder) SetValue(property string, value fmt.Stringer) *Builder {
	if value != nil {
		b.base.Add(property, value.String())
	}
	return b
}

// Optional adds a base declaration from an optional value type.
func Optional[T fmt.Stringer](b *Builder, property string, value *T) *Builder {
	if value != nil {
		b.base.Add(property, (*value).String())
	}
	return b
}

// Append adds a fragment as is.
func (b *Builder) Append(f Fragment) *Builder {
	if f != nil {
		b.fragments = append(b.fragments, f)
	}
	return b
}

// Selector adds a nested rule populated by configure and returns it.
func (b *Builder) Selector(selector string, configure func(*Builder)) *SelectorRule {
	nb := b.nested()
	if configure != nil {
		configure(nb)
	}
	rule := &SelectorRule{
		Selector:     strings.TrimSpace(selector),
		Declarations: nb.base,
		Children:     nb.fragments,
	}
	b.fragments = append(b.fragments, rule)
	return rule
}

// Group adds a grouping at-rule populated by configure and returns it.
// Declarations set directly on the nested builder are kept as a leading
// declaration block emitted at the enclosing scope.
func (b *Builder) Group(kind, prelude string, configure func(*Builder)) *GroupRule {
	nb := b.nested()
	if configure != nil {
		configure(nb)
	}
	group := &GroupRule{Kind: strings.TrimSpace(kind), Prelude: strings.TrimSpace(prelude)}
	if !nb.base.IsEmpty() {
		group.Children = append(group.Children, &DeclarationBlock{Declarations: nb.base})
	}
	group.Children = append(group.Children, nb.fragments...)
	b.fragments = append(b.fragments, group)
	return group
}

// Media adds @media group.
func (b *Builder) Media(query string, configure func(*Builder)) *GroupRule {
	return b.Group("@media", query, configure)
}

// Supports adds @supports group.
func (b *Builder) Supports(condition string, configure func(*Builder)) *GroupRule {
	return b.Group("@supports", condition, configure)
}

// Container adds @container group.
func (b *Builder) Container(query string, configure func(*Builder)) *GroupRule {
	return b.Group("@container", query, configure)
}

// Keyframes returns keyframes block with the given name creating it when
// this builder has none yet, then applies configure to it.
func (b *Builder) Keyframes(name string, configure func(*Keyframes)) *Keyframes {
	name = strings.TrimSpace(name)

	var kf *Keyframes
	for _, f := range b.fragments {
		if k, ok := f.(*Keyframes); ok && k.Name == name {
			kf = k
			break
		}
	}
	if kf == nil {
		kf = &Keyframes{Name: name}
		b.fragments = append(b.fragments, kf)
	}
	if configure != nil {
		configure(kf)
	}
	return kf
}

// Absorb merges base declarations and copies of fragments of other into b.
// Later changes to b never reach other.
func (b *Builder) Absorb(other *Builder) *Builder {
	if other == nil || other == b {
		return b
	}
	b.base.Merge(other.base)
	b.fragments = append(b.fragments, cloneAll(other.fragments)...)
	return b
}

// Reset drops accumulated declarations and fragments. Registered
// contributors are kept.
func (b *Builder) Reset() {
	b.base.Clear()
	b.fragments = nil
}

// BuildScoped renders base declarations followed by all fragments under the
// ".className" root scope. It does not modify the builder.
func (b *Builder) BuildScoped(className string) (string, error) {
	className = strings.TrimSpace(className)
	if className == "" {
		return "", ErrEmptyClassName
	}

	w := NewWriter("." + className)
	b.base.Emit(w)
	for _, f := range b.fragments {
		f.Emit(w)
	}
	return w.String(), nil
}
