// Package style builds scoped CSS from a tree of composable contributors.
//
// A Builder accumulates base declarations and fragments (nested selector
// rules, grouping at-rules and keyframes). BuildScoped renders everything
// under a single ".class" root through a Writer that keeps the selector
// scope stack.
package style

import (
	"bytes"
	"strings"
)

// Declarations is an ordered property -> value mapping representing one rule
// body. The first Add of a property fixes its position, later Adds overwrite
// the value in place.
type Declarations struct {
	names  []string
	values map[string]string
}

// NewDeclarations creates an empty declaration set.
func NewDeclarations() *Declarations {
	return &Declarations{values: make(map[string]string)}
}

// Add stores property: value. Both sides are trimmed, the call is ignored
// when either is empty.
func (d *Declarations) Add(property, value string) {
	property, value = strings.TrimSpace(property), strings.TrimSpace(value)
	if property == "" || value == "" {
		return
	}
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, exists := d.values[property]; !exists {
		d.names = append(d.names, property)
	}
	d.values[property] = value
}

// Join adds every pair, pairs are [property, value].
func (d *Declarations) Join(pairs ...[2]string) {
	for _, p := range pairs {
		d.Add(p[0], p[1])
	}
}

// Merge adds all declarations of other on top of d.
func (d *Declarations) Merge(other *Declarations) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		d.Add(name, other.values[name])
	}
}

// Get returns the value stored for property.
func (d *Declarations) Get(property string) (string, bool) {
	v, ok := d.values[strings.TrimSpace(property)]
	return v, ok
}

// IsEmpty returns true if nothing is stored.
func (d *Declarations) IsEmpty() bool {
	return d == nil || len(d.names) == 0
}

// Len returns number of stored declarations.
func (d *Declarations) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Names returns properties in emission order.
func (d *Declarations) Names() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.names...)
}

// Clear drops all declarations keeping allocated storage.
func (d *Declarations) Clear() {
	d.names = d.names[:0]
	clear(d.values)
}

// Clone returns an independent copy.
func (d *Declarations) Clone() *Declarations {
	c := NewDeclarations()
	c.Merge(d)
	return c
}

// Emit writes a rule block for the writer's current scope.
func (d *Declarations) Emit(w *Writer) {
	if d.IsEmpty() {
		return
	}
	w.WriteRuleBlock(w.Current(), d)
}

// writeBody writes "prop:value;" pairs without surrounding braces.
func (d *Declarations) writeBody(buf *bytes.Buffer) {
	for _, name := range d.names {
		buf.WriteString(name)
		buf.WriteByte(':')
		buf.WriteString(d.values[name])
		buf.WriteByte(';')
	}
}

// String returns the body as it would be emitted inside a rule block.
func (d *Declarations) String() string {
	if d.IsEmpty() {
		return ""
	}
	var buf bytes.Buffer
	d.writeBody(&buf)
	return buf.String()
}
