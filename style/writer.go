package style

import (
	"bytes"
	"strings"
)

// Writer emits rule text while tracking the active selector scope. The scope
// stack is only changed through WithSelector so it is always balanced.
type Writer struct {
	buf    bytes.Buffer
	scopes []string
}

// NewWriter creates writer with root as the outermost scope.
func NewWriter(root string) *Writer {
	return &Writer{scopes: []string{root}}
}

// Current returns the active selector scope.
func (w *Writer) Current() string {
	return w.scopes[len(w.scopes)-1]
}

// Depth returns number of nested scopes above the root.
func (w *Writer) Depth() int {
	return len(w.scopes) - 1
}

// WithSelector runs fn with selector pushed as the active scope. The scope is
// popped even if fn panics.
func (w *Writer) WithSelector(selector string, fn func()) {
	w.scopes = append(w.scopes, selector)
	defer func() {
		w.scopes = w.scopes[:len(w.scopes)-1]
	}()
	fn()
}

// WriteRuleBlock writes selector{prop:value;...}.
func (w *Writer) WriteRuleBlock(selector string, d *Declarations) {
	if d.IsEmpty() {
		return
	}
	w.buf.WriteString(selector)
	w.buf.WriteByte('{')
	d.writeBody(&w.buf)
	w.buf.WriteByte('}')
}

// WriteRaw appends text as is.
func (w *Writer) WriteRaw(s string) {
	w.buf.WriteString(s)
}

// block writes "header{", runs body and closes the block. If body wrote
// nothing the header is rolled back so empty blocks never reach output.
func (w *Writer) block(header string, body func()) {
	mark := w.buf.Len()
	w.buf.WriteString(header)
	w.buf.WriteByte('{')
	start := w.buf.Len()
	body()
	if w.buf.Len() == start {
		w.buf.Truncate(mark)
		return
	}
	w.buf.WriteByte('}')
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.buf.String()
}

// resolveSelector resolves one selector part against scope. Parts starting
// with the parent placeholder have every placeholder replaced by scope,
// empty parts are the scope itself, everything else is a descendant.
func resolveSelector(part, scope string) string {
	part = strings.TrimSpace(part)
	switch {
	case part == "":
		return scope
	case strings.HasPrefix(part, ParentPlaceholder):
		return strings.ReplaceAll(part, ParentPlaceholder, scope)
	default:
		return scope + " " + part
	}
}

// splitSelectorList splits comma separated selector list dropping empty
// parts. Blank input yields a single empty part which resolves to the scope.
func splitSelectorList(selector string) []string {
	var parts []string
	for s := range strings.SplitSeq(selector, ",") {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		parts = []string{""}
	}
	return parts
}
