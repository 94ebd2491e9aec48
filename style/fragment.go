package style

import "strings"

// ParentPlaceholder in a nested selector refers to the enclosing scope.
const ParentPlaceholder = "&"

// Fragment is one renderable unit of CSS. The set of implementations is
// closed: DeclarationBlock, SelectorRule, GroupRule and Keyframes.
type Fragment interface {
	Emit(w *Writer)
	fragment()
	clone() Fragment
}

func cloneAll(fragments []Fragment) []Fragment {
	if len(fragments) == 0 {
		return nil
	}
	out := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		out = append(out, f.clone())
	}
	return out
}

// DeclarationBlock emits its declarations at the current scope.
type DeclarationBlock struct {
	Declarations *Declarations
}

func (b *DeclarationBlock) fragment() {}

func (b *DeclarationBlock) clone() Fragment {
	return &DeclarationBlock{Declarations: b.Declarations.Clone()}
}

// Emit implements Fragment.
func (b *DeclarationBlock) Emit(w *Writer) {
	b.Declarations.Emit(w)
}

// SelectorRule is a nested rule. Selector may be a comma separated list and
// may reference the enclosing scope with ParentPlaceholder.
type SelectorRule struct {
	Selector     string
	Declarations *Declarations
	Children     []Fragment
}

func (r *SelectorRule) fragment() {}

func (r *SelectorRule) clone() Fragment {
	return &SelectorRule{Selector: r.Selector, Declarations: r.Declarations.Clone(), Children: cloneAll(r.Children)}
}

// Emit implements Fragment.
func (r *SelectorRule) Emit(w *Writer) {
	for _, part := range splitSelectorList(r.Selector) {
		resolved := resolveSelector(part, w.Current())
		w.WriteRuleBlock(resolved, r.Declarations)
		if len(r.Children) == 0 {
			continue
		}
		w.WithSelector(resolved, func() {
			for _, child := range r.Children {
				child.Emit(w)
			}
		})
	}
}

// GroupRule is a grouping at-rule (@media, @supports, @container...). It
// wraps its children in one block without changing the selector scope.
type GroupRule struct {
	Kind     string
	Prelude  string
	Children []Fragment
}

func (g *GroupRule) fragment() {}

func (g *GroupRule) clone() Fragment {
	return &GroupRule{Kind: g.Kind, Prelude: g.Prelude, Children: cloneAll(g.Children)}
}

// Header returns the at-rule text preceding the block.
func (g *GroupRule) Header() string {
	kind := strings.TrimSpace(g.Kind)
	if !strings.HasPrefix(kind, "@") {
		kind = "@" + kind
	}
	if prelude := strings.TrimSpace(g.Prelude); prelude != "" {
		return kind + " " + prelude
	}
	return kind
}

// Emit implements Fragment.
func (g *GroupRule) Emit(w *Writer) {
	if len(g.Children) == 0 {
		return
	}
	w.block(g.Header(), func() {
		for _, child := range g.Children {
			child.Emit(w)
		}
	})
}

// Frame is a single keyframe selector with its declarations.
type Frame struct {
	Offset       string
	Declarations *Declarations
}

func (f *Frame) emit(w *Writer) {
	if f.Declarations.IsEmpty() {
		return
	}
	w.WriteRuleBlock(strings.TrimSpace(f.Offset), f.Declarations)
}

// Keyframes is a named animation. Builders merge keyframes by name so
// independent contributors can add frames to the same animation.
type Keyframes struct {
	Name   string
	Frames []*Frame
}

func (k *Keyframes) fragment() {}

func (k *Keyframes) clone() Fragment {
	c := &Keyframes{Name: k.Name, Frames: make([]*Frame, 0, len(k.Frames))}
	for _, f := range k.Frames {
		c.Frames = append(c.Frames, &Frame{Offset: f.Offset, Declarations: f.Declarations.Clone()})
	}
	return c
}

// Add appends frame. Frames with blank offset are ignored.
func (k *Keyframes) Add(frame *Frame) *Keyframes {
	if frame == nil || strings.TrimSpace(frame.Offset) == "" {
		return k
	}
	k.Frames = append(k.Frames, frame)
	return k
}

// Frame appends a frame at offset populated by configure.
func (k *Keyframes) Frame(offset string, configure func(d *Declarations)) *Keyframes {
	d := NewDeclarations()
	if configure != nil {
		configure(d)
	}
	return k.Add(&Frame{Offset: offset, Declarations: d})
}

// Emit implements Fragment.
func (k *Keyframes) Emit(w *Writer) {
	name := strings.TrimSpace(k.Name)
	if name == "" || len(k.Frames) == 0 {
		return
	}
	w.block("@keyframes "+name, func() {
		for _, f := range k.Frames {
			f.emit(w)
		}
	})
}
