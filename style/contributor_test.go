package style

import (
	"sync"
	"testing"
)

type colorNode struct {
	color string
}

func (n *colorNode) Contribute(b *Builder) {
	b.Set("color", n.color)
}

func TestCompose_Idempotent(t *testing.T) {
	b := NewBuilder(nil)
	b.Register(&colorNode{color: "red"})
	b.Register(ContributorFunc(func(b *Builder) {
		b.Selector("&:hover", func(b *Builder) { b.Set("color", "blue") })
		b.Keyframes("k", func(k *Keyframes) {
			k.Frame("to", func(d *Declarations) { d.Add("opacity", "1") })
		})
	}))

	b.Compose()
	first := mustBuild(t, b, "i")
	b.Compose()
	second := mustBuild(t, b, "i")

	if first != second {
		t.Errorf("compose is not idempotent:\n%q\n%q", first, second)
	}
	want := ".i{color:red;}.i:hover{color:blue;}@keyframes k{to{opacity:1;}}"
	if first != want {
		t.Errorf("got %q, want %q", first, want)
	}
}

func TestCompose_IdempotentWithAbsorb(t *testing.T) {
	external := NewBuilder(nil)
	external.Keyframes("spin", func(k *Keyframes) {
		k.Frame("0%", func(d *Declarations) { d.Add("opacity", "0") })
	})
	external.Selector("&:focus", func(b *Builder) { b.Set("outline", "none") })
	externalBefore := mustBuild(t, external, "e")

	b := NewBuilder(nil)
	b.Register(ContributorFunc(func(b *Builder) { b.Absorb(external) }))
	b.Register(ContributorFunc(func(b *Builder) {
		b.Keyframes("spin", func(k *Keyframes) {
			k.Frame("100%", func(d *Declarations) { d.Add("opacity", "1") })
		})
		for _, f := range b.Fragments() {
			if r, ok := f.(*SelectorRule); ok {
				r.Declarations.Add("outline", "1px solid")
			}
		}
	}))

	want := "@keyframes spin{0%{opacity:0;}100%{opacity:1;}}.i:focus{outline:1px solid;}"
	for pass := range 3 {
		b.Compose()
		if got := mustBuild(t, b, "i"); got != want {
			t.Fatalf("pass %d: got %q, want %q", pass, got, want)
		}
	}

	if got := mustBuild(t, external, "e"); got != externalBefore {
		t.Errorf("absorbed builder was modified:\n%q\n%q", externalBefore, got)
	}
}

func TestCompose_RegistrationOrder(t *testing.T) {
	b := NewBuilder(nil)
	first := &colorNode{color: "red"}
	second := &colorNode{color: "green"}
	b.Register(first)
	b.Register(second)
	b.Register(first) // duplicate is ignored

	if n := b.Contributors(); n != 2 {
		t.Fatalf("Contributors() = %d, want 2", n)
	}

	b.Compose()
	if got := mustBuild(t, b, "o"); got != ".o{color:green;}" {
		t.Errorf("got %q", got)
	}

	b.Unregister(second)
	b.Unregister(&colorNode{}) // unknown
	b.Unregister(nil)
	b.Register(nil)
	b.Compose()
	if got := mustBuild(t, b, "o"); got != ".o{color:red;}" {
		t.Errorf("after unregister got %q", got)
	}
}

func TestCompose_ClearsPreviousState(t *testing.T) {
	b := NewBuilder(nil)
	b.Set("stale", "1")
	b.Selector(".old", func(b *Builder) { b.Set("x", "y") })

	node := &colorNode{color: "red"}
	b.Register(node)
	b.Compose()
	b.Unregister(node)
	b.Compose()

	if !b.IsEmpty() {
		t.Errorf("builder not empty after compose without contributors: %s", b.Dump())
	}
}

// registering from inside a contributor must not affect the pass in flight
type spawningNode struct {
	spawned *colorNode
}

func (n *spawningNode) Contribute(b *Builder) {
	if n.spawned == nil {
		n.spawned = &colorNode{color: "purple"}
		b.Register(n.spawned)
	} else {
		b.Unregister(n)
	}
	b.Set("display", "block")
}

func TestCompose_MutationDuringPass(t *testing.T) {
	b := NewBuilder(nil)
	b.Register(&spawningNode{})

	b.Compose()
	if got := mustBuild(t, b, "m"); got != ".m{display:block;}" {
		t.Errorf("first pass got %q", got)
	}

	b.Compose()
	if got := mustBuild(t, b, "m"); got != ".m{display:block;color:purple;}" {
		t.Errorf("second pass got %q", got)
	}

	b.Compose()
	if got := mustBuild(t, b, "m"); got != ".m{color:purple;}" {
		t.Errorf("third pass got %q", got)
	}
}

func TestRegister_Concurrent(t *testing.T) {
	b := NewBuilder(nil)
	nodes := make([]*colorNode, 64)
	for i := range nodes {
		nodes[i] = &colorNode{color: "red"}
	}

	var wg sync.WaitGroup
	for _, n := range nodes {
		wg.Go(func() { b.Register(n) })
	}
	wg.Wait()
	if got := b.Contributors(); got != len(nodes) {
		t.Fatalf("Contributors() = %d, want %d", got, len(nodes))
	}

	for _, n := range nodes {
		wg.Go(func() { b.Unregister(n) })
	}
	wg.Wait()
	if got := b.Contributors(); got != 0 {
		t.Errorf("Contributors() = %d after unregister, want 0", got)
	}
}
