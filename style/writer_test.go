package style

import "testing"

func TestWriter_WithSelectorBalanced(t *testing.T) {
	w := NewWriter(".root")

	w.WithSelector(".root .a", func() {
		if got := w.Current(); got != ".root .a" {
			t.Errorf("Current() = %q", got)
		}
		if w.Depth() != 1 {
			t.Errorf("Depth() = %d", w.Depth())
		}
	})
	if got := w.Current(); got != ".root" {
		t.Errorf("Current() after scope = %q", got)
	}

	func() {
		defer func() { _ = recover() }()
		w.WithSelector(".boom", func() { panic("contributor failure") })
	}()
	if got := w.Current(); got != ".root" || w.Depth() != 0 {
		t.Errorf("scope not restored after panic: %q depth %d", got, w.Depth())
	}
}

func TestWriter_WriteRuleBlock(t *testing.T) {
	w := NewWriter(".r")
	d := NewDeclarations()
	w.WriteRuleBlock(".r", d)
	if w.String() != "" {
		t.Errorf("empty declarations produced %q", w.String())
	}

	d.Add("color", "red")
	d.Add(" margin ", " 0 auto ")
	w.WriteRuleBlock(".r", d)
	w.WriteRaw("/*x*/")
	if got, want := w.String(), ".r{color:red;margin:0 auto;}/*x*/"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDeclarations(t *testing.T) {
	d := NewDeclarations()
	d.Add("color", "red")
	d.Add("", "x")
	d.Add("width", "")
	d.Join([2]string{"margin", "0"}, [2]string{"color", "blue"}, [2]string{" ", " "})
	d.Join()

	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if v, ok := d.Get("color"); !ok || v != "blue" {
		t.Errorf("Get(color) = %q, %v", v, ok)
	}
	if got := d.String(); got != "color:blue;margin:0;" {
		t.Errorf("String() = %q", got)
	}

	c := d.Clone()
	d.Clear()
	if !d.IsEmpty() || c.IsEmpty() {
		t.Error("Clone shares storage with original")
	}

	var zero Declarations
	zero.Add("color", "red")
	if zero.Len() != 1 {
		t.Error("zero value Declarations is not usable")
	}
	var nilDecl *Declarations
	if !nilDecl.IsEmpty() || nilDecl.Len() != 0 || nilDecl.Names() != nil {
		t.Error("nil Declarations must behave as empty")
	}
}
