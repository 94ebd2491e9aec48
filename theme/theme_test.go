package theme

import (
	"errors"
	"strings"
	"testing"

	"stylekit/style"
	"stylekit/units"
)

func TestRegistry(t *testing.T) {
	r := Builtin()
	if got := strings.Join(r.Names(), ","); got != "dark,light" {
		t.Errorf("Names() = %s", got)
	}
	if _, ok := r.Get("light"); !ok {
		t.Error("light theme missing")
	}
	if err := r.Register(&Theme{Name: "light"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate Register error = %v", err)
	}
	if err := r.Register(&Theme{}); !errors.Is(err, ErrUnnamed) {
		t.Errorf("unnamed Register error = %v", err)
	}
	if err := r.Register(nil); !errors.Is(err, ErrUnnamed) {
		t.Errorf("nil Register error = %v", err)
	}
	if _, err := NewRegistry(Light, Light); !errors.Is(err, ErrDuplicate) {
		t.Errorf("NewRegistry duplicate error = %v", err)
	}
}

func TestTheme_Contribute(t *testing.T) {
	th := &Theme{
		Name: "test",
		Palette: map[string]units.Color{
			"Accent Color": units.MustHex("#ff0000"),
			"bg":           units.Black.WithAlpha(0.5),
		},
		Spacing: map[string]units.Size{"gap-10": units.Px(10), "gap-2": units.Px(2)},
		Radius:  units.Em(0.5),
	}

	b := style.NewBuilder(nil)
	b.Register(th)
	b.Compose()
	css, err := b.BuildScoped("themed")
	if err != nil {
		t.Fatal(err)
	}

	want := ".themed{--color-accent-color:#ff0000;--color-bg:rgba(0,0,0,0.5);" +
		"--space-gap-2:2px;--space-gap-10:10px;--radius:0.5em;}"
	if css != want {
		t.Errorf("got %q, want %q", css, want)
	}

	if got := Color("Accent Color"); got != "var(--color-accent-color)" {
		t.Errorf("Color() = %q", got)
	}
	if got := Space("md"); got != "var(--space-md)" {
		t.Errorf("Space() = %q", got)
	}
}
