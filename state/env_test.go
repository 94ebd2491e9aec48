package state

import (
	"context"
	"io"
	"log"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"stylekit/config"
	"stylekit/theme"
)

func TestEnvFromContext(t *testing.T) {
	t.Run("built in themes", func(t *testing.T) {
		env := EnvFromContext(ContextWithEnv(context.Background()))
		if env.start.IsZero() {
			t.Error("start time not set")
		}
		if env.Themes == nil {
			t.Fatal("Themes not initialized")
		}
		if got := env.Themes.Names(); !slices.Equal(got, []string{"dark", "light"}) {
			t.Errorf("Themes = %v, want [dark light]", got)
		}
	})

	t.Run("panic on missing env", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic when env not in context")
			}
		}()
		EnvFromContext(context.Background())
	})
}

func TestLocalEnv_ThemesPerEnv(t *testing.T) {
	first := EnvFromContext(ContextWithEnv(context.Background()))
	second := EnvFromContext(ContextWithEnv(context.Background()))

	if err := first.Themes.Register(&theme.Theme{Name: "brand"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, ok := second.Themes.Get("brand"); ok {
		t.Error("theme registered in one env leaked into another")
	}
	if _, ok := first.Themes.Get("brand"); !ok {
		t.Error("registered theme not found")
	}
}

func TestLocalEnv_DefaultConfig(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration: %v", err)
	}
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Cfg = cfg

	if env.Cfg.Styles.DefaultTheme != "" {
		t.Errorf("DefaultTheme = %q, want none", env.Cfg.Styles.DefaultTheme)
	}
	// every value configuration accepts for default_theme must resolve
	for _, name := range []string{"light", "dark"} {
		if _, ok := env.Themes.Get(name); !ok {
			t.Errorf("default theme %q not registered", name)
		}
	}
	if env.Overwrite {
		t.Error("Overwrite must be off by default")
	}
}

func TestLocalEnv_StdLogCapture(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env := &LocalEnv{Log: zap.New(core)}

	env.RedirectStdLog()
	log.Print("lint skipped for .sk-1")
	env.RestoreStdLog()

	entries := logs.AllUntimed()
	if len(entries) != 1 {
		t.Fatalf("captured %d entries, want 1", len(entries))
	}
	if entries[0].Message != "lint skipped for .sk-1" {
		t.Errorf("Message = %q", entries[0].Message)
	}

	prev := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(prev)
	log.Print("after restore")
	if logs.Len() != 1 {
		t.Errorf("std log still redirected after restore, %d entries", logs.Len())
	}
}

func TestLocalEnv_NoLogger(t *testing.T) {
	env := &LocalEnv{}
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("restoreStdLog set without logger")
	}
	env.RestoreStdLog()
}
