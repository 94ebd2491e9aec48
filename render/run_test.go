package render

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"stylekit/config"
	"stylekit/inject"
	"stylekit/state"
)

const cardDescription = `class: card
declarations:
  display: flex
  color: red
selectors:
  - selector: "&:hover"
    declarations:
      color: blue
groups:
  - kind: media
    prelude: (min-width:768px)
    declarations:
      flex-direction: row
`

const buttonDescription = `class: button
theme: dark
declarations:
  background: var(--color-primary)
---
declarations:
  margin: 0
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestProcess_Document(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "card.yaml"), cardDescription)
	dst := filepath.Join(dir, "out", "page.xhtml")

	opts := options{format: config.OutputFormatDocument, dst: dst}
	if err := process(ctx, []string{src}, opts, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatalf("output not created: %v", err)
	}
	defer f.Close()
	page, err := inject.LoadDocument(f)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}
	if !strings.Contains(page.String(), `xml:lang="en"`) {
		t.Errorf("page language missing:\n%s", page.String())
	}
	css, ok := page.CSS("card")
	if !ok {
		t.Fatalf("no rules for card in %v", page.Scopes())
	}
	for _, want := range []string{
		".card{display:flex;color:red;}",
		".card:hover{color:blue;}",
		"@media (min-width:768px){.card{flex-direction:row;}}",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("css %q does not contain %q", css, want)
		}
	}

	// existing destination is kept unless overwrite requested
	if err := process(ctx, []string{src}, opts, env, env.Log); err == nil {
		t.Error("expected error for existing destination")
	}
	env.Overwrite = true
	if err := process(ctx, []string{src}, opts, env, env.Log); err != nil {
		t.Errorf("process() with overwrite error = %v", err)
	}
}

func TestProcess_CSSToStdout(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "card.yaml"), cardDescription)
	writeFile(t, filepath.Join(dir, "b", "button.yml"), buttonDescription)
	writeFile(t, filepath.Join(dir, "b", "notes.txt"), "ignored")

	var buf bytes.Buffer
	saved := stdout
	stdout = &buf
	defer func() { stdout = saved }()

	opts := options{format: config.OutputFormatCSS, theme: "light"}
	if err := process(ctx, []string{dir}, opts, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		".card{--color-background:#ffffff;",
		// description theme wins over default
		".button{--color-background:#0d1117;",
		"background:var(--color-primary);",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	// anonymous description gets generated class name
	if !strings.Contains(out, ".sk-") || !strings.Contains(out, "margin:0;") {
		t.Errorf("generated class missing:\n%s", out)
	}
	if strings.Contains(out, "ignored") {
		t.Error("non description file was processed")
	}
}

func TestProcess_Archive(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "styles.zip")

	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(zf)
	for name, content := range map[string]string{
		"pack/card.yaml":  cardDescription,
		"other/skip.yaml": "class: skipped\ndeclarations: {color: green}\n",
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	zf.Close()

	var buf bytes.Buffer
	saved := stdout
	stdout = &buf
	defer func() { stdout = saved }()

	src := filepath.Join(zipPath, "pack")
	if err := process(ctx, []string{src}, options{format: config.OutputFormatCSS}, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if !strings.Contains(buf.String(), ".card{") {
		t.Errorf("card rules missing:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "skipped") {
		t.Errorf("rules outside of archive path were processed:\n%s", buf.String())
	}
}

func TestProcess_SQLite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "card.yaml"), cardDescription)
	db := filepath.Join(dir, "styles.db")

	opts := options{format: config.OutputFormatSQLite, dst: db, lint: true}
	if err := process(ctx, []string{src}, opts, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	store, err := inject.OpenStore(db, env.Log)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	css, found, err := store.CSS(ctx, "card")
	if err != nil || !found {
		t.Fatalf("CSS() = %q, %v, %v", css, found, err)
	}
	if !strings.Contains(css, ".card{display:flex;color:red;}") {
		t.Errorf("unexpected stored css %q", css)
	}
}

func TestProcess_Stdin(t *testing.T) {
	ctx, env := setupTestEnv(t)

	saved, savedOut := stdin, stdout
	stdin = strings.NewReader(cardDescription)
	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdin, stdout = saved, savedOut }()

	if err := process(ctx, []string{stdinSource}, options{format: config.OutputFormatCSS}, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if !strings.Contains(buf.String(), ".card{display:flex;color:red;}") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestProcess_Errors(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		opts    options
	}{
		{"unknown theme", "class: x\ntheme: sepia\ndeclarations: {color: red}\n", options{format: config.OutputFormatCSS}},
		{"unknown default theme", "class: x\ndeclarations: {color: red}\n", options{format: config.OutputFormatCSS, theme: "sepia"}},
		{"unknown field", "class: x\nbogus: 1\n", options{format: config.OutputFormatCSS}},
		{"lint failure", "class: x\ndeclarations: {color: \";\"}\n", options{format: config.OutputFormatCSS, lint: true}},
		{"empty source", "", options{format: config.OutputFormatCSS}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeFile(t, filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml"), tt.content)
			if err := process(ctx, []string{src}, tt.opts, env, env.Log); err == nil {
				t.Error("expected error")
			}
		})
	}

	t.Run("missing source", func(t *testing.T) {
		if err := process(ctx, []string{filepath.Join(dir, "nope.yaml")}, options{format: config.OutputFormatCSS}, env, env.Log); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		src := writeFile(t, filepath.Join(dir, "ok.yaml"), cardDescription)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := process(cctx, []string{src}, options{format: config.OutputFormatCSS}, env, env.Log); err == nil {
			t.Error("expected error")
		}
	})
}
