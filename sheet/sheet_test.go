package sheet

import (
	"strings"
	"testing"

	"stylekit/style"
)

const cardYAML = `class: card-1
declarations:
  display: flex
  gap: 4px
selectors:
  - selector: .item
    declarations:
      flex-grow: 1
    selectors:
      - selector: "&:hover"
        declarations: {opacity: 0.8}
groups:
  - kind: "@media"
    prelude: (min-width:768px)
    declarations:
      flex-direction: row
keyframes:
  - name: spin
    frames:
      - offset: 0%
        declarations: {transform: rotate(0deg)}
---
theme: dark
keyframes:
  - name: spin
    frames:
      - offset: 100%
        declarations: {transform: rotate(360deg)}
`

func TestLoad(t *testing.T) {
	docs, err := Load(strings.NewReader(cardYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("loaded %d documents, want 2", len(docs))
	}
	if docs[0].Class != "card-1" || docs[1].Theme != "dark" {
		t.Errorf("unexpected header fields: %+v / %+v", docs[0], docs[1])
	}

	b := style.NewBuilder(nil)
	for _, d := range docs {
		b.Register(d)
	}
	b.Compose()
	css, err := b.BuildScoped(docs[0].Class)
	if err != nil {
		t.Fatal(err)
	}

	want := ".card-1{display:flex;gap:4px;}" +
		".card-1 .item{flex-grow:1;}" +
		".card-1 .item:hover{opacity:0.8;}" +
		"@media (min-width:768px){.card-1{flex-direction:row;}}" +
		"@keyframes spin{0%{transform:rotate(0deg);}100%{transform:rotate(360deg);}}"
	if css != want {
		t.Errorf("got  %q\nwant %q", css, want)
	}
	if err := style.Lint(css); err != nil {
		t.Errorf("Lint() error: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", "colour: red\n"},
		{"declarations not a mapping", "declarations: [a, b]\n"},
		{"nested value", "declarations:\n  margin: {top: 1px}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	docs, err := Load(strings.NewReader(""))
	if err != nil || len(docs) != 0 {
		t.Errorf("Load(empty) = %v, %v", docs, err)
	}
}
