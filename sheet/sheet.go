// Package sheet reads YAML descriptions of builder calls. A description is
// not CSS: every entry maps to exactly one style.Builder operation.
//
//	class: card
//	theme: light
//	declarations:
//	  display: flex
//	selectors:
//	  - selector: .item
//	    declarations: {flex-grow: 1}
//	groups:
//	  - kind: "@media"
//	    prelude: (min-width:768px)
//	    declarations: {flex-direction: row}
//	keyframes:
//	  - name: spin
//	    frames:
//	      - offset: 0%
//	        declarations: {transform: rotate(0deg)}
package sheet

import (
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	"stylekit/style"
)

// Declarations keeps properties in the order they appear in the source.
type Declarations [][2]string

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Declarations) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: declarations must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a scalar", val.Line, key.Value)
		}
		*d = append(*d, [2]string{key.Value, val.Value})
	}
	return nil
}

// Body is content shared by documents, rules and groups.
type Body struct {
	Declarations Declarations `yaml:"declarations,omitempty"`
	Selectors    []Rule       `yaml:"selectors,omitempty"`
	Groups       []Group      `yaml:"groups,omitempty"`
	Keyframes    []Keyframes  `yaml:"keyframes,omitempty"`
}

// Rule is a nested selector rule.
type Rule struct {
	Selector string `yaml:"selector"`
	Body     `yaml:",inline"`
}

// Group is a grouping at-rule.
type Group struct {
	Kind    string `yaml:"kind"`
	Prelude string `yaml:"prelude,omitempty"`
	Body    `yaml:",inline"`
}

// Frame is one keyframe.
type Frame struct {
	Offset       string       `yaml:"offset"`
	Declarations Declarations `yaml:"declarations"`
}

// Keyframes is a named animation.
type Keyframes struct {
	Name   string  `yaml:"name"`
	Frames []Frame `yaml:"frames"`
}

// Document describes style of one class.
type Document struct {
	Class string `yaml:"class,omitempty"`
	Theme string `yaml:"theme,omitempty"`
	Body  `yaml:",inline"`
}

// Contribute implements style.Contributor.
func (d *Document) Contribute(b *style.Builder) {
	d.Body.apply(b)
}

func (body *Body) apply(b *style.Builder) {
	b.Base().Join(body.Declarations...)
	for i := range body.Selectors {
		r := &body.Selectors[i]
		b.Selector(r.Selector, r.Body.apply)
	}
	for i := range body.Groups {
		g := &body.Groups[i]
		b.Group(g.Kind, g.Prelude, g.Body.apply)
	}
	for i := range body.Keyframes {
		k := &body.Keyframes[i]
		b.Keyframes(k.Name, func(kf *style.Keyframes) {
			for _, f := range k.Frames {
				kf.Frame(f.Offset, func(d *style.Declarations) { d.Join(f.Declarations...) })
			}
		})
	}
}

// Load reads every YAML document from r. Unknown fields are errors.
func Load(r io.Reader) ([]*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []*Document
	for {
		doc := &Document{}
		if err := dec.Decode(doc); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, fmt.Errorf("failed to decode style document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
}
