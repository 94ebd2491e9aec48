package style

import (
	"stylekit/utils/debug"
)

// Dump returns indented description of builder content, used in debug logs.
func (b *Builder) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "builder")
	dumpDeclarations(tw, 1, b.base)
	for _, f := range b.fragments {
		dumpFragment(tw, 1, f)
	}
	return tw.String()
}

func dumpDeclarations(tw *debug.TreeWriter, depth int, d *Declarations) {
	for _, name := range d.Names() {
		v, _ := d.Get(name)
		tw.Field(depth, name, v)
	}
}

func dumpFragment(tw *debug.TreeWriter, depth int, f Fragment) {
	switch v := f.(type) {
	case *DeclarationBlock:
		tw.Line(depth, "declarations")
		dumpDeclarations(tw, depth+1, v.Declarations)
	case *SelectorRule:
		tw.Field(depth, "selector", v.Selector)
		dumpDeclarations(tw, depth+1, v.Declarations)
		for _, c := range v.Children {
			dumpFragment(tw, depth+1, c)
		}
	case *GroupRule:
		tw.Field(depth, "group", v.Header())
		for _, c := range v.Children {
			dumpFragment(tw, depth+1, c)
		}
	case *Keyframes:
		tw.Field(depth, "keyframes", v.Name)
		for _, fr := range v.Frames {
			tw.Field(depth+1, "frame", fr.Offset)
			dumpDeclarations(tw, depth+2, fr.Declarations)
		}
	}
}
