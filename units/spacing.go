package units

import (
	"fmt"
	"strings"
)

// Spacing is a four sided box value used for margin, padding and inset.
type Spacing struct {
	Top, Right, Bottom, Left Size
}

// Uniform uses the same size on all sides.
func Uniform(s Size) Spacing {
	return Spacing{Top: s, Right: s, Bottom: s, Left: s}
}

// Symmetric uses vertical for top/bottom and horizontal for left/right.
func Symmetric(vertical, horizontal Size) Spacing {
	return Spacing{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

// ParseSpacing parses CSS shorthand with one to four sizes.
func ParseSpacing(s string) (Spacing, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return Spacing{}, fmt.Errorf("spacing %q: %w", s, ErrInvalidArgument)
	}

	sizes := make([]Size, len(fields))
	for i, f := range fields {
		sz, err := ParseSize(f)
		if err != nil {
			return Spacing{}, fmt.Errorf("spacing %q: %w", s, err)
		}
		sizes[i] = sz
	}

	switch len(sizes) {
	case 1:
		return Uniform(sizes[0]), nil
	case 2:
		return Symmetric(sizes[0], sizes[1]), nil
	case 3:
		return Spacing{Top: sizes[0], Right: sizes[1], Bottom: sizes[2], Left: sizes[1]}, nil
	default:
		return Spacing{Top: sizes[0], Right: sizes[1], Bottom: sizes[2], Left: sizes[3]}, nil
	}
}

// Add sums side by side. Any side with mismatched units fails the whole call.
func (sp Spacing) Add(o Spacing) (Spacing, error) {
	var (
		res Spacing
		err error
	)
	if res.Top, err = sp.Top.Add(o.Top); err != nil {
		return Spacing{}, fmt.Errorf("top: %w", err)
	}
	if res.Right, err = sp.Right.Add(o.Right); err != nil {
		return Spacing{}, fmt.Errorf("right: %w", err)
	}
	if res.Bottom, err = sp.Bottom.Add(o.Bottom); err != nil {
		return Spacing{}, fmt.Errorf("bottom: %w", err)
	}
	if res.Left, err = sp.Left.Add(o.Left); err != nil {
		return Spacing{}, fmt.Errorf("left: %w", err)
	}
	return res, nil
}

// Scale multiplies every side.
func (sp Spacing) Scale(f float64) Spacing {
	return Spacing{Top: sp.Top.Scale(f), Right: sp.Right.Scale(f), Bottom: sp.Bottom.Scale(f), Left: sp.Left.Scale(f)}
}

// String returns the shortest equivalent CSS shorthand.
func (sp Spacing) String() string {
	t, r, b, l := sp.Top.String(), sp.Right.String(), sp.Bottom.String(), sp.Left.String()
	switch {
	case t == r && t == b && t == l:
		return t
	case t == b && r == l:
		return t + " " + r
	case r == l:
		return t + " " + r + " " + b
	}
	return t + " " + r + " " + b + " " + l
}
