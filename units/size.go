package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is a CSS length unit.
type Unit int

const (
	UnitNone Unit = iota // unitless number
	UnitPx
	UnitEm
	UnitRem
	UnitPercent
	UnitVw
	UnitVh
	UnitPt
	UnitFr
	UnitAuto // keyword, carries no value
)

var unitNames = [...]string{
	UnitNone:    "",
	UnitPx:      "px",
	UnitEm:      "em",
	UnitRem:     "rem",
	UnitPercent: "%",
	UnitVw:      "vw",
	UnitVh:      "vh",
	UnitPt:      "pt",
	UnitFr:      "fr",
	UnitAuto:    "",
}

// String returns the CSS suffix of the unit. UnitAuto has none.
func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return ""
	}
	return unitNames[u]
}

// ParseUnit maps a CSS unit suffix to Unit.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for u, name := range unitNames {
		if name == s {
			return Unit(u), nil
		}
	}
	return UnitNone, fmt.Errorf("unit %q: %w", s, ErrInvalidArgument)
}

// Size is an immutable numeric CSS length.
type Size struct {
	Value float64
	Unit  Unit
}

func Px(v float64) Size      { return Size{Value: v, Unit: UnitPx} }
func Em(v float64) Size      { return Size{Value: v, Unit: UnitEm} }
func Rem(v float64) Size     { return Size{Value: v, Unit: UnitRem} }
func Percent(v float64) Size { return Size{Value: v, Unit: UnitPercent} }
func Number(v float64) Size  { return Size{Value: v} }

// Auto is the "auto" keyword. It takes part in no arithmetic.
func Auto() Size { return Size{Unit: UnitAuto} }

// IsAuto reports whether s is the "auto" keyword.
func (s Size) IsAuto() bool {
	return s.Unit == UnitAuto
}

// ParseSize parses literals like "12px", "1.5em", "50%", "0", "-2rem" or
// "auto".
func ParseSize(s string) (Size, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Size{}, fmt.Errorf("size %q: %w", s, ErrInvalidArgument)
	}
	if strings.EqualFold(raw, "auto") {
		return Auto(), nil
	}

	end := 0
	for end < len(raw) {
		c := raw[end]
		if (c >= '0' && c <= '9') || c == '.' || ((c == '-' || c == '+') && end == 0) {
			end++
			continue
		}
		break
	}

	v, err := strconv.ParseFloat(raw[:end], 64)
	if err != nil {
		return Size{}, fmt.Errorf("size %q: %w", s, ErrInvalidArgument)
	}
	u, err := ParseUnit(raw[end:])
	if err != nil {
		return Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	return Size{Value: v, Unit: u}, nil
}

// MustSize is like ParseSize but panics on malformed input.
func MustSize(s string) Size {
	sz, err := ParseSize(s)
	if err != nil {
		panic(err)
	}
	return sz
}

// IsZero reports whether the value is zero regardless of unit. Auto is
// never zero.
func (s Size) IsZero() bool {
	return !s.IsAuto() && s.Value == 0
}

// compatible returns the unit the result of combining s and o should carry.
// Zero values adopt the unit of the other operand.
func (s Size) compatible(o Size) (Unit, error) {
	switch {
	case s.IsAuto() || o.IsAuto():
	case s.Unit == o.Unit:
		return s.Unit, nil
	case s.IsZero():
		return o.Unit, nil
	case o.IsZero():
		return s.Unit, nil
	}
	return UnitNone, fmt.Errorf("%s and %s: %w", s, o, ErrUnitMismatch)
}

// Add returns s + o.
func (s Size) Add(o Size) (Size, error) {
	u, err := s.compatible(o)
	if err != nil {
		return Size{}, err
	}
	return Size{Value: s.Value + o.Value, Unit: u}, nil
}

// Sub returns s - o.
func (s Size) Sub(o Size) (Size, error) {
	return s.Add(o.Negate())
}

// Scale multiplies the value keeping the unit. Auto stays auto.
func (s Size) Scale(f float64) Size {
	return Size{Value: s.Value * f, Unit: s.Unit}
}

// Negate flips the sign.
func (s Size) Negate() Size {
	return s.Scale(-1)
}

// CompareTo returns -1, 0 or 1. Mismatched units cannot be compared.
func (s Size) CompareTo(o Size) (int, error) {
	if _, err := s.compatible(o); err != nil {
		return 0, err
	}
	switch {
	case s.Value < o.Value:
		return -1, nil
	case s.Value > o.Value:
		return 1, nil
	}
	return 0, nil
}

// String returns CSS text. Zero is always rendered unitless.
func (s Size) String() string {
	if s.IsAuto() {
		return "auto"
	}
	if s.IsZero() {
		return "0"
	}
	v := math.Round(s.Value*10000) / 10000
	return strconv.FormatFloat(v, 'f', -1, 64) + s.Unit.String()
}
