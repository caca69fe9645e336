// Package value implements the typed value algebra of the CSS-superset
// arithmetic: Number, Percentage, Dimension, and Color, with CSS-aware
// unit conversion and the restricted binary operator table. Replaces
// string-based arithmetic (as in renderer/renderer_math.go,
// functions/math.go) with an exact typed implementation, since
// unit-conversion and TypeError invariants cannot be satisfied by string
// coercion.
package value

import (
	"fmt"
	"math"
)

// Value is any value-algebra result: Number, Percentage, Dimension, or Color.
type Value interface {
	// IsNegative reports whether the value's scalar component is negative.
	IsNegative() bool
	// Negate returns the unary-minus of the value.
	Negate() Value
	fmt.Stringer
}

// Number is a dimensionless real scalar.
type Number struct{ N float64 }

func (n Number) IsNegative() bool { return n.N < 0 }
func (n Number) Negate() Value    { return Number{N: -n.N} }
func (n Number) String() string   { return formatFloat(n.N) }

// Percentage stores its face value: Percentage{N: 25} means "25%".
type Percentage struct{ N float64 }

func (p Percentage) IsNegative() bool { return p.N < 0 }
func (p Percentage) Negate() Value    { return Percentage{N: -p.N} }
func (p Percentage) String() string   { return formatFloat(p.N) + "%" }

// Dimension is a scalar paired with a lowercase CSS unit identifier.
type Dimension struct {
	N    float64
	Unit string
}

func (d Dimension) IsNegative() bool { return d.N < 0 }
func (d Dimension) Negate() Value    { return Dimension{N: -d.N, Unit: d.Unit} }
func (d Dimension) String() string   { return formatFloat(d.N) + d.Unit }

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	s := fmt.Sprintf("%g", f)
	return s
}

// Color is stored canonically as RGBA with an 0-255 range per channel and
// a preferred emission format.
type Color struct {
	R, G, B, A int // 0..255
	Format     ColorFormat
}

// ColorFormat selects how the emitter prefers to render a Color.
type ColorFormat int

const (
	FormatHex ColorFormat = iota
	FormatRGB
	FormatHSL
	FormatAny
)

func (c Color) IsNegative() bool { return false }
func (c Color) Negate() Value    { return c }
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// HSL returns the color's hue (0..360), saturation and lightness
// (0..1), computed on demand from the canonical RGBA storage.
func (c Color) HSL() (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l
}

// ColorFromHSL constructs a Color from hue (degrees, reduced mod 360),
// saturation and lightness (0..1 fractions).
func ColorFromHSL(h, s, l float64, a int) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if s == 0 {
		v := int(math.Round(l * 255))
		return Color{R: v, G: v, B: v, A: a, Format: FormatHSL}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r := hueToRGB(p, q, h/360+1.0/3)
	g := hueToRGB(p, q, h/360)
	b := hueToRGB(p, q, h/360-1.0/3)
	return Color{
		R:      int(math.Round(r * 255)),
		G:      int(math.Round(g * 255)),
		B:      int(math.Round(b * 255)),
		A:      a,
		Format: FormatHSL,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// clamp255 clamps an int to the 0..255 channel range.
func clamp255(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
