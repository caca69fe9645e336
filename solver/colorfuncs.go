package solver

import (
	"math"

	"github.com/csspp/csspp/cssperr"
	"github.com/csspp/csspp/value"
)

// Color manipulation built-ins, adapted from functions/colors.go's
// Color.Lighten/Darken/Saturate/Desaturate/Spin/Mix/Greyscale. The original
// operated on a float64 RGBA struct parsed back out of rendered CSS text;
// here they operate directly on value.Color (already 0-255 int channels)
// and round-trip through value.Color.HSL/ColorFromHSL instead of a
// second private HSL conversion.

func registerColorFuncs(r *Registry) {
	r.Register("lighten", 2, lightenFunc)
	r.Register("darken", 2, darkenFunc)
	r.Register("saturate", 2, saturateFunc)
	r.Register("desaturate", 2, desaturateFunc)
	r.Register("spin", 2, spinFunc)
	r.Register("mix", 3, mixFunc)
	r.Register("greyscale", 1, greyscaleFunc)
}

func lightenFunc(args []value.Value) (value.Value, error) {
	return adjustLightness("lighten", args, func(l, amount float64) float64 {
		return math.Min(1, l+amount)
	})
}

func darkenFunc(args []value.Value) (value.Value, error) {
	return adjustLightness("darken", args, func(l, amount float64) float64 {
		return math.Max(0, l-amount)
	})
}

func adjustLightness(name string, args []value.Value, adjust func(l, amount float64) float64) (value.Value, error) {
	c, ok := args[0].(value.Color)
	if !ok {
		return nil, &cssperr.ValueError{Func: name, Detail: "first argument must be a color"}
	}
	amount, ok := percentAmount(args[1])
	if !ok {
		return nil, &cssperr.ValueError{Func: name, Detail: "second argument must be a percentage"}
	}
	h, s, l := c.HSL()
	return value.ColorFromHSL(h, s, adjust(l, amount), c.A), nil
}

func saturateFunc(args []value.Value) (value.Value, error) {
	return adjustSaturation("saturate", args, func(s, amount float64) float64 {
		return math.Min(1, s+amount)
	})
}

func desaturateFunc(args []value.Value) (value.Value, error) {
	return adjustSaturation("desaturate", args, func(s, amount float64) float64 {
		return math.Max(0, s-amount)
	})
}

func adjustSaturation(name string, args []value.Value, adjust func(s, amount float64) float64) (value.Value, error) {
	c, ok := args[0].(value.Color)
	if !ok {
		return nil, &cssperr.ValueError{Func: name, Detail: "first argument must be a color"}
	}
	amount, ok := percentAmount(args[1])
	if !ok {
		return nil, &cssperr.ValueError{Func: name, Detail: "second argument must be a percentage"}
	}
	h, s, l := c.HSL()
	return value.ColorFromHSL(h, adjust(s, amount), l, c.A), nil
}

func spinFunc(args []value.Value) (value.Value, error) {
	c, ok := args[0].(value.Color)
	if !ok {
		return nil, &cssperr.ValueError{Func: "spin", Detail: "first argument must be a color"}
	}
	degrees, ok := numericN(args[1])
	if !ok {
		return nil, &cssperr.ValueError{Func: "spin", Detail: "second argument must be a number"}
	}
	h, s, l := c.HSL()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return value.ColorFromHSL(h, s, l, c.A), nil
}

func mixFunc(args []value.Value) (value.Value, error) {
	c1, ok := args[0].(value.Color)
	if !ok {
		return nil, &cssperr.ValueError{Func: "mix", Detail: "first argument must be a color"}
	}
	c2, ok := args[1].(value.Color)
	if !ok {
		return nil, &cssperr.ValueError{Func: "mix", Detail: "second argument must be a color"}
	}
	weight, ok := percentAmount(args[2])
	if !ok {
		return nil, &cssperr.ValueError{Func: "mix", Detail: "third argument must be a percentage"}
	}
	weight = clamp01(weight)
	return value.Color{
		R:      blendChannel(c1.R, c2.R, weight),
		G:      blendChannel(c1.G, c2.G, weight),
		B:      blendChannel(c1.B, c2.B, weight),
		A:      blendChannel(c1.A, c2.A, weight),
		Format: c1.Format,
	}, nil
}

func blendChannel(a, b int, weight float64) int {
	return int(math.Round(float64(a)*(1-weight) + float64(b)*weight))
}

func greyscaleFunc(args []value.Value) (value.Value, error) {
	c, ok := args[0].(value.Color)
	if !ok {
		return nil, &cssperr.ValueError{Func: "greyscale", Detail: "argument must be a color"}
	}
	_, _, l := c.HSL()
	return value.ColorFromHSL(0, 0, l, c.A), nil
}

func percentAmount(v value.Value) (float64, bool) {
	p, ok := v.(value.Percentage)
	if !ok {
		return 0, false
	}
	return p.N / 100, true
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
