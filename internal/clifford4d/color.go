package clifford4d

import (
	"fmt"
	"slices"
	"strings"
)

// RGB stores color components; each should be in [0,1].
type RGB struct {
	R, G, B Real
}

// clamp01 clamps each channel to [0,1].
func (c RGB) clamp01() RGB {
	cl := func(x Real) Real {
		if x < 0 {
			return 0
		}
		if x > 1 {
			return 1
		}
		return x
	}
	return RGB{cl(c.R), cl(c.G), cl(c.B)}
}

// Lerp moves from c towards d by t (t=0 -> c, t=1 -> d).
func (c RGB) Lerp(d RGB, t Real) RGB {
	return RGB{
		c.R + (d.R-c.R)*t,
		c.G + (d.G-c.G)*t,
		c.B + (d.B-c.B)*t,
	}
}

func rgb8(r, g, b uint8) RGB {
	return RGB{Real(r) / 255, Real(g) / 255, Real(b) / 255}
}

// ColorScheme selects the two endpoint colors of the per-point gradient.
type ColorScheme string

const (
	SchemeCyber      ColorScheme = "cyber"
	SchemeThermal    ColorScheme = "thermal"
	SchemeMonochrome ColorScheme = "monochrome"
)

// ColorSchemes lists the supported schemes in display order.
var ColorSchemes = []ColorScheme{SchemeCyber, SchemeThermal, SchemeMonochrome}

// ParseColorScheme accepts a scheme name in any letter case.
func ParseColorScheme(s string) (ColorScheme, error) {
	cs := ColorScheme(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(ColorSchemes, cs) {
		return "", fmt.Errorf("%w: unknown color scheme %q", ErrInvalidArgument, s)
	}
	return cs, nil
}

// Endpoints returns the gradient colors A and B of the scheme.
func (cs ColorScheme) Endpoints() (a, b RGB, err error) {
	a, b, ok := cs.endpoints()
	if !ok {
		return RGB{}, RGB{}, fmt.Errorf("%w: unknown color scheme %q", ErrInvalidArgument, string(cs))
	}
	return a, b, nil
}

func (cs ColorScheme) endpoints() (RGB, RGB, bool) {
	switch cs {
	case SchemeCyber:
		return rgb8(0, 255, 255), rgb8(255, 0, 255), true
	case SchemeThermal:
		return rgb8(255, 170, 0), rgb8(0, 0, 255), true
	case SchemeMonochrome:
		return rgb8(255, 255, 255), rgb8(51, 51, 51), true
	}
	return RGB{}, RGB{}, false
}
