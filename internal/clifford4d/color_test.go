package clifford4d

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseColorScheme(t *testing.T) {
	for _, in := range []string{"cyber", "Thermal", " MONOCHROME "} {
		if _, err := ParseColorScheme(in); err != nil {
			t.Fatalf("ParseColorScheme(%q): %v", in, err)
		}
	}
	if _, err := ParseColorScheme("rainbow"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSchemeEndpoints(t *testing.T) {
	a, b, err := SchemeThermal.Endpoints()
	if err != nil {
		t.Fatal(err)
	}
	if a != (RGB{1, 170.0 / 255, 0}) || b != (RGB{0, 0, 1}) {
		t.Fatalf("thermal endpoints: %+v %+v", a, b)
	}
	a, b, _ = SchemeMonochrome.Endpoints()
	if a != (RGB{1, 1, 1}) || math.Abs(b.R-0.2) > 1e-12 {
		t.Fatalf("monochrome endpoints: %+v %+v", a, b)
	}
	if _, _, err := ColorScheme("").Endpoints(); err == nil {
		t.Fatal("expected error for empty scheme")
	}
}

func TestRGBLerpAndClamp(t *testing.T) {
	a, b := RGB{0, 1, 1}, RGB{1, 0, 1}
	if a.Lerp(b, 0) != a || a.Lerp(b, 1) != b {
		t.Fatal("lerp endpoints wrong")
	}
	if m := a.Lerp(b, 0.5); m != (RGB{0.5, 0.5, 1}) {
		t.Fatalf("lerp midpoint: %+v", m)
	}
	if c := (RGB{-0.1, 0.5, 1.2}).clamp01(); c != (RGB{0, 0.5, 1}) {
		t.Fatalf("clamp01: %+v", c)
	}
}

func TestColorSchemesAllHaveEndpoints(t *testing.T) {
	if len(ColorSchemes) != 3 {
		t.Fatalf("want 3 schemes, got %v", ColorSchemes)
	}
	for _, cs := range ColorSchemes {
		if _, _, err := cs.Endpoints(); err != nil {
			t.Fatalf("%s: %v", cs, err)
		}
		if got, err := ParseColorScheme(" " + strings.ToUpper(string(cs)) + " "); err != nil || got != cs {
			t.Fatalf("ParseColorScheme round trip for %s: %v %v", cs, got, err)
		}
	}
}
