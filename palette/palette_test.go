package palette

import (
	"math"
	"testing"
)

func colorsClose(a, b Color) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func TestColorForZeroIsNeutral(t *testing.T) {
	if got := ColorFor(0); got != Neutral {
		t.Errorf("ColorFor(0) = %+v, want neutral %+v", got, Neutral)
	}
}

func TestColorForSymmetry(t *testing.T) {
	swapped := DefaultMapper()
	swapped.Positive, swapped.Negative = swapped.Negative, swapped.Positive

	for _, c := range []float64{0.1, 1, 2.5, 5, 9.99, 10, 42, 1e6} {
		if got, want := ColorFor(c), swapped.For(-c); !colorsClose(got, want) {
			t.Errorf("ColorFor(%v) = %+v, swapped For(%v) = %+v", c, got, -c, want)
		}
		if got, want := ColorFor(-c), swapped.For(c); !colorsClose(got, want) {
			t.Errorf("ColorFor(%v) = %+v, swapped For(%v) = %+v", -c, got, c, want)
		}
	}
}

func TestColorForSaturates(t *testing.T) {
	tests := []struct {
		change float64
		want   Color
	}{
		{10, Positive},
		{10.5, Positive},
		{250, Positive},
		{-10, Negative},
		{-99, Negative},
	}

	for _, tt := range tests {
		if got := ColorFor(tt.change); !colorsClose(got, tt.want) {
			t.Errorf("ColorFor(%v) = %+v, want %+v", tt.change, got, tt.want)
		}
	}
}

func TestColorForHalfwayToGreen(t *testing.T) {
	got := ColorFor(5)
	want := Color{
		R: (169 + (50-169)*0.5) / 255.0,
		G: (169 + (205-169)*0.5) / 255.0,
		B: (169 + (50-169)*0.5) / 255.0,
	}
	if !colorsClose(got, want) {
		t.Errorf("ColorFor(5) = %+v, want %+v", got, want)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#A9A9A9", "#A9A9A9", false},
		{"32cd32", "#32CD32", false},
		{"#fff", "#FFFFFF", false},
		{"#12345", "", true},
		{"#GGGGGG", "", true},
	}

	for _, tt := range tests {
		c, err := ParseHex(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHex(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHex(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got := c.Hex(); got != tt.want {
			t.Errorf("ParseHex(%q).Hex() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMapperZeroMaxChangeFallsBack(t *testing.T) {
	m := DefaultMapper()
	m.MaxChange = 0
	if got := m.For(10); !colorsClose(got, Positive) {
		t.Errorf("For(10) with zero MaxChange = %+v, want %+v", got, Positive)
	}
}
