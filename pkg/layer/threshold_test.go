package layer

import (
	"errors"
	"testing"

	"github.com/mkoenig/pixelgraph/pkg/element"
)

func TestThreshold(t *testing.T) {
	in, err := element.NewGray(5, 1, []uint8{0, 99, 100, 101, 255})
	if err != nil {
		t.Fatalf("NewGray error: %v", err)
	}

	tests := []struct {
		name      string
		threshold uint8
		ordering  Ordering
		want      []bool
	}{
		{name: "Greater", threshold: 100, ordering: Greater, want: []bool{false, false, false, true, true}},
		{name: "Less", threshold: 100, ordering: Less, want: []bool{true, true, false, false, false}},
		{name: "Equal", threshold: 100, ordering: Equal, want: []bool{false, false, true, false, false}},
		{name: "GreaterThanMax", threshold: 255, ordering: Greater, want: []bool{false, false, false, false, false}},
		{name: "LessThanMin", threshold: 0, ordering: Less, want: []bool{false, false, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runCycle(t, NewThreshold(tt.threshold, tt.ordering), []Value{in})
			bin, ok := out.(*element.Binary)
			if !ok {
				t.Fatalf("output type = %T, want *element.Binary", out)
			}
			if bin.Width() != in.Width() || bin.Height() != in.Height() {
				t.Errorf("dimensions = %dx%d, want %dx%d",
					bin.Width(), bin.Height(), in.Width(), in.Height())
			}
			for i, got := range bin.Pix() {
				if got != tt.want[i] {
					t.Errorf("pixel %d = %v, want %v", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestThresholdRequiresGrayInput(t *testing.T) {
	rgba, err := element.NewRGBA(1, 1, []element.RGBAPixel{{R: 1}})
	if err != nil {
		t.Fatalf("NewRGBA error: %v", err)
	}

	th := NewThreshold(100, Greater)
	_, _, err = th.Compute([]Value{rgba})
	var tme *TypeMismatchError
	if !errors.As(err, &tme) {
		t.Fatalf("error = %v, want *TypeMismatchError", err)
	}

	_, _, err = th.Compute([]Value{nil})
	var mie *MissingInputError
	if !errors.As(err, &mie) {
		t.Fatalf("error = %v, want *MissingInputError", err)
	}
}

func TestParseOrdering(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Ordering
	}{
		{in: "less", want: Less},
		{in: "equal", want: Equal},
		{in: "greater", want: Greater},
	} {
		got, err := ParseOrdering(tt.in)
		if err != nil {
			t.Errorf("ParseOrdering(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOrdering(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}

	if _, err := ParseOrdering("sideways"); err == nil {
		t.Error("ParseOrdering accepted an unknown ordering")
	}
}
