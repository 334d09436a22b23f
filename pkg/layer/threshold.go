package layer

import (
	"cmp"
	"fmt"

	"github.com/mkoenig/pixelgraph/pkg/element"
)

// Ordering selects which comparison outcome a threshold layer keeps.
// The values mirror the three-way comparison: a pixel passes when
// cmp.Compare(pixel, threshold) equals the configured ordering.
type Ordering int

const (
	// Less keeps pixels strictly below the threshold.
	Less Ordering = -1
	// Equal keeps pixels exactly at the threshold.
	Equal Ordering = 0
	// Greater keeps pixels strictly above the threshold.
	Greater Ordering = 1
)

// String returns the ordering's name ("less", "equal", "greater").
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	}
	return fmt.Sprintf("Ordering(%d)", int(o))
}

// ParseOrdering converts an ordering name to its value.
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "less":
		return Less, nil
	case "equal":
		return Equal, nil
	case "greater":
		return Greater, nil
	}
	return 0, fmt.Errorf("unknown ordering %q (want less, equal or greater)", s)
}

// Threshold is a single-input layer that binarizes a grayscale image.
// Each pixel is compared against a fixed scalar threshold; the output bit
// is whether the comparison matched the configured ordering. Dimensions
// are preserved exactly.
type Threshold struct {
	threshold uint8
	ordering  Ordering
	output    *element.Binary
}

// NewThreshold creates a threshold layer with a fixed cutoff and ordering.
func NewThreshold(threshold uint8, ordering Ordering) *Threshold {
	return &Threshold{threshold: threshold, ordering: ordering}
}

// Name returns a display name including the cutoff and ordering.
func (t *Threshold) Name() string {
	return fmt.Sprintf("threshold %s %d", t.ordering, t.threshold)
}

// Kind returns "threshold".
func (t *Threshold) Kind() string { return "threshold" }

// Threshold returns the configured cutoff value.
func (t *Threshold) Threshold() uint8 { return t.threshold }

// Ordering returns the configured comparison ordering.
func (t *Threshold) Ordering() Ordering { return t.ordering }

// Compute downcasts the single input to a grayscale image and binarizes it.
func (t *Threshold) Compute(inputs []Value) (Value, Patch, error) {
	in, err := Input[*element.Gray](inputs, 0)
	if err != nil {
		return nil, nil, err
	}

	pix := make([]bool, len(in.Pix()))
	for i, v := range in.Pix() {
		pix[i] = cmp.Compare(v, t.threshold) == int(t.ordering)
	}
	out, err := element.NewBinary(in.Width(), in.Height(), pix)
	if err != nil {
		return nil, nil, err
	}
	return out, nil, nil
}

// Update commits a binarized image into the cached slot.
func (t *Threshold) Update(output Value, patch Patch) error {
	if patch != nil {
		return ErrUnsupportedPatch
	}
	if output == nil {
		t.output = nil
		return nil
	}
	img, err := As[*element.Binary](output)
	if err != nil {
		return err
	}
	t.output = img
	return nil
}

// Output returns the most recent binary image, or nil before the first
// successful cycle.
func (t *Threshold) Output() Value {
	if t.output == nil {
		return nil
	}
	return t.output
}

var _ Layer = (*Threshold)(nil)
