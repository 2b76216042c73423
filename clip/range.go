package clip

import "fmt"

// Range is a selection of two normalized positions. Start <= End is not
// guaranteed by construction; Validate enforces it at export time.
type Range struct {
	Start Position
	End   Position
}

// FullRange selects the whole media.
var FullRange = Range{Start: 0, End: Scale}

// Validate rejects out-of-scale values and ranges that are empty or reversed.
func (r Range) Validate() error {
	if !r.Start.Valid() || !r.End.Valid() {
		return fmt.Errorf("clip range [%d, %d] is outside [0, %d]", r.Start, r.End, Scale)
	}
	if r.Start >= r.End {
		return &RangeOrderError{Range: r}
	}
	return nil
}

// Window converts the range into absolute seconds for media of the given duration.
func (r Range) Window(duration float64) TrimWindow {
	return TrimWindow{
		Start: ToAbsolute(r.Start, duration),
		End:   ToAbsolute(r.End, duration),
	}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// TrimWindow is a range expressed in seconds.
type TrimWindow struct {
	Start float64
	End   float64
}

// Length returns the window length in seconds.
func (w TrimWindow) Length() float64 {
	return w.End - w.Start
}
