package clip

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies why a render did not produce a clip.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInput
	KindProbe
	KindEncode
	KindRangeOrder
	KindCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInput:
		return "input"
	case KindProbe:
		return "probe"
	case KindEncode:
		return "encode"
	case KindRangeOrder:
		return "range"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrJobInFlight is returned when a render is dispatched while another is still running.
var ErrJobInFlight = errors.New("a render is already in progress")

// InputError reports an unusable source file or output directory.
type InputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Err }

// ProbeError reports that the source duration could not be determined.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// EncodeError reports a failed trim or mux.
type EncodeError struct {
	Output string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Output, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// RangeOrderError reports a selection whose start is not before its end.
type RangeOrderError struct {
	Range Range
}

func (e *RangeOrderError) Error() string {
	if e.Range.Start == e.Range.End {
		return fmt.Sprintf("clip range is empty (start and end are both %d)", e.Range.Start)
	}
	return fmt.Sprintf("clip start (%d) must be before clip end (%d)", e.Range.Start, e.Range.End)
}

// ErrorKindOf classifies err. Cancellation wins over the wrapping error type
// so a cancelled encode is not reported as an encoder fault.
func ErrorKindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}

	var rangeErr *RangeOrderError
	var inputErr *InputError
	var probeErr *ProbeError
	var encodeErr *EncodeError
	switch {
	case errors.As(err, &rangeErr):
		return KindRangeOrder
	case errors.As(err, &inputErr):
		return KindInput
	case errors.As(err, &probeErr):
		return KindProbe
	case errors.As(err, &encodeErr):
		return KindEncode
	}
	return KindEncode
}
