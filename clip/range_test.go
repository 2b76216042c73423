package clip

import (
	"context"
	"errors"
	"testing"
)

func TestRange_Validate(t *testing.T) {
	tests := []struct {
		name      string
		r         Range
		wantErr   bool
		wantOrder bool
	}{
		{"full range", FullRange, false, false},
		{"inner range", Range{100, 500}, false, false},
		{"reversed", Range{600, 200}, true, true},
		{"zero length", Range{300, 300}, true, true},
		{"negative start", Range{-1, 500}, true, false},
		{"end beyond scale", Range{0, 1001}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			var orderErr *RangeOrderError
			if got := errors.As(err, &orderErr); got != tt.wantOrder {
				t.Errorf("errors.As RangeOrderError = %v, want %v (err: %v)", got, tt.wantOrder, err)
			}
		})
	}
}

func TestRange_Window(t *testing.T) {
	w := Range{100, 500}.Window(100)
	if w.Start != 10 || w.End != 50 {
		t.Errorf("Window = %+v, want {10 50}", w)
	}
	if w.Length() != 40 {
		t.Errorf("Length() = %f, want 40", w.Length())
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source, dir, want string
	}{
		{"/a/b/movie.mp4", "/out", "/out/movie_clip.mp4"},
		{"/a/b/holiday.final.mkv", "/out", "/out/holiday.final_clip.mp4"},
		{"/a/b/noext", "/tmp/clips", "/tmp/clips/noext_clip.mp4"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.source, tt.dir); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.source, tt.dir, got, tt.want)
		}
	}
}

func TestDefaultOutputDir(t *testing.T) {
	if got := DefaultOutputDir("/a/b/movie.mp4"); got != "/a/b" {
		t.Errorf("DefaultOutputDir = %q, want /a/b", got)
	}
}

func TestErrorKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindNone},
		{"range", &RangeOrderError{Range: Range{5, 1}}, KindRangeOrder},
		{"input", &InputError{Path: "/x", Reason: "missing"}, KindInput},
		{"probe", &ProbeError{Path: "/x", Err: errors.New("bad")}, KindProbe},
		{"encode", &EncodeError{Output: "/y", Err: errors.New("disk full")}, KindEncode},
		{"cancelled encode", &EncodeError{Output: "/y", Err: context.Canceled}, KindCancelled},
		{"unclassified", errors.New("boom"), KindEncode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKindOf(tt.err); got != tt.want {
				t.Errorf("ErrorKindOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
