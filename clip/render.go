package clip

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// MediaInfo is what a probe reports about a source file.
type MediaInfo struct {
	Duration float64
	HasVideo bool
	HasAudio bool
}

// TrimPlan describes a single export: the window of Source to cut and where
// to write it. Audio is false when the source has no audio stream.
type TrimPlan struct {
	Source string
	Output string
	Window TrimWindow
	Audio  bool
}

// Encoder is the external media backend used to probe sources and cut clips.
// Encode must overwrite Output if it exists.
type Encoder interface {
	Probe(ctx context.Context, path string) (*MediaInfo, error)
	Encode(ctx context.Context, plan TrimPlan, onProgress func(percent float64)) error
}

// RenderRequest is the snapshot taken when the user saves. It is passed by
// value and never changed afterwards.
type RenderRequest struct {
	Source    string
	OutputDir string
	Range     Range
}

// Result describes a finished clip.
type Result struct {
	OutputPath string
	Window     TrimWindow
	Duration   float64
}

// Renderer turns a RenderRequest into a clip file. Render blocks for the
// whole encode and is meant to run off the interactive loop.
type Renderer struct {
	encoder Encoder
	logger  *zap.Logger
}

// NewRenderer creates a Renderer backed by enc.
func NewRenderer(enc Encoder, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{encoder: enc, logger: logger}
}

// Render probes the source, converts the normalized range to seconds and
// encodes the trimmed clip. The range is checked before anything touches the
// source, and the probe must succeed before the encoder is invoked.
func (r *Renderer) Render(ctx context.Context, req RenderRequest, onProgress func(percent float64)) (Result, error) {
	if err := req.Range.Validate(); err != nil {
		return Result{}, err
	}
	if err := checkOutputDir(req.OutputDir); err != nil {
		return Result{}, err
	}

	info, err := r.encoder.Probe(ctx, req.Source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		var probeErr *ProbeError
		if errors.As(err, &probeErr) {
			return Result{}, err
		}
		return Result{}, &ProbeError{Path: req.Source, Err: err}
	}
	if info == nil || info.Duration <= 0 {
		return Result{}, &ProbeError{Path: req.Source, Err: errors.New("no duration in media metadata")}
	}
	if !info.HasVideo {
		return Result{}, &ProbeError{Path: req.Source, Err: errors.New("no video stream")}
	}

	plan := TrimPlan{
		Source: req.Source,
		Output: OutputPath(req.Source, req.OutputDir),
		Window: req.Range.Window(info.Duration),
		Audio:  info.HasAudio,
	}

	r.logger.Info("rendering clip",
		zap.String("source", plan.Source),
		zap.String("output", plan.Output),
		zap.String("range", req.Range.String()),
		zap.Float64("duration", info.Duration),
		zap.Float64("start", plan.Window.Start),
		zap.Float64("end", plan.Window.End),
		zap.Bool("audio", plan.Audio),
	)

	if err := ctx.Err(); err != nil {
		return Result{}, &EncodeError{Output: plan.Output, Err: err}
	}

	if err := r.encoder.Encode(ctx, plan, onProgress); err != nil {
		// A killed encoder reports its exit status, not the cancellation.
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		_ = os.Remove(plan.Output)
		var encodeErr *EncodeError
		if errors.As(err, &encodeErr) {
			return Result{}, err
		}
		return Result{}, &EncodeError{Output: plan.Output, Err: err}
	}

	return Result{OutputPath: plan.Output, Window: plan.Window, Duration: info.Duration}, nil
}

// checkOutputDir verifies that dir exists, is a directory, and accepts new files.
func checkOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return &InputError{Path: dir, Reason: "output directory not accessible", Err: err}
	}
	if !info.IsDir() {
		return &InputError{Path: dir, Reason: "output path is not a directory"}
	}

	probe, err := os.CreateTemp(dir, ".clip-trimmer-*")
	if err != nil {
		return &InputError{Path: dir, Reason: "output directory not writable", Err: err}
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		return &InputError{Path: dir, Reason: "output directory not writable", Err: err}
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("remove write probe: %w", err)
	}
	return nil
}
