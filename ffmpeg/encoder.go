package ffmpeg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/deps"
)

// maxStderr bounds how much ffmpeg diagnostic output ends up in an error.
const maxStderr = 2048

// Encoder shells out to ffprobe and ffmpeg. It implements clip.Encoder.
type Encoder struct {
	ffmpegPath  string
	ffprobePath string
	logger      *zap.Logger
}

// NewEncoder creates an Encoder. Empty paths mean "look up in PATH".
func NewEncoder(ffmpegPath, ffprobePath string, logger *zap.Logger) *Encoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Encoder{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath, logger: logger}
}

var _ clip.Encoder = (*Encoder)(nil)

// Probe reads the duration and stream layout of path.
func (e *Encoder) Probe(ctx context.Context, path string) (*clip.MediaInfo, error) {
	bin, err := deps.CheckFfprobe(e.ffprobePath)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, probeArgs(path)...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w: %s", err, tail(stderr.String()))
	}

	info, err := parseProbe(output)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("probed source",
		zap.String("path", path),
		zap.Float64("duration", info.Duration),
		zap.Bool("video", info.HasVideo),
		zap.Bool("audio", info.HasAudio),
	)
	return info, nil
}

// Encode runs ffmpeg for plan and reports progress as a percentage of the
// clip length. Cancelling ctx kills ffmpeg.
func (e *Encoder) Encode(ctx context.Context, plan clip.TrimPlan, onProgress func(percent float64)) error {
	bin, err := deps.CheckFfmpeg(e.ffmpegPath)
	if err != nil {
		return err
	}

	// -stats_period 0.5 outputs progress every 0.5 seconds
	args := append([]string{"-hide_banner", "-progress", "pipe:1", "-stats_period", "0.5", "-nostats"}, MuxArgs(plan)...)
	e.logger.Debug("running ffmpeg", zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, bin, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	report(onProgress, 0)
	readProgress(stdout, int64(plan.Window.Length()*1e6), func(p float64) { report(onProgress, p) })

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, tail(stderr.String()))
	}
	return nil
}

func report(onProgress func(float64), percent float64) {
	if onProgress != nil {
		onProgress(percent)
	}
}

// readProgress parses ffmpeg's -progress key=value stream until EOF.
// out_time_us can be "N/A" at the start, which is skipped. progress=end
// reports 100.
func readProgress(r io.Reader, durationUs int64, onPercent func(float64)) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "out_time_us="):
			timeStr := strings.TrimPrefix(line, "out_time_us=")
			if timeStr == "N/A" {
				continue
			}
			timeUs, err := strconv.ParseInt(timeStr, 10, 64)
			if err != nil || durationUs <= 0 || timeUs < 0 {
				continue
			}
			percent := float64(timeUs) / float64(durationUs) * 100
			if percent > 100 {
				percent = 100
			}
			onPercent(percent)
		case line == "progress=end":
			onPercent(100)
		}
	}
}

// tail keeps the last maxStderr bytes of s.
func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxStderr {
		return s
	}
	return "..." + s[len(s)-maxStderr:]
}
