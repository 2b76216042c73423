package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/pkg/timeutil"
)

var renderCmd = &cobra.Command{
	Use:   "render <video-file>",
	Short: "Render a clip without opening the player",
	Long: `Render a clip from the command line. Each end of the range is given
either on the 0-1000 scale (--start, --end) or as a time (--from, --to in
HH:MM:SS, MM:SS or seconds). Times are rounded to the nearest 1/1000 of the
video, like a handle move in the interactive trimmer.

Examples:
  clip-trimmer render match.mp4 --start 100 --end 500
  clip-trimmer render match.mp4 --from 1:30 --to 2:45 -o clips/
  clip-trimmer render match.mp4 --from 0:10 --end 500`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	videoPath, err := resolveSource(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rng, err := renderRange(ctx, cmd, a.encoder, videoPath)
	if err != nil {
		return err
	}

	req := clip.RenderRequest{
		Source:    videoPath,
		OutputDir: a.cfg.ResolveOutputDir(videoPath),
		Range:     rng,
	}
	job, err := a.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Rendering %s %s -> %s\n", videoPath, rng, clip.OutputPath(req.Source, req.OutputDir))
	for {
		select {
		case pct := <-job.Progress():
			fmt.Printf("\r  %3.0f%%", pct)
		case out := <-job.Done():
			fmt.Println()
			if !out.Succeeded() {
				return out.Err
			}
			printSaved(out)
			return nil
		}
	}
}

// renderRange builds the clip range from the position flags, then replaces
// either end with --from or --to when given. Time flags need the video
// duration, which is probed.
func renderRange(ctx context.Context, cmd *cobra.Command, prober clip.Encoder, videoPath string) (clip.Range, error) {
	flags := cmd.Flags()
	start, _ := flags.GetInt("start")
	end, _ := flags.GetInt("end")
	rng := clip.Range{Start: clip.Position(start), End: clip.Position(end)}

	if !flags.Changed("from") && !flags.Changed("to") {
		return rng, rng.Validate()
	}

	info, err := prober.Probe(ctx, videoPath)
	if err != nil {
		return clip.Range{}, &clip.ProbeError{Path: videoPath, Err: err}
	}
	if info.Duration <= 0 {
		return clip.Range{}, &clip.ProbeError{Path: videoPath, Err: fmt.Errorf("no duration in media metadata")}
	}

	if from, _ := flags.GetString("from"); flags.Changed("from") {
		if rng.Start, err = timeToPosition(from, info.Duration); err != nil {
			return clip.Range{}, fmt.Errorf("--from: %w", err)
		}
	}
	if to, _ := flags.GetString("to"); flags.Changed("to") {
		if rng.End, err = timeToPosition(to, info.Duration); err != nil {
			return clip.Range{}, fmt.Errorf("--to: %w", err)
		}
	}
	return rng, rng.Validate()
}

// timeToPosition converts a time string into the nearest position on the
// 0-1000 scale of a video lasting duration seconds.
func timeToPosition(s string, duration float64) (clip.Position, error) {
	secs, err := timeutil.ParseTimeToSeconds(s)
	if err != nil {
		return 0, err
	}
	if secs > duration {
		return 0, fmt.Errorf("%s is past the end of the video (%s)", s, timeutil.FormatTime(duration))
	}
	return clip.Position(math.Round(secs / duration * clip.Scale)).Clamp(), nil
}

// addRangeFlags registers the clip range flags. Each end takes either a
// position or a time, and the two ends may mix.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("start", 0, "Clip start on the 0-1000 scale")
	cmd.Flags().Int("end", clip.Scale, "Clip end on the 0-1000 scale")
	cmd.Flags().String("from", "", "Clip start time (HH:MM:SS, MM:SS or seconds)")
	cmd.Flags().String("to", "", "Clip end time (HH:MM:SS, MM:SS or seconds)")
	cmd.MarkFlagsMutuallyExclusive("start", "from")
	cmd.MarkFlagsMutuallyExclusive("end", "to")
}

func init() {
	addRangeFlags(renderCmd)
}
