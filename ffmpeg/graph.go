package ffmpeg

import (
	"fmt"
	"strings"

	"github.com/user/clip-trimmer/clip"
)

// Stream selects which elementary stream of input 0 a filter applies to.
type Stream string

const (
	Video Stream = "v"
	Audio Stream = "a"
)

// formatSeconds renders a timestamp for a filter option with millisecond precision.
func formatSeconds(s float64) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%.3f", s)
}

// Trim returns the filter chain that keeps [start, end) seconds of stream
// and rebases its timestamps so the clip starts at zero. The chain's output
// pad is labelled with the stream letter.
//
// Example: [0:v]trim=start=10.000:end=50.000,setpts=PTS-STARTPTS[v]
func Trim(stream Stream, start, end float64) string {
	trim, setpts := "trim", "setpts"
	if stream == Audio {
		trim, setpts = "atrim", "asetpts"
	}
	return fmt.Sprintf("[0:%s]%s=start=%s:end=%s,%s=PTS-STARTPTS[%s]",
		stream, trim, formatSeconds(start), formatSeconds(end), setpts, stream)
}

// FilterGraph joins the trim chains for every stream the plan keeps.
func FilterGraph(plan clip.TrimPlan) string {
	chains := []string{Trim(Video, plan.Window.Start, plan.Window.End)}
	if plan.Audio {
		chains = append(chains, Trim(Audio, plan.Window.Start, plan.Window.End))
	}
	return strings.Join(chains, ";")
}

// MuxArgs builds the ffmpeg arguments that apply the plan's filter graph and
// mux the trimmed streams into plan.Output, overwriting it if present.
func MuxArgs(plan clip.TrimPlan) []string {
	args := []string{
		"-y",
		"-i", plan.Source,
		"-filter_complex", FilterGraph(plan),
		"-map", "[" + string(Video) + "]",
	}
	if plan.Audio {
		args = append(args, "-map", "["+string(Audio)+"]")
	}
	return append(args, plan.Output)
}
