package ffmpeg

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/clip-trimmer/clip"
)

// probeArgs asks ffprobe for the container duration and the type of every stream.
func probeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration:stream=codec_type",
		"-of", "json",
		path,
	}
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// parseProbe decodes ffprobe's JSON output. Containers that do not record a
// duration report "N/A" or omit the field; that is an error.
func parseProbe(data []byte) (*clip.MediaInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	raw := strings.TrimSpace(out.Format.Duration)
	if raw == "" || raw == "N/A" {
		return nil, fmt.Errorf("no duration in media metadata")
	}
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	info := &clip.MediaInfo{Duration: duration}
	for _, s := range out.Streams {
		switch s.CodecType {
		case "video":
			info.HasVideo = true
		case "audio":
			info.HasAudio = true
		}
	}
	return info, nil
}
