package timeutil

import (
	"fmt"
	"strings"
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatClock formats a millisecond count as HH:MM:SS, truncating the
// fraction. Hours keep counting past 24.
func FormatClock(millis int64) string {
	if millis < 0 {
		millis = 0
	}
	total := millis / 1000
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// NullClock is shown before the media duration is known.
const NullClock = "00:00:00"

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds format.
// Uses colon count: 2 colons = H:M:S, 1 colon = M:S, 0 colons = raw seconds.
func ParseTimeToSeconds(timeStr string) (float64, error) {
	timeStr = strings.TrimSpace(timeStr)
	colons := strings.Count(timeStr, ":")

	switch colons {
	case 2:
		var hours, minutes, seconds int
		if n, err := fmt.Sscanf(timeStr, "%d:%d:%d", &hours, &minutes, &seconds); n == 3 && err == nil && valid(minutes, seconds) {
			return float64(hours*3600 + minutes*60 + seconds), nil
		}
	case 1:
		var minutes, seconds int
		if n, err := fmt.Sscanf(timeStr, "%d:%d", &minutes, &seconds); n == 2 && err == nil && minutes >= 0 && seconds >= 0 && seconds < 60 {
			return float64(minutes*60 + seconds), nil
		}
	case 0:
		var secs float64
		if n, err := fmt.Sscanf(timeStr, "%f", &secs); n == 1 && err == nil && secs >= 0 {
			return secs, nil
		}
	}

	return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
}

func valid(minutes, seconds int) bool {
	return minutes >= 0 && minutes < 60 && seconds >= 0 && seconds < 60
}
