package mediautil

import (
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/clip-trimmer/clip"
)

// videoTypes maps common container extensions to their media type. Go's
// built-in mime table has no video entries, and the system table is not
// always installed.
var videoTypes = map[string]string{
	".3gp":  "video/3gpp",
	".avi":  "video/x-msvideo",
	".flv":  "video/x-flv",
	".m2ts": "video/mp2t",
	".m4v":  "video/x-m4v",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".mts":  "video/mp2t",
	".ogv":  "video/ogg",
	".ts":   "video/mp2t",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",
}

// GuessType guesses the media type of path from its extension. It returns ""
// when the extension is unknown.
func GuessType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	return mime.TypeByExtension(ext)
}

// IsVideo reports whether the guessed media type of path is video/*.
func IsVideo(path string) bool {
	major, _, _ := strings.Cut(GuessType(path), "/")
	return major == "video"
}

// CheckSource verifies that path is an existing, readable video file.
// Failures are returned as *clip.InputError.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &clip.InputError{Path: path, Reason: "cannot access file", Err: err}
	}
	if info.IsDir() {
		return &clip.InputError{Path: path, Reason: "is a directory"}
	}
	if !IsVideo(path) {
		return &clip.InputError{Path: path, Reason: "file is not a video file"}
	}

	f, err := os.Open(path)
	if err != nil {
		return &clip.InputError{Path: path, Reason: "file is not readable", Err: err}
	}
	return f.Close()
}
