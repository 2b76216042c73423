package clip

import (
	"path/filepath"
	"strings"
)

const (
	// ClipSuffix is appended to the source base name.
	ClipSuffix = "_clip"
	// ClipExtension fixes the output container; ffmpeg picks the muxer and
	// default codecs from it.
	ClipExtension = "mp4"
)

// OutputPath computes where the clip for sourcePath is written.
// Format: {outputDir}/{sourceBaseNoExt}_clip.mp4
func OutputPath(sourcePath, outputDir string) string {
	base := filepath.Base(sourcePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, name+ClipSuffix+"."+ClipExtension)
}

// DefaultOutputDir returns the directory of the source file, which is where
// clips go unless configured otherwise.
func DefaultOutputDir(sourcePath string) string {
	return filepath.Dir(sourcePath)
}
