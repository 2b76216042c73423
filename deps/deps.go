package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	Path       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.Path != "" && e.Path != e.Name {
		return fmt.Sprintf("%s not found at %s. Install from: %s", e.Name, e.Path, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Binaries names the executables the app shells out to. Empty fields fall
// back to the bare command name looked up in PATH.
type Binaries struct {
	Mpv     string
	Ffmpeg  string
	Ffprobe string
}

func orDefault(path, name string) string {
	if path == "" {
		return name
	}
	return path
}

// check resolves path (a bare name or an explicit location) to an executable.
func check(name, path, installURL string) (string, error) {
	resolved, err := exec.LookPath(orDefault(path, name))
	if err != nil {
		return "", &DependencyError{
			Name:       name,
			Path:       path,
			InstallURL: installURL,
		}
	}
	return resolved, nil
}

// CheckMpv checks that mpv is installed and returns its resolved path.
func CheckMpv(path string) (string, error) {
	return check("mpv", path, MpvInstallURL)
}

// CheckFfmpeg checks that ffmpeg is installed and returns its resolved path.
func CheckFfmpeg(path string) (string, error) {
	return check("ffmpeg", path, FfmpegInstallURL)
}

// CheckFfprobe checks that ffprobe is installed. It ships with ffmpeg.
func CheckFfprobe(path string) (string, error) {
	return check("ffprobe", path, FfmpegInstallURL)
}

// Status is the result of checking one dependency.
type Status struct {
	Name string
	Path string
	Err  error
}

// CheckAll checks every dependency, in a fixed order.
func CheckAll(b Binaries) []Status {
	checks := []struct {
		name string
		fn   func(string) (string, error)
		path string
	}{
		{"mpv", CheckMpv, b.Mpv},
		{"ffmpeg", CheckFfmpeg, b.Ffmpeg},
		{"ffprobe", CheckFfprobe, b.Ffprobe},
	}

	statuses := make([]Status, 0, len(checks))
	for _, c := range checks {
		resolved, err := c.fn(c.path)
		statuses = append(statuses, Status{Name: c.name, Path: resolved, Err: err})
	}
	return statuses
}

// Missing returns the errors of the statuses that failed.
func Missing(statuses []Status) []error {
	var errs []error
	for _, s := range statuses {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errs
}
