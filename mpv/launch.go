package mpv

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"

	"github.com/user/clip-trimmer/deps"
)

// LaunchOptions configures the mpv process.
type LaunchOptions struct {
	// Path is the mpv binary; empty means look it up in PATH.
	Path string
	// SocketPath is the IPC socket; empty means DefaultSocketPath.
	SocketPath string
	// Title is shown in the mpv window title bar.
	Title string
}

// LaunchArgs returns the mpv command line for videoPath. The file loops
// forever and starts playing immediately.
func LaunchArgs(videoPath string, opts LaunchOptions) []string {
	socket := opts.SocketPath
	if socket == "" {
		socket = DefaultSocketPath
	}
	args := []string{
		"--input-ipc-server=" + socket,
		"--loop-file=inf",
		"--force-window=immediate",
		"--no-terminal",
		"--pause=no",
	}
	if opts.Title != "" {
		args = append(args, "--title="+opts.Title)
	}
	return append(args, "--", videoPath)
}

// LaunchMpv starts mpv with the specified video file and IPC socket enabled.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(videoPath string, opts LaunchOptions) (*exec.Cmd, error) {
	bin, err := deps.CheckMpv(opts.Path)
	if err != nil {
		return nil, err
	}

	socket := opts.SocketPath
	if socket == "" {
		socket = DefaultSocketPath
	}
	// A socket left behind by a crashed mpv would be dialled before the new one exists.
	if err := os.Remove(socket); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cmd := exec.Command(bin, LaunchArgs(videoPath, opts)...)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
