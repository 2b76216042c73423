package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/mpv"
	"github.com/user/clip-trimmer/pkg/mediautil"
	"github.com/user/clip-trimmer/tui"
)

// Version is the build version, set from main.
var Version = "0.1.0"

// mpvStartTimeout bounds the wait for mpv's IPC socket.
const mpvStartTimeout = 5 * time.Second

var rootCmd = &cobra.Command{
	Use:   "clip-trimmer <video-file>",
	Short: "Cut a clip out of a video",
	Long: `clip-trimmer plays a video in mpv and lets you pick a start and end
point from the terminal, then renders the selected range to a new file
with ffmpeg.

Keys:
  space        play/pause
  [ ] / tab    pick the start or end handle
  H / L        move the handle (shift+arrows also work)
  i / o        set start / end at the playback position
  s / enter    save the clip
  ?            all keybindings`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTrimmer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clip-trimmer version %s\n", Version)
	},
}

func runTrimmer(cmd *cobra.Command, args []string) error {
	videoPath, err := resolveSource(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	outputDir := a.cfg.ResolveOutputDir(videoPath)
	log := a.logger.With(zap.String("source", videoPath))
	log.Info("opening video", zap.String("output_dir", outputDir))

	process, err := mpv.LaunchMpv(videoPath, mpv.LaunchOptions{
		Path:       a.cfg.MpvPath,
		SocketPath: a.cfg.MpvSocket,
		Title:      "clip-trimmer - " + filepath.Base(videoPath),
	})
	if err != nil {
		return fmt.Errorf("failed to launch mpv: %w", err)
	}

	client := mpv.NewClient(a.cfg.MpvSocket)
	ctx, cancel := context.WithTimeout(cmd.Context(), mpvStartTimeout)
	err = client.WaitForSocket(ctx)
	cancel()
	if err != nil {
		// Kill mpv if we couldn't connect
		if process.Process != nil {
			_ = process.Process.Kill()
		}
		_ = process.Wait()
		return fmt.Errorf("failed to connect to mpv: %w", err)
	}

	defer func() {
		if err := client.Quit(); err != nil && process.Process != nil {
			_ = process.Process.Kill()
		}
		client.Close()
		_ = process.Wait()
	}()

	outcome, err := tui.Run(tui.Options{
		Player:     mpv.NewPlayer(client),
		Dispatcher: a.dispatcher,
		Logger:     log.Named("tui"),
		Source:     videoPath,
		OutputDir:  outputDir,
	})
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if outcome != nil {
		printSaved(*outcome)
	}
	return nil
}

// resolveSource makes path absolute and rejects anything that is not a
// readable video file.
func resolveSource(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", &clip.InputError{Path: path, Reason: "failed to resolve path", Err: err}
	}
	if err := mediautil.CheckSource(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// printSaved reports a finished clip on stdout.
func printSaved(out clip.Outcome) {
	size := ""
	if info, err := os.Stat(out.OutputPath); err == nil {
		size = " (" + humanize.Bytes(uint64(info.Size())) + ")"
	}
	fmt.Printf("Saved clip: %s%s\n", out.OutputPath, size)
	fmt.Printf("  %s of video rendered in %s\n",
		formatSeconds(out.Window.Length()),
		out.Elapsed().Round(time.Millisecond))
}

func formatSeconds(s float64) string {
	return (time.Duration(s * float64(time.Second))).Round(time.Millisecond).String()
}

func init() {
	rootCmd.PersistentFlags().StringP("output-dir", "o", "", "Directory clips are written to (default: next to the video)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("db", "", "Render history database path")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

// exitCode maps an error onto the process exit status. Unusable input exits
// with 2, everything else with 1.
func exitCode(err error) int {
	if clip.ErrorKindOf(err) == clip.KindInput {
		return 2
	}
	return 1
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
