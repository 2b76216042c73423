package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/clip-trimmer/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that mpv, ffmpeg and ffprobe are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		statuses := deps.CheckAll(deps.Binaries{
			Mpv:     a.cfg.MpvPath,
			Ffmpeg:  a.cfg.FfmpegPath,
			Ffprobe: a.cfg.FfprobePath,
		})
		for _, s := range statuses {
			if s.Err != nil {
				fmt.Printf("✗ %-8s %v\n", s.Name, s.Err)
				continue
			}
			fmt.Printf("✓ %-8s %s\n", s.Name, s.Path)
		}

		if missing := deps.Missing(statuses); len(missing) > 0 {
			return fmt.Errorf("%d of %d dependencies missing", len(missing), len(statuses))
		}
		return nil
	},
}
