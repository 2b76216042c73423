package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/user/clip-trimmer/db"
	"github.com/user/clip-trimmer/pkg/timeutil"
)

var historyCmd = &cobra.Command{
	Use:   "history [job-id]",
	Short: "List recent renders",
	Long: `List the most recent render jobs, newest first, with their status and output.
With a job ID, show the details of that render, including its error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", limit)
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.db == nil {
			return fmt.Errorf("render history is unavailable (database %s)", a.cfg.DBPath)
		}

		if len(args) == 1 {
			job, err := db.GetRenderJob(a.db, args[0])
			if err != nil {
				return err
			}
			printRenderJob(os.Stdout, *job)
			return nil
		}

		jobs, err := db.ListRenderJobs(a.db, limit)
		if err != nil {
			return fmt.Errorf("failed to query render history: %w", err)
		}

		if len(jobs) == 0 {
			fmt.Println("No renders yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tStarted\tSource\tWindow\tStatus\tSize\tOutput")
		fmt.Fprintln(w, "--\t-------\t------\t------\t------\t----\t------")

		for _, j := range jobs {
			window := fmt.Sprintf("%d-%d", j.RangeStart, j.RangeEnd)
			if j.Status == db.StatusComplete {
				window = timeutil.FormatTime(j.WindowStart) + "-" + timeutil.FormatTime(j.WindowEnd)
			}

			status := j.Status
			if j.Status == db.StatusError && j.ErrorKind != "" {
				status = j.ErrorKind + " error"
			}

			size := "-"
			if j.OutputSize > 0 {
				size = humanize.Bytes(uint64(j.OutputSize))
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				j.ID,
				humanize.Time(j.StartedAt),
				filepath.Base(j.SourcePath),
				window,
				status,
				size,
				j.OutputPath,
			)
		}
		w.Flush()

		fmt.Printf("\n%d render(s)\n", len(jobs))
		return nil
	},
}

// printRenderJob writes the full record of one render.
func printRenderJob(out io.Writer, j db.RenderJob) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", j.ID)
	fmt.Fprintf(w, "Source:\t%s\n", j.SourcePath)
	fmt.Fprintf(w, "Output:\t%s\n", j.OutputPath)
	fmt.Fprintf(w, "Range:\t%d-%d\n", j.RangeStart, j.RangeEnd)
	if j.Status == db.StatusComplete {
		fmt.Fprintf(w, "Window:\t%s-%s\n", timeutil.FormatTime(j.WindowStart), timeutil.FormatTime(j.WindowEnd))
		fmt.Fprintf(w, "Size:\t%s\n", humanize.Bytes(uint64(j.OutputSize)))
	}
	fmt.Fprintf(w, "Status:\t%s\n", j.Status)
	if j.Error != "" {
		fmt.Fprintf(w, "Error:\t%s error: %s\n", j.ErrorKind, j.Error)
	}
	fmt.Fprintf(w, "Started:\t%s\n", j.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if j.FinishedAt != nil {
		fmt.Fprintf(w, "Took:\t%s\n", j.Elapsed().Round(time.Millisecond))
	}
	w.Flush()
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of renders to show")
}
