package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/user/clip-trimmer/clip"
)

// History persists render jobs. It implements clip.Recorder and is safe to
// call from the render worker.
type History struct {
	db *sql.DB
}

// NewHistory wraps an open database.
func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

var _ clip.Recorder = (*History)(nil)

// RecordStart inserts the job in the processing state, creating the video row if needed.
func (h *History) RecordStart(ctx context.Context, id string, req clip.RenderRequest, startedAt time.Time) error {
	var size int64
	if info, err := os.Stat(req.Source); err == nil {
		size = info.Size()
	}
	videoID, err := EnsureVideo(ctx, h.db, req.Source, size)
	if err != nil {
		return err
	}
	output := clip.OutputPath(req.Source, req.OutputDir)
	return InsertRenderJob(ctx, h.db, id, videoID, output, int(req.Range.Start), int(req.Range.End), startedAt)
}

// RecordOutcome stores how the job ended. A successful job also stores the
// probed duration on the video row.
func (h *History) RecordOutcome(ctx context.Context, out clip.Outcome) error {
	if out.Succeeded() {
		var size int64
		if info, err := os.Stat(out.OutputPath); err == nil {
			size = info.Size()
		}
		if err := MarkRenderComplete(ctx, h.db, out.JobID, out.Window.Start, out.Window.End, size, out.FinishedAt); err != nil {
			return err
		}
		if out.Duration > 0 {
			videoID, err := EnsureVideo(ctx, h.db, out.Request.Source, 0)
			if err != nil {
				return err
			}
			return UpdateVideoDuration(ctx, h.db, videoID, out.Duration)
		}
		return nil
	}

	status := StatusError
	if out.Kind() == clip.KindCancelled {
		status = StatusCancelled
	}
	if err := MarkRenderError(ctx, h.db, out.JobID, status, out.Kind().String(), out.Err.Error(), out.FinishedAt); err != nil {
		return fmt.Errorf("record outcome of %s: %w", out.JobID, err)
	}
	return nil
}
