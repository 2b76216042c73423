package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// timeLayout is how timestamps are stored in TEXT columns. The fixed width
// keeps lexical order equal to time order for ORDER BY.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// EnsureVideo returns the existing video ID for the given path, or inserts a new row and returns its ID.
func EnsureVideo(ctx context.Context, db *sql.DB, path string, filesize int64) (int64, error) {
	var videoID int64
	err := db.QueryRowContext(ctx, SelectVideoByPathSQL, path).Scan(&videoID)
	if err == nil {
		return videoID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("select video by path: %w", err)
	}
	base := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	result, err := db.ExecContext(ctx, InsertVideoSQL, path, base, ext, filesize)
	if err != nil {
		return 0, fmt.Errorf("insert video: %w", err)
	}
	return result.LastInsertId()
}

// UpdateVideoDuration records the probed duration of a video.
func UpdateVideoDuration(ctx context.Context, db *sql.DB, videoID int64, duration float64) error {
	if _, err := db.ExecContext(ctx, UpdateVideoDurationSQL, duration, videoID); err != nil {
		return fmt.Errorf("update video duration: %w", err)
	}
	return nil
}

// InsertRenderJob records a job in the processing state.
func InsertRenderJob(ctx context.Context, db *sql.DB, id string, videoID int64, outputPath string, start, end int, startedAt time.Time) error {
	_, err := db.ExecContext(ctx, InsertRenderJobSQL, id, videoID, outputPath, start, end, formatTime(startedAt))
	if err != nil {
		return fmt.Errorf("insert render job: %w", err)
	}
	return nil
}

// MarkRenderComplete sets a job's status to complete with the rendered window.
func MarkRenderComplete(ctx context.Context, db *sql.DB, id string, windowStart, windowEnd float64, outputSize int64, finishedAt time.Time) error {
	_, err := db.ExecContext(ctx, UpdateRenderJobCompleteSQL, windowStart, windowEnd, outputSize, formatTime(finishedAt), id)
	if err != nil {
		return fmt.Errorf("mark render complete: %w", err)
	}
	return nil
}

// MarkRenderError sets a job's status to error or cancelled with its failure.
func MarkRenderError(ctx context.Context, db *sql.DB, id, status, kind, message string, finishedAt time.Time) error {
	_, err := db.ExecContext(ctx, UpdateRenderJobErrorSQL, status, kind, message, formatTime(finishedAt), id)
	if err != nil {
		return fmt.Errorf("mark render error: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRenderJob(row rowScanner) (RenderJob, error) {
	var j RenderJob
	var startedAt, finishedAt string
	err := row.Scan(
		&j.ID, &j.SourcePath, &j.OutputPath,
		&j.RangeStart, &j.RangeEnd,
		&j.WindowStart, &j.WindowEnd,
		&j.OutputSize, &j.Status, &j.ErrorKind, &j.Error,
		&startedAt, &finishedAt,
	)
	if err != nil {
		return RenderJob{}, err
	}
	if j.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return RenderJob{}, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt != "" {
		t, err := time.Parse(timeLayout, finishedAt)
		if err != nil {
			return RenderJob{}, fmt.Errorf("parse finished_at: %w", err)
		}
		j.FinishedAt = &t
	}
	return j, nil
}

// ListRenderJobs returns the most recent render jobs, newest first.
func ListRenderJobs(db *sql.DB, limit int) ([]RenderJob, error) {
	rows, err := db.Query(SelectRenderJobsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select render jobs: %w", err)
	}
	defer rows.Close()

	var jobs []RenderJob
	for rows.Next() {
		j, err := scanRenderJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan render job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate render jobs: %w", err)
	}
	return jobs, nil
}

// GetRenderJob returns a single render job by ID.
func GetRenderJob(db *sql.DB, id string) (*RenderJob, error) {
	j, err := scanRenderJob(db.QueryRow(SelectRenderJobByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select render job %s: %w", id, err)
	}
	return &j, nil
}
