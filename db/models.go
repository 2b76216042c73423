package db

import "time"

// Render job statuses stored in render_jobs.status.
const (
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusError      = "error"
	StatusCancelled  = "cancelled"
)

// Video represents a row in the videos table.
type Video struct {
	ID        int64
	Path      string
	Filename  string
	Extension string
	Filesize  int64
	Duration  float64
}

// RenderJob is a render_jobs row joined with its source video path.
type RenderJob struct {
	ID          string
	SourcePath  string
	OutputPath  string
	RangeStart  int
	RangeEnd    int
	WindowStart float64
	WindowEnd   float64
	OutputSize  int64
	Status      string
	ErrorKind   string
	Error       string
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// Elapsed returns how long the job ran, or zero while it is still processing.
func (j RenderJob) Elapsed() time.Duration {
	if j.FinishedAt == nil {
		return 0
	}
	return j.FinishedAt.Sub(j.StartedAt)
}
