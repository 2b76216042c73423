package clip

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// progressBuffer bounds how many progress updates may wait for the UI.
// Updates beyond it are dropped; only the latest value matters.
const progressBuffer = 8

// Outcome is the single terminal event of a render job: either a clip at
// OutputPath or a failure in Err.
type Outcome struct {
	JobID      string
	Request    RenderRequest
	OutputPath string
	Window     TrimWindow
	// Duration is the probed media duration in seconds, zero if the probe
	// did not run or failed.
	Duration   float64
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded reports whether the clip was written.
func (o Outcome) Succeeded() bool { return o.Err == nil }

// Kind classifies the failure, or returns KindNone on success.
func (o Outcome) Kind() ErrorKind { return ErrorKindOf(o.Err) }

// Elapsed returns how long the job ran.
func (o Outcome) Elapsed() time.Duration { return o.FinishedAt.Sub(o.StartedAt) }

// Recorder persists the lifecycle of render jobs. It is called from the
// worker goroutine and must be safe for that.
type Recorder interface {
	RecordStart(ctx context.Context, id string, req RenderRequest, startedAt time.Time) error
	RecordOutcome(ctx context.Context, out Outcome) error
}

// Job is a dispatched render. Done delivers exactly one Outcome.
type Job struct {
	ID        string
	Request   RenderRequest
	StartedAt time.Time

	done     chan Outcome
	progress chan float64
	cancel   context.CancelFunc
}

// Done returns the channel that receives the job's single Outcome.
func (j *Job) Done() <-chan Outcome { return j.done }

// Progress returns a channel of encode percentages. Values may be skipped
// and the channel is never closed; stop reading once Done has fired.
func (j *Job) Progress() <-chan float64 { return j.progress }

// Cancel stops the render. The Outcome still arrives, with KindCancelled.
func (j *Job) Cancel() { j.cancel() }

func (j *Job) reportProgress(percent float64) {
	select {
	case j.progress <- percent:
	default:
	}
}

// Dispatcher runs render jobs on a worker goroutine so the interactive loop
// never waits on the encoder. At most one job is in flight at a time.
type Dispatcher struct {
	renderer *Renderer
	recorder Recorder
	logger   *zap.Logger
	inFlight atomic.Bool
}

// NewDispatcher creates a Dispatcher that renders with renderer.
func NewDispatcher(renderer *Renderer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{renderer: renderer, logger: logger}
}

// SetRecorder sets where job lifecycle events are persisted.
func (d *Dispatcher) SetRecorder(r Recorder) {
	d.recorder = r
}

// Busy reports whether a job is currently running.
func (d *Dispatcher) Busy() bool {
	return d.inFlight.Load()
}

// Dispatch validates req, starts a render for it in the background and
// returns immediately. Cancelling ctx, or calling Job.Cancel, stops the render.
func (d *Dispatcher) Dispatch(ctx context.Context, req RenderRequest) (*Job, error) {
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}
	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, ErrJobInFlight
	}

	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		ID:        uuid.NewString(),
		Request:   req,
		StartedAt: time.Now(),
		done:      make(chan Outcome, 1),
		progress:  make(chan float64, progressBuffer),
		cancel:    cancel,
	}

	d.logger.Info("render dispatched",
		zap.String("job_id", job.ID),
		zap.String("source", req.Source),
		zap.String("range", req.Range.String()),
	)

	go d.run(jobCtx, job)
	return job, nil
}

// run executes job and delivers its Outcome. The in-flight flag is cleared
// before delivery so the receiver may dispatch again straight away.
func (d *Dispatcher) run(ctx context.Context, job *Job) {
	defer job.cancel()

	logger := d.logger.With(zap.String("job_id", job.ID))
	recordCtx := context.WithoutCancel(ctx)

	if d.recorder != nil {
		if err := d.recorder.RecordStart(recordCtx, job.ID, job.Request, job.StartedAt); err != nil {
			logger.Warn("failed to record render start", zap.Error(err))
		}
	}

	res, err := d.render(ctx, job)

	out := Outcome{
		JobID:      job.ID,
		Request:    job.Request,
		OutputPath: res.OutputPath,
		Window:     res.Window,
		Duration:   res.Duration,
		Err:        err,
		StartedAt:  job.StartedAt,
		FinishedAt: time.Now(),
	}

	if err != nil {
		logger.Error("render failed",
			zap.String("kind", out.Kind().String()),
			zap.Duration("elapsed", out.Elapsed()),
			zap.Error(err),
		)
	} else {
		logger.Info("render complete",
			zap.String("output", out.OutputPath),
			zap.Duration("elapsed", out.Elapsed()),
		)
	}

	if d.recorder != nil {
		if err := d.recorder.RecordOutcome(recordCtx, out); err != nil {
			logger.Warn("failed to record render outcome", zap.Error(err))
		}
	}

	d.inFlight.Store(false)
	job.done <- out
}

// render calls the Renderer, turning a panic into an EncodeError so the
// process never dies with the progress panel still open.
func (d *Dispatcher) render(ctx context.Context, job *Job) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &EncodeError{
				Output: OutputPath(job.Request.Source, job.Request.OutputDir),
				Err:    fmt.Errorf("render panicked: %v", r),
			}
		}
	}()
	return d.renderer.Render(ctx, job.Request, job.reportProgress)
}
