package clip

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeRecorder struct {
	mu       sync.Mutex
	started  []string
	outcomes []Outcome
}

func (f *fakeRecorder) RecordStart(ctx context.Context, id string, req RenderRequest, startedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, id)
	return nil
}

func (f *fakeRecorder) RecordOutcome(ctx context.Context, out Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, out)
	return nil
}

func waitOutcome(t *testing.T, job *Job) Outcome {
	t.Helper()
	select {
	case out := <-job.Done():
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return Outcome{}
	}
}

func TestDispatcher_DeliversExactlyOneOutcome(t *testing.T) {
	src, dir := newSource(t)
	enc := &fakeEncoder{info: &MediaInfo{Duration: 100, HasVideo: true, HasAudio: true}}
	rec := &fakeRecorder{}
	d := NewDispatcher(NewRenderer(enc, nil), nil)
	d.SetRecorder(rec)

	job, err := d.Dispatch(context.Background(), RenderRequest{Source: src, OutputDir: dir, Range: Range{100, 500}})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if job.ID == "" {
		t.Error("expected job ID")
	}

	out := waitOutcome(t, job)
	if !out.Succeeded() {
		t.Fatalf("expected success, got %v", out.Err)
	}
	if out.Window.Start != 10 || out.Window.End != 50 {
		t.Errorf("window = %+v, want {10 50}", out.Window)
	}
	if out.JobID != job.ID {
		t.Errorf("outcome job ID = %q, want %q", out.JobID, job.ID)
	}

	select {
	case extra := <-job.Done():
		t.Errorf("received second outcome: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}

	if d.Busy() {
		t.Error("dispatcher still busy after outcome")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.started) != 1 || len(rec.outcomes) != 1 {
		t.Errorf("recorder saw %d starts and %d outcomes, want 1 and 1", len(rec.started), len(rec.outcomes))
	}
}

func TestDispatcher_FailureIsAnOutcome(t *testing.T) {
	src, dir := newSource(t)
	enc := &fakeEncoder{probeErr: errors.New("invalid data found when processing input")}
	d := NewDispatcher(NewRenderer(enc, nil), nil)

	job, err := d.Dispatch(context.Background(), RenderRequest{Source: src, OutputDir: dir, Range: FullRange})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	out := waitOutcome(t, job)
	if out.Succeeded() {
		t.Fatal("expected failure outcome")
	}
	if out.Kind() != KindProbe {
		t.Errorf("kind = %v, want probe", out.Kind())
	}
	if out.OutputPath != "" {
		t.Errorf("failed outcome has output path %q", out.OutputPath)
	}
}

func TestDispatcher_RejectsReversedRangeSynchronously(t *testing.T) {
	src, dir := newSource(t)
	enc := &fakeEncoder{info: &MediaInfo{Duration: 100, HasVideo: true}}
	d := NewDispatcher(NewRenderer(enc, nil), nil)

	job, err := d.Dispatch(context.Background(), RenderRequest{Source: src, OutputDir: dir, Range: Range{600, 200}})
	if job != nil {
		t.Error("expected no job for reversed range")
	}
	var orderErr *RangeOrderError
	if !errors.As(err, &orderErr) {
		t.Fatalf("expected RangeOrderError, got %v", err)
	}
	if enc.probeCalls.Load() != 0 {
		t.Error("probe should not run for a reversed range")
	}
	if d.Busy() {
		t.Error("rejected dispatch left dispatcher busy")
	}
}

func TestDispatcher_OneJobAtATime(t *testing.T) {
	src, dir := newSource(t)
	enc := &fakeEncoder{
		info:  &MediaInfo{Duration: 100, HasVideo: true},
		block: make(chan struct{}),
	}
	d := NewDispatcher(NewRenderer(enc, nil), nil)
	req := RenderRequest{Source: src, OutputDir: dir, Range: FullRange}

	job, err := d.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !d.Busy() {
		t.Error("expected dispatcher to be busy")
	}

	if _, err := d.Dispatch(context.Background(), req); !errors.Is(err, ErrJobInFlight) {
		t.Errorf("second Dispatch() error = %v, want ErrJobInFlight", err)
	}

	close(enc.block)
	if out := waitOutcome(t, job); !out.Succeeded() {
		t.Fatalf("first job failed: %v", out.Err)
	}

	job2, err := d.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("Dispatch() after completion error = %v", err)
	}
	waitOutcome(t, job2)
}

func TestDispatcher_CancelDeliversCancelledOutcome(t *testing.T) {
	src, dir := newSource(t)
	enc := &fakeEncoder{
		info:  &MediaInfo{Duration: 100, HasVideo: true},
		block: make(chan struct{}),
	}
	d := NewDispatcher(NewRenderer(enc, nil), nil)

	job, err := d.Dispatch(context.Background(), RenderRequest{Source: src, OutputDir: dir, Range: FullRange})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	select {
	case p := <-job.Progress():
		if p != 50 {
			t.Errorf("progress = %f, want 50", p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for progress")
	}

	job.Cancel()
	out := waitOutcome(t, job)
	if out.Kind() != KindCancelled {
		t.Errorf("kind = %v, want cancelled (err: %v)", out.Kind(), out.Err)
	}
}

func TestDispatcher_RequestIsSnapshot(t *testing.T) {
	src, dir := newSource(t)
	enc := &fakeEncoder{
		info:  &MediaInfo{Duration: 200, HasVideo: true},
		block: make(chan struct{}),
	}
	d := NewDispatcher(NewRenderer(enc, nil), nil)

	req := RenderRequest{Source: src, OutputDir: dir, Range: Range{0, 500}}
	job, err := d.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	req.Range.End = 900

	close(enc.block)
	out := waitOutcome(t, job)
	if out.Window.End != 100 {
		t.Errorf("window end = %f, want 100 from the dispatched range", out.Window.End)
	}
}
