package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/user/clip-trimmer/clip"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() error = %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("schema_migrations has %d rows, want 2", count)
	}
}

func TestListMigrations_SortsAndSkips(t *testing.T) {
	fsys := fstest.MapFS{
		"m/010_later.sql":  {Data: []byte("SELECT 1")},
		"m/002_second.sql": {Data: []byte("SELECT 1")},
		"m/001_first.sql":  {Data: []byte("SELECT 1")},
		"m/README.md":      {Data: []byte("docs")},
		"m/noversion.sql":  {Data: []byte("SELECT 1")},
		"m/abc_bad.sql":    {Data: []byte("SELECT 1")},
	}

	got, err := listMigrations(fsys, "m")
	if err != nil {
		t.Fatalf("listMigrations() error = %v", err)
	}
	want := []int{1, 2, 10}
	if len(got) != len(want) {
		t.Fatalf("got %d migrations, want %d: %+v", len(got), len(want), got)
	}
	for i, m := range got {
		if m.version != want[i] {
			t.Errorf("migration %d version = %d, want %d", i, m.version, want[i])
		}
	}
}

func TestEnsureVideo_ReturnsExistingID(t *testing.T) {
	db := openTestDB(t)

	id1, err := EnsureVideo(context.Background(), db, "/videos/match.mp4", 1024)
	if err != nil {
		t.Fatalf("EnsureVideo() error = %v", err)
	}
	id2, err := EnsureVideo(context.Background(), db, "/videos/match.mp4", 1024)
	if err != nil {
		t.Fatalf("EnsureVideo() error = %v", err)
	}
	if id1 != id2 {
		t.Errorf("EnsureVideo returned %d then %d for the same path", id1, id2)
	}

	var filename, ext string
	if err := db.QueryRow("SELECT filename, extension FROM videos WHERE id = ?", id1).Scan(&filename, &ext); err != nil {
		t.Fatal(err)
	}
	if filename != "match.mp4" || ext != "mp4" {
		t.Errorf("filename=%q ext=%q", filename, ext)
	}
}

func TestHistory_RecordsSuccess(t *testing.T) {
	db := openTestDB(t)
	h := NewHistory(db)
	dir := t.TempDir()
	src := filepath.Join(dir, "match.mp4")
	if err := os.WriteFile(src, []byte("source"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "match_clip.mp4")
	if err := os.WriteFile(out, []byte("clip bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	req := clip.RenderRequest{Source: src, OutputDir: dir, Range: clip.Range{Start: 100, End: 500}}
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := h.RecordStart(context.Background(), "job-1", req, started); err != nil {
		t.Fatalf("RecordStart() error = %v", err)
	}

	job, err := GetRenderJob(db, "job-1")
	if err != nil {
		t.Fatal(err)
	}
	if job.Status != StatusProcessing || job.FinishedAt != nil {
		t.Errorf("after start: status=%q finished=%v", job.Status, job.FinishedAt)
	}

	err = h.RecordOutcome(context.Background(), clip.Outcome{
		JobID:      "job-1",
		Request:    req,
		OutputPath: out,
		Window:     clip.TrimWindow{Start: 10, End: 50},
		Duration:   100,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
	})
	if err != nil {
		t.Fatalf("RecordOutcome() error = %v", err)
	}

	job, err = GetRenderJob(db, "job-1")
	if err != nil {
		t.Fatal(err)
	}
	if job.Status != StatusComplete {
		t.Errorf("status = %q, want complete", job.Status)
	}
	if job.SourcePath != src || job.OutputPath != out {
		t.Errorf("paths = %q -> %q", job.SourcePath, job.OutputPath)
	}
	if job.RangeStart != 100 || job.RangeEnd != 500 {
		t.Errorf("range = [%d, %d], want [100, 500]", job.RangeStart, job.RangeEnd)
	}
	if job.WindowStart != 10 || job.WindowEnd != 50 {
		t.Errorf("window = [%f, %f], want [10, 50]", job.WindowStart, job.WindowEnd)
	}
	if job.OutputSize != int64(len("clip bytes")) {
		t.Errorf("output size = %d", job.OutputSize)
	}
	if !job.StartedAt.Equal(started) {
		t.Errorf("started_at = %v, want %v", job.StartedAt, started)
	}
	if job.Elapsed() != 3*time.Second {
		t.Errorf("Elapsed() = %v, want 3s", job.Elapsed())
	}

	var duration float64
	if err := db.QueryRow("SELECT duration FROM videos WHERE path = ?", src).Scan(&duration); err != nil {
		t.Fatal(err)
	}
	if duration != 100 {
		t.Errorf("video duration = %v, want 100", duration)
	}
}

func TestHistory_RecordsFailureKinds(t *testing.T) {
	db := openTestDB(t)
	h := NewHistory(db)
	dir := t.TempDir()
	req := clip.RenderRequest{Source: filepath.Join(dir, "match.mp4"), OutputDir: dir, Range: clip.FullRange}
	now := time.Now()

	cases := []struct {
		id         string
		err        error
		wantStatus string
		wantKind   string
	}{
		{"probe", &clip.ProbeError{Path: req.Source, Err: errors.New("bad header")}, StatusError, "probe"},
		{"cancel", &clip.EncodeError{Output: "x", Err: context.Canceled}, StatusCancelled, "cancelled"},
	}

	for _, c := range cases {
		if err := h.RecordStart(context.Background(), c.id, req, now); err != nil {
			t.Fatalf("RecordStart(%s) error = %v", c.id, err)
		}
		if err := h.RecordOutcome(context.Background(), clip.Outcome{JobID: c.id, Err: c.err, FinishedAt: now}); err != nil {
			t.Fatalf("RecordOutcome(%s) error = %v", c.id, err)
		}
		job, err := GetRenderJob(db, c.id)
		if err != nil {
			t.Fatal(err)
		}
		if job.Status != c.wantStatus || job.ErrorKind != c.wantKind {
			t.Errorf("%s: status=%q kind=%q, want %q %q", c.id, job.Status, job.ErrorKind, c.wantStatus, c.wantKind)
		}
		if job.Error == "" {
			t.Errorf("%s: error message not stored", c.id)
		}
	}
}

func TestListRenderJobs_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	videoID, err := EnsureVideo(context.Background(), db, "/videos/match.mp4", 0)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := InsertRenderJob(context.Background(), db, id, videoID, "/out/match_clip.mp4", 0, 1000, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := ListRenderJobs(db, 2)
	if err != nil {
		t.Fatalf("ListRenderJobs() error = %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].ID != "c" || jobs[1].ID != "b" {
		t.Errorf("order = %s, %s; want c, b", jobs[0].ID, jobs[1].ID)
	}
}

func TestHistory_HonoursContext(t *testing.T) {
	db := openTestDB(t)
	h := NewHistory(db)
	req := clip.RenderRequest{Source: "/videos/match.mp4", OutputDir: "/out", Range: clip.Range{Start: 0, End: 500}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.RecordStart(ctx, "job-1", req, time.Now()); !errors.Is(err, context.Canceled) {
		t.Errorf("RecordStart(cancelled ctx) error = %v, want context.Canceled", err)
	}
	if err := h.RecordOutcome(ctx, clip.Outcome{JobID: "job-1", Err: errors.New("boom")}); !errors.Is(err, context.Canceled) {
		t.Errorf("RecordOutcome(cancelled ctx) error = %v, want context.Canceled", err)
	}

	jobs, err := ListRenderJobs(db, 10)
	if err != nil {
		t.Fatalf("ListRenderJobs() error = %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("got %d jobs, want none written under a cancelled context", len(jobs))
	}
}
