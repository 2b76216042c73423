package db

import (
	_ "embed"
)

// Schema and migrations

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Video queries

//go:embed sql/insert_video.sql
var InsertVideoSQL string

//go:embed sql/select_video_by_path.sql
var SelectVideoByPathSQL string

//go:embed sql/update_video_duration.sql
var UpdateVideoDurationSQL string

// Render job queries

//go:embed sql/insert_render_job.sql
var InsertRenderJobSQL string

//go:embed sql/update_render_job_complete.sql
var UpdateRenderJobCompleteSQL string

//go:embed sql/update_render_job_error.sql
var UpdateRenderJobErrorSQL string

// Joined queries for the history view

//go:embed sql/select_render_jobs.sql
var SelectRenderJobsSQL string

//go:embed sql/select_render_job_by_id.sql
var SelectRenderJobByIDSQL string
