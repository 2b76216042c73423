package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/clip-trimmer/clip"
)

// renderProgressMsg carries a progress update from the render worker.
type renderProgressMsg struct {
	jobID   string
	percent float64
}

// renderDoneMsg carries the single outcome of a render job.
type renderDoneMsg struct {
	outcome clip.Outcome
}

// waitForRenderMsg returns a tea.Cmd that blocks until the job reports
// progress or finishes. Progress values are coalesced: if several are queued
// only the newest is delivered. Once the progress channel is drained the
// command waits on the outcome alone.
func waitForRenderMsg(job *clip.Job) tea.Cmd {
	return func() tea.Msg {
		select {
		case out := <-job.Done():
			return renderDoneMsg{outcome: out}
		case pct := <-job.Progress():
			for {
				select {
				case next := <-job.Progress():
					pct = next
				default:
					return renderProgressMsg{jobID: job.ID, percent: pct}
				}
			}
		}
	}
}
