package tui

// mode is which screen the model is showing and where key presses go.
type mode int

const (
	// modeEdit is the playback and range editing screen.
	modeEdit mode = iota
	// modeRendering shows the render panel while a job is in flight.
	modeRendering
	// modeConfirmCancel shows the cancel confirmation over a running job.
	modeConfirmCancel
	// modeFailed shows the failed job until a key is pressed.
	modeFailed
)

func (m mode) String() string {
	switch m {
	case modeRendering:
		return "rendering"
	case modeConfirmCancel:
		return "confirm-cancel"
	case modeFailed:
		return "failed"
	default:
		return "edit"
	}
}
