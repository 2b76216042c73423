package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-trimmer/clip"
	"github.com/user/clip-trimmer/player"
	"github.com/user/clip-trimmer/tui/components"
	"github.com/user/clip-trimmer/tui/forms"
	"github.com/user/clip-trimmer/tui/layout"
	"github.com/user/clip-trimmer/tui/styles"
	"go.uber.org/zap"
)

const (
	// tickInterval is the interval for polling the player.
	tickInterval = 100 * time.Millisecond
	// defaultStepIndex selects 1% of the media per key press.
	defaultStepIndex = 2
	// resultDisplayDuration is how long to show result messages.
	resultDisplayDuration = 3 * time.Second
	// shutdownTimeout bounds the wait for a cancelled render on exit.
	shutdownTimeout = 5 * time.Second
)

// stepSizes are the distances, on the 0-1000 scale, that one key press
// moves the playhead or a handle. Users cycle through them with < and >.
var stepSizes = []clip.Position{1, 5, 10, 50, 100}

// tickMsg is a message sent on every tick interval to poll the player.
type tickMsg time.Time

// clearResultMsg is sent to clear the result message.
type clearResultMsg struct{}

// Options configures the interactive trimmer.
type Options struct {
	// Player is polled and driven from the Update loop. It may be nil, in
	// which case only the range can be edited.
	Player player.Controller
	// Dispatcher runs render jobs off the Update loop.
	Dispatcher *clip.Dispatcher
	Logger     *zap.Logger
	Source     string
	OutputDir  string
}

// Model is the Bubbletea model for the trimmer.
// It implements the tea.Model interface with Init, Update, and View methods.
// All player control and state changes happen in Update.
type Model struct {
	player     player.Controller
	watcher    *player.Watcher
	dispatcher *clip.Dispatcher
	logger     *zap.Logger
	keys       keyMap
	help       help.Model

	sourcePath string
	outputDir  string

	// quitting flag to signal shutdown
	quitting bool
	width    int
	height   int

	mode      mode
	showHelp  bool
	statusBar components.StatusBarState

	// rng is the range control value; tracker remembers the last value seen
	rng      clip.Range
	tracker  *clip.Tracker
	active   clip.Endpoint
	playback clip.Position
	stepIdx  int

	// result message shown under the slider
	result      string
	resultError bool

	job       *clip.Job
	panel     components.RenderPanelState
	spinner   spinner.Model
	stopwatch stopwatch.Model
	progress  progress.Model
	confirm   *huh.Form
	cancelJob bool

	// outcome is set when a render succeeds and the program exits
	outcome *clip.Outcome
}

// NewModel creates a new trimmer model. The range starts at the full media.
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Pink)

	m := &Model{
		player:     opts.Player,
		dispatcher: opts.Dispatcher,
		logger:     logger,
		keys:       newKeyMap(),
		help:       help.New(),
		sourcePath: opts.Source,
		outputDir:  opts.OutputDir,
		rng:        clip.FullRange,
		tracker:    clip.NewTracker(clip.FullRange),
		stepIdx:    defaultStepIndex,
		spinner:    s,
		progress:   progress.New(progress.WithGradient(string(styles.BrightPurple), string(styles.Pink))),
		statusBar: components.StatusBarState{
			Connected: opts.Player != nil,
			Step:      stepSizes[defaultStepIndex],
			FileName:  filepath.Base(opts.Source),
		},
	}
	if opts.Player != nil {
		m.watcher = player.NewWatcher(opts.Player)
	}
	return m
}

// Init initializes the model. It returns an optional command to run.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Outcome returns the outcome of the render that ended the program, or nil.
func (m *Model) Outcome() *clip.Outcome {
	return m.outcome
}

// Range returns the current range control value.
func (m *Model) Range() clip.Range {
	return m.rng
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = m.panelWidth() - 6
		return m, nil

	case tickMsg:
		m.pollPlayer()
		return m, tickCmd()

	case clearResultMsg:
		m.result = ""
		m.resultError = false
		return m, nil

	case renderProgressMsg:
		if m.job == nil || msg.jobID != m.job.ID {
			return m, nil
		}
		m.panel.Bar = m.progress.ViewAs(msg.percent / 100)
		return m, waitForRenderMsg(m.job)

	case renderDoneMsg:
		return m.handleOutcome(msg.outcome)

	case spinner.TickMsg:
		if m.job == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stopwatch.TickMsg, stopwatch.StartStopMsg, stopwatch.ResetMsg:
		var cmd tea.Cmd
		m.stopwatch, cmd = m.stopwatch.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// Help overlay - any key dismisses it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch m.mode {
		case modeRendering:
			return m.handleRenderingKey(msg)
		case modeConfirmCancel:
			return m.updateConfirm(msg)
		case modeFailed:
			m.mode = modeEdit
			m.panel = components.RenderPanelState{}
			return m, nil
		}
		return m.handleEditKey(msg)
	}

	if m.mode == modeConfirmCancel {
		return m.updateConfirm(msg)
	}
	return m, nil
}

// handleEditKey handles key events on the editing screen.
func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := stepSizes[m.stepIdx]

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.PlayPause):
		if m.player != nil {
			if err := player.Toggle(m.player); err != nil {
				return m, m.showResult("Player: "+err.Error(), true)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.SeekBack):
		m.seekTo(m.playback - step)
		return m, nil
	case key.Matches(msg, m.keys.SeekForward):
		m.seekTo(m.playback + step)
		return m, nil
	case key.Matches(msg, m.keys.StepDown):
		if m.stepIdx > 0 {
			m.stepIdx--
		}
		m.statusBar.Step = stepSizes[m.stepIdx]
		return m, nil
	case key.Matches(msg, m.keys.StepUp):
		if m.stepIdx < len(stepSizes)-1 {
			m.stepIdx++
		}
		m.statusBar.Step = stepSizes[m.stepIdx]
		return m, nil
	case key.Matches(msg, m.keys.SelectStart):
		m.active = clip.EndpointStart
		return m, nil
	case key.Matches(msg, m.keys.SelectEnd):
		m.active = clip.EndpointEnd
		return m, nil
	case key.Matches(msg, m.keys.SwitchHandle):
		m.active = 1 - m.active
		return m, nil
	case key.Matches(msg, m.keys.HandleBack):
		m.moveHandle(m.active, -step)
		return m, nil
	case key.Matches(msg, m.keys.HandleForward):
		m.moveHandle(m.active, step)
		return m, nil
	case key.Matches(msg, m.keys.MarkIn):
		next := m.rng
		next.Start = m.playback
		m.setRange(next)
		return m, nil
	case key.Matches(msg, m.keys.MarkOut):
		next := m.rng
		next.End = m.playback
		m.setRange(next)
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.setRange(clip.FullRange)
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.startRender()
	}
	return m, nil
}

// moveHandle moves one endpoint by delta. Handles stop at the scale bounds
// and at each other but may meet.
func (m *Model) moveHandle(e clip.Endpoint, delta clip.Position) {
	next := m.rng
	if e == clip.EndpointStart {
		next.Start = (next.Start + delta).Clamp()
		if next.Start > next.End {
			next.Start = next.End
		}
	} else {
		next.End = (next.End + delta).Clamp()
		if next.End < next.Start {
			next.End = next.Start
		}
	}
	m.setRange(next)
}

// setRange stores a new range control value. When exactly one endpoint
// moved, playback seeks to it so the frame under the handle is shown.
func (m *Model) setRange(next clip.Range) {
	m.rng = next
	move, ok := m.tracker.Update(next)
	if !ok {
		return
	}
	m.active = move.Endpoint
	m.seekTo(move.Position)
}

// seekTo moves the playback bar to p, pausing first if the player is
// running, and refreshes the time label.
func (m *Model) seekTo(p clip.Position) {
	p = p.Clamp()
	m.playback = p
	m.statusBar.TimeMillis = components.PositionMillis(p, m.statusBar.DurationMillis)
	if m.player == nil {
		return
	}
	if err := player.SeekTo(m.player, p); err != nil {
		m.logger.Debug("seek failed", zap.Int("position", int(p)), zap.Error(err))
	}
}

// pollPlayer applies the player events seen since the last tick.
func (m *Model) pollPlayer() {
	if m.watcher == nil {
		return
	}
	events, err := m.watcher.Poll()
	if err != nil {
		if m.statusBar.Connected {
			m.logger.Warn("player stopped responding", zap.Error(err))
		}
		m.statusBar.Connected = false
		return
	}
	m.statusBar.Connected = true

	for _, ev := range events {
		switch ev := ev.(type) {
		case player.MediaParsed:
			m.statusBar.DurationMillis = ev.DurationMillis
			m.logger.Debug("media parsed", zap.Int64("duration_ms", ev.DurationMillis))
		case player.StateChanged:
			m.statusBar.Playing = ev.Playing
		case player.PositionChanged:
			m.playback = ev.Position
			m.statusBar.TimeMillis = ev.TimeMillis
		}
	}
}

// startRender snapshots the range into a request and dispatches it.
func (m *Model) startRender() (tea.Model, tea.Cmd) {
	if m.dispatcher == nil {
		return m, m.showResult("Rendering is not available", true)
	}

	req := clip.RenderRequest{
		Source:    m.sourcePath,
		OutputDir: m.outputDir,
		Range:     m.rng,
	}
	job, err := m.dispatcher.Dispatch(context.Background(), req)
	if err != nil {
		return m, m.showResult(fmt.Sprintf("Cannot save clip: %v", err), true)
	}

	if m.player != nil && m.statusBar.Playing {
		if err := m.player.Pause(); err != nil {
			m.logger.Debug("pause before render failed", zap.Error(err))
		}
	}

	m.job = job
	m.mode = modeRendering
	m.panel = components.RenderPanelState{
		Phase:  components.RenderRunning,
		Source: req.Source,
		Output: clip.OutputPath(req.Source, req.OutputDir),
		Window: req.Range.Window(float64(m.statusBar.DurationMillis) / 1000),
		Bar:    m.progress.ViewAs(0),
	}
	m.stopwatch = stopwatch.NewWithInterval(time.Second)

	return m, tea.Batch(m.spinner.Tick, m.stopwatch.Init(), waitForRenderMsg(job))
}

// handleOutcome ends the in-flight job. A finished clip ends the program,
// a cancelled one returns to editing and a failure shows the failed panel.
func (m *Model) handleOutcome(out clip.Outcome) (tea.Model, tea.Cmd) {
	if m.job == nil || out.JobID != m.job.ID {
		return m, nil
	}
	m.job = nil
	m.confirm = nil
	stop := m.stopwatch.Stop()

	switch {
	case out.Succeeded():
		m.outcome = &out
		m.quitting = true
		return m, tea.Quit
	case out.Kind() == clip.KindCancelled:
		m.mode = modeEdit
		m.panel = components.RenderPanelState{}
		return m, tea.Batch(stop, m.showResult("Render cancelled", false))
	default:
		m.mode = modeFailed
		m.panel.Phase = components.RenderFailed
		m.panel.Err = out.Err
		return m, stop
	}
}

// handleRenderingKey handles keys while the render panel is shown.
func (m *Model) handleRenderingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		if m.job != nil {
			m.job.Cancel()
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, cancelBinding):
		m.cancelJob = false
		m.confirm = forms.NewCancelRenderForm(m.panel.Output, &m.cancelJob)
		m.mode = modeConfirmCancel
		return m, m.confirm.Init()
	}
	return m, nil
}

// updateConfirm forwards messages to the cancel confirmation form.
func (m *Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.confirm == nil {
		m.mode = modeRendering
		return m, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		m.confirm = nil
		m.mode = modeRendering
		return m, nil
	}

	model, cmd := m.confirm.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		if m.cancelJob && m.job != nil {
			m.logger.Info("render cancel requested", zap.String("job_id", m.job.ID))
			m.job.Cancel()
		}
		m.confirm = nil
		m.mode = modeRendering
		return m, nil
	case huh.StateAborted:
		m.confirm = nil
		m.mode = modeRendering
		return m, nil
	}
	return m, cmd
}

// showResult shows a message under the slider and clears it later.
func (m *Model) showResult(text string, isError bool) tea.Cmd {
	m.result = text
	m.resultError = isError
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{}
	})
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return components.HelpOverlay(m.keys.helpGroups(), m.width, m.height)
	}

	// Narrow terminals get the mini player only
	if m.width > 0 && m.width < layout.MinTerminalWidth {
		return components.RenderMiniPlayer(m.statusBar, m.rng, m.width) + "\n" +
			styles.Hint.Render("Mini player mode - resize for full view")
	}

	statusBar := components.StatusBar(m.statusBar, m.width)

	switch m.mode {
	case modeRendering, modeFailed, modeConfirmCancel:
		return statusBar + "\n\n" + m.renderPanelView()
	}

	sideWidth, mainWidth := layout.ComputeColumnWidths(m.width)

	// Available height for columns: status bar, slider (7), result and footer
	colHeight := m.height - 10
	if colHeight < 8 {
		colHeight = 8
	}

	columns := layout.JoinColumns(
		[]string{m.renderSideColumn(sideWidth, colHeight), m.renderMainColumn(mainWidth, colHeight)},
		[]int{sideWidth, mainWidth},
		colHeight,
	)

	slider := components.RangeSlider(components.RangeSliderState{
		Range:          m.rng,
		Playback:       m.playback,
		Active:         m.active,
		DurationMillis: m.statusBar.DurationMillis,
	}, m.width)

	resultLine := ""
	if m.result != "" {
		if m.resultError {
			resultLine = styles.Warning.Render(" " + m.result)
		} else {
			resultLine = styles.Success.Render(" " + m.result)
		}
	}

	return statusBar + "\n" + columns + "\n" + slider + "\n" + resultLine + "\n" + m.help.View(m.keys)
}

// renderPanelView renders the render panel, with the confirm form under it
// when a cancel is being confirmed.
func (m *Model) renderPanelView() string {
	width := m.panelWidth()

	state := m.panel
	state.Spinner = m.spinner.View()
	state.Elapsed = m.stopwatch.Elapsed().Milliseconds()
	view := components.RenderPanel(state, width)

	if m.mode == modeConfirmCancel && m.confirm != nil {
		view += "\n\n" + m.confirm.View()
	}

	pad := (m.width - width) / 2
	if pad <= 0 {
		return view
	}
	return lipgloss.NewStyle().MarginLeft(pad).Render(view)
}

// panelWidth is half the terminal, or all of it when that is too narrow.
func (m *Model) panelWidth() int {
	if m.width/2 < 40 {
		return m.width
	}
	return m.width / 2
}

// Run starts the Bubbletea program and blocks until the user quits or a
// clip is saved. It returns the outcome of the saved render, or nil when
// the user quit without saving.
func Run(opts Options) (*clip.Outcome, error) {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(*Model)
	if !ok {
		return nil, nil
	}
	if fm.job != nil {
		fm.job.Cancel()
		waitIdle(opts.Dispatcher, shutdownTimeout)
	}
	return fm.outcome, nil
}

// waitIdle waits for a cancelled job to clean up its partial output. The
// outcome itself may already have been taken by a pending command, so the
// dispatcher's busy flag is polled instead.
func waitIdle(d *clip.Dispatcher, timeout time.Duration) {
	if d == nil {
		return
	}
	deadline := time.Now().Add(timeout)
	for d.Busy() && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
}
