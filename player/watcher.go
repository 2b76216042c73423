package player

import "github.com/user/clip-trimmer/clip"

// Event is a change observed on the player.
type Event interface {
	isEvent()
}

// StateChanged fires when playback starts or pauses.
type StateChanged struct {
	Playing bool
}

// PositionChanged fires when the playback position moves. Position is
// rounded up onto the normalized scale.
type PositionChanged struct {
	Position   clip.Position
	TimeMillis int64
}

// MediaParsed fires once, when the player first reports a duration.
type MediaParsed struct {
	DurationMillis int64
}

func (StateChanged) isEvent()    {}
func (PositionChanged) isEvent() {}
func (MediaParsed) isEvent()     {}

// Snapshot is the player state read in one poll.
type Snapshot struct {
	Playing        bool
	Position       clip.Position
	TimeMillis     int64
	DurationMillis int64
}

// Read queries c for a full Snapshot.
func Read(c Controller) (Snapshot, error) {
	var s Snapshot
	var err error

	if s.Playing, err = c.IsPlaying(); err != nil {
		return Snapshot{}, err
	}
	fraction, err := c.PositionFraction()
	if err != nil {
		return Snapshot{}, err
	}
	s.Position = clip.FromFraction(fraction)
	if s.TimeMillis, err = c.TimeMillis(); err != nil {
		return Snapshot{}, err
	}
	if s.DurationMillis, err = c.DurationMillis(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Watcher polls a Controller and reports what changed since the last poll.
// It is owned by the interactive loop and is not safe for concurrent use.
type Watcher struct {
	ctrl   Controller
	last   Snapshot
	primed bool
	parsed bool
}

// NewWatcher creates a Watcher for c.
func NewWatcher(c Controller) *Watcher {
	return &Watcher{ctrl: c}
}

// Poll reads the player and returns the events since the previous call. The
// first successful poll reports the initial state and position.
func (w *Watcher) Poll() ([]Event, error) {
	s, err := Read(w.ctrl)
	if err != nil {
		return nil, err
	}
	events := w.diff(s)
	w.last = s
	w.primed = true
	return events, nil
}

func (w *Watcher) diff(s Snapshot) []Event {
	var events []Event
	if !w.parsed && s.DurationMillis > 0 {
		w.parsed = true
		events = append(events, MediaParsed{DurationMillis: s.DurationMillis})
	}
	if !w.primed || s.Playing != w.last.Playing {
		events = append(events, StateChanged{Playing: s.Playing})
	}
	if !w.primed || s.Position != w.last.Position || s.TimeMillis/1000 != w.last.TimeMillis/1000 {
		events = append(events, PositionChanged{Position: s.Position, TimeMillis: s.TimeMillis})
	}
	return events
}
