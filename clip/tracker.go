package clip

// Endpoint names one handle of the range control.
type Endpoint int

const (
	EndpointStart Endpoint = iota
	EndpointEnd
)

func (e Endpoint) String() string {
	if e == EndpointEnd {
		return "end"
	}
	return "start"
}

// Move is a single-handle drag detected by the Tracker.
type Move struct {
	Endpoint Endpoint
	Position Position
}

// Tracker remembers the last range reported by the range control and works
// out which handle moved on each change. Only single-handle moves produce a
// preview seek; a change to both handles at once (or to neither) is ambiguous.
// A Tracker is owned by the interactive loop and is not safe for concurrent use.
type Tracker struct {
	prev Range
}

// NewTracker returns a Tracker whose previous value is initial.
func NewTracker(initial Range) *Tracker {
	return &Tracker{prev: initial}
}

// Previous returns the last range seen.
func (t *Tracker) Previous() Range {
	return t.prev
}

// Update records next and reports the moved handle, if exactly one moved.
// The previous value is replaced even when no move is reported.
func (t *Tracker) Update(next Range) (Move, bool) {
	startMoved := next.Start != t.prev.Start
	endMoved := next.End != t.prev.End
	t.prev = next

	switch {
	case startMoved && !endMoved:
		return Move{Endpoint: EndpointStart, Position: next.Start}, true
	case endMoved && !startMoved:
		return Move{Endpoint: EndpointEnd, Position: next.End}, true
	default:
		return Move{}, false
	}
}
