package cp

// Event is the closed set of notifications a Variable can fire.
// LowerBound/UpperBound fire when the respective bound moves,
// Assigned fires when the domain becomes a singleton, and Modified is the
// union: it fires on any strict change. A propagator should subscribe to
// the coarsest event it actually needs, to minimize wakeups.
//
// A separate Removed event was considered and dropped in favor of
// Modified plus the explicit bound events; only the four below are
// retained.
type Event int

const (
	EventModified Event = iota
	EventLowerBound
	EventUpperBound
	EventAssigned
)

func (e Event) String() string {
	switch e {
	case EventModified:
		return "Modified"
	case EventLowerBound:
		return "LowerBound"
	case EventUpperBound:
		return "UpperBound"
	case EventAssigned:
		return "Assigned"
	default:
		return "Unknown"
	}
}

// allEvents lists every event kind, in the order a Variable fires them.
var allEvents = [...]Event{EventLowerBound, EventUpperBound, EventAssigned, EventModified}
