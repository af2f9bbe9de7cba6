package recovery

// State is a step of the reset-password screen.
type State int

const (
	Validating State = iota
	Invalid
	Valid
	Submitting
	Success
)

func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	}
	return "unknown"
}

// Event drives a state change.
type Event int

const (
	EvTokenMissing Event = iota
	EvTokenAccepted
	EvTokenRejected
	EvSubmit
	EvResetSucceeded
	EvResetFailed
)

func (e Event) String() string {
	switch e {
	case EvTokenMissing:
		return "token missing"
	case EvTokenAccepted:
		return "token accepted"
	case EvTokenRejected:
		return "token rejected"
	case EvSubmit:
		return "submit"
	case EvResetSucceeded:
		return "reset succeeded"
	case EvResetFailed:
		return "reset failed"
	}
	return "unknown"
}

// Transition is a single allowed edge of the flow.
type Transition struct {
	From  State
	To    State
	Event Event
}

var transitionsTable = []Transition{
	// Token check
	{From: Validating, To: Invalid, Event: EvTokenMissing},
	{From: Validating, To: Invalid, Event: EvTokenRejected},
	{From: Validating, To: Valid, Event: EvTokenAccepted},

	// Submission; a rejected reset returns to the form
	{From: Valid, To: Submitting, Event: EvSubmit},
	{From: Submitting, To: Success, Event: EvResetSucceeded},
	{From: Submitting, To: Valid, Event: EvResetFailed},
}

// TransitionFor returns the allowed transition for a given state+event.
func TransitionFor(from State, ev Event) (Transition, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == ev {
			return tr, true
		}
	}
	return Transition{}, false
}

// Terminal reports whether no event leads out of s.
func (s State) Terminal() bool {
	for _, tr := range transitionsTable {
		if tr.From == s {
			return false
		}
	}
	return true
}
