package model

import "fmt"

// Outcome is the terminal state of a walk.
type Outcome int

const (
	// OutcomeFound means an article whose URL contains "Philosophy" was reached.
	OutcomeFound Outcome = iota

	// OutcomeHopLimitExceeded means the hop budget ran out before Philosophy
	// was reached.
	OutcomeHopLimitExceeded

	// OutcomeDeadEnd means every reachable, unvisited link from the start
	// article was explored without reaching Philosophy.
	OutcomeDeadEnd
)

// String returns the upper-case name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "FOUND"
	case OutcomeHopLimitExceeded:
		return "HOP_LIMIT_EXCEEDED"
	case OutcomeDeadEnd:
		return "DEAD_END"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler so outcomes render by name in JSON.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "FOUND":
		*o = OutcomeFound
	case "HOP_LIMIT_EXCEEDED":
		*o = OutcomeHopLimitExceeded
	case "DEAD_END":
		*o = OutcomeDeadEnd
	default:
		return fmt.Errorf("unknown outcome %q", string(text))
	}
	return nil
}
