package anneal

// State is the phase of an annealing run.
type State int

const (
	StateInitializing State = iota
	StateAnnealing
	StateFrozen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnnealing:
		return "annealing"
	case StateFrozen:
		return "frozen"
	default:
		return "unknown"
	}
}

// Step is a progress snapshot reported to Annealer.Progress.
type Step struct {
	State       State   `json:"state"`
	Temperature float64 `json:"temperature"`
	Level       int     `json:"level"`     // 1-based temperature level, 0 while initializing
	Iteration   int     `json:"iteration"` // 1-based iteration within the level
	Candidate   int     `json:"candidate"` // cost of the candidate local minimum
	Current     int     `json:"current"`   // cost of the current layout after acceptance
	Best        int     `json:"best"`      // best cost so far
	Accepted    bool    `json:"accepted"`
	Improved    bool    `json:"improved"` // the candidate became the new best
}
