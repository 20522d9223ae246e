package flock

// State is the simulate/display gate honoured by whoever drives Run.
// In Frozen the last buffer is still drawn but Run is not called.
type State uint8

const (
	Normal State = iota
	Frozen
)

func (s State) String() string {
	if s == Frozen {
		return "frozen"
	}
	return "normal"
}

// Toggle switches between Normal and Frozen.
func (s State) Toggle() State {
	if s == Frozen {
		return Normal
	}
	return Frozen
}

// Simulating reports whether Run should be invoked this frame.
func (s State) Simulating() bool {
	return s == Normal
}
