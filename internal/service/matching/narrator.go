package matching

import "fmt"

// Narrator collects the ordered trace of pipeline decisions for one request.
// It is not safe for concurrent use; each request creates its own.
type Narrator struct {
	steps []string
}

// NewNarrator returns an empty Narrator.
func NewNarrator() *Narrator {
	return &Narrator{steps: make([]string, 0, 8)}
}

// Record appends one formatted step.
func (n *Narrator) Record(format string, args ...any) {
	n.steps = append(n.steps, fmt.Sprintf(format, args...))
}

// Steps returns a copy of the recorded steps.
func (n *Narrator) Steps() []string {
	out := make([]string, len(n.steps))
	copy(out, n.steps)
	return out
}

// Len returns the number of recorded steps.
func (n *Narrator) Len() int {
	return len(n.steps)
}
