// Package session drives a focus mission through its lifecycle: focusing,
// getting tired at the halfway mark, resting, resuming and finishing
package session

// Phase is the state of the current mission.
type Phase string

const (
	Idle      Phase = "idle"
	Focusing  Phase = "focusing"
	Tired     Phase = "tired"
	Resting   Phase = "resting"
	Completed Phase = "completed"
	Aborted   Phase = "aborted"
)

// Active reports whether a mission is in progress.
func (p Phase) Active() bool {
	return p == Focusing || p == Tired || p == Resting
}

// Terminal reports whether the mission has finished.
func (p Phase) Terminal() bool {
	return p == Completed || p == Aborted
}

func (p Phase) String() string {
	return string(p)
}
