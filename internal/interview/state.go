package interview

// Phase is the lifecycle position of a Session.
type Phase int

const (
	PhaseInitializing  Phase = iota // Creating the conversation, fetching the greeting
	PhaseActive                     // Waiting for the candidate
	PhaseAwaitingReply              // An exchange is in flight
	PhasePaused                     // Snapshot taken, handle released
	PhaseEnded                      // Feedback delivered
	PhaseFailed                     // Start failed; Start may be called again
)

var phaseNames = [...]string{
	PhaseInitializing:  "initializing",
	PhaseActive:        "active",
	PhaseAwaitingReply: "awaiting-reply",
	PhasePaused:        "paused",
	PhaseEnded:         "ended",
	PhaseFailed:        "failed",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Live reports whether the session holds a conversation handle in p.
func (p Phase) Live() bool {
	return p == PhaseActive || p == PhaseAwaitingReply
}
