package session

// Phase is the lifecycle state of a playback session.
type Phase int

const (
	// PhaseIdle means no asset has been opened yet.
	PhaseIdle Phase = iota

	// PhaseAttaching means a source is being wired to the sink; transport
	// commands are not meaningful yet.
	PhaseAttaching

	// PhaseReady means the current source is attached and seekable.
	PhaseReady

	// PhaseError means the current attach cycle failed. Opening an asset or
	// switching tracks starts a fresh cycle.
	PhaseError

	// PhaseTornDown means the session was closed and cannot be reused.
	PhaseTornDown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAttaching:
		return "attaching"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	case PhaseTornDown:
		return "torn down"
	default:
		return "unknown"
	}
}
