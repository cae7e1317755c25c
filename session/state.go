package session

// playbackState mirrors the sink's last reported timing and transport state.
// It is owned by the controller and mutated only under its lock.
type playbackState struct {
	currentTime float64
	duration    float64
	playing     bool
	buffering   bool

	// Audio output state; preserved across asset changes.
	volume float64
	muted  bool

	// restored marks the attach cycle's one-shot position restore as consumed.
	restored bool
}
