package session

import (
	"github.com/jellysan-cli/jellysan/codec"
	"github.com/jellysan-cli/jellysan/stream"
)

// Snapshot is a point-in-time view of the session for rendering.
type Snapshot struct {
	Phase       Phase
	Switching   bool
	Playing     bool
	Buffering   bool
	CurrentTime float64
	Duration    float64
	Volume      float64
	Muted       bool
	Decision    codec.Decision
	Selection   stream.TrackSelection
	AudioTracks []stream.AudioTrack
	Subtitles   []*stream.Stream
	Err         error
}

// Snapshot returns a consistent copy of the session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Phase:       c.phase,
		Switching:   c.switching,
		Playing:     c.state.playing,
		Buffering:   c.state.buffering,
		CurrentTime: c.state.currentTime,
		Duration:    c.state.duration,
		Volume:      c.state.volume,
		Muted:       c.state.muted,
		Decision:    c.decision,
		Selection:   c.selection,
		Subtitles:   c.subtitles,
		Err:         c.lastErr,
	}
	if c.asset != nil {
		snap.AudioTracks = c.asset.AudioTracks()
	}
	return snap
}
