// Package stream defines the domain models for media assets and their elementary streams.
package stream

import "github.com/samber/mo"

// TrackSelection holds the user's current track and quality choices for a session.
// It drives playback URL construction; mutating it triggers a re-attach.
type TrackSelection struct {
	// Server stream index of the selected audio track.
	Audio int
	// Server stream index of the selected subtitle track, None when subtitles are off.
	Subtitle mo.Option[int]
	// Upper bound on vertical resolution for adaptive delivery, None for unbounded.
	Quality mo.Option[int]
}
