// Package stream defines the domain models for media assets and their elementary streams.
package stream

import (
	"fmt"

	"github.com/samber/mo"
)

// TicksPerSecond is the server's time unit: one tick is 100 nanoseconds.
const TicksPerSecond = 10_000_000

// Asset represents a playable media item fetched from the server.
// Immutable for the duration of a session except for PositionTicks,
// which the server updates asynchronously between sessions.
type Asset struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Streams []*Stream `json:"streams"`

	// Last known playback position in server ticks.
	PositionTicks int64 `json:"position_ticks"`
}

// String returns the asset display name.
func (a *Asset) String() string {
	return a.Name
}

// VideoStream returns the first video stream descriptor, if any.
func (a *Asset) VideoStream() mo.Option[*Stream] {
	for _, s := range a.Streams {
		if s.Type == Video {
			return mo.Some(s)
		}
	}
	return mo.None[*Stream]()
}

// ResumeSeconds converts the server-stored position to whole seconds.
func (a *Asset) ResumeSeconds() int64 {
	return a.PositionTicks / TicksPerSecond
}

// AudioTrack is a selectable audio stream prepared for display.
type AudioTrack struct {
	ID       int
	Label    string
	Language string
}

// AudioTracks derives the selectable audio track list from the asset's streams.
// Streams without a display title fall back to a positional "Track N" label.
func (a *Asset) AudioTracks() []AudioTrack {
	var tracks []AudioTrack
	for _, s := range a.Streams {
		if s.Type != Audio {
			continue
		}

		label := s.DisplayTitle
		if label == "" {
			label = fmt.Sprintf("Track %d", len(tracks)+1)
		}

		tracks = append(tracks, AudioTrack{
			ID:       s.Index,
			Label:    label,
			Language: s.Language,
		})
	}
	return tracks
}

// SubtitleStreams returns the subtitle stream descriptors embedded in the asset.
func (a *Asset) SubtitleStreams() []*Stream {
	var subs []*Stream
	for _, s := range a.Streams {
		if s.Type == Subtitle {
			subs = append(subs, s)
		}
	}
	return subs
}
