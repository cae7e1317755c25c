// Package api declares the narrow interface the playback core consumes from
// the media-server client. Transport, authentication, and URL construction
// live behind this boundary and are not implemented here.
package api

import (
	"github.com/jellysan-cli/jellysan/stream"
	"github.com/samber/mo"
)

// Client is the server-API collaborator used by the session controller.
type Client interface {
	// FetchSubtitleTracks retrieves the external subtitle descriptors for an
	// asset. Fails soft: callers keep an empty subtitle list on error.
	FetchSubtitleTracks(asset *stream.Asset) ([]*stream.Stream, error)

	// PlaybackURL constructs the delivery URL for an asset. The controller
	// treats construction as a black box keyed by exactly these inputs.
	PlaybackURL(assetID string, audioTrack int, subtitles []*stream.Stream,
		subtitleTrack mo.Option[int], directPlay bool, quality mo.Option[int]) (string, error)

	// ReportPlaying delivers the fire-and-forget "started" event.
	ReportPlaying(desc *SessionDescriptor) error

	// ReportProgress delivers a playback progress report.
	ReportProgress(assetID string, positionSeconds int, audioTrack, subtitleTrack int) error

	// DeviceID returns the stable client device identifier.
	DeviceID() string
}
