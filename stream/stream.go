// Package stream defines the domain models for media assets and their elementary streams.
package stream

// Type classifies an elementary stream within a media asset.
type Type string

const (
	Video    Type = "Video"
	Audio    Type = "Audio"
	Subtitle Type = "Subtitle"
)

// Stream represents a single elementary stream descriptor within a media asset.
// Descriptors are read-only once fetched from the server.
type Stream struct {
	// Server-side stream index, used for track selection in playback URLs.
	Index int `json:"index"`
	// Stream classification (Video, Audio, Subtitle).
	Type Type `json:"type"`
	// Codec name as reported by the server (e.g. "h264", "hevc").
	Codec string `json:"codec"`
	// Codec profile (e.g. "High", "Main"). Video streams only.
	Profile string `json:"profile"`
	// Codec level (e.g. 4.1). Video streams only.
	Level float64 `json:"level"`
	// Human-readable stream title.
	DisplayTitle string `json:"display_title"`
	// ISO language code, may be empty.
	Language string `json:"language"`
	// Vertical resolution in pixels. Video streams only.
	Height int `json:"height"`
}

// String returns the display title or a codec fallback.
func (s *Stream) String() string {
	if s.DisplayTitle != "" {
		return s.DisplayTitle
	}
	return s.Codec
}
