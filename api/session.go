package api

import (
	"fmt"
	"time"
)

// SessionDescriptor identifies one playback attempt to the server.
type SessionDescriptor struct {
	AssetID       string `json:"itemId"`
	MediaSourceID string `json:"mediaSourceId"`
	PlaySessionID string `json:"playSessionId"`
	AudioTrack    int    `json:"audioStreamIndex"`
	SubtitleTrack int    `json:"subtitleStreamIndex"`
	// Resume position in server ticks.
	PositionTicks int64 `json:"positionTicks"`
	// "DirectPlay" or "Transcode".
	PlayMethod string `json:"playMethod"`
	CanSeek    bool   `json:"canSeek"`
}

// NewPlaySessionID derives a per-attempt identifier correlating start and
// progress reports server-side.
func NewPlaySessionID(deviceID string) string {
	return fmt.Sprintf("%s-%d", deviceID, time.Now().UnixMilli())
}
