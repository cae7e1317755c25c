// Package codec analyzes video stream descriptors against the runtime's
// native decode capability to decide between direct play and transcoding.
package codec

import (
	"fmt"
	"math"
	"strings"

	"github.com/jellysan-cli/jellysan/stream"
	"github.com/samber/mo"
)

// h264 profile_idc indicators, two hex digits each.
var h264Profiles = map[string]string{
	"Baseline":   "42",
	"Main":       "4D",
	"High":       "64",
	"High 10":    "6E",
	"High 4:2:2": "7A",
	"High 4:4:4": "F4",
}

// BuildCodecString derives a container+codec MIME string from a video stream
// descriptor. Unrecognized codecs yield None.
func BuildCodecString(video *stream.Stream) mo.Option[string] {
	if video == nil {
		return mo.None[string]()
	}

	switch strings.ToLower(video.Codec) {
	case "h264", "avc1":
		profile, ok := h264Profiles[video.Profile]
		if !ok {
			// Default to High
			profile = h264Profiles["High"]
		}
		// e.g. level 4.1 -> 41 -> "29"
		level := int(math.Round(video.Level * 10))
		return mo.Some(fmt.Sprintf(`video/mp4; codecs="avc1.%s00%02x"`, profile, level))

	case "hevc", "h265":
		// Basic HEVC string
		return mo.Some(`video/mp4; codecs="hvc1.1.6.L93.B0"`)

	case "vp8":
		return mo.Some(`video/webm; codecs="vp8"`)

	case "vp9":
		return mo.Some(`video/webm; codecs="vp9"`)

	case "av1":
		// Conservative AV1 profile
		return mo.Some(`video/mp4; codecs="av01.0.05M.08"`)

	case "theora":
		return mo.Some(`video/ogg; codecs="theora"`)

	default:
		return mo.None[string]()
	}
}
