// Package codec analyzes video stream descriptors against the runtime's
// native decode capability to decide between direct play and transcoding.
package codec

import (
	"strings"

	"github.com/jellysan-cli/jellysan/key"
	"github.com/jellysan-cli/jellysan/stream"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Mode is the delivery method chosen for an asset.
type Mode int

const (
	Transcode Mode = iota
	DirectPlay
)

// String returns the server-facing play method identifier.
func (m Mode) String() string {
	if m == DirectPlay {
		return "DirectPlay"
	}
	return "Transcode"
}

// Reason explains why a playback mode was chosen.
type Reason string

const (
	ReasonNoVideoStream    Reason = "NoVideoStream"
	ReasonUnsupportedCodec Reason = "UnsupportedCodec"
	ReasonProbeRefused     Reason = "ProbeRefused"
	ReasonNativeSupport    Reason = "NativeSupport"
)

// Decision is the derived direct-play/transcode verdict for one asset.
// It is recomputed whenever the asset changes and never persisted.
type Decision struct {
	Mode   Mode
	Reason Reason
}

// Support is the capability probe's answer for a MIME string.
type Support int

const (
	CanPlayNo Support = iota
	CanPlayMaybe
	CanPlayProbably
)

// Prober answers whether the runtime can natively decode a given MIME string.
// Implementations must be state-free: a probe holds no persistent resources
// and may be discarded after a single query.
type Prober interface {
	CanPlayType(mime string) Support
}

// ProbeFunc adapts a plain function to the Prober interface.
type ProbeFunc func(mime string) Support

func (f ProbeFunc) CanPlayType(mime string) Support {
	return f(mime)
}

// Native returns a prober backed by the configured list of natively
// playable MIME type prefixes.
func Native() Prober {
	prefixes := viper.GetStringSlice(key.PlayerNativeTypes)
	return ProbeFunc(func(mime string) Support {
		for _, prefix := range prefixes {
			if strings.HasPrefix(mime, prefix) {
				return CanPlayProbably
			}
		}
		return CanPlayNo
	})
}

// Analyze decides the delivery mode for the given video stream descriptor.
// It never fails: a missing descriptor, an unmapped codec, or a refusing
// probe all degrade to Transcode with the corresponding reason.
func Analyze(video mo.Option[*stream.Stream], probe Prober) Decision {
	v, ok := video.Get()
	if !ok || v == nil {
		return Decision{Mode: Transcode, Reason: ReasonNoVideoStream}
	}

	mime, ok := BuildCodecString(v).Get()
	if !ok {
		return Decision{Mode: Transcode, Reason: ReasonUnsupportedCodec}
	}

	if probe == nil {
		probe = Native()
	}

	switch probe.CanPlayType(mime) {
	case CanPlayProbably, CanPlayMaybe:
		return Decision{Mode: DirectPlay, Reason: ReasonNativeSupport}
	default:
		return Decision{Mode: Transcode, Reason: ReasonProbeRefused}
	}
}
