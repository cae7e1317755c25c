package codec

import (
	"testing"

	"github.com/jellysan-cli/jellysan/stream"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func video(codec, profile string, level float64) *stream.Stream {
	return &stream.Stream{Type: stream.Video, Codec: codec, Profile: profile, Level: level}
}

func TestBuildCodecString(t *testing.T) {
	Convey("BuildCodecString", t, func() {
		Convey("h264 High 4.1 yields the canonical avc1 string", func() {
			mime := BuildCodecString(video("h264", "High", 4.1))
			So(mime.MustGet(), ShouldEqual, `video/mp4; codecs="avc1.640029"`)
		})

		Convey("avc1 is treated as h264", func() {
			mime := BuildCodecString(video("AVC1", "Main", 3.0))
			So(mime.MustGet(), ShouldEqual, `video/mp4; codecs="avc1.4D001e"`)
		})

		Convey("Unknown h264 profiles default to High", func() {
			mime := BuildCodecString(video("h264", "Extended", 4.0))
			So(mime.MustGet(), ShouldEqual, `video/mp4; codecs="avc1.640028"`)
		})

		Convey("Fixed strings for the remaining codecs", func() {
			cases := map[string]string{
				"hevc":   `video/mp4; codecs="hvc1.1.6.L93.B0"`,
				"h265":   `video/mp4; codecs="hvc1.1.6.L93.B0"`,
				"vp8":    `video/webm; codecs="vp8"`,
				"vp9":    `video/webm; codecs="vp9"`,
				"av1":    `video/mp4; codecs="av01.0.05M.08"`,
				"theora": `video/ogg; codecs="theora"`,
			}
			for name, want := range cases {
				So(BuildCodecString(video(name, "", 0)).MustGet(), ShouldEqual, want)
			}
		})

		Convey("Unrecognized codecs yield None", func() {
			So(BuildCodecString(video("mpeg2video", "", 0)).IsAbsent(), ShouldBeTrue)
			So(BuildCodecString(nil).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestAnalyze(t *testing.T) {
	accept := ProbeFunc(func(string) Support { return CanPlayProbably })
	reject := ProbeFunc(func(string) Support { return CanPlayNo })

	Convey("Analyze", t, func() {
		Convey("Missing video stream forces Transcode", func() {
			d := Analyze(mo.None[*stream.Stream](), accept)
			So(d.Mode, ShouldEqual, Transcode)
			So(d.Reason, ShouldEqual, ReasonNoVideoStream)
		})

		Convey("Unmapped codec forces Transcode", func() {
			d := Analyze(mo.Some(video("mpeg2video", "", 0)), accept)
			So(d.Mode, ShouldEqual, Transcode)
			So(d.Reason, ShouldEqual, ReasonUnsupportedCodec)
		})

		Convey("Probe acceptance yields DirectPlay", func() {
			d := Analyze(mo.Some(video("h264", "High", 4.1)), accept)
			So(d.Mode, ShouldEqual, DirectPlay)
			So(d.Reason, ShouldEqual, ReasonNativeSupport)
		})

		Convey("Maybe counts as playable", func() {
			maybe := ProbeFunc(func(string) Support { return CanPlayMaybe })
			d := Analyze(mo.Some(video("vp9", "", 0)), maybe)
			So(d.Mode, ShouldEqual, DirectPlay)
		})

		Convey("Probe refusal yields Transcode", func() {
			d := Analyze(mo.Some(video("h264", "High", 4.1)), reject)
			So(d.Mode, ShouldEqual, Transcode)
			So(d.Reason, ShouldEqual, ReasonProbeRefused)
		})

		Convey("Mode strings match the server play methods", func() {
			So(DirectPlay.String(), ShouldEqual, "DirectPlay")
			So(Transcode.String(), ShouldEqual, "Transcode")
		})
	})
}
