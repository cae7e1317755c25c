package stream

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAsset(t *testing.T) {
	Convey("Given an asset with mixed streams", t, func() {
		asset := &Asset{
			ID:   "a1",
			Name: "Some Movie",
			Streams: []*Stream{
				{Index: 0, Type: Video, Codec: "h264", Height: 1080},
				{Index: 1, Type: Audio, DisplayTitle: "English 5.1", Language: "eng"},
				{Index: 2, Type: Audio, Language: "jpn"},
				{Index: 3, Type: Subtitle, DisplayTitle: "English", Language: "eng"},
			},
			PositionTicks: 72_000_000_000,
		}

		Convey("VideoStream returns the video descriptor", func() {
			So(asset.VideoStream().IsPresent(), ShouldBeTrue)
			So(asset.VideoStream().MustGet().Codec, ShouldEqual, "h264")
		})

		Convey("ResumeSeconds converts ticks by integer division", func() {
			So(asset.ResumeSeconds(), ShouldEqual, 7200)
		})

		Convey("AudioTracks falls back to positional labels", func() {
			tracks := asset.AudioTracks()
			So(len(tracks), ShouldEqual, 2)
			So(tracks[0].Label, ShouldEqual, "English 5.1")
			So(tracks[0].ID, ShouldEqual, 1)
			So(tracks[1].Label, ShouldEqual, "Track 2")
		})

		Convey("SubtitleStreams filters by type", func() {
			subs := asset.SubtitleStreams()
			So(len(subs), ShouldEqual, 1)
			So(subs[0].Index, ShouldEqual, 3)
		})
	})

	Convey("Given an asset without a video stream", t, func() {
		asset := &Asset{ID: "a2", Streams: []*Stream{{Index: 0, Type: Audio}}}

		Convey("VideoStream returns None", func() {
			So(asset.VideoStream().IsAbsent(), ShouldBeTrue)
		})
	})
}
