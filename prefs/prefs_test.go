package prefs

import (
	"testing"
	"time"

	"github.com/jellysan-cli/jellysan/filesystem"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestTrackPreference(t *testing.T) {
	Convey("Given a saved track preference", t, func() {
		err := SaveTrackPreference("asset-1", 2, mo.None[int]())
		So(err, ShouldBeNil)

		Convey("It round-trips unchanged within the expiry window", func() {
			loaded := LoadTrackPreference("asset-1")
			So(loaded.IsPresent(), ShouldBeTrue)
			So(loaded.MustGet().Audio, ShouldEqual, 2)
			So(loaded.MustGet().Subtitle.IsAbsent(), ShouldBeTrue)
		})

		Convey("A present subtitle index survives the round-trip", func() {
			So(SaveTrackPreference("asset-2", 1, mo.Some(3)), ShouldBeNil)
			loaded := LoadTrackPreference("asset-2")
			So(loaded.MustGet().Subtitle.MustGet(), ShouldEqual, 3)
		})

		Convey("It is scoped per asset", func() {
			So(LoadTrackPreference("asset-unknown").IsAbsent(), ShouldBeTrue)
		})

		Convey("An expired entry reads as absent", func() {
			saved := loadTracks()
			saved["asset-1"].SavedAt = time.Now().Add(-TTL - time.Hour)
			So(trackCacher.Set(saved), ShouldBeNil)

			So(LoadTrackPreference("asset-1").IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestCollectGarbage(t *testing.T) {
	Convey("Given a store with live and expired entries", t, func() {
		So(SaveTrackPreference("fresh", 1, mo.None[int]()), ShouldBeNil)
		So(SaveTrackPreference("stale", 2, mo.None[int]()), ShouldBeNil)

		saved := loadTracks()
		saved["stale"].SavedAt = time.Now().Add(-TTL - time.Hour)
		So(trackCacher.Set(saved), ShouldBeNil)

		Convey("CollectGarbage drops only the expired entries", func() {
			CollectGarbage()

			remaining := loadTracks()
			So(remaining, ShouldContainKey, "fresh")
			So(remaining, ShouldNotContainKey, "stale")
		})
	})
}

func TestQualityPreference(t *testing.T) {
	Convey("Quality ceiling", t, func() {
		Convey("Round-trips through the global settings record", func() {
			So(SaveQualityPreference(mo.Some(1080)), ShouldBeNil)
			So(LoadQualityPreference().MustGet(), ShouldEqual, 1080)
		})

		Convey("None clears the ceiling", func() {
			So(SaveQualityPreference(mo.None[int]()), ShouldBeNil)
			So(LoadQualityPreference().IsAbsent(), ShouldBeTrue)
		})
	})
}
