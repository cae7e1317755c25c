package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Given media targets for the sink process", t, func() {
		Convey("Http and https URLs pass through untouched", func() {
			for _, link := range []string{
				"http://server:8096/Videos/a1/stream.mkv",
				"https://server/Videos/a1/main.m3u8?api_key=x",
			} {
				out, err := sanitizeMediaTarget(link)

				So(err, ShouldBeNil)
				So(out, ShouldEqual, link)
			}
		})

		Convey("Local paths are cleaned", func() {
			out, err := sanitizeMediaTarget("./media/../movie.mkv")

			So(err, ShouldBeNil)
			So(out, ShouldEqual, "movie.mkv")
		})

		Convey("Empty and blank targets are rejected", func() {
			for _, link := range []string{"", "   "} {
				_, err := sanitizeMediaTarget(link)

				So(err, ShouldNotBeNil)
			}
		})

		Convey("Flag-like targets are rejected", func() {
			_, err := sanitizeMediaTarget("--input-ipc-server=/tmp/evil.sock")

			So(err, ShouldNotBeNil)
		})

		Convey("Control characters are rejected", func() {
			for _, link := range []string{
				"http://server/a\nb",
				"movie\x00.mkv",
			} {
				_, err := sanitizeMediaTarget(link)

				So(err, ShouldNotBeNil)
			}
		})

		Convey("Non-http schemes are rejected", func() {
			for _, link := range []string{
				"ftp://server/movie.mkv",
				"file:///etc/passwd",
				"rtsp://camera/feed",
			} {
				_, err := sanitizeMediaTarget(link)

				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestDispatchEvent(t *testing.T) {
	Convey("Given a bound callback set", t, func() {
		var (
			times     []float64
			durations []float64
			plays     int
			pauses    int
			waits     int
			playings  int
			loads     int
			ends      int
			errs      []error
		)
		events := Events{
			OnTimeUpdate:     func(s float64) { times = append(times, s) },
			OnDurationChange: func(s float64) { durations = append(durations, s) },
			OnPlay:           func() { plays++ },
			OnPause:          func() { pauses++ },
			OnWaiting:        func() { waits++ },
			OnPlaying:        func() { playings++ },
			OnMetadataLoaded: func() { loads++ },
			OnEnded:          func() { ends++ },
			OnError:          func(err error) { errs = append(errs, err) },
		}

		Convey("time-pos and duration route to the timing callbacks", func() {
			dispatchEvent(events, "time-pos", 12.5)
			dispatchEvent(events, "duration", 3600.0)

			So(times, ShouldResemble, []float64{12.5})
			So(durations, ShouldResemble, []float64{3600.0})
		})

		Convey("pause toggles between the transport callbacks", func() {
			dispatchEvent(events, "pause", true)
			dispatchEvent(events, "pause", false)

			So(pauses, ShouldEqual, 1)
			So(plays, ShouldEqual, 1)
		})

		Convey("paused-for-cache maps to the buffering callbacks", func() {
			dispatchEvent(events, "paused-for-cache", true)
			dispatchEvent(events, "paused-for-cache", false)

			So(waits, ShouldEqual, 1)
			So(playings, ShouldEqual, 1)
		})

		Convey("eof-reached fires only when true", func() {
			dispatchEvent(events, "eof-reached", false)
			So(ends, ShouldEqual, 0)

			dispatchEvent(events, "eof-reached", true)
			So(ends, ShouldEqual, 1)
		})

		Convey("file-loaded fires the metadata callback", func() {
			dispatchEvent(events, "file-loaded", nil)

			So(loads, ShouldEqual, 1)
		})

		Convey("end-file with an error reason surfaces OnError", func() {
			dispatchEvent(events, "end-file", map[string]interface{}{
				"reason":     "error",
				"file_error": "no audio or video streams",
			})

			So(errs, ShouldHaveLength, 1)
			So(errs[0].Error(), ShouldContainSubstring, "no audio or video streams")
		})

		Convey("end-file with a regular reason stays quiet", func() {
			dispatchEvent(events, "end-file", map[string]interface{}{"reason": "eof"})

			So(errs, ShouldBeEmpty)
		})

		Convey("Payloads of the wrong type are dropped", func() {
			dispatchEvent(events, "time-pos", "not a number")
			dispatchEvent(events, "pause", 1.0)
			dispatchEvent(events, "end-file", "error")

			So(times, ShouldBeEmpty)
			So(plays+pauses, ShouldEqual, 0)
			So(errs, ShouldBeEmpty)
		})

		Convey("Unbound callbacks never panic", func() {
			So(func() {
				dispatchEvent(Events{}, "time-pos", 1.0)
				dispatchEvent(Events{}, "pause", true)
				dispatchEvent(Events{}, "eof-reached", true)
				dispatchEvent(Events{}, "file-loaded", nil)
				dispatchEvent(Events{}, "end-file", map[string]interface{}{"reason": "error"})
			}, ShouldNotPanic)
		})
	})
}
