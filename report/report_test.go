package report

import (
	"errors"
	"sync"
	"testing"

	"github.com/jellysan-cli/jellysan/api"
	"github.com/jellysan-cli/jellysan/stream"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type progressCall struct {
	AssetID  string
	Position int
	Audio    int
	Subtitle int
}

type recordingClient struct {
	mu    sync.Mutex
	calls []progressCall
	err   error
}

func (c *recordingClient) FetchSubtitleTracks(*stream.Asset) ([]*stream.Stream, error) {
	return nil, nil
}

func (c *recordingClient) PlaybackURL(string, int, []*stream.Stream, mo.Option[int], bool, mo.Option[int]) (string, error) {
	return "", nil
}

func (c *recordingClient) ReportPlaying(*api.SessionDescriptor) error { return nil }

func (c *recordingClient) ReportProgress(assetID string, positionSeconds, audioTrack, subtitleTrack int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, progressCall{assetID, positionSeconds, audioTrack, subtitleTrack})
	return c.err
}

func (c *recordingClient) DeviceID() string { return "test-device" }

func (c *recordingClient) recorded() []progressCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]progressCall(nil), c.calls...)
}

func TestReporter(t *testing.T) {
	Convey("Given a configured reporter", t, func() {
		client := &recordingClient{}
		r := NewReporter(client)
		r.Configure("asset-1", 1, 2)

		Convey("Even seconds report, odd seconds do not", func() {
			r.Tick(2.3, 100, true)
			r.Tick(3.1, 100, true)
			r.Tick(4.0, 100, true)

			calls := client.recorded()
			So(calls, ShouldHaveLength, 2)
			So(calls[0].Position, ShouldEqual, 2)
			So(calls[1].Position, ShouldEqual, 4)
		})

		Convey("The same whole second never reports twice", func() {
			r.Tick(2.1, 100, true)
			r.Tick(2.5, 100, true)
			r.Tick(2.9, 100, true)

			So(client.recorded(), ShouldHaveLength, 1)
		})

		Convey("Paused samples never report", func() {
			r.Tick(2.0, 100, false)

			So(client.recorded(), ShouldBeEmpty)
		})

		Convey("The final second reports even when odd", func() {
			r.Tick(99.4, 99.9, true)

			calls := client.recorded()
			So(calls, ShouldHaveLength, 1)
			So(calls[0].Position, ShouldEqual, 99)
		})

		Convey("Reports carry the configured asset and tracks", func() {
			r.Tick(6.0, 100, true)

			calls := client.recorded()
			So(calls, ShouldHaveLength, 1)
			So(calls[0].AssetID, ShouldEqual, "asset-1")
			So(calls[0].Audio, ShouldEqual, 1)
			So(calls[0].Subtitle, ShouldEqual, 2)
		})

		Convey("SetTracks changes subsequent reports", func() {
			r.SetTracks(3, 4)
			r.Tick(6.0, 100, true)

			calls := client.recorded()
			So(calls[0].Audio, ShouldEqual, 3)
			So(calls[0].Subtitle, ShouldEqual, 4)
		})

		Convey("Configure resets the throttle", func() {
			r.Tick(2.0, 100, true)
			r.Configure("asset-2", 0, -1)
			r.Tick(2.0, 100, true)

			calls := client.recorded()
			So(calls, ShouldHaveLength, 2)
			So(calls[1].AssetID, ShouldEqual, "asset-2")
		})

		Convey("Delivery failures are swallowed and still advance the throttle", func() {
			client.err = errors.New("boom")
			r.Tick(2.0, 100, true)
			r.Tick(2.0, 100, true)

			So(client.recorded(), ShouldHaveLength, 1)
		})

		Convey("Invalid samples are ignored", func() {
			r.Tick(-1, 100, true)

			So(client.recorded(), ShouldBeEmpty)
		})
	})

	Convey("Given an unconfigured reporter", t, func() {
		client := &recordingClient{}
		r := NewReporter(client)

		Convey("Ticks are dropped until an asset is set", func() {
			r.Tick(2.0, 100, true)

			So(client.recorded(), ShouldBeEmpty)
		})
	})
}
