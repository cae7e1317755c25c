package session

import (
	"sync"

	"github.com/jellysan-cli/jellysan/api"
	"github.com/jellysan-cli/jellysan/player"
	"github.com/jellysan-cli/jellysan/stream"
	"github.com/samber/mo"
)

// fakeSink records transport commands and lets tests fire sink events.
type fakeSink struct {
	events   player.Events
	bound    bool
	sources  []string
	seeks    []float64
	position float64
	duration float64
	paused   bool
	volume   float64
	muted    bool
	closed   bool
}

func newFakeSink() *fakeSink {
	return &fakeSink{paused: true}
}

func (s *fakeSink) SetSource(url string) error {
	s.sources = append(s.sources, url)
	s.position = 0
	return nil
}

func (s *fakeSink) Bind(events player.Events) error {
	s.events = events
	s.bound = true
	return nil
}

func (s *fakeSink) Unbind() {
	s.events = player.Events{}
	s.bound = false
}

func (s *fakeSink) Play() error {
	s.paused = false
	if s.events.OnPlay != nil {
		s.events.OnPlay()
	}
	return nil
}

func (s *fakeSink) Pause() error {
	s.paused = true
	if s.events.OnPause != nil {
		s.events.OnPause()
	}
	return nil
}

func (s *fakeSink) Seek(seconds float64) error {
	s.seeks = append(s.seeks, seconds)
	s.position = seconds
	if s.events.OnTimeUpdate != nil {
		s.events.OnTimeUpdate(seconds)
	}
	return nil
}

func (s *fakeSink) SetVolume(percent float64) error {
	s.volume = percent
	return nil
}

func (s *fakeSink) SetMuted(muted bool) error {
	s.muted = muted
	return nil
}

func (s *fakeSink) CurrentTime() (float64, error) { return s.position, nil }
func (s *fakeSink) Duration() (float64, error)    { return s.duration, nil }
func (s *fakeSink) Paused() (bool, error)         { return s.paused, nil }

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

// fireLoaded simulates the sink reporting a newly loaded source.
func (s *fakeSink) fireLoaded() {
	if s.events.OnMetadataLoaded != nil {
		s.events.OnMetadataLoaded()
	}
}

// fakeEngine records its lifecycle for the one-engine-per-sink assertions.
type fakeEngine struct {
	attached      player.Sink
	url           string
	manifestReady func()
	errHandler    func(error)
	destroyed     bool
}

func (e *fakeEngine) Attach(sink player.Sink) error { e.attached = sink; return nil }
func (e *fakeEngine) Load(url string) error         { e.url = url; return nil }
func (e *fakeEngine) OnManifestReady(fn func())     { e.manifestReady = fn }
func (e *fakeEngine) OnError(fn func(err error))    { e.errHandler = fn }
func (e *fakeEngine) Destroy()                      { e.destroyed = true }

func (e *fakeEngine) fireManifest() {
	if e.manifestReady != nil {
		e.manifestReady()
	}
}

type fakeFactory struct {
	supported bool
	engines   []*fakeEngine
}

func (f *fakeFactory) Supported() bool { return f.supported }

func (f *fakeFactory) New() player.Engine {
	engine := &fakeEngine{}
	f.engines = append(f.engines, engine)
	return engine
}

// live returns the engines not yet destroyed.
func (f *fakeFactory) live() []*fakeEngine {
	var out []*fakeEngine
	for _, e := range f.engines {
		if !e.destroyed {
			out = append(out, e)
		}
	}
	return out
}

type urlCall struct {
	AssetID    string
	Audio      int
	Subtitle   mo.Option[int]
	DirectPlay bool
	Quality    mo.Option[int]
}

// fakeClient records API traffic from the controller and reporter.
type fakeClient struct {
	mu        sync.Mutex
	urlCalls  []urlCall
	urlErr    error
	subtitles []*stream.Stream
	subErr    error
	playing   []*api.SessionDescriptor
	progress  []int
}

func (c *fakeClient) FetchSubtitleTracks(*stream.Asset) ([]*stream.Stream, error) {
	return c.subtitles, c.subErr
}

func (c *fakeClient) PlaybackURL(assetID string, audioTrack int, _ []*stream.Stream,
	subtitleTrack mo.Option[int], directPlay bool, quality mo.Option[int]) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.urlErr != nil {
		return "", c.urlErr
	}
	c.urlCalls = append(c.urlCalls, urlCall{assetID, audioTrack, subtitleTrack, directPlay, quality})
	return "https://server/stream/" + assetID, nil
}

func (c *fakeClient) ReportPlaying(desc *api.SessionDescriptor) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = append(c.playing, desc)
	return nil
}

func (c *fakeClient) ReportProgress(_ string, positionSeconds, _, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress = append(c.progress, positionSeconds)
	return nil
}

func (c *fakeClient) DeviceID() string { return "test-device" }

func (c *fakeClient) lastURLCall() urlCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.urlCalls[len(c.urlCalls)-1]
}

func (c *fakeClient) playingReports() []*api.SessionDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*api.SessionDescriptor(nil), c.playing...)
}

func (c *fakeClient) progressReports() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.progress...)
}
