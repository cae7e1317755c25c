// Package session owns the playback lifecycle for one sink: attaching assets,
// switching tracks without losing position, restoring resume points exactly
// once, and feeding the progress reporter.
package session

import (
	"fmt"
	"math"
	"sync"

	"github.com/jellysan-cli/jellysan/api"
	"github.com/jellysan-cli/jellysan/codec"
	"github.com/jellysan-cli/jellysan/key"
	"github.com/jellysan-cli/jellysan/log"
	"github.com/jellysan-cli/jellysan/player"
	"github.com/jellysan-cli/jellysan/prefs"
	"github.com/jellysan-cli/jellysan/quality"
	"github.com/jellysan-cli/jellysan/report"
	"github.com/jellysan-cli/jellysan/stream"
	"github.com/jellysan-cli/jellysan/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// seekTolerance is how far the sink may already sit from a restore target
// before an explicit seek is issued.
const seekTolerance = 0.5

// Controller drives playback of one asset at a time on a single sink.
// At most one engine exists per sink; every attach cycle retires the previous
// engine before creating the next. All methods are safe for concurrent use.
type Controller struct {
	client  api.Client
	sink    player.Sink
	factory player.EngineFactory
	probe   codec.Prober

	reporter *report.Reporter

	mu sync.Mutex
	// generation counts attach cycles; callbacks carry the generation they
	// were created under and become inert once it is stale.
	generation uint64
	phase      Phase
	switching  bool
	asset      *stream.Asset
	subtitles  []*stream.Stream
	selection  stream.TrackSelection
	decision   codec.Decision
	engine     player.Engine
	state      playbackState
	lastErr    error
}

// New creates a controller for the given sink. The factory and probe may be
// nil: a nil factory always uses the native attach path, a nil probe falls
// back to the configured native type list.
func New(client api.Client, sink player.Sink, factory player.EngineFactory, probe codec.Prober) *Controller {
	return &Controller{
		client:   client,
		sink:     sink,
		factory:  factory,
		probe:    probe,
		reporter: report.NewReporter(client),
		phase:    PhaseIdle,
		state:    playbackState{volume: 100},
	}
}

// Open starts playback of an asset, replacing whatever was playing before.
// The server-side resume position is restored once; saved track and quality
// preferences seed the initial selection.
func (c *Controller) Open(asset *stream.Asset) error {
	if asset == nil {
		return fmt.Errorf("open: nil asset")
	}

	// Subtitle metadata fails soft: playback proceeds without external
	// subtitles rather than not at all.
	subtitles, err := c.client.FetchSubtitleTracks(asset)
	if err != nil {
		log.Warnf("subtitle fetch for %s failed: %v", asset, err)
		subtitles = nil
	}

	sel := initialSelection(asset)

	c.mu.Lock()
	c.asset = asset
	c.subtitles = subtitles
	c.selection = sel
	// Audio output state belongs to the sink, not the asset; it survives
	// asset changes.
	c.state = playbackState{volume: c.state.volume, muted: c.state.muted}
	c.lastErr = nil
	c.mu.Unlock()

	if err := c.attach(float64(asset.ResumeSeconds()), true); err != nil {
		return err
	}

	c.reporter.Start(c.sample)
	return nil
}

// initialSelection derives the starting track selection for an asset from
// its streams and any saved preferences.
func initialSelection(asset *stream.Asset) stream.TrackSelection {
	sel := stream.TrackSelection{
		Subtitle: mo.None[int](),
		Quality:  mo.None[int](),
	}

	tracks := asset.AudioTracks()
	if len(tracks) > 0 {
		sel.Audio = tracks[0].ID
	}

	if viper.GetBool(key.PrefsSaveTracks) {
		if saved, ok := prefs.LoadTrackPreference(asset.ID).Get(); ok {
			// A saved selection naming a track the asset no longer carries
			// is stale; keep the default rather than pointing the server at
			// a missing stream.
			known := lo.SomeBy(tracks, func(t stream.AudioTrack) bool {
				return t.ID == saved.Audio
			})
			if known {
				sel.Audio = saved.Audio
				sel.Subtitle = saved.Subtitle
			}
		}
	}

	if ceiling, ok := prefs.LoadQualityPreference().Get(); ok {
		if validQualityCeiling(asset, ceiling) {
			sel.Quality = mo.Some(ceiling)
		}
	}

	return sel
}

// validQualityCeiling rejects saved ceilings that name an unknown tier or
// exceed the asset's native height.
func validQualityCeiling(asset *stream.Asset, height int) bool {
	if quality.TierIndex(height) < 0 {
		return false
	}
	if video, ok := asset.VideoStream().Get(); ok && video.Height > 0 {
		return height <= video.Height
	}
	return true
}

// attach wires the current asset and selection to the sink. It retires the
// previous attach cycle, decides direct play against transcode, fetches the
// delivery URL, and arms the one-shot position restore. resumeTarget is the
// position in seconds to restore; autoplay resumes playback once restored.
func (c *Controller) attach(resumeTarget float64, autoplay bool) error {
	c.mu.Lock()
	asset := c.asset
	if asset == nil {
		c.mu.Unlock()
		return fmt.Errorf("attach: no asset open")
	}

	engine := c.engine
	c.engine = nil
	c.generation++
	gen := c.generation
	c.switching = true
	c.phase = PhaseAttaching
	c.state.buffering = false
	c.state.restored = false
	sel := c.selection
	subtitles := c.subtitles
	c.mu.Unlock()

	// Exactly one engine per sink: the old cycle is torn down synchronously
	// before anything from the new one touches the sink.
	if engine != nil {
		engine.Destroy()
	}
	c.sink.Unbind()

	decision := codec.Analyze(asset.VideoStream(), c.probe)

	url, err := c.client.PlaybackURL(asset.ID, sel.Audio, subtitles,
		sel.Subtitle, decision.Mode == codec.DirectPlay, sel.Quality)
	if err != nil {
		err = fmt.Errorf("playback url: %w", err)
		c.fail(gen, err)
		return err
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return nil
	}
	c.decision = decision
	c.mu.Unlock()

	log.Infof("attaching %s as %s", asset, decision.Mode)

	c.reporter.Configure(asset.ID, sel.Audio, sel.Subtitle.OrElse(-1))
	go c.announce(asset, sel, decision, resumeTarget)

	restore := c.restoreFn(gen, resumeTarget, autoplay)

	if err := c.sink.Bind(c.events(gen, restore)); err != nil {
		c.fail(gen, err)
		return err
	}

	// The engine path is gated on runtime support alone; the delivery mode
	// only shapes the URL. A direct-played source still flows through the
	// adaptive engine when one is available.
	if c.factory != nil && c.factory.Supported() {
		return c.attachEngine(gen, url, restore)
	}

	if err := c.sink.SetSource(url); err != nil {
		c.fail(gen, err)
		return err
	}
	return nil
}

// attachEngine runs the adaptive attach path: a fresh engine is created,
// bound to the sink, and pointed at the manifest.
func (c *Controller) attachEngine(gen uint64, url string, restore func()) error {
	engine := c.factory.New()
	engine.OnManifestReady(restore)
	engine.OnError(func(err error) {
		c.fail(gen, fmt.Errorf("engine: %w", err))
	})

	if err := engine.Attach(c.sink); err != nil {
		engine.Destroy()
		c.fail(gen, err)
		return err
	}
	if err := engine.Load(url); err != nil {
		engine.Destroy()
		c.fail(gen, err)
		return err
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		engine.Destroy()
		return nil
	}
	c.engine = engine
	c.mu.Unlock()
	return nil
}

// restoreFn builds the one-shot readiness handler for an attach cycle: seek
// to the resume target unless the sink already sits within tolerance, then
// resume playback when the previous source was playing.
func (c *Controller) restoreFn(gen uint64, target float64, autoplay bool) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			if gen != c.generation {
				c.mu.Unlock()
				return
			}
			c.state.restored = true
			c.switching = false
			c.phase = PhaseReady
			c.mu.Unlock()

			if target > 0 {
				cur, err := c.sink.CurrentTime()
				if err != nil || math.Abs(cur-target) > seekTolerance {
					if err := c.sink.Seek(target); err != nil {
						log.Warnf("restore seek to %.1fs failed: %v", target, err)
					}
				}
			}

			if autoplay {
				if err := c.sink.Play(); err != nil {
					c.fail(gen, err)
				}
			}
		})
	}
}

// events builds the sink callback set for one attach cycle. Every handler is
// guarded by the cycle's generation so callbacks from a torn-down source
// cannot touch newer state.
func (c *Controller) events(gen uint64, restore func()) player.Events {
	record := func(mutate func(*playbackState)) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation {
			return
		}
		mutate(&c.state)
	}

	return player.Events{
		OnTimeUpdate: func(seconds float64) {
			c.mu.Lock()
			if gen != c.generation {
				c.mu.Unlock()
				return
			}
			c.state.currentTime = seconds
			duration := c.state.duration
			playing := c.state.playing && !c.switching && c.phase == PhaseReady
			c.mu.Unlock()

			// Time updates drive the reporter directly; the background
			// ticker only covers sinks that emit them sparsely.
			c.reporter.Tick(seconds, duration, playing)
		},
		OnDurationChange: func(seconds float64) {
			record(func(s *playbackState) { s.duration = seconds })
		},
		OnPlay: func() {
			record(func(s *playbackState) { s.playing = true })
		},
		OnPause: func() {
			record(func(s *playbackState) { s.playing = false })
		},
		OnWaiting: func() {
			record(func(s *playbackState) { s.buffering = true })
		},
		OnPlaying: func() {
			record(func(s *playbackState) { s.buffering = false })
		},
		OnMetadataLoaded: restore,
		OnEnded: func() {
			record(func(s *playbackState) { s.playing = false })
		},
		OnError: func(err error) {
			c.fail(gen, err)
		},
	}
}

// fail records an attach-cycle failure. Stale generations are ignored.
func (c *Controller) fail(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseError
	c.switching = false
	c.lastErr = err
	c.mu.Unlock()

	log.Errorf("playback session: %v", err)
}

// announce delivers the fire-and-forget "started" report for a new attach.
func (c *Controller) announce(asset *stream.Asset, sel stream.TrackSelection, decision codec.Decision, resume float64) {
	desc := &api.SessionDescriptor{
		AssetID:       asset.ID,
		MediaSourceID: asset.ID,
		PlaySessionID: api.NewPlaySessionID(c.client.DeviceID()),
		AudioTrack:    sel.Audio,
		SubtitleTrack: sel.Subtitle.OrElse(-1),
		PositionTicks: int64(resume * stream.TicksPerSecond),
		PlayMethod:    decision.Mode.String(),
		CanSeek:       true,
	}

	if err := c.client.ReportPlaying(desc); err != nil {
		log.Warnf("playing report for %s failed: %v", asset, err)
	}
}

// sample feeds the progress reporter. Samples taken mid-switch or outside the
// ready phase never report.
func (c *Controller) sample() (current, duration float64, playing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.switching || c.phase != PhaseReady {
		return 0, 0, false
	}
	return c.state.currentTime, c.state.duration, c.state.playing
}

// Play resumes playback.
func (c *Controller) Play() error {
	return c.sink.Play()
}

// Pause suspends playback.
func (c *Controller) Pause() error {
	return c.sink.Pause()
}

// TogglePlay flips between playing and paused.
func (c *Controller) TogglePlay() error {
	c.mu.Lock()
	playing := c.state.playing
	c.mu.Unlock()

	if playing {
		return c.sink.Pause()
	}
	return c.sink.Play()
}

// Seek moves playback to an absolute position, clamped to the media bounds.
func (c *Controller) Seek(seconds float64) error {
	c.mu.Lock()
	duration := c.state.duration
	c.mu.Unlock()

	if seconds < 0 {
		seconds = 0
	}
	if duration > 0 && seconds > duration {
		seconds = duration
	}
	return c.sink.Seek(seconds)
}

// SetVolume sets the sink volume in percent, clamped to [0, 100].
func (c *Controller) SetVolume(percent float64) error {
	percent = util.Clamp(percent, 0, 100)
	if err := c.sink.SetVolume(percent); err != nil {
		return err
	}

	c.mu.Lock()
	c.state.volume = percent
	c.mu.Unlock()
	return nil
}

// ToggleMute flips the sink's mute state without touching the volume.
func (c *Controller) ToggleMute() error {
	c.mu.Lock()
	muted := !c.state.muted
	c.mu.Unlock()

	if err := c.sink.SetMuted(muted); err != nil {
		return err
	}

	c.mu.Lock()
	c.state.muted = muted
	c.mu.Unlock()
	return nil
}

// Skip moves playback relative to the current position.
func (c *Controller) Skip(delta float64) error {
	c.mu.Lock()
	current := c.state.currentTime
	c.mu.Unlock()

	return c.Seek(current + delta)
}

// SetAudioTrack switches the active audio track. The current position and
// transport state survive the switch.
func (c *Controller) SetAudioTrack(id int) error {
	return c.reselect(func(sel *stream.TrackSelection) bool {
		if sel.Audio == id {
			return false
		}
		sel.Audio = id
		return true
	}, true)
}

// SetSubtitleTrack switches the active subtitle track; None disables
// subtitles. The current position and transport state survive the switch.
func (c *Controller) SetSubtitleTrack(track mo.Option[int]) error {
	return c.reselect(func(sel *stream.TrackSelection) bool {
		if sel.Subtitle == track {
			return false
		}
		sel.Subtitle = track
		return true
	}, true)
}

// SetQualityCeiling caps delivery at the given tier height; None removes the
// cap. The ceiling is persisted as a global preference.
func (c *Controller) SetQualityCeiling(height mo.Option[int]) error {
	if h, ok := height.Get(); ok && quality.TierIndex(h) < 0 {
		return fmt.Errorf("unknown quality tier height %d", h)
	}

	if err := prefs.SaveQualityPreference(height); err != nil {
		log.Warnf("saving quality preference failed: %v", err)
	}

	return c.reselect(func(sel *stream.TrackSelection) bool {
		if sel.Quality == height {
			return false
		}
		sel.Quality = height
		return true
	}, false)
}

// reselect applies a selection change and re-attaches at the captured live
// position. No-op changes skip the re-attach entirely.
func (c *Controller) reselect(apply func(*stream.TrackSelection) bool, persist bool) error {
	c.mu.Lock()
	if c.asset == nil {
		c.mu.Unlock()
		return fmt.Errorf("no asset open")
	}
	if !apply(&c.selection) {
		c.mu.Unlock()
		return nil
	}
	assetID := c.asset.ID
	sel := c.selection
	// Capture before teardown: the sink forgets its position once the
	// source is replaced.
	position := c.state.currentTime
	wasPlaying := c.state.playing
	c.mu.Unlock()

	if persist && viper.GetBool(key.PrefsSaveTracks) {
		if err := prefs.SaveTrackPreference(assetID, sel.Audio, sel.Subtitle); err != nil {
			log.Warnf("saving track preference failed: %v", err)
		}
	}

	c.reporter.SetTracks(sel.Audio, sel.Subtitle.OrElse(-1))
	return c.attach(position, wasPlaying)
}

// Close tears the session down: the reporter stops, the engine is destroyed,
// and the sink is released. The controller cannot be reused afterwards.
func (c *Controller) Close() error {
	c.reporter.Stop()

	c.mu.Lock()
	engine := c.engine
	c.engine = nil
	c.generation++
	c.phase = PhaseTornDown
	c.switching = false
	c.mu.Unlock()

	if engine != nil {
		engine.Destroy()
	}
	c.sink.Unbind()
	return c.sink.Close()
}
