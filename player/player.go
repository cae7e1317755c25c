// Package player defines the video sink and adaptive-engine abstractions the
// session controller attaches to. The primary sink implementation drives mpv
// over its JSON-IPC interface.
package player

// Events is the set of callbacks a sink delivers to its current owner.
// Handlers are bound once per attach cycle and detached symmetrically.
type Events struct {
	// OnTimeUpdate fires when the playback position advances.
	OnTimeUpdate func(seconds float64)

	// OnDurationChange fires when the media duration becomes known or changes.
	OnDurationChange func(seconds float64)

	// OnPlay and OnPause fire on playback suspension state changes.
	OnPlay  func()
	OnPause func()

	// OnWaiting fires when playback stalls on an empty buffer;
	// OnPlaying fires when it recovers.
	OnWaiting func()
	OnPlaying func()

	// OnMetadataLoaded fires once after a newly assigned source becomes
	// seekable. Used by the native (engine-less) attach path to restore
	// the playback position.
	OnMetadataLoaded func()

	// OnEnded fires when the current media reaches end of file.
	OnEnded func()

	// OnError surfaces sink-level playback failures.
	OnError func(err error)
}

// Sink is the rendering surface a session attaches media to. It is the
// process-level analog of a video element: it accepts one source at a time
// and reports its playback state through bound Events.
type Sink interface {
	// SetSource assigns a new media URL to the sink, replacing any current one.
	SetSource(url string) error

	// Bind registers the event callbacks for the current attach cycle.
	// Binding replaces any previously bound set.
	Bind(events Events) error

	// Unbind detaches all event callbacks. Safe to call when nothing is bound.
	Unbind()

	// Play resumes playback.
	Play() error

	// Pause suspends playback.
	Pause() error

	// Seek transitions playback to an absolute position in seconds.
	Seek(seconds float64) error

	// SetVolume sets the playback volume in percent, 0 to 100.
	SetVolume(percent float64) error

	// SetMuted suspends or restores audio output without touching the volume.
	SetMuted(muted bool) error

	// CurrentTime retrieves the current absolute playback position in seconds.
	CurrentTime() (float64, error)

	// Duration retrieves the total length of the active media in seconds.
	Duration() (float64, error)

	// Paused retrieves the current suspension state.
	Paused() (bool, error)

	// Close terminates the sink and releases all associated resources.
	Close() error
}

// Engine is an attachable adaptive-streaming component. Its segment fetching
// and buffering are opaque to the session; the session only owns its
// lifecycle and listens for readiness and errors.
type Engine interface {
	// Attach binds the engine to a sink. An engine attaches to exactly one
	// sink for its whole lifetime.
	Attach(sink Sink) error

	// Load points the engine at a manifest URL and starts delivery.
	Load(url string) error

	// OnManifestReady registers a one-shot handler invoked when the manifest
	// has been parsed and playback can begin.
	OnManifestReady(fn func())

	// OnError registers a handler for engine-level load and parse failures.
	OnError(fn func(err error))

	// Destroy detaches the engine from its sink and releases its resources.
	// Idempotent.
	Destroy()
}

// EngineFactory reports runtime support for adaptive delivery and creates
// engine instances. A nil factory or an unsupported runtime selects the
// native attach path.
type EngineFactory interface {
	// Supported reports whether the runtime can host the adaptive engine.
	Supported() bool

	// New creates a fresh, unattached engine instance.
	New() Engine
}
