// Package report delivers playback progress to the server on a fixed cadence
// without flooding it: at most one report per whole second of playback, and
// only on even seconds or the final second of the media.
package report

import (
	"math"
	"sync"
	"time"

	"github.com/jellysan-cli/jellysan/api"
	"github.com/jellysan-cli/jellysan/log"
)

const pollInterval = 1 * time.Second

// Reporter throttles and forwards progress updates for one asset.
// It is safe for concurrent use.
type Reporter struct {
	client api.Client

	mu            sync.Mutex
	assetID       string
	audioTrack    int
	subtitleTrack int
	lastReported  float64
	stopCh        chan struct{}
	running       bool
}

// NewReporter creates a reporter bound to the given client.
func NewReporter(client api.Client) *Reporter {
	return &Reporter{
		client:       client,
		lastReported: -1,
	}
}

// Configure points the reporter at an asset and its active track selection.
// It resets the throttle so the first qualifying second reports again.
func (r *Reporter) Configure(assetID string, audioTrack, subtitleTrack int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.assetID = assetID
	r.audioTrack = audioTrack
	r.subtitleTrack = subtitleTrack
	r.lastReported = -1
}

// SetTracks updates the track indexes attached to subsequent reports.
func (r *Reporter) SetTracks(audioTrack, subtitleTrack int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.audioTrack = audioTrack
	r.subtitleTrack = subtitleTrack
}

// Tick evaluates one playback sample and reports it when it qualifies.
// A sample qualifies when playback is active, its whole second differs from
// the last reported one, and that second is either even or the final second
// of the media. Delivery failures are logged and dropped; the position still
// counts as reported so a flaky server is not hammered every second.
func (r *Reporter) Tick(current, duration float64, playing bool) {
	if !playing || math.IsNaN(current) || current < 0 {
		return
	}

	second := math.Floor(current)

	r.mu.Lock()
	if r.assetID == "" || second == r.lastReported {
		r.mu.Unlock()
		return
	}

	final := duration > 0 && second == math.Floor(duration)
	if math.Mod(second, 2) != 0 && !final {
		r.mu.Unlock()
		return
	}

	r.lastReported = second
	assetID := r.assetID
	audio := r.audioTrack
	subtitle := r.subtitleTrack
	r.mu.Unlock()

	if err := r.client.ReportProgress(assetID, int(second), audio, subtitle); err != nil {
		log.Warnf("progress report at %ds failed: %v", int(second), err)
	}
}

// Start launches a background loop polling the given sampler once per second
// and feeding each sample through Tick. A previous loop is stopped first.
func (r *Reporter) Start(sample func() (current, duration float64, playing bool)) {
	r.Stop()

	r.mu.Lock()
	r.stopCh = make(chan struct{})
	r.running = true
	stopCh := r.stopCh
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				r.Tick(sample())
			}
		}
	}()
}

// Stop terminates the polling loop. Safe to call when not running.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	close(r.stopCh)
	r.running = false
}
