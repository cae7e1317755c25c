package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jellysan-cli/jellysan/key"
	"github.com/jellysan-cli/jellysan/log"
	"github.com/spf13/viper"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements the Sink interface using mpv's JSON-IPC protocol.
// The process is launched idle on first use; subsequent sources are loaded
// into the running instance.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	listener   *EventListener
	mu         sync.Mutex // protects process startup and listener swaps
}

// NewMPV creates a new MPV sink (does not start the process).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// SetSource assigns a new media URL to the sink, replacing the current one.
// The mpv process is started on first use.
func (m *MPV) SetSource(rawURL string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if err := m.ensureStarted(); err != nil {
		return err
	}

	_, err = m.sendCommand([]interface{}{"loadfile", safeURL, "replace"})
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	return nil
}

// ensureStarted launches the idle mpv process and waits for its IPC socket.
func (m *MPV) ensureStarted() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running() {
		return nil
	}

	// Generate a random socket path using os.TempDir() for cross-platform
	// support (macOS $TMPDIR is /var/folders/... not /tmp/)
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("jellysan-%x.sock", randomBytes))
	}

	// Pass ONLY the socket and window flags.
	// Do NOT pass --vo, --profile, --hwdec; respect user's mpv.conf.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--idle=yes",
		"--pause=yes",
	}

	binary := viper.GetString(key.PlayerSinkBinary)
	if binary == "" {
		binary = "mpv"
	}

	m.cmd = exec.Command(binary, args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", binary, err)
	}

	// Background goroutine to reap the process and prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		// If the socket never became ready, kill the orphaned process
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
				// Already exited
			default:
				log.Warnf("killing %s: socket never became ready", binary)
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("%s socket not ready: %w", binary, err)
	}

	return nil
}

// Bind attaches an event listener translating mpv property changes into the
// bound callbacks. A previous binding is replaced. The idle mpv process is
// started if needed so events can be observed before the first source loads.
func (m *MPV) Bind(events Events) error {
	if err := m.ensureStarted(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	listener := NewEventListener(m.socketPath, func(name string, data interface{}) {
		dispatchEvent(events, name, data)
	})
	if err := listener.Start(); err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	m.listener = listener
	return nil
}

// Unbind detaches the active event listener, if any.
func (m *MPV) Unbind() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}
}

// dispatchEvent routes a single mpv notification to the bound callbacks.
func dispatchEvent(events Events, name string, data interface{}) {
	switch name {
	case "time-pos":
		if seconds, ok := data.(float64); ok && events.OnTimeUpdate != nil {
			events.OnTimeUpdate(seconds)
		}
	case "duration":
		if seconds, ok := data.(float64); ok && events.OnDurationChange != nil {
			events.OnDurationChange(seconds)
		}
	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return
		}
		if paused && events.OnPause != nil {
			events.OnPause()
		} else if !paused && events.OnPlay != nil {
			events.OnPlay()
		}
	case "paused-for-cache":
		stalled, ok := data.(bool)
		if !ok {
			return
		}
		if stalled && events.OnWaiting != nil {
			events.OnWaiting()
		} else if !stalled && events.OnPlaying != nil {
			events.OnPlaying()
		}
	case "eof-reached":
		if reached, ok := data.(bool); ok && reached && events.OnEnded != nil {
			events.OnEnded()
		}
	case "file-loaded":
		if events.OnMetadataLoaded != nil {
			events.OnMetadataLoaded()
		}
	case "end-file":
		// end-file with an error reason is a playback failure; regular EOF
		// arrives via eof-reached.
		event, ok := data.(map[string]interface{})
		if !ok {
			return
		}
		if reason, _ := event["reason"].(string); reason == "error" && events.OnError != nil {
			detail, _ := event["file_error"].(string)
			if detail == "" {
				detail = "playback failed"
			}
			events.OnError(fmt.Errorf("sink: %s", detail))
		}
	}
}

// Play resumes playback.
func (m *MPV) Play() error {
	return m.set("pause", false)
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// SetVolume sets the playback volume in percent.
func (m *MPV) SetVolume(percent float64) error {
	return m.set("volume", percent)
}

// SetMuted suspends or restores audio output.
func (m *MPV) SetMuted(muted bool) error {
	return m.set("mute", muted)
}

// CurrentTime returns the current playback position in seconds.
func (m *MPV) CurrentTime() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// Duration returns the total duration of the current media in seconds.
func (m *MPV) Duration() (float64, error) {
	return m.getFloatProperty("duration")
}

// Paused returns whether playback is currently suspended.
func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "pause"})
	if err != nil {
		return false, err
	}
	paused, ok := data.(bool)
	if !ok {
		return false, nil
	}
	return paused, nil
}

// running reports whether the mpv process is alive. Callers hold m.mu.
func (m *MPV) running() bool {
	if m.cmd == nil {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	m.Unbind()

	if m.socketPath == "" {
		return nil
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand([]interface{}{"quit"})

	// Wait for process to exit (with timeout)
	select {
	case <-m.exited:
		// Clean exit
	case <-time.After(3 * time.Second):
		// Force kill if graceful quit didn't work
		_ = killProcess(m.cmd)
	}

	// Clean up the socket file
	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// set assigns an mpv property.
func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		// Check if process already exited
		select {
		case <-m.exited:
			return fmt.Errorf("sink exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a URL is safe to pass to the sink
// process. Prevents flag injection.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}
