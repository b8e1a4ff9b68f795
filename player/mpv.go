package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/log"
	"github.com/playshell/playshell/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	endTolerance      = 0.05
)

// MPV is a media element backed by an mpv process controlled over JSON IPC.
// The process is started on first Open and kept idle between targets.
type MPV struct {
	executable string

	mu         sync.Mutex
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	observer   *observer

	sinkMu sync.Mutex
	sink   Sink

	requestID atomic.Int64
}

// NewMPV returns an element that runs the given mpv executable.
func NewMPV(executable string) *MPV {
	if executable == "" {
		executable = "mpv"
	}

	return &MPV{executable: executable}
}

func (m *MPV) Open(target string, sink Sink) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if err := m.ensureRunning(); err != nil {
		return err
	}

	m.sinkMu.Lock()
	m.sink = sink
	m.sinkMu.Unlock()

	if _, err := m.sendCommand("set_property", "pause", true); err != nil {
		return err
	}

	if _, err := m.sendCommand("set_property", "force-media-title", sanitizeTitle(filepath.Base(safeTarget))); err != nil {
		log.Warnf("mpv: set title: %v", err)
	}

	_, err = m.sendCommand("loadfile", safeTarget, "replace")
	return err
}

func (m *MPV) Play() error {
	// with keep-open the file stays paused on its last frame
	if m.AtEnd() {
		if err := m.Seek(0); err != nil {
			return err
		}
	}

	return m.set("pause", false)
}

// AtEnd allows for time-pos stopping short of duration on the last frame.
func (m *MPV) AtEnd() bool {
	d := m.Duration()
	return d > 0 && m.Position() >= d-endTolerance
}

func (m *MPV) Pause() error {
	return m.set("pause", true)
}

func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute")
	return err
}

func (m *MPV) SetRate(rate float64) error {
	return m.set("speed", rate)
}

func (m *MPV) Rate() float64 {
	rate, err := m.getFloatProperty("speed")
	if err != nil {
		return 1
	}
	return rate
}

func (m *MPV) Position() float64 {
	pos, err := m.getFloatProperty("time-pos")
	if err != nil {
		return 0
	}
	return pos
}

func (m *MPV) Duration() float64 {
	d, err := m.getFloatProperty("duration")
	if err != nil {
		return 0
	}
	return d
}

// Close unloads the current file and keeps the process idle.
func (m *MPV) Close() error {
	m.sinkMu.Lock()
	m.sink = nil
	m.sinkMu.Unlock()

	if !m.running() {
		return nil
	}

	_, err := m.sendCommand("stop")
	return err
}

// Shutdown quits the mpv process and removes its socket.
func (m *MPV) Shutdown() error {
	if !m.running() {
		return nil
	}

	m.mu.Lock()
	obs, exited, cmd, socket := m.observer, m.exited, m.cmd, m.socketPath
	m.mu.Unlock()

	if obs != nil {
		obs.stop()
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(cmd)
	}

	_ = os.Remove(socket)

	m.mu.Lock()
	m.cmd, m.observer, m.socketPath = nil, nil, ""
	m.mu.Unlock()

	return nil
}

func (m *MPV) emit(ev Event) {
	m.sinkMu.Lock()
	sink := m.sink
	m.sinkMu.Unlock()

	sink.emit(ev)
}

func (m *MPV) running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

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

// ensureRunning starts mpv unless a live process is already attached.
func (m *MPV) ensureRunning() error {
	if m.running() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.observer != nil {
		go m.observer.stop()
		m.observer = nil
	}

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Errorf("generate socket name: %w", err)
	}
	m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))

	// user mpv.conf is respected: no --vo, --profile or --hwdec here
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--keep-open=yes",
		"--pause",
		"--force-window=yes",
		fmt.Sprintf("--title=%s", constant.Playshell),
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
	}

	cmd := exec.Command(m.executable, args...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		m.socketPath = ""
		return fmt.Errorf("start mpv: %w", err)
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := waitForSocket(m.socketPath, exited); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		m.socketPath = ""
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	obs, err := observe(m.socketPath, m.emit)
	if err != nil {
		_ = killProcess(cmd)
		m.socketPath = ""
		return err
	}

	m.cmd, m.exited, m.observer = cmd, exited, obs
	log.Infof("mpv started with socket %s", m.socketPath)
	return nil
}

// waitForSocket polls until the IPC socket is accepting connections.
func waitForSocket(socketPath string, exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}

	return fmt.Errorf("socket %s not ready after %d attempts", socketPath, socketWaitRetries)
}

func (m *MPV) set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget rejects targets mpv would read as flags or that use
// schemes other than http(s). Anything without a scheme is a local path.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", errors.New("empty target")
	}

	if strings.ContainsAny(t, "\x00\n\r") {
		return "", errors.New("invalid control characters in target")
	}

	if strings.HasPrefix(t, "-") {
		return "", errors.New("target must not start with '-'")
	}

	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}

		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return t, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(t), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
