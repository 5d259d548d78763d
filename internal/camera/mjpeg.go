package camera

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

const (
	// frameStaleAfter guards against a capture process that died without
	// the pipe closing; frames older than this are not served.
	frameStaleAfter = 5 * time.Second

	// grantTimeout bounds how long Open waits for the first frame before
	// treating the device as denied or absent.
	grantTimeout = 10 * time.Second
)

// MJPEGDevice reads frames from a capture process (ffmpeg) that streams
// MJPEG to its stdout. This keeps the module free of cgo camera bindings
// while still talking to real hardware.
type MJPEGDevice struct {
	cfg  StreamConfig
	cmd  *exec.Cmd
	pipe io.ReadCloser

	mu        sync.RWMutex
	gen       int
	frame     []byte
	frameTime time.Time
	closed    bool
}

// NewMJPEGDevice creates a device for the given stream configuration.
func NewMJPEGDevice(cfg StreamConfig) *MJPEGDevice {
	return &MJPEGDevice{cfg: cfg}
}

// captureArgs builds the ffmpeg argument list for the current platform.
func (d *MJPEGDevice) captureArgs() []string {
	size := fmt.Sprintf("%dx%d", d.cfg.Width, d.cfg.Height)

	switch runtime.GOOS {
	case "darwin":
		input := d.cfg.Input
		if input == "" {
			// Device 0 is the built-in user-facing camera on macOS.
			input = "0"
		}
		return []string{
			"-f", "avfoundation", "-framerate", "30", "-video_size", size,
			"-i", input,
			"-f", "mjpeg", "-q:v", "5", "-",
		}
	default:
		input := d.cfg.Input
		if input == "" {
			input = "/dev/video0"
		}
		return []string{
			"-f", "v4l2", "-framerate", "30", "-video_size", size,
			"-i", input,
			"-f", "mjpeg", "-q:v", "5", "-",
		}
	}
}

// Open starts the capture process and blocks until the first frame arrives
// or the grant window expires.
func (d *MJPEGDevice) Open(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", d.captureArgs()...)

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("could not open capture pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start capture process: %w", err)
	}

	// Bumping the generation invalidates any pump goroutine left over from
	// a previous acquisition, so its late writes cannot touch this one.
	d.mu.Lock()
	d.cmd = cmd
	d.pipe = pipe
	d.frame = nil
	d.closed = false
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	go d.pumpFrames(pipe, gen)

	// Wait for the device grant: the first decoded frame.
	deadline := time.Now().Add(grantTimeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			_ = d.Close()
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}

		d.mu.RLock()
		granted := len(d.frame) > 0
		dead := d.closed
		d.mu.RUnlock()

		if granted {
			return nil
		}
		if dead {
			break
		}
	}

	_ = d.Close()
	return fmt.Errorf("capture device produced no frames")
}

// pumpFrames continuously reads MJPEG data from the pipe, extracts JPEG
// frames between SOI and EOI markers, and keeps the latest one. Writes
// are tagged with the acquisition generation; a pump that outlives its
// acquisition stops without touching the device state.
func (d *MJPEGDevice) pumpFrames(pipe io.Reader, gen int) {
	const readChunkSize = 4096
	buf := make([]byte, readChunkSize)
	var frameBuffer []byte

	soi := []byte{0xFF, 0xD8}
	eoi := []byte{0xFF, 0xD9}

	for {
		n, err := pipe.Read(buf)
		if n > 0 {
			frameBuffer = append(frameBuffer, buf[:n]...)

			for {
				start := bytes.Index(frameBuffer, soi)
				if start < 0 {
					break
				}
				end := bytes.Index(frameBuffer[start:], eoi)
				if end < 0 {
					break
				}
				end += start + len(eoi)

				frame := make([]byte, end-start)
				copy(frame, frameBuffer[start:end])
				frameBuffer = frameBuffer[end:]

				d.mu.Lock()
				stale := d.gen != gen
				if !stale {
					d.frame = frame
					d.frameTime = time.Now()
				}
				d.mu.Unlock()
				if stale {
					return
				}
			}

			// Keep the buffer from growing without bound on garbage input.
			if len(frameBuffer) > 8<<20 {
				frameBuffer = nil
			}
		}
		if err != nil {
			d.mu.Lock()
			if d.gen == gen {
				d.closed = true
			}
			d.mu.Unlock()
			return
		}
	}
}

// Frame returns a copy of the latest JPEG frame.
func (d *MJPEGDevice) Frame() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if len(d.frame) == 0 {
		return nil, fmt.Errorf("no frame available yet")
	}
	if time.Since(d.frameTime) > frameStaleAfter {
		return nil, fmt.Errorf("frame is stale (>%s old)", frameStaleAfter)
	}

	dst := make([]byte, len(d.frame))
	copy(dst, d.frame)
	return dst, nil
}

// Close stops the capture process. Safe to call multiple times.
func (d *MJPEGDevice) Close() error {
	d.mu.Lock()
	cmd := d.cmd
	pipe := d.pipe
	d.cmd = nil
	d.pipe = nil
	d.frame = nil
	d.closed = true
	d.mu.Unlock()

	if pipe != nil {
		_ = pipe.Close()
	}
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}
	return nil
}
