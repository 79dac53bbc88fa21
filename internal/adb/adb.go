// Package adb drives an Android device through the adb binary.
package adb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors for the transport failure modes callers distinguish.
var (
	ErrADBNotFound = errors.New("adb not found: is the Android SDK installed and on PATH?")
	ErrTimeout     = errors.New("adb command timed out")
	ErrNoDevice    = errors.New("no Android device connected")
)

// DefaultTimeout bounds a single adb round trip.
const DefaultTimeout = 10 * time.Second

// Default screen dimensions when `wm size` is unavailable.
const (
	FallbackScreenWidth  = 1080
	FallbackScreenHeight = 1920
)

// Client invokes adb commands against one device. The zero Serial targets
// whichever single device adb picks.
type Client struct {
	Path    string
	Serial  string
	Timeout time.Duration
}

// New returns a Client for the given serial, locating the adb binary on PATH.
func New(serial string) (*Client, error) {
	path, err := exec.LookPath("adb")
	if err != nil {
		return nil, ErrADBNotFound
	}
	return &Client{Path: path, Serial: serial, Timeout: DefaultTimeout}, nil
}

// args prepends the device selector to the command arguments.
func (c *Client) args(cmd []string) []string {
	if c.Serial == "" {
		return cmd
	}
	return append([]string{"-s", c.Serial}, cmd...)
}

// Run executes an adb command and returns its stdout as text. Errors are
// classified into the sentinel kinds where possible; a non-zero exit whose
// stderr mentions a missing device maps to ErrNoDevice.
func (c *Client) Run(ctx context.Context, cmd ...string) (string, error) {
	out, err := c.RunRaw(ctx, cmd...)
	return string(out), err
}

// RunRaw is Run without the text conversion, for binary payloads such as
// screencap output.
func (c *Client) RunRaw(ctx context.Context, cmd ...string) ([]byte, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	path := c.Path
	if path == "" {
		path = "adb"
	}

	execCmd := exec.CommandContext(ctx, path, c.args(cmd)...)
	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	err := execCmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, ErrTimeout
	}
	if errors.Is(err, exec.ErrNotFound) {
		return nil, ErrADBNotFound
	}
	return nil, classifyExitError(stderr.String(), err)
}

// classifyExitError maps a non-zero exit to ErrNoDevice when the diagnostic
// text indicates a missing device, and otherwise wraps the stderr output.
func classifyExitError(stderr string, err error) error {
	stderr = strings.TrimSpace(stderr)
	if strings.Contains(stderr, "no devices") || strings.Contains(stderr, "not found") {
		return ErrNoDevice
	}
	if stderr != "" {
		return fmt.Errorf("adb failed: %s", stderr)
	}
	return fmt.Errorf("adb failed: %w", err)
}

// Shell runs a shell command on the device.
func (c *Client) Shell(ctx context.Context, cmd ...string) (string, error) {
	return c.Run(ctx, append([]string{"shell"}, cmd...)...)
}

// DetectSerial returns the serial of the first connected device.
func DetectSerial(ctx context.Context) (string, error) {
	c, err := New("")
	if err != nil {
		return "", err
	}
	out, err := c.Run(ctx, "devices")
	if err != nil {
		return "", err
	}
	serial := parseFirstDevice(out)
	if serial == "" {
		return "", ErrNoDevice
	}
	return serial, nil
}

// parseFirstDevice extracts the first "device"-state serial from
// `adb devices` output.
func parseFirstDevice(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "device" {
			return fields[0]
		}
	}
	return ""
}

// Tap issues a tap input event at the given screen coordinates.
func (c *Client) Tap(ctx context.Context, x, y int) error {
	_, err := c.Shell(ctx, "input", "tap", strconv.Itoa(x), strconv.Itoa(y))
	return err
}

// Swipe issues a swipe input event. duration of 0 lets the device choose.
func (c *Client) Swipe(ctx context.Context, x1, y1, x2, y2 int, duration time.Duration) error {
	args := []string{"input", "swipe",
		strconv.Itoa(x1), strconv.Itoa(y1), strconv.Itoa(x2), strconv.Itoa(y2)}
	if duration > 0 {
		args = append(args, strconv.Itoa(int(duration.Milliseconds())))
	}
	_, err := c.Shell(ctx, args...)
	return err
}

// LongPress holds a touch at one point for the given duration, implemented
// as a swipe with equal endpoints.
func (c *Client) LongPress(ctx context.Context, x, y int, duration time.Duration) error {
	return c.Swipe(ctx, x, y, x, y, duration)
}

// WakeScreen wakes the display if it is off and waits a moment for it to
// settle. Failures are ignored: waking is best-effort preparation.
func (c *Client) WakeScreen(ctx context.Context) {
	_, _ = c.Shell(ctx, "input", "keyevent", "KEYCODE_WAKEUP")
	time.Sleep(300 * time.Millisecond)
}

// ScreenSize queries the device's screen dimensions via `wm size`, falling
// back to 1080x1920 when the query fails or the output is unparseable.
func (c *Client) ScreenSize(ctx context.Context) (width, height int) {
	out, err := c.Shell(ctx, "wm", "size")
	if err != nil {
		return FallbackScreenWidth, FallbackScreenHeight
	}
	if w, h, ok := ParseScreenSize(out); ok {
		return w, h
	}
	return FallbackScreenWidth, FallbackScreenHeight
}

// ParseScreenSize extracts "<w>x<h>" from `wm size` output, e.g.
// "Physical size: 1080x2400".
func ParseScreenSize(out string) (width, height int, ok bool) {
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if !strings.Contains(strings.ToLower(line), "size:") {
			continue
		}
		sizePart := strings.TrimSpace(line[strings.LastIndex(line, ":")+1:])
		w, h, found := strings.Cut(sizePart, "x")
		if !found {
			continue
		}
		width, errW := strconv.Atoi(strings.TrimSpace(w))
		height, errH := strconv.Atoi(strings.TrimSpace(h))
		if errW != nil || errH != nil {
			continue
		}
		return width, height, true
	}
	return 0, 0, false
}

// DumpWindows returns the raw `dumpsys window windows` output. Window dumps
// are large; the round trip gets a longer bound than regular queries.
func (c *Client) DumpWindows(ctx context.Context) (string, error) {
	dump := &Client{Path: c.Path, Serial: c.Serial, Timeout: 30 * time.Second}
	return dump.Shell(ctx, "dumpsys", "window", "windows")
}

// Screencap captures the screen as a PNG via `exec-out screencap -p`.
func (c *Client) Screencap(ctx context.Context) ([]byte, error) {
	return c.RunRaw(ctx, "exec-out", "screencap", "-p")
}
