package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultSocketPath is the default Unix socket path for mpv IPC.
	DefaultSocketPath = "/tmp/clip-trimmer-mpv.sock"

	// commandTimeout bounds a single request/response round trip.
	commandTimeout = 2 * time.Second
	// dialRetryInterval is how often WaitForSocket retries while mpv starts up.
	dialRetryInterval = 50 * time.Millisecond
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket file doesn't exist.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// ErrPropertyUnavailable is returned for properties mpv cannot report yet,
	// such as time-pos before the file is loaded.
	ErrPropertyUnavailable = errors.New("mpv: property unavailable")
	// requestID is a global counter for generating unique request IDs.
	requestID uint64
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcResponse represents a JSON IPC response from mpv.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`
}

// Client is an mpv IPC client that communicates via Unix socket.
type Client struct {
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	mu         sync.Mutex
}

// NewClient creates a new mpv IPC client.
// If socketPath is empty, DefaultSocketPath is used.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{
		socketPath: socketPath,
	}
}

// Connect establishes a connection to the mpv IPC socket.
// Returns ErrSocketNotFound if nothing is listening yet.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil // Already connected
	}

	conn, err := net.DialTimeout("unix", c.socketPath, commandTimeout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocketNotFound, err)
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// WaitForSocket retries Connect until it succeeds or ctx is done. mpv creates
// its socket a short while after the process starts.
func (c *Client) WaitForSocket(ctx context.Context) error {
	ticker := time.NewTicker(dialRetryInterval)
	defer ticker.Stop()

	for {
		err := c.Connect()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("mpv: waiting for %s: %w", c.socketPath, err)
		case <-ticker.C:
		}
	}
}

// Close closes the connection to mpv.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// GetProperty retrieves the value of an mpv property.
// The property name should be the mpv property name (e.g., "time-pos", "duration", "pause").
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.sendCommand("get_property", name)
}

// SetProperty sets the value of an mpv property.
// The property name should be the mpv property name (e.g., "pause", "speed").
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.sendCommand("set_property", name, value)
	return err
}

// GetTimePos returns the current playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	return c.getFloat("time-pos")
}

// GetDuration returns the total duration of the video in seconds.
func (c *Client) GetDuration() (float64, error) {
	return c.getFloat("duration")
}

// GetPercentPos returns the playback position as a percentage (0-100).
func (c *Client) GetPercentPos() (float64, error) {
	return c.getFloat("percent-pos")
}

// GetPaused returns true if playback is paused.
func (c *Client) GetPaused() (bool, error) {
	result, err := c.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected pause value type: %T", result)
	}
	return paused, nil
}

// SetPaused pauses or resumes playback.
func (c *Client) SetPaused(paused bool) error {
	return c.SetProperty("pause", paused)
}

// SeekPercent jumps to percent (0-100) of the file.
func (c *Client) SeekPercent(percent float64) error {
	_, err := c.sendCommand("seek", percent, "absolute-percent")
	return err
}

// Quit asks mpv to exit.
func (c *Client) Quit() error {
	_, err := c.sendCommand("quit")
	return err
}

func (c *Client) getFloat(name string) (float64, error) {
	result, err := c.GetProperty(name)
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// toFloat64 converts an interface{} to float64.
// JSON numbers from mpv are typically decoded as float64.
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case nil:
		return 0, ErrPropertyUnavailable
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// sendCommand sends a JSON IPC command to mpv and returns the result.
// The command is formatted as {"command": [command, args...], "request_id": <id>}
// and sent as newline-terminated JSON over the socket.
func (c *Client) sendCommand(command string, args ...interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	// Build command array: [command, arg1, arg2, ...]
	cmdArray := make([]interface{}, 0, len(args)+1)
	cmdArray = append(cmdArray, command)
	cmdArray = append(cmdArray, args...)

	reqID := atomic.AddUint64(&requestID, 1)

	req := ipcRequest{
		Command:   cmdArray,
		RequestID: reqID,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}

	if err := c.conn.SetDeadline(time.Now().Add(commandTimeout)); err != nil {
		return nil, fmt.Errorf("mpv: failed to set deadline: %w", err)
	}

	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	// Read response lines until we get our request_id
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("mpv: failed to read response: %w", err)
		}

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			// Skip malformed lines
			continue
		}

		// Events carry no request_id; skip them
		if resp.RequestID != reqID {
			continue
		}
		switch resp.Error {
		case "", "success":
			return resp.Data, nil
		case "property unavailable":
			return nil, ErrPropertyUnavailable
		default:
			return nil, fmt.Errorf("mpv: %s", resp.Error)
		}
	}
}
