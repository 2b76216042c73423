package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"
)

// fakeMpv is a unix socket server speaking enough of mpv's JSON IPC to test the client.
type fakeMpv struct {
	mu         sync.Mutex
	properties map[string]interface{}
	commands   [][]interface{}
}

func (f *fakeMpv) handle(cmd []interface{}) (interface{}, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)

	switch cmd[0] {
	case "get_property":
		v, ok := f.properties[cmd[1].(string)]
		if !ok {
			return nil, "property unavailable"
		}
		return v, "success"
	case "set_property":
		f.properties[cmd[1].(string)] = cmd[2]
		return nil, "success"
	case "seek":
		f.properties["percent-pos"] = cmd[1]
		return nil, "success"
	default:
		return nil, "invalid parameter"
	}
}

func (f *fakeMpv) lastCommand() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commands[len(f.commands)-1]
}

// startFakeMpv listens on a short socket path; unix socket paths are length limited.
func startFakeMpv(t *testing.T, props map[string]interface{}) (*fakeMpv, string) {
	t.Helper()
	dir, err := os.MkdirTemp("", "mpv")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	socket := filepath.Join(dir, "s")

	ln, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	f := &fakeMpv{properties: props}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go f.serve(conn)
		}
	}()
	return f, socket
}

func (f *fakeMpv) serve(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	enc := json.NewEncoder(conn)
	for scanner.Scan() {
		var req ipcRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			continue
		}
		// Interleave an unsolicited event, as mpv does.
		enc.Encode(map[string]string{"event": "playback-restart"})
		data, errStr := f.handle(req.Command)
		enc.Encode(ipcResponse{Data: data, RequestID: req.RequestID, Error: errStr})
	}
}

func connect(t *testing.T, socket string) *Client {
	t.Helper()
	c := NewClient(socket)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_GetProperties(t *testing.T) {
	_, socket := startFakeMpv(t, map[string]interface{}{
		"time-pos":    12.5,
		"duration":    100.0,
		"percent-pos": 12.5,
		"pause":       false,
	})
	c := connect(t, socket)

	if pos, err := c.GetTimePos(); err != nil || pos != 12.5 {
		t.Errorf("GetTimePos() = %v, %v; want 12.5", pos, err)
	}
	if d, err := c.GetDuration(); err != nil || d != 100 {
		t.Errorf("GetDuration() = %v, %v; want 100", d, err)
	}
	if paused, err := c.GetPaused(); err != nil || paused {
		t.Errorf("GetPaused() = %v, %v; want false", paused, err)
	}
}

func TestClient_UnavailableProperty(t *testing.T) {
	_, socket := startFakeMpv(t, map[string]interface{}{})
	c := connect(t, socket)

	if _, err := c.GetTimePos(); !errors.Is(err, ErrPropertyUnavailable) {
		t.Errorf("GetTimePos() error = %v, want ErrPropertyUnavailable", err)
	}
}

func TestClient_SeekPercent(t *testing.T) {
	f, socket := startFakeMpv(t, map[string]interface{}{})
	c := connect(t, socket)

	if err := c.SeekPercent(99.7); err != nil {
		t.Fatalf("SeekPercent() error = %v", err)
	}
	want := []interface{}{"seek", 99.7, "absolute-percent"}
	if got := f.lastCommand(); !reflect.DeepEqual(got, want) {
		t.Errorf("command = %#v, want %#v", got, want)
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	if _, err := c.GetTimePos(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("error = %v, want ErrNotConnected", err)
	}
	if err := c.Connect(); !errors.Is(err, ErrSocketNotFound) {
		t.Errorf("Connect() error = %v, want ErrSocketNotFound", err)
	}
}

func TestClient_WaitForSocketTimesOut(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	if err := c.WaitForSocket(ctx); !errors.Is(err, ErrSocketNotFound) {
		t.Errorf("WaitForSocket() error = %v, want ErrSocketNotFound", err)
	}
}

func TestPlayer_Controller(t *testing.T) {
	f, socket := startFakeMpv(t, map[string]interface{}{
		"time-pos":    30.25,
		"duration":    120.5,
		"percent-pos": 25.0,
		"pause":       true,
	})
	p := NewPlayer(connect(t, socket))

	if playing, err := p.IsPlaying(); err != nil || playing {
		t.Errorf("IsPlaying() = %v, %v; want false", playing, err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if playing, _ := p.IsPlaying(); !playing {
		t.Error("expected playing after Play()")
	}

	if ms, err := p.TimeMillis(); err != nil || ms != 30250 {
		t.Errorf("TimeMillis() = %d, %v; want 30250", ms, err)
	}
	if ms, err := p.DurationMillis(); err != nil || ms != 120500 {
		t.Errorf("DurationMillis() = %d, %v; want 120500", ms, err)
	}
	if frac, err := p.PositionFraction(); err != nil || frac != 0.25 {
		t.Errorf("PositionFraction() = %f, %v; want 0.25", frac, err)
	}

	if err := p.Seek(0.5); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	want := []interface{}{"seek", 50.0, "absolute-percent"}
	if got := f.lastCommand(); !reflect.DeepEqual(got, want) {
		t.Errorf("command = %#v, want %#v", got, want)
	}
}

func TestPlayer_UnavailableReadsAsZero(t *testing.T) {
	_, socket := startFakeMpv(t, map[string]interface{}{"pause": false})
	p := NewPlayer(connect(t, socket))

	if ms, err := p.DurationMillis(); err != nil || ms != 0 {
		t.Errorf("DurationMillis() = %d, %v; want 0, nil", ms, err)
	}
	if frac, err := p.PositionFraction(); err != nil || frac != 0 {
		t.Errorf("PositionFraction() = %f, %v; want 0, nil", frac, err)
	}
}

func TestLaunchArgs(t *testing.T) {
	args := LaunchArgs("/videos/-weird.mp4", LaunchOptions{SocketPath: "/tmp/x.sock", Title: "clip-trimmer"})
	want := []string{
		"--input-ipc-server=/tmp/x.sock",
		"--loop-file=inf",
		"--force-window=immediate",
		"--no-terminal",
		"--pause=no",
		"--title=clip-trimmer",
		"--",
		"/videos/-weird.mp4",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("LaunchArgs() = %q, want %q", args, want)
	}
}
