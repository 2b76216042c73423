package mpv

import (
	"errors"
	"math"

	"github.com/user/clip-trimmer/player"
)

// Player adapts a Client to player.Controller.
// Properties mpv cannot report yet (while the file is still opening) read as zero.
type Player struct {
	client *Client
}

// NewPlayer wraps a connected client.
func NewPlayer(client *Client) *Player {
	return &Player{client: client}
}

var _ player.Controller = (*Player)(nil)

func (p *Player) Play() error {
	return p.client.SetPaused(false)
}

func (p *Player) Pause() error {
	return p.client.SetPaused(true)
}

func (p *Player) IsPlaying() (bool, error) {
	paused, err := p.client.GetPaused()
	if err != nil {
		return false, err
	}
	return !paused, nil
}

// Seek jumps to fraction of the file. mpv takes a percentage.
func (p *Player) Seek(fraction float64) error {
	return p.client.SeekPercent(fraction * 100)
}

func (p *Player) PositionFraction() (float64, error) {
	percent, err := p.client.GetPercentPos()
	if err != nil {
		return unavailable(err)
	}
	return percent / 100, nil
}

func (p *Player) DurationMillis() (int64, error) {
	seconds, err := p.client.GetDuration()
	if err != nil {
		v, err := unavailable(err)
		return int64(v), err
	}
	return toMillis(seconds), nil
}

func (p *Player) TimeMillis() (int64, error) {
	seconds, err := p.client.GetTimePos()
	if err != nil {
		v, err := unavailable(err)
		return int64(v), err
	}
	return toMillis(seconds), nil
}

func unavailable(err error) (float64, error) {
	if errors.Is(err, ErrPropertyUnavailable) {
		return 0, nil
	}
	return 0, err
}

func toMillis(seconds float64) int64 {
	if seconds < 0 || math.IsNaN(seconds) {
		return 0
	}
	return int64(seconds * 1000)
}
