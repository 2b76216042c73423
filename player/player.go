// Package player defines the playback surface the trimmer drives and turns
// polled player state into typed events for the interactive loop.
package player

import (
	"fmt"

	"github.com/user/clip-trimmer/clip"
)

// Controller is a media player that can be played, paused and seeked, and
// reports its position and duration.
type Controller interface {
	Play() error
	Pause() error
	IsPlaying() (bool, error)
	// Seek jumps to fraction of the media, in [0, 1).
	Seek(fraction float64) error
	PositionFraction() (float64, error)
	DurationMillis() (int64, error)
	TimeMillis() (int64, error)
}

// Toggle pauses a playing player and resumes a paused one.
func Toggle(c Controller) error {
	playing, err := c.IsPlaying()
	if err != nil {
		return err
	}
	if playing {
		return c.Pause()
	}
	return c.Play()
}

// SeekTo pauses playback if needed and jumps to p. A full-scale position is
// pulled back from the end of the stream so the player does not stall.
func SeekTo(c Controller, p clip.Position) error {
	playing, err := c.IsPlaying()
	if err != nil {
		return err
	}
	if playing {
		if err := c.Pause(); err != nil {
			return fmt.Errorf("pause before seek: %w", err)
		}
	}
	return c.Seek(clip.ToSeekFraction(p.Clamp()))
}
