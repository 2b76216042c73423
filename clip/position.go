package clip

import "math"

const (
	// Scale is the resolution of a normalized position: 0 is the first frame,
	// Scale is the end of the media.
	Scale = 1000

	// SeekSafetyFraction replaces a seek target of 100%. Seeking exactly to
	// the end of the stream makes the player stall instead of looping.
	SeekSafetyFraction = 0.997
)

// Position is a point along the media expressed on the [0, Scale] scale.
type Position int

// Valid reports whether p lies within [0, Scale].
func (p Position) Valid() bool {
	return p >= 0 && p <= Scale
}

// Fraction returns p as a fraction of the total duration.
func (p Position) Fraction() float64 {
	return float64(p) / Scale
}

// Clamp returns p limited to [0, Scale].
func (p Position) Clamp() Position {
	if p < 0 {
		return 0
	}
	if p > Scale {
		return Scale
	}
	return p
}

// ToAbsolute converts a normalized position into seconds from the start of
// media lasting duration seconds.
func ToAbsolute(p Position, duration float64) float64 {
	return duration * (float64(p) / 1000.0)
}

// ToSeekFraction converts a position into the fraction handed to the player's
// seek. A full-scale position never reaches 1.0.
func ToSeekFraction(p Position) float64 {
	f := p.Fraction()
	if f >= 1.0 {
		return SeekSafetyFraction
	}
	if f < 0 {
		return 0
	}
	return f
}

// FromFraction converts a player position fraction back onto the normalized
// scale, rounding up so the playback bar never lags the player.
func FromFraction(f float64) Position {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	return Position(math.Ceil(f * Scale)).Clamp()
}
