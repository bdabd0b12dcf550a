// Package entity holds the projectiles configured by the user and the ordered
// store that owns them.
package entity

import (
	"image/color"
	"math/rand/v2"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-projectile/pkg/physics"
)

// ID is a unique identifier for a projectile
type ID uint64

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Projectile is one configured launch. It never changes after creation; it is
// only ever removed.
type Projectile struct {
	ID     ID
	Launch physics.Launch
	Color  color.RGBA
}

// GetID returns the projectile's unique identifier
func (p *Projectile) GetID() ID {
	return p.ID
}

// FlightTime returns the derived time of flight in seconds.
func (p *Projectile) FlightTime() float64 {
	return p.Launch.FlightTime
}

// StateAt evaluates the projectile at simulation time t.
func (p *Projectile) StateAt(t float64) physics.State {
	return physics.Evaluate(p.Launch, t)
}

// ColorSource hands out display colours for new projectiles.
type ColorSource func() color.RGBA

// RandomHSL returns a ColorSource producing hsl(random hue, 75%, 50%).
// A nil rng uses the global source.
func RandomHSL(rng *rand.Rand) ColorSource {
	return func() color.RGBA {
		var hue float64
		if rng != nil {
			hue = rng.Float64() * 360
		} else {
			hue = rand.Float64() * 360
		}
		return ToRGBA(colorful.Hsl(hue, 0.75, 0.5))
	}
}

// FixedColor returns a ColorSource that always yields c.
func FixedColor(c color.RGBA) ColorSource {
	return func() color.RGBA { return c }
}

// ToRGBA converts a colorful colour to an opaque color.RGBA.
func ToRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ParseHex parses "#rrggbb" (or "#rgb") into an opaque color.RGBA.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	return ToRGBA(c), nil
}

// MustParseHex is ParseHex for package-level colour constants.
func MustParseHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
