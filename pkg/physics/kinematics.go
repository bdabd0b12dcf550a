package physics

import "math"

const (
	// StandardGravity is the gravitational acceleration in m/s² used when no
	// other value is configured.
	StandardGravity = 9.8

	// RestSpeed is the speed below which the velocity direction is treated as
	// undefined. At or below it tangential acceleration is reported as 0 and
	// normal acceleration as the full gravity.
	RestSpeed = 1e-4

	// MaxPathPoints bounds the samples Path returns, not counting the landing
	// point. Longer flights are sampled at a coarser step.
	MaxPathPoints = 4096
)

// Launch holds the initial conditions of a projectile and the values derived
// from them once at creation.
type Launch struct {
	Speed   float64 // v0, m/s
	Angle   float64 // degrees above the horizontal
	Height  float64 // h0, m above the ground plane
	Gravity float64 // m/s², acting along -y

	Velocity   Vector2D // (v0x, v0y)
	FlightTime float64  // seconds until height returns to 0; NaN when it never does
}

// Lands reports whether the flight time is a finite number. Launches from
// infinite or NaN inputs never land.
func (l Launch) Lands() bool {
	return !math.IsNaN(l.FlightTime) && !math.IsInf(l.FlightTime, 0)
}

// NewLaunch derives the velocity components and flight time for the given
// initial conditions. Inputs are not validated: a launch that never reaches
// the ground gets a NaN flight time.
func NewLaunch(speed, angleDeg, height, gravity float64) Launch {
	velocity := FromAngle(Radians(angleDeg), speed)
	return Launch{
		Speed:      speed,
		Angle:      angleDeg,
		Height:     height,
		Gravity:    gravity,
		Velocity:   velocity,
		FlightTime: FlightTime(velocity.Y, height, gravity),
	}
}

// Discriminant returns v0y² + 2·g·h0, the discriminant of the landing
// equation h0 + v0y·t - ½·g·t² = 0. A negative value means no real landing time.
func Discriminant(v0y, h0, g float64) float64 {
	return v0y*v0y - 4*(-0.5*g)*h0
}

// FlightTime returns the larger root of h0 + v0y·t - ½·g·t² = 0.
func FlightTime(v0y, h0, g float64) float64 {
	delta := Discriminant(v0y, h0, g)
	return (-v0y - math.Sqrt(delta)) / (2 * (-0.5 * g))
}

// State is the instantaneous kinematic state of a projectile.
type State struct {
	Time float64 // evaluation time after clamping to the flight time
	X    float64 // horizontal displacement (range so far)
	Y    float64 // height
	Vx   float64
	Vy   float64
	V    float64 // speed
	At   float64 // tangential acceleration
	An   float64 // normal acceleration
}

// Position returns (X, Y) as a vector.
func (s State) Position() Vector2D {
	return Vector2D{X: s.X, Y: s.Y}
}

// Evaluate returns the state of the launch at time t. Times past the flight
// time are clamped to it, so the projectile rests at its landing point.
// Evaluate is pure: identical inputs always produce identical outputs.
func Evaluate(l Launch, t float64) State {
	time := math.Min(t, l.FlightTime)
	g := l.Gravity

	x := l.Velocity.X * time
	y := l.Height + l.Velocity.Y*time - 0.5*g*time*time

	velocity := Vector2D{X: l.Velocity.X, Y: l.Velocity.Y - g*time}
	v := velocity.Length()
	accel := Vector2D{X: 0, Y: -g}

	var at, an float64
	if v > RestSpeed {
		at = velocity.Dot(accel) / v
		an = math.Abs(velocity.Cross(accel)) / v
	} else {
		at = 0
		an = g
	}

	return State{
		Time: time,
		X:    x,
		Y:    y,
		Vx:   velocity.X,
		Vy:   velocity.Y,
		V:    v,
		At:   at,
		An:   an,
	}
}

// Landing returns the state at the flight time.
func Landing(l Launch) State {
	return Evaluate(l, l.FlightTime)
}

// Path samples the trajectory every step seconds from 0 up to the flight time
// and always ends with the exact landing point. The sample times accumulate
// step by repeated addition. When that would exceed MaxPathPoints samples the
// step is widened to FlightTime/MaxPathPoints. A launch that never lands
// yields only its (non-finite) landing point.
func Path(l Launch, step float64) []Vector2D {
	var points []Vector2D
	if step > 0 && l.Lands() {
		if l.FlightTime/step > MaxPathPoints {
			step = l.FlightTime / MaxPathPoints
		}
		for t := 0.0; t <= l.FlightTime; t += step {
			points = append(points, Evaluate(l, t).Position())
		}
	}
	return append(points, Landing(l).Position())
}
