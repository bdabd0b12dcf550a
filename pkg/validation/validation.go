// Package validation parses and checks the launch parameters typed into the
// front-end forms.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/opd-ai/go-projectile/pkg/physics"
)

// Form field names
const (
	FieldSpeed  = "v0"
	FieldAngle  = "angle"
	FieldHeight = "h0"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrMissingValue     = errors.New("value is required")
	ErrNotANumber       = errors.New("value is not a number")
	ErrImpossibleLaunch = errors.New("launch never reaches the ground")
)

// numericPrefix matches the longest leading decimal number, the way browsers
// read free-form numeric fields ("12.5m/s" reads as 12.5).
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// FieldError reports which form field failed and why.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// LaunchInput is the parsed content of the add-object form.
type LaunchInput struct {
	Speed  float64
	Angle  float64
	Height float64
}

// Validator parses launch forms. In lenient mode (the default) only empty
// fields are rejected; unparseable text becomes NaN and flows through the
// kinematics unchanged. Strict mode also rejects non-numbers and launches
// whose flight time is undefined.
type Validator struct {
	Strict  bool
	Gravity float64
}

// NewValidator creates a validator for the given gravity.
func NewValidator(gravity float64, strict bool) *Validator {
	return &Validator{Strict: strict, Gravity: gravity}
}

// ParseField reads one numeric field.
func (v *Validator) ParseField(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &FieldError{Field: field, Value: raw, Err: ErrMissingValue}
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if v.Strict && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return 0, &FieldError{Field: field, Value: raw, Err: ErrNotANumber}
		}
		return f, nil
	}

	if v.Strict {
		return 0, &FieldError{Field: field, Value: raw, Err: ErrNotANumber}
	}
	if prefix := numericPrefix.FindString(trimmed); prefix != "" {
		if f, err := strconv.ParseFloat(prefix, 64); err == nil {
			return f, nil
		}
	}
	return math.NaN(), nil
}

// ParseLaunch reads the three form fields and, in strict mode, checks that
// the launch lands.
func (v *Validator) ParseLaunch(speed, angle, height string) (LaunchInput, error) {
	var in LaunchInput
	var err error

	if in.Speed, err = v.ParseField(FieldSpeed, speed); err != nil {
		return LaunchInput{}, err
	}
	if in.Angle, err = v.ParseField(FieldAngle, angle); err != nil {
		return LaunchInput{}, err
	}
	if in.Height, err = v.ParseField(FieldHeight, height); err != nil {
		return LaunchInput{}, err
	}

	if err := v.CheckLaunch(in); err != nil {
		return LaunchInput{}, err
	}
	return in, nil
}

// CheckLaunch rejects, in strict mode only, non-finite values and launches
// without a non-negative landing time.
func (v *Validator) CheckLaunch(in LaunchInput) error {
	if !v.Strict {
		return nil
	}
	for _, f := range []struct {
		name  string
		value float64
	}{{FieldSpeed, in.Speed}, {FieldAngle, in.Angle}, {FieldHeight, in.Height}} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &FieldError{Field: f.name, Value: strconv.FormatFloat(f.value, 'g', -1, 64), Err: ErrNotANumber}
		}
	}

	l := physics.NewLaunch(in.Speed, in.Angle, in.Height, v.Gravity)
	if physics.Discriminant(l.Velocity.Y, in.Height, v.Gravity) < 0 || math.IsNaN(l.FlightTime) || l.FlightTime < 0 {
		return fmt.Errorf("v0=%v angle=%v h0=%v: %w", in.Speed, in.Angle, in.Height, ErrImpossibleLaunch)
	}
	return nil
}
