package physics

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewLaunch_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		speed      float64
		angle      float64
		height     float64
		wantVx     float64
		wantVy     float64
		wantFlight float64
	}{
		{"forty_five_from_ground", 20, 45, 0, 20 / math.Sqrt2, 20 / math.Sqrt2, 2 * (20 / math.Sqrt2) / StandardGravity},
		{"horizontal_from_height", 10, 0, 5, 10, 0, math.Sqrt(2 * 5 / StandardGravity)},
		{"straight_up", 9.8, 90, 0, 0, 9.8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLaunch(tt.speed, tt.angle, tt.height, StandardGravity)
			if !approxEqual(l.Velocity.X, tt.wantVx, 1e-9) {
				t.Errorf("v0x = %v, expected %v", l.Velocity.X, tt.wantVx)
			}
			if !approxEqual(l.Velocity.Y, tt.wantVy, 1e-9) {
				t.Errorf("v0y = %v, expected %v", l.Velocity.Y, tt.wantVy)
			}
			if !approxEqual(l.FlightTime, tt.wantFlight, 1e-9) {
				t.Errorf("FlightTime = %v, expected %v", l.FlightTime, tt.wantFlight)
			}
		})
	}
}

func TestFlightTime_IsRootOfLandingEquation(t *testing.T) {
	for _, speed := range []float64{0.5, 1, 7.3, 20, 55} {
		for _, angle := range []float64{-30, 0, 10, 45, 60, 89.9} {
			for _, height := range []float64{0, 0.25, 3, 120} {
				l := NewLaunch(speed, angle, height, StandardGravity)
				if Discriminant(l.Velocity.Y, height, StandardGravity) < 0 {
					continue
				}
				tf := l.FlightTime
				if tf < 0 {
					t.Fatalf("negative flight time %v for v0=%v angle=%v h0=%v", tf, speed, angle, height)
				}
				residual := height + l.Velocity.Y*tf - 0.5*StandardGravity*tf*tf
				scale := math.Max(1, height+l.Velocity.Y*l.Velocity.Y/StandardGravity)
				if math.Abs(residual) > 1e-9*scale {
					t.Errorf("residual %v for v0=%v angle=%v h0=%v", residual, speed, angle, height)
				}
			}
		}
	}
}

func TestFlightTime_NegativeDiscriminantIsNaN(t *testing.T) {
	l := NewLaunch(10, 90, -100, StandardGravity)
	if !math.IsNaN(l.FlightTime) {
		t.Fatalf("expected NaN flight time, got %v", l.FlightTime)
	}
	s := Evaluate(l, 1)
	if !math.IsNaN(s.X) || !math.IsNaN(s.Y) {
		t.Errorf("expected NaN position, got (%v, %v)", s.X, s.Y)
	}
}

func TestEvaluate_InitialState(t *testing.T) {
	l := NewLaunch(20, 45, 12.5, StandardGravity)
	s := Evaluate(l, 0)
	if s.X != 0 {
		t.Errorf("x at t=0 = %v, expected 0", s.X)
	}
	if s.Y != 12.5 {
		t.Errorf("y at t=0 = %v, expected exactly h0", s.Y)
	}
	if !approxEqual(s.V, 20, 1e-12) {
		t.Errorf("speed at t=0 = %v, expected 20", s.V)
	}
}

func TestEvaluate_ForwardScenario(t *testing.T) {
	l := NewLaunch(20, 45, 0, StandardGravity)

	if !approxEqual(l.FlightTime, 2.885, 0.002) {
		t.Errorf("flight time = %v, expected about 2.885", l.FlightTime)
	}

	start := Evaluate(l, 0)
	if start.X != 0 || start.Y != 0 {
		t.Errorf("start = (%v, %v), expected origin", start.X, start.Y)
	}

	end := Evaluate(l, l.FlightTime)
	if !approxEqual(end.Y, 0, 1e-9) {
		t.Errorf("landing height = %v, expected 0", end.Y)
	}
	if !approxEqual(end.X, 40.8, 0.05) {
		t.Errorf("range = %v, expected about 40.8", end.X)
	}
}

func TestEvaluate_ClampsAfterLanding(t *testing.T) {
	l := NewLaunch(15, 30, 2, StandardGravity)
	landing := Evaluate(l, l.FlightTime)

	for _, dt := range []float64{1e-6, 0.1, 5, 1e6} {
		got := Evaluate(l, l.FlightTime+dt)
		if got != landing {
			t.Errorf("Evaluate(tf+%v) = %+v, expected landing state %+v", dt, got, landing)
		}
	}
	if Landing(l) != landing {
		t.Error("Landing() differs from Evaluate at flight time")
	}
}

func TestEvaluate_IsPure(t *testing.T) {
	l := NewLaunch(33, 71, 4, StandardGravity)
	for _, ts := range []float64{0, 0.37, 1.5, 3.14159, 100} {
		a := Evaluate(l, ts)
		b := Evaluate(l, ts)
		if a != b {
			t.Errorf("Evaluate(%v) not reproducible: %+v vs %+v", ts, a, b)
		}
	}
}

func TestEvaluate_AccelerationDecomposition(t *testing.T) {
	l := NewLaunch(25, 40, 0, StandardGravity)
	for _, ts := range []float64{0, 0.5, 1.2, 2, l.FlightTime} {
		s := Evaluate(l, ts)
		// the two components rebuild |g|
		total := math.Hypot(s.At, s.An)
		if !approxEqual(total, StandardGravity, 1e-9) {
			t.Errorf("t=%v: |(at, an)| = %v, expected g", ts, total)
		}
		if s.An < 0 {
			t.Errorf("t=%v: normal acceleration negative: %v", ts, s.An)
		}
		wantAt := -StandardGravity * s.Vy / s.V
		if !approxEqual(s.At, wantAt, 1e-12) {
			t.Errorf("t=%v: at = %v, expected %v", ts, s.At, wantAt)
		}
	}

	rising := Evaluate(l, 0.1)
	if rising.At >= 0 {
		t.Errorf("rising projectile should decelerate, at = %v", rising.At)
	}
	falling := Evaluate(l, l.FlightTime-0.1)
	if falling.At <= 0 {
		t.Errorf("falling projectile should accelerate, at = %v", falling.At)
	}
}

func TestEvaluate_RestPolicy(t *testing.T) {
	l := NewLaunch(0, 0, 5, StandardGravity)
	s := Evaluate(l, 0)
	if s.V != 0 {
		t.Fatalf("expected zero speed, got %v", s.V)
	}
	if s.At != 0 {
		t.Errorf("at = %v, expected 0 at rest", s.At)
	}
	if s.An != StandardGravity {
		t.Errorf("an = %v, expected g at rest", s.An)
	}
}

func TestPath_EndsAtLanding(t *testing.T) {
	l := NewLaunch(20, 45, 0, StandardGravity)
	points := Path(l, 0.1)

	// 0.0, 0.1, ... 2.8 accumulate to 29 samples before 2.886, plus the landing point
	if len(points) != 30 {
		t.Fatalf("expected 30 points, got %d", len(points))
	}
	if points[0] != (Vector2D{}) {
		t.Errorf("first point = %v, expected origin", points[0])
	}
	last := points[len(points)-1]
	if last != Landing(l).Position() {
		t.Errorf("last point = %v, expected landing %v", last, Landing(l).Position())
	}
}

func TestPath_DegenerateInputs(t *testing.T) {
	t.Run("non_positive_step", func(t *testing.T) {
		l := NewLaunch(10, 30, 0, StandardGravity)
		if got := Path(l, 0); len(got) != 1 {
			t.Errorf("expected only the landing point, got %d points", len(got))
		}
	})

	t.Run("nan_flight_time", func(t *testing.T) {
		l := NewLaunch(10, 90, -100, StandardGravity)
		got := Path(l, 0.1)
		if len(got) != 1 || got[0].IsFinite() {
			t.Errorf("expected a single non-finite point, got %v", got)
		}
	})

	t.Run("infinite_speed", func(t *testing.T) {
		l := NewLaunch(math.Inf(1), 45, 0, StandardGravity)
		if !math.IsInf(l.FlightTime, 1) || l.Lands() {
			t.Fatalf("flight time = %v, Lands() = %v", l.FlightTime, l.Lands())
		}
		if got := Path(l, 0.1); len(got) != 1 {
			t.Errorf("expected only the landing point, got %d points", len(got))
		}
	})

	t.Run("very_large_speed", func(t *testing.T) {
		l := NewLaunch(1e7, 45, 0, StandardGravity)
		got := Path(l, 0.1)
		if len(got) > MaxPathPoints+2 || len(got) < MaxPathPoints/2 {
			t.Errorf("got %d points, want about %d", len(got), MaxPathPoints)
		}
		if got[0] != (Vector2D{}) || got[len(got)-1] != Landing(l).Position() {
			t.Errorf("path should run from the origin to the landing point")
		}
	})
}

func TestLaunch_Lands(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		angle float64
		h0    float64
		want  bool
	}{
		{"forward", 20, 45, 0, true},
		{"below_ground_upwards", 10, 90, -100, false},
		{"nan_speed", math.NaN(), 45, 0, false},
		{"infinite_speed", math.Inf(1), 45, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLaunch(tt.speed, tt.angle, tt.h0, StandardGravity).Lands(); got != tt.want {
				t.Errorf("Lands() = %v, want %v", got, tt.want)
			}
		})
	}
}
