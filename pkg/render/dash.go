package render

import "math"

// Dasher splits a polyline into dash segments. The pattern alternates drawn
// and skipped lengths and carries over from one segment to the next, the
// way a canvas strokes a dashed path. An odd-length pattern is repeated to
// make it even.
type Dasher struct {
	pattern   []float64
	period    float64
	index     int
	remaining float64
}

// NewDasher creates a Dasher for pattern. An empty or all-zero pattern
// draws solid lines.
func NewDasher(pattern []float64) *Dasher {
	var total float64
	for _, p := range pattern {
		if p < 0 || !Finite(p) {
			return &Dasher{}
		}
		total += p
	}
	if total <= 0 {
		return &Dasher{}
	}

	p := append([]float64(nil), pattern...)
	if len(p)%2 == 1 {
		p = append(p, p...)
	}
	d := &Dasher{pattern: p, period: total * float64(len(p)) / float64(len(pattern))}
	d.Reset()
	return d
}

// Reset restarts the pattern at its first dash.
func (d *Dasher) Reset() {
	d.index = 0
	if len(d.pattern) > 0 {
		d.remaining = d.pattern[0]
	}
}

// Segment emits the drawn parts of the line from (x0, y0) to (x1, y1).
func (d *Dasher) Segment(x0, y0, x1, y1 float64, emit func(ax, ay, bx, by float64)) {
	if !Finite(x0, y0, x1, y1) {
		return
	}
	if len(d.pattern) == 0 {
		emit(x0, y0, x1, y1)
		return
	}

	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	pos := 0.0
	for pos < length {
		step := math.Min(d.remaining, length-pos)
		if d.index%2 == 0 && step > 0 {
			a, b := pos/length, (pos+step)/length
			emit(x0+dx*a, y0+dy*a, x0+dx*b, y0+dy*b)
		}
		pos += step
		d.remaining -= step
		if d.remaining <= 1e-9 {
			d.index = (d.index + 1) % len(d.pattern)
			d.remaining = d.pattern[d.index]
		}
	}
}

// Advance moves along the pattern by dist without drawing, as if an
// invisible stretch of line of that length had been stroked.
func (d *Dasher) Advance(dist float64) {
	if len(d.pattern) == 0 || !Finite(dist) || dist <= 0 {
		return
	}
	dist = math.Mod(dist, d.period)
	for dist > 0 {
		step := math.Min(d.remaining, dist)
		dist -= step
		d.remaining -= step
		if d.remaining <= 1e-9 {
			d.index = (d.index + 1) % len(d.pattern)
			d.remaining = d.pattern[d.index]
		}
	}
}
