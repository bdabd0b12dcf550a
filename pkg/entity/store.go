package entity

import "github.com/opd-ai/go-projectile/pkg/physics"

// Store is the ordered collection of projectiles. Order is insertion order and
// determines the 1-based display numbering.
type Store struct {
	gravity     float64
	colors      ColorSource
	nextID      ID
	projectiles []*Projectile
}

// NewStore creates an empty store. Launches added to it use gravity; colours
// come from colors, or a random HSL source when colors is nil.
func NewStore(gravity float64, colors ColorSource) *Store {
	if colors == nil {
		colors = RandomHSL(nil)
	}
	return &Store{
		gravity: gravity,
		colors:  colors,
	}
}

// Gravity returns the gravitational acceleration applied to new launches.
func (s *Store) Gravity() float64 {
	return s.gravity
}

// Add derives a launch from the given initial conditions and appends it.
// Nothing is validated here; impossible launches carry a NaN flight time.
func (s *Store) Add(speed, angleDeg, height float64) *Projectile {
	s.nextID++
	p := &Projectile{
		ID:     s.nextID,
		Launch: physics.NewLaunch(speed, angleDeg, height, s.gravity),
		Color:  s.colors(),
	}
	s.projectiles = append(s.projectiles, p)
	return p
}

// Remove deletes the projectile with the given id, keeping the order of the
// rest. It reports whether anything was removed.
func (s *Store) Remove(id ID) bool {
	idx := s.Index(id)
	if idx < 0 {
		return false
	}
	s.projectiles = append(s.projectiles[:idx:idx], s.projectiles[idx+1:]...)
	return true
}

// Clear removes every projectile. IDs keep increasing across clears.
func (s *Store) Clear() {
	s.projectiles = nil
}

// Len returns the number of projectiles
func (s *Store) Len() int {
	return len(s.projectiles)
}

// IsEmpty reports whether the store holds no projectiles
func (s *Store) IsEmpty() bool {
	return len(s.projectiles) == 0
}

// Get returns the projectile with the given id.
func (s *Store) Get(id ID) (*Projectile, bool) {
	idx := s.Index(id)
	if idx < 0 {
		return nil, false
	}
	return s.projectiles[idx], true
}

// Index returns the position of id in insertion order, or -1.
func (s *Store) Index(id ID) int {
	for i, p := range s.projectiles {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// All returns the projectiles in insertion order. The slice is a copy.
func (s *Store) All() []*Projectile {
	out := make([]*Projectile, len(s.projectiles))
	copy(out, s.projectiles)
	return out
}

// MaxFlightTime returns the longest flight time in the store, or 0 when it is
// empty. Projectiles whose flight time is NaN or infinite never land and are
// skipped.
func (s *Store) MaxFlightTime() float64 {
	longest := 0.0
	for _, p := range s.projectiles {
		if !p.Launch.Lands() {
			continue
		}
		tf := p.FlightTime()
		if tf > longest {
			longest = tf
		}
	}
	return longest
}
