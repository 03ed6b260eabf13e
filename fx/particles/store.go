// Package particles simulates the emitter-driven particle field.
//
// A Store holds particle records in insertion order with FIFO eviction, an
// Emitter moves along eased random waypoints and spawns batches, and a Stepper
// advances every record once per frame. None of the types lock; the owning
// view serializes access.
package particles

import "effects/fx/quarkgl"

// Capacity is the default number of live particles a Store keeps.
const Capacity = 10000

// Particle is one simulated record.
type Particle struct {
	Pos   quarkgl.Vec2
	Dir   quarkgl.Vec2
	Speed quarkgl.Scalar
}

// Store is a fixed-capacity ring of particles. When full, Insert overwrites
// the oldest record.
type Store struct {
	buf     []Particle
	head    int // oldest record
	n       int
	evicted uint64
}

// NewStore returns a store with the default Capacity.
func NewStore() *Store { return NewStoreCap(Capacity) }

// NewStoreCap returns a store holding at most capacity records.
func NewStoreCap(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{buf: make([]Particle, capacity)}
}

// Insert appends p, evicting the earliest inserted record if the store is full.
func (s *Store) Insert(p Particle) {
	c := len(s.buf)
	if c == 0 {
		return
	}
	if s.n == c {
		s.buf[s.head] = p
		s.head = (s.head + 1) % c
		s.evicted++
		return
	}
	s.buf[(s.head+s.n)%c] = p
	s.n++
}

// Each calls fn for every live record, oldest first. i is the position in
// insertion order. fn may modify the record in place.
func (s *Store) Each(fn func(i int, p *Particle)) {
	c := len(s.buf)
	for i := 0; i < s.n; i++ {
		fn(i, &s.buf[(s.head+i)%c])
	}
}

// Len returns the number of live records.
func (s *Store) Len() int { return s.n }

// Cap returns the capacity.
func (s *Store) Cap() int { return len(s.buf) }

// Evicted returns the number of records dropped to make room since creation
// or the last Reset.
func (s *Store) Evicted() uint64 { return s.evicted }

// Reset drops every record.
func (s *Store) Reset() {
	s.head, s.n, s.evicted = 0, 0, 0
}
