package memzone

import (
	"fmt"
	"sync"
)

// Registry holds every zone the engine has brought up, in registration
// order. Registration is single-writer and happens before fault
// handling begins; traversal during fault handling is lock-free and
// read-only.
//
// When two adjacent zones share a boundary address, a fault exactly on
// that address is attributed to whichever zone was registered first.
// That tie-break is a deliberate consequence of insertion-order
// iteration and is implementation-defined, not something callers may
// rely on for layout decisions.
type Registry struct {
	mu   sync.Mutex
	head *Zone
	tail *Zone
	n    int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Register appends z to the registry. It rejects zones that violate
// the ordering invariants or whose guard band [redzone, top] overlaps
// a zone already registered.
func (r *Registry) Register(z *Zone) error {
	if z == nil {
		return fmt.Errorf("memzone: register nil zone")
	}
	if err := z.CheckInvariants(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for cur := r.head; cur != nil; cur = cur.next {
		if cur == z {
			return fmt.Errorf("memzone: zone %s registered twice", z.Label())
		}
		// Strict comparison: adjacent zones may share a boundary
		// address, and a fault exactly there resolves by
		// registration order (see the type comment).
		if z.Redzone < cur.Top && cur.Redzone < z.Top {
			return fmt.Errorf("memzone: zone %s guard band overlaps %s", z.Label(), cur.Label())
		}
	}

	z.next = nil
	if r.tail == nil {
		r.head = z
	} else {
		r.tail.next = z
	}
	r.tail = z
	r.n++
	return nil
}

// First returns the earliest-registered zone; chain through Zone.Next
// for the rest. This is the read-only traversal entry point the fault
// router uses.
func (r *Registry) First() *Zone { return r.head }

// Len returns the number of registered zones.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// ZoneInfo is a plain snapshot of one zone, for inspection surfaces
// that must not hold references into live registry state.
type ZoneInfo struct {
	Name    string  `json:"name"`
	ID      int     `json:"id"`
	Min     uintptr `json:"min"`
	Redzone uintptr `json:"redzone"`
	Top     uintptr `json:"top"`
	Hardmax uintptr `json:"hardmax"`
}

// Snapshot copies the current state of every registered zone.
func (r *Registry) Snapshot() []ZoneInfo {
	out := make([]ZoneInfo, 0, r.Len())
	for z := r.First(); z != nil; z = z.Next() {
		out = append(out, ZoneInfo{
			Name:    z.Name,
			ID:      z.ID,
			Min:     z.Min,
			Redzone: z.Redzone,
			Top:     z.Top,
			Hardmax: z.Hardmax,
		})
	}
	return out
}
