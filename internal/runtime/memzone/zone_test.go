package memzone

import (
	"strings"
	"testing"
)

type refusePolicy struct{}

func (refusePolicy) Grow(fault uintptr, z *Zone, ctx FaultContext) bool { return false }

func synthZone(name string, id int, min, redzone, top, hardmax uintptr) *Zone {
	return &Zone{
		Name:    name,
		ID:      id,
		Min:     min,
		Redzone: redzone,
		Top:     top,
		Hardmax: hardmax,
		Handler: refusePolicy{},
	}
}

func TestRoundUp(t *testing.T) {
	cases := []struct {
		n, align, want uintptr
	}{
		{0, 0x1000, 0},
		{1, 0x1000, 0x1000},
		{0x1000, 0x1000, 0x1000},
		{0x1001, 0x1000, 0x2000},
		{0x2F58, 0x1000, 0x3000},
		{7, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
	}
	for _, c := range cases {
		if got := RoundUp(c.n, c.align); got != c.want {
			t.Errorf("RoundUp(0x%x, 0x%x) = 0x%x, want 0x%x", c.n, c.align, got, c.want)
		}
	}
}

func TestZoneInvariants(t *testing.T) {
	ok := synthZone("detstack", 0, 0x1000, 0x2F00, 0x3000, 0x9000)
	if err := ok.CheckInvariants(); err != nil {
		t.Fatalf("valid zone rejected: %v", err)
	}

	bad := []*Zone{
		synthZone("a", 0, 0x2000, 0x1000, 0x3000, 0x9000), // min > redzone
		synthZone("b", 0, 0x1000, 0x4000, 0x3000, 0x9000), // redzone > top
		synthZone("c", 0, 0x1000, 0x2000, 0xA000, 0x9000), // top > hardmax
	}
	for _, z := range bad {
		if err := z.CheckInvariants(); err == nil {
			t.Errorf("zone %s: invariant violation not detected", z.Label())
		}
	}
}

func TestZoneContains(t *testing.T) {
	z := synthZone("detstack", 0, 0x1000, 0x2000, 0x3000, 0x9000)

	if z.Contains(0x1FFF) {
		t.Error("address below redzone should not be contained")
	}
	if !z.Contains(0x2000) {
		t.Error("redzone start should be contained")
	}
	if !z.Contains(0x3000) {
		t.Error("top should be contained (inclusive range)")
	}
	if z.Contains(0x3001) {
		t.Error("address above top should not be contained")
	}
}

func TestZoneLabel(t *testing.T) {
	z := synthZone("nondetstack", 3, 0x1000, 0x2000, 0x3000, 0x9000)
	if got := z.Label(); got != "nondetstack#3" {
		t.Errorf("Label() = %q, want %q", got, "nondetstack#3")
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewRegistry()
	z1 := synthZone("detstack", 0, 0x1000, 0x2000, 0x3000, 0x3000)
	z2 := synthZone("nondetstack", 0, 0x4000, 0x5000, 0x6000, 0x6000)
	z3 := synthZone("detstack", 1, 0x7000, 0x8000, 0x9000, 0x9000)

	for _, z := range []*Zone{z1, z2, z3} {
		if err := reg.Register(z); err != nil {
			t.Fatalf("register %s: %v", z.Label(), err)
		}
	}
	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}

	var got []*Zone
	for z := reg.First(); z != nil; z = z.Next() {
		got = append(got, z)
	}
	want := []*Zone{z1, z2, z3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("traversal[%d] = %s, want %s", i, got[i].Label(), want[i].Label())
		}
	}
}

func TestRegistryRejectsOverlap(t *testing.T) {
	reg := NewRegistry()
	z1 := synthZone("detstack", 0, 0x1000, 0x2000, 0x4000, 0x4000)
	if err := reg.Register(z1); err != nil {
		t.Fatalf("register: %v", err)
	}

	overlapping := synthZone("detstack", 1, 0x3000, 0x3800, 0x5000, 0x5000)
	err := reg.Register(overlapping)
	if err == nil {
		t.Fatal("overlapping guard band accepted")
	}
	if !strings.Contains(err.Error(), "overlaps") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegistryAllowsSharedBoundary(t *testing.T) {
	// Adjacent zones may share one boundary address; attribution of a
	// fault exactly there is by registration order.
	reg := NewRegistry()
	z1 := synthZone("detstack", 0, 0x1000, 0x2000, 0x3000, 0x3000)
	z2 := synthZone("detstack", 1, 0x3000, 0x3000, 0x4000, 0x4000)

	if err := reg.Register(z1); err != nil {
		t.Fatalf("register first: %v", err)
	}
	if err := reg.Register(z2); err != nil {
		t.Fatalf("register adjacent: %v", err)
	}
}

func TestRegistryRejectsDuplicateAndInvalid(t *testing.T) {
	reg := NewRegistry()
	z := synthZone("detstack", 0, 0x1000, 0x2000, 0x3000, 0x3000)
	if err := reg.Register(z); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(z); err == nil {
		t.Error("double registration accepted")
	}
	if err := reg.Register(nil); err == nil {
		t.Error("nil zone accepted")
	}
	broken := synthZone("broken", 0, 0x5000, 0x4000, 0x6000, 0x6000)
	if err := reg.Register(broken); err == nil {
		t.Error("invariant-violating zone accepted")
	}
}

func TestRegistrySnapshot(t *testing.T) {
	reg := NewRegistry()
	z := synthZone("detstack", 2, 0x1000, 0x2000, 0x3000, 0x9000)
	if err := reg.Register(z); err != nil {
		t.Fatalf("register: %v", err)
	}

	snap := reg.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot length = %d, want 1", len(snap))
	}
	got := snap[0]
	if got.Name != "detstack" || got.ID != 2 || got.Min != 0x1000 ||
		got.Redzone != 0x2000 || got.Top != 0x3000 || got.Hardmax != 0x9000 {
		t.Errorf("snapshot mismatch: %+v", got)
	}
}
