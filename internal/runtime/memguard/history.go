package memguard

import (
	"strconv"
	"sync"
)

// HistoryRing records recently executed location labels for post-mortem
// dumps. It is the default Reporter implementation: the engine's
// trace layer records a label per executed location, and the abort
// path replays them.
//
// Record is called from ordinary execution, never from the fault path;
// the fault path only reads, and only while the process is exiting.
type HistoryRing struct {
	mu       sync.Mutex
	labels   []string
	next     int
	full     bool
	recorded uint64
}

// NewHistoryRing returns a ring that retains the last capacity labels.
func NewHistoryRing(capacity int) *HistoryRing {
	if capacity <= 0 {
		capacity = 256
	}
	return &HistoryRing{labels: make([]string, capacity)}
}

// Record appends a location label, evicting the oldest when full.
func (h *HistoryRing) Record(label string) {
	h.mu.Lock()
	h.labels[h.next] = label
	h.next++
	if h.next == len(h.labels) {
		h.next = 0
		h.full = true
	}
	h.recorded++
	h.mu.Unlock()
}

// RecentLocations returns the retained labels, oldest first.
func (h *HistoryRing) RecentLocations() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.full {
		out := make([]string, h.next)
		copy(out, h.labels[:h.next])
		return out
	}
	out := make([]string, 0, len(h.labels))
	out = append(out, h.labels[h.next:]...)
	out = append(out, h.labels[:h.next]...)
	return out
}

// TraceReportRaw emits a one-line trace summary with a single raw
// write on fd.
func (h *HistoryRing) TraceReportRaw(fd int) {
	h.mu.Lock()
	n := h.recorded
	h.mu.Unlock()

	var l lineBuf
	l.str("trace: ").dec(n).str(" locations recorded\n").flushTo(fd)
}

// compressHistory collapses runs of consecutive duplicate labels into
// the "<label> * <count>" form used by location dumps.
func compressHistory(labels []string) []string {
	out := make([]string, 0, len(labels))
	for i := 0; i < len(labels); {
		j := i + 1
		for j < len(labels) && labels[j] == labels[i] {
			j++
		}
		if n := j - i; n > 1 {
			out = append(out, labels[i]+" * "+strconv.Itoa(n))
		} else {
			out = append(out, labels[i])
		}
		i = j
	}
	return out
}
