package collision

import "slices"

const (
	EventEnter Event = iota
	EventStay
	EventExit
)

// Event is the transition of an overlapping pair between two frames
type Event uint8

func (e Event) String() string {
	switch e {
	case EventEnter:
		return "enter"
	case EventStay:
		return "stay"
	case EventExit:
		return "exit"
	default:
		return "unknown"
	}
}

// PairKey identifies an unordered pair of colliders
type PairKey uint64

// MakePairKey creates a normalized pair key with consistent ordering:
// the smaller ID goes in the high 32 bits
func MakePairKey(a, b ColliderID) PairKey {
	if b < a {
		a, b = b, a
	}

	return PairKey(uint64(a)<<32 | uint64(b))
}

// Split returns the two IDs of the pair, smaller first
func (k PairKey) Split() (ColliderID, ColliderID) {
	return ColliderID(k >> 32), ColliderID(k & 0xFFFFFFFF)
}

// pairHistory keeps the overlapping pairs of the previous frame, sorted for binary search,
// and collects the ones of the frame being processed
type pairHistory struct {
	previous []PairKey
	current  []PairKey
}

func newPairHistory(capacity int) pairHistory {
	return pairHistory{
		previous: make([]PairKey, 0, capacity),
		current:  make([]PairKey, 0, capacity),
	}
}

func (h *pairHistory) wasHit(key PairKey) bool {
	_, found := slices.BinarySearch(h.previous, key)
	return found
}

func (h *pairHistory) record(key PairKey) {
	h.current = append(h.current, key)
}

// swap makes the current frame the baseline of the next one
func (h *pairHistory) swap() {
	slices.Sort(h.current)
	h.previous, h.current = h.current, h.previous
	h.current = h.current[:0]
}

func (h *pairHistory) discardCurrent() {
	h.current = h.current[:0]
}

func (h *pairHistory) reset() {
	h.previous = h.previous[:0]
	h.current = h.current[:0]
}
