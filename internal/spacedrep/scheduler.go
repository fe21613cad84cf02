package spacedrep

import "time"

// Request carries everything one scheduler call needs. Hosts build a fresh
// Request per call; the scheduler keeps no state between calls.
type Request[T Item] struct {
	Items  []T
	Lookup Lookup
	Mode   string
	Now    time.Time

	// Include, when set, restricts selection to accepted items.
	Include func(T) bool

	// Rand breaks exact priority ties. Nil means no jitter.
	Rand Source
}

func (r Request[T]) record(item T) PerformanceRecord {
	return recordFor(r.Lookup, item.ItemID(), r.Mode)
}

func (r Request[T]) included(item T) bool {
	return r.Include == nil || r.Include(item)
}

// DueItems returns the items that are due and accepted by Include, in
// input order.
func DueItems[T Item](req Request[T]) []T {
	var due []T
	for _, item := range req.Items {
		if !IsDue(req.record(item), req.Now) {
			continue
		}
		if !req.included(item) {
			continue
		}
		due = append(due, item)
	}
	return due
}

// CountDue returns len(DueItems(req)) without allocating.
func CountDue[T Item](req Request[T]) int {
	n := 0
	for _, item := range req.Items {
		if IsDue(req.record(item), req.Now) && req.included(item) {
			n++
		}
	}
	return n
}

// SelectNext returns the most urgent due item. The bool is false when
// nothing is due. Exact ties go to the earlier item.
func SelectNext[T Item](req Request[T]) (T, bool) {
	var (
		best      T
		bestScore float64
		found     bool
	)
	for _, item := range DueItems(req) {
		score := Priority(req.record(item), req.Now, req.Rand)
		if !found || score > bestScore {
			best, bestScore, found = item, score, true
		}
	}
	return best, found
}
