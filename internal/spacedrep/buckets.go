package spacedrep

import "time"

// DueCounts partitions items by how soon they become due.
type DueCounts struct {
	Overdue      int `json:"overdue"`
	DueSoon15Min int `json:"due_soon_15min"`
	DueSoon1h    int `json:"due_soon_1h"`
	DueSoon6h    int `json:"due_soon_6h"`
	DueSoon24h   int `json:"due_soon_24h"`
	DueLater     int `json:"due_later"`
}

// Total returns the number of items counted.
func (c DueCounts) Total() int {
	return c.Overdue + c.DueSoon15Min + c.DueSoon1h + c.DueSoon6h + c.DueSoon24h + c.DueLater
}

// Segments returns the counts in display order, soonest first.
func (c DueCounts) Segments() []int {
	return []int{c.Overdue, c.DueSoon15Min, c.DueSoon1h, c.DueSoon6h, c.DueSoon24h, c.DueLater}
}

// BucketLabels names the Segments entries.
var BucketLabels = []string{"Overdue", "Due <15min", "Due <1h", "Due <6h", "Due <24h", "Due >=24h"}

// BucketByTimeToDue counts every item into exactly one bucket. Include is
// ignored so the buckets always sum to len(req.Items).
func BucketByTimeToDue[T Item](req Request[T]) DueCounts {
	var c DueCounts
	for _, item := range req.Items {
		until := NextReviewTime(req.record(item), req.Now).Sub(req.Now)
		switch {
		case until <= 0:
			c.Overdue++
		case until < 15*time.Minute:
			c.DueSoon15Min++
		case until < time.Hour:
			c.DueSoon1h++
		case until < 6*time.Hour:
			c.DueSoon6h++
		case until < 24*time.Hour:
			c.DueSoon24h++
		default:
			c.DueLater++
		}
	}
	return c
}
