package github

import (
	"maps"
	"sort"
)

// Counter tallies outbound API calls per operation. It replaces the usual
// global query counter with a value owned by the client and read by the
// caller at the end of a run. Not safe for concurrent use; there is exactly
// one logical thread of control in the fetch path.
type Counter struct {
	counts map[string]int
}

// NewCounter returns an empty tally.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Inc records one call for op.
func (c *Counter) Inc(op string) {
	c.counts[op]++
}

// Count returns the number of calls recorded for op.
func (c *Counter) Count(op string) int {
	return c.counts[op]
}

// Total returns the number of calls recorded across all operations.
func (c *Counter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Snapshot returns a copy of the tally keyed by operation.
func (c *Counter) Snapshot() map[string]int {
	return maps.Clone(c.counts)
}

// Operations returns the recorded operation names in sorted order.
func (c *Counter) Operations() []string {
	ops := make([]string, 0, len(c.counts))
	for op := range c.counts {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
