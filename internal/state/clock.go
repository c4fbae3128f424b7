package state

import "sync/atomic"

// revisionClock stamps document mutations. The persisted layer compares
// stamps to decide whether it has to lay out again.
type revisionClock struct {
	n atomic.Uint64
}

func (c *revisionClock) tick() uint64 {
	return c.n.Add(1)
}

func (c *revisionClock) now() uint64 {
	return c.n.Load()
}
