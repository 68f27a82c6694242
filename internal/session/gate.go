package session

import "sync/atomic"

// Gate implements last-issued-wins: every outgoing request takes a sequence
// number and only the holder of the latest one may publish its response.
type Gate struct {
	latest atomic.Uint64
}

// Issue returns the next sequence number; it becomes the only acceptable one.
func (g *Gate) Issue() uint64 {
	return g.latest.Add(1)
}

func (g *Gate) Latest() uint64 {
	return g.latest.Load()
}

// Accept reports whether seq is still the most recently issued number.
func (g *Gate) Accept(seq uint64) bool {
	return seq != 0 && seq == g.latest.Load()
}
