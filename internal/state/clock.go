package state

import (
	"strconv"
	"sync/atomic"
)

// PointID identifies a point. Ids are handed out by a registry-scoped Clock,
// so two points created in the same instant never collide.
type PointID uint64

func (id PointID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParsePointID parses the decimal form produced by PointID.String.
func ParsePointID(s string) (PointID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return PointID(n), nil
}

// Clock is a monotonic counter. The zero value is ready to use.
type Clock struct {
	counter uint64
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return atomic.AddUint64(&c.counter, 1)
}

// Update moves the clock forward to at least ts.
func (c *Clock) Update(ts uint64) {
	for {
		cur := atomic.LoadUint64(&c.counter)
		if ts <= cur || atomic.CompareAndSwapUint64(&c.counter, cur, ts) {
			return
		}
	}
}

// Now returns the current value without advancing.
func (c *Clock) Now() uint64 {
	return atomic.LoadUint64(&c.counter)
}

func (c *Clock) nextPointID() PointID {
	return PointID(c.Tick())
}
