package animator

import (
	"sync"

	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
)

// Clock is the simulation time source. Time only advances while not paused,
// and can be set directly to scrub forwards or backwards.
type Clock struct {
	mu sync.Mutex
	t  clifford4d.Real
}

// Advance moves time forward by dt unless paused, and returns the new time.
func (c *Clock) Advance(dt clifford4d.Real, paused bool) clifford4d.Real {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !paused && dt > 0 {
		c.t += dt
	}
	return c.t
}

func (c *Clock) Set(t clifford4d.Real) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *Clock) Now() clifford4d.Real {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}
