package dispatcher

import (
	"time"

	"github.com/tiendc/go-deepcopy"

	"liftdispatch/src/types"
)

// Snapshot is a point-in-time copy of the controller's dispatch state. It
// shares no memory with the live controller or its cars, so callers can hold
// it across further events.
type Snapshot struct {
	// Waits maps each pending hall call to how long it has been waiting.
	Waits map[types.HallCall]time.Duration
	// Queues holds every car's committed stops, indexed by car.
	Queues [][]int
	// IdleTimes holds how long each car has been parked, zero for busy cars.
	IdleTimes []time.Duration
}

// PendingCalls is the number of hall calls still waiting for a car to stop.
func (s Snapshot) PendingCalls() int {
	return len(s.Waits)
}

// LongestWait is the age of the oldest pending call.
func (s Snapshot) LongestWait() time.Duration {
	var longest time.Duration
	for _, wait := range s.Waits {
		if wait > longest {
			longest = wait
		}
	}
	return longest
}

// Snapshot copies the pending calls, every car's committed stops and the
// per-car idle ages. Queue slices may alias live car state, so the whole
// value is deep-copied on the way out. A copy failure is a programming error.
func (c *Controller) Snapshot() Snapshot {
	now := c.clock.Now()
	live := Snapshot{
		Waits:     make(map[types.HallCall]time.Duration, len(c.registry.calls)),
		Queues:    make([][]int, len(c.cars)),
		IdleTimes: make([]time.Duration, len(c.cars)),
	}
	for call := range c.registry.calls {
		live.Waits[call] = c.registry.waitTime(call.Floor, call.Dir, now)
	}
	for i, car := range c.cars {
		live.Queues[i] = car.DestinationQueue()
		live.IdleTimes[i] = c.lifecycles[i].IdleTime(now)
	}

	snap := new(Snapshot)
	if err := deepcopy.Copy(snap, &live); err != nil {
		panic(err)
	}
	return *snap
}
