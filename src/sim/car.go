package sim

import (
	"time"

	"liftdispatch/src/config"
	"liftdispatch/src/types"
)

type behaviour int

const (
	parked behaviour = iota
	moving
	doorOpen
)

// Car is the physical truth of one elevator: where it is, which way it
// moves, who is aboard. The controller only ever sees it through the
// dispatcher.Car interface and owns nothing here but the stop queue.
type Car struct {
	id    int
	floor int
	dir   types.Direction
	queue []int

	behaviour  behaviour
	travelLeft time.Duration
	doorLeft   time.Duration
	riders     []*Rider
	recompute  bool
}

func newCar(id, floor int) *Car {
	return &Car{id: id, floor: floor}
}

func (c *Car) CurrentFloor() int { return c.floor }

func (c *Car) DestinationDirection() types.Direction { return c.dir }

// LoadFactor is the fraction of capacity in use, 1.0 when full.
func (c *Car) LoadFactor() float64 {
	return float64(len(c.riders)) / float64(config.CarCapacity)
}

func (c *Car) DestinationQueue() []int { return c.queue }

func (c *Car) SetDestinationQueue(queue []int) { c.queue = queue }

// RecomputeDestination flags the car to re-read its queue head. Only a
// parked car acts on it; moving cars re-read at the end of the current leg
// and door-open cars when the door closes.
func (c *Car) RecomputeDestination() { c.recompute = true }

// popStop removes the head stop once the car has stopped there.
func (c *Car) popStop() {
	if len(c.queue) > 0 && c.queue[0] == c.floor {
		c.queue = c.queue[1:]
	}
}

// onwardDirection is where the queue sends the car next: toward the head
// stop, or nowhere when the queue is drained.
func (c *Car) onwardDirection() types.Direction {
	if len(c.queue) == 0 {
		return types.None
	}
	switch head := c.queue[0]; {
	case head > c.floor:
		return types.Up
	case head < c.floor:
		return types.Down
	default:
		return types.None
	}
}

func (c *Car) full() bool {
	return len(c.riders) >= config.CarCapacity
}
