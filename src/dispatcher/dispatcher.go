// Package dispatcher assigns hall calls to elevator cars. A Controller owns
// the pending-call registry and each car's idle bookkeeping; the physical
// truth of position, load and motion stays with whatever drives the Car
// interface. All methods expect to be called from a single goroutine.
package dispatcher

import (
	"time"

	"github.com/rs/zerolog"

	"liftdispatch/src/config"
	"liftdispatch/src/elev"
	"liftdispatch/src/logger"
	"liftdispatch/src/types"
)

// Car is the controller's view of one elevator. CurrentFloor is the last
// floor the car reached or passed. DestinationDirection is where the car is
// heading, None when parked. SetDestinationQueue replaces the committed stop
// list, and RecomputeDestination tells the car to re-aim at the queue head.
type Car interface {
	CurrentFloor() int
	DestinationDirection() types.Direction
	LoadFactor() float64
	DestinationQueue() []int
	SetDestinationQueue([]int)
	RecomputeDestination()
}

// Clock supplies the controller's only notion of time.
type Clock interface {
	Now() time.Time
}

// Controller reacts to button presses and car movement reports, and runs the
// periodic sweep that assigns whatever calls the reactive paths left behind.
type Controller struct {
	cars       []Car
	lifecycles []*elev.Lifecycle
	registry   *callRegistry
	tuning     config.Tuning
	clock      Clock
	log        zerolog.Logger
}

func New(cars []Car, tuning config.Tuning, clk Clock) *Controller {
	c := &Controller{
		cars:     cars,
		registry: newCallRegistry(),
		tuning:   tuning,
		clock:    clk,
		log:      logger.Get().With().Str("component", "dispatcher").Logger(),
	}
	now := clk.Now()
	c.lifecycles = make([]*elev.Lifecycle, len(cars))
	for i := range cars {
		c.lifecycles[i] = elev.NewLifecycle(now)
	}
	return c
}

// UpButtonPressed registers an up hall call at floor. Pressing again while
// the call is still pending changes nothing.
func (c *Controller) UpButtonPressed(floor int) {
	c.pressHallButton(floor, types.Up)
}

// DownButtonPressed registers a down hall call at floor.
func (c *Controller) DownButtonPressed(floor int) {
	c.pressHallButton(floor, types.Down)
}

func (c *Controller) pressHallButton(floor int, dir types.Direction) {
	if c.registry.register(floor, dir, c.clock.Now()) {
		c.log.Debug().Int("floor", floor).Stringer("dir", dir).Msg("hall call registered")
	}
}

// FloorButtonPressed queues a car call: a rider inside car id pressed floor.
func (c *Controller) FloorButtonPressed(id, floor int) {
	if c.insert(id, floor, false) {
		c.log.Debug().Int("car", id).Int("floor", floor).Msg("car call queued")
	}
}

// CarIdle handles car id reporting a drained queue: any stale stops are
// dropped and the idle clock starts. Repeats while already idle keep the
// original idle stamp.
func (c *Controller) CarIdle(id int) {
	car := c.cars[id]
	car.SetDestinationQueue(nil)
	car.RecomputeDestination()
	c.lifecycles[id].MarkParked(c.clock.Now())
	c.log.Debug().Int("car", id).Int("floor", car.CurrentFloor()).Msg("car parked")
}

// PassingFloor decides whether car id, about to pass floor while traveling
// dir, should make an unplanned stop for a hall call waiting there. Full cars
// never stop; cars with spare room stop for anyone, and cars in between stop
// only for calls old enough to be urgent.
func (c *Controller) PassingFloor(id, floor int, dir types.Direction) {
	car := c.cars[id]
	load := car.LoadFactor()
	if load >= c.tuning.PickupLoadCutoff {
		return
	}
	if !c.registry.pendingAt(floor, dir) {
		return
	}
	wait := c.registry.waitTime(floor, dir, c.clock.Now())
	urgent := wait > c.tuning.UrgentWait
	if !urgent && load >= c.tuning.SpareCapacityCutoff {
		return
	}
	if c.insert(id, floor, urgent) {
		c.log.Debug().Int("car", id).Int("floor", floor).Stringer("dir", dir).
			Dur("wait", wait).Bool("urgent", urgent).Msg("pickup on passing")
	}
}

// StoppedAtFloor clears pending calls at the stop. The car is assumed to take
// whoever waits there, whichever direction they asked for.
func (c *Controller) StoppedAtFloor(id, floor int) {
	c.registry.clear(floor)
}

// Tick runs the unassigned-call sweep. Every pending call not already in some
// car's queue gets assigned to the best eligible car, longest-waiting calls
// first; calls aged past the priority threshold jump their car's queue. A
// call stays pending when every car is over the capacity guard.
func (c *Controller) Tick() {
	now := c.clock.Now()
	for _, call := range c.registry.pending(now) {
		if c.queuedAnywhere(call.Floor) {
			continue
		}
		urgency := c.urgency(call.HallCall, now)
		id, ok := c.findCar(call.Floor, call.Dir, urgency, now)
		if !ok {
			c.log.Debug().Int("floor", call.Floor).Stringer("dir", call.Dir).
				Msg("all cars over capacity guard, call stays pending")
			continue
		}
		priority := urgency > c.tuning.PrioritySweepUrgency
		c.insert(id, call.Floor, priority)
		c.log.Debug().Int("car", id).Int("floor", call.Floor).Stringer("dir", call.Dir).
			Float64("urgency", urgency).Bool("priority", priority).Msg("sweep assigned call")
	}
}

// urgency maps a call's wait time onto [0, 1], saturating at the configured
// wait.
func (c *Controller) urgency(call types.HallCall, now time.Time) float64 {
	wait := c.registry.waitTime(call.Floor, call.Dir, now)
	return min(float64(wait)/float64(c.tuning.UrgencySaturation), 1)
}

// queuedAnywhere reports whether any car already has floor among its stops.
// Such a call is on its way to being served and must not be assigned twice.
func (c *Controller) queuedAnywhere(floor int) bool {
	for _, car := range c.cars {
		for _, stop := range car.DestinationQueue() {
			if stop == floor {
				return true
			}
		}
	}
	return false
}

// findCar snapshots every car's standing for a call at target heading dir and
// ranks them.
func (c *Controller) findCar(target int, dir types.Direction, urgency float64, now time.Time) (int, bool) {
	cands := make([]candidate, len(c.cars))
	for i, car := range c.cars {
		carFloor := car.CurrentFloor()
		carDir := car.DestinationDirection()
		queueLen := len(car.DestinationQueue())
		cands[i] = candidate{
			index:    i,
			distance: absInt(carFloor - target),
			queueLen: queueLen,
			sameDir:  movingToward(carFloor, target, carDir, dir),
			idle:     queueLen == 0 && carDir == types.None,
			idleTime: c.lifecycles[i].IdleTime(now),
			load:     car.LoadFactor(),
		}
	}
	return chooseCar(cands, urgency, c.tuning)
}

// movingToward reports whether a car traveling carDir will pass target going
// the way the caller wants. A car that already passed the floor would have to
// come back, so it does not count.
func movingToward(carFloor, target int, carDir, want types.Direction) bool {
	if carDir != want {
		return false
	}
	switch want {
	case types.Up:
		return carFloor <= target
	case types.Down:
		return carFloor >= target
	default:
		return false
	}
}

// insert places floor into car id's queue per its travel direction, writes
// the queue back and signals a destination recompute. The car leaves the idle
// pool the moment it holds a stop. Reports whether the queue changed.
func (c *Controller) insert(id, floor int, priority bool) bool {
	car := c.cars[id]
	queue, changed := insertStop(car.DestinationQueue(), floor, car.CurrentFloor(), car.DestinationDirection(), priority)
	if !changed {
		return false
	}
	car.SetDestinationQueue(queue)
	car.RecomputeDestination()
	c.lifecycles[id].MarkAssigned()
	return true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
