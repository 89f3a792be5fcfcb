// Package sim is a discrete-step elevator building that exercises the
// dispatch controller end to end. It owns every physical fact: car position,
// motion, door dwell, rider load. The controller only learns what the step
// loop tells it, one event at a time, the same way the real harness would
// drive it.
package sim

import (
	"time"

	"github.com/rs/zerolog"

	"liftdispatch/src/clock"
	"liftdispatch/src/config"
	"liftdispatch/src/dispatcher"
	"liftdispatch/src/logger"
	"liftdispatch/src/types"
)

type Sim struct {
	tuning   config.Tuning
	ctrl     *dispatcher.Controller
	clk      *clock.Virtual
	cars     []*Car
	building *Building
	floors   int
	log      zerolog.Logger

	sinceSweep time.Duration
	stats      Stats
}

// New builds a building with floors levels, carCount cars parked at the
// ground floor, and a rider schedule to play back.
func New(floors, carCount int, riders []*Rider, tuning config.Tuning, start time.Time) *Sim {
	s := &Sim{
		tuning:   tuning,
		clk:      clock.NewVirtual(start),
		building: newBuilding(riders),
		floors:   floors,
		log:      logger.Get().With().Str("component", "sim").Logger(),
	}
	s.cars = make([]*Car, carCount)
	views := make([]dispatcher.Car, carCount)
	for i := 0; i < carCount; i++ {
		s.cars[i] = newCar(i, 0)
		views[i] = s.cars[i]
	}
	s.ctrl = dispatcher.New(views, tuning, s.clk)
	s.stats.totalRiders = len(riders)
	return s
}

// Run steps the building until every rider is dropped off and every car has
// parked, or until maxSim of simulated time has passed. Reports what
// happened.
func (s *Sim) Run(maxSim time.Duration) Stats {
	start := s.clk.Now()
	deadline := start.Add(maxSim)
	s.log.Info().Int("floors", s.floors).Int("cars", len(s.cars)).
		Int("riders", s.stats.totalRiders).Msg("run started")

	for s.clk.Now().Before(deadline) {
		s.step()
		if s.building.done() && s.allParked() {
			break
		}
	}

	s.stats.SimTime = s.clk.Now().Sub(start)
	s.stats.Unserved = s.stats.totalRiders - s.stats.Served

	snap := s.ctrl.Snapshot()
	done := s.log.Info().
		Int("served", s.stats.Served).
		Int("unserved", s.stats.Unserved).
		Dur("avg_wait", s.stats.AvgWait()).
		Dur("max_wait", s.stats.MaxWait).
		Dur("avg_ride", s.stats.AvgRide()).
		Dur("sim_time", s.stats.SimTime)
	if snap.PendingCalls() > 0 {
		done = done.Int("pending_calls", snap.PendingCalls()).
			Dur("pending_longest_wait", snap.LongestWait())
	}
	done.Msg("run finished")
	return s.stats
}

// step advances one tick: riders arrive, each car moves, and the sweep runs
// on its cadence. Every handler runs to completion before the next event, so
// the controller never sees overlapping invocations.
func (s *Sim) step() {
	s.clk.Advance(config.StepInterval)
	now := s.clk.Now()

	s.building.activate(now, s.ctrl)
	for _, car := range s.cars {
		s.stepCar(car, config.StepInterval)
	}

	s.sinceSweep += config.StepInterval
	if s.sinceSweep >= s.tuning.SweepInterval {
		s.sinceSweep = 0
		s.ctrl.Tick()
	}
}

func (s *Sim) stepCar(car *Car, dt time.Duration) {
	switch car.behaviour {
	case doorOpen:
		car.doorLeft -= dt
		if car.doorLeft <= 0 {
			s.closeDoor(car)
		}
	case moving:
		car.travelLeft -= dt
		if car.travelLeft <= 0 {
			car.floor += int(car.dir)
			s.arrive(car)
		}
	case parked:
		if car.recompute {
			s.launch(car)
		}
	}
}

// arrive handles a moving car reaching the next floor.
//   - At the head stop: stop and open the door.
//   - Otherwise announce the passing floor; the controller may front-insert
//     a pickup here, in which case the car stops after all.
//   - Else start the next leg toward the head.
func (s *Sim) arrive(car *Car) {
	if len(car.queue) > 0 && car.queue[0] == car.floor {
		s.stop(car)
		return
	}
	s.ctrl.PassingFloor(car.id, car.floor, car.dir)
	if len(car.queue) > 0 && car.queue[0] == car.floor {
		s.stop(car)
		return
	}
	if len(car.queue) == 0 {
		s.park(car)
		return
	}
	car.dir = car.onwardDirection()
	car.travelLeft = config.TravelPerFloor
}

// stop serves the head stop at the car's floor: pop it, open the door, drop
// off and board. The onward direction is fixed before boarding so riders
// heading the other way stay in the hall.
func (s *Sim) stop(car *Car) {
	car.popStop()
	car.behaviour = doorOpen
	car.doorLeft = config.DoorDwell
	car.dir = car.onwardDirection()
	s.ctrl.StoppedAtFloor(car.id, car.floor)
	s.unload(car)
	s.building.board(car, s.clk.Now(), s.ctrl)
}

// unload drops off riders destined for the car's floor and records their
// journeys.
func (s *Sim) unload(car *Car) {
	now := s.clk.Now()
	kept := car.riders[:0]
	for _, rider := range car.riders {
		if rider.Dest != car.floor {
			kept = append(kept, rider)
			continue
		}
		rider.servedAt = now
		s.building.inFlight--
		s.stats.record(rider)
	}
	car.riders = kept
}

// closeDoor resumes the queue after the dwell.
//   - Head now at this floor (a fresh car call): reopen and serve in place.
//   - Queue drained: park.
//   - Otherwise pull away toward the head; riders left behind press again,
//     since the stop cleared their hall call.
func (s *Sim) closeDoor(car *Car) {
	car.recompute = false
	if len(car.queue) > 0 && car.queue[0] == car.floor {
		s.stop(car)
		return
	}
	if len(car.queue) == 0 {
		s.park(car)
		return
	}
	car.dir = car.onwardDirection()
	car.behaviour = moving
	car.travelLeft = config.TravelPerFloor
	s.building.repress(car.floor, s.ctrl)
}

// park reports the drained queue; the controller stamps the idle clock.
func (s *Sim) park(car *Car) {
	car.behaviour = parked
	car.dir = types.None
	s.ctrl.CarIdle(car.id)
	car.recompute = false
	s.building.repress(car.floor, s.ctrl)
}

// launch acts on a recompute signal while parked.
//   - Empty queue: stay parked.
//   - Head at this floor: open the door and serve it in place.
//   - Otherwise pull away toward the head.
func (s *Sim) launch(car *Car) {
	car.recompute = false
	if len(car.queue) == 0 {
		return
	}
	if car.queue[0] == car.floor {
		s.stop(car)
		return
	}
	car.dir = car.onwardDirection()
	car.behaviour = moving
	car.travelLeft = config.TravelPerFloor
}

func (s *Sim) allParked() bool {
	for _, car := range s.cars {
		if car.behaviour != parked {
			return false
		}
	}
	return true
}
