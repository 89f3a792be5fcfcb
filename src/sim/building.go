package sim

import (
	"time"

	"liftdispatch/src/dispatcher"
	"liftdispatch/src/types"
)

// Rider is one passenger journey: show up at Origin, travel to Dest.
type Rider struct {
	Origin   int
	Dest     int
	ArriveAt time.Time

	boardedAt time.Time
	servedAt  time.Time
}

// dir is the hall direction the rider asks for.
func (r *Rider) dir() types.Direction {
	if r.Dest > r.Origin {
		return types.Up
	}
	return types.Down
}

// Building holds everyone not yet aboard a car: riders still on their way to
// the hall, and riders waiting at a floor. Waiting riders board in arrival
// order.
type Building struct {
	upcoming []*Rider
	waiting  map[int][]*Rider
	inFlight int
}

func newBuilding(riders []*Rider) *Building {
	b := &Building{
		upcoming: riders,
		waiting:  make(map[int][]*Rider),
	}
	return b
}

// activate moves riders whose arrival time has come into the waiting hall
// and presses their call button. upcoming is sorted by arrival time, so the
// scan stops at the first rider still on their way.
func (b *Building) activate(now time.Time, ctrl *dispatcher.Controller) {
	for len(b.upcoming) > 0 && !b.upcoming[0].ArriveAt.After(now) {
		rider := b.upcoming[0]
		b.upcoming = b.upcoming[1:]
		b.waiting[rider.Origin] = append(b.waiting[rider.Origin], rider)
		pressHallButton(ctrl, rider)
	}
}

// board moves waiting riders at the car's floor into the car, oldest first.
// A car with onward stops only takes riders heading its way; a car with a
// drained queue takes anyone. Each boarding rider presses their destination.
func (b *Building) board(car *Car, now time.Time, ctrl *dispatcher.Controller) {
	floor := car.floor
	onward := car.onwardDirection()
	left := b.waiting[floor][:0]
	for _, rider := range b.waiting[floor] {
		if car.full() || (onward != types.None && rider.dir() != onward) {
			left = append(left, rider)
			continue
		}
		rider.boardedAt = now
		car.riders = append(car.riders, rider)
		b.inFlight++
		ctrl.FloorButtonPressed(car.id, rider.Dest)
	}
	b.waiting[floor] = left
}

// repress re-registers calls for riders a departing car left behind. Their
// hall call was cleared when the car stopped, so without a fresh press the
// sweep would never see them again.
func (b *Building) repress(floor int, ctrl *dispatcher.Controller) {
	for _, rider := range b.waiting[floor] {
		pressHallButton(ctrl, rider)
	}
}

// done reports whether every rider has appeared, boarded and been dropped
// off.
func (b *Building) done() bool {
	if len(b.upcoming) > 0 || b.inFlight > 0 {
		return false
	}
	for _, riders := range b.waiting {
		if len(riders) > 0 {
			return false
		}
	}
	return true
}

func pressHallButton(ctrl *dispatcher.Controller, rider *Rider) {
	if rider.dir() == types.Up {
		ctrl.UpButtonPressed(rider.Origin)
	} else {
		ctrl.DownButtonPressed(rider.Origin)
	}
}
