// Package elev tracks the controller-side lifecycle of each car: parked idle
// or committed to stops, and for how long it has been parked.
package elev

import (
	"context"
	"time"

	"github.com/looplab/fsm"
)

// Lifecycle states.
const (
	StateIdle       = "idle"
	StateDispatched = "dispatched"
)

const (
	eventAssign = "assign"
	eventPark   = "park"
)

// Lifecycle follows one car through idle and dispatched phases. The idle
// stamp is set the moment the car parks and cleared by the first insertion,
// so IdleTime reads zero for any car with committed stops.
type Lifecycle struct {
	machine   *fsm.FSM
	idleSince time.Time
}

// NewLifecycle starts in the idle state: cars begin parked with an empty
// queue, idling since now.
func NewLifecycle(now time.Time) *Lifecycle {
	l := &Lifecycle{idleSince: now}
	l.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventAssign, Src: []string{StateIdle}, Dst: StateDispatched},
			{Name: eventPark, Src: []string{StateDispatched}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_" + StateDispatched: func(_ context.Context, e *fsm.Event) {
				l.idleSince = time.Time{}
			},
			"enter_" + StateIdle: func(_ context.Context, e *fsm.Event) {
				l.idleSince = e.Args[0].(time.Time)
			},
		},
	)
	return l
}

// MarkAssigned records a successful queue insertion. A parked car moves to
// dispatched and loses its idle stamp; a car already dispatched is unchanged.
func (l *Lifecycle) MarkAssigned() {
	if l.machine.Is(StateDispatched) {
		return
	}
	_ = l.machine.Event(context.Background(), eventAssign)
}

// MarkParked records the car's queue draining at now. Repeated idle events
// keep the original stamp, so a long-parked car stays ahead on idle time.
func (l *Lifecycle) MarkParked(now time.Time) {
	if l.machine.Is(StateIdle) {
		return
	}
	_ = l.machine.Event(context.Background(), eventPark, now)
}

func (l *Lifecycle) IsIdle() bool {
	return l.machine.Is(StateIdle)
}

func (l *Lifecycle) State() string {
	return l.machine.Current()
}

// IdleTime reports how long the car has been parked. Zero while dispatched.
func (l *Lifecycle) IdleTime(now time.Time) time.Duration {
	if l.idleSince.IsZero() {
		return 0
	}
	if d := now.Sub(l.idleSince); d > 0 {
		return d
	}
	return 0
}
