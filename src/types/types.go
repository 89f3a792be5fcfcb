package types

import "time"

// Direction is the vertical travel direction of a car, or the direction a
// waiting passenger asked for. None doubles as "stopped" for cars.
type Direction int

const (
	Down Direction = iota - 1
	None
	Up
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case None:
		return "none"
	default:
		return "undefined"
	}
}

// HallCall identifies a floor button press: pickup at Floor, traveling Dir.
type HallCall struct {
	Floor int
	Dir   Direction
}

// PendingCall is an unserved hall call and the time it was first registered.
// Pressing the same button again while the call is pending changes nothing.
type PendingCall struct {
	HallCall
	RequestedAt time.Time
}
