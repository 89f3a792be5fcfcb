package dispatcher

import "liftdispatch/src/types"

// insertStop places target into a car's stop queue. Normal inserts keep the
// queue sorted along the car's travel direction so the car serves stops in
// passing order; targets behind the car go to the back. Priority inserts jump
// the queue: front if the car can still reach target without reversing, back
// otherwise. Duplicate targets leave the queue untouched. Reports whether the
// queue changed.
func insertStop(queue []int, target, carFloor int, dir types.Direction, priority bool) ([]int, bool) {
	for _, f := range queue {
		if f == target {
			return queue, false
		}
	}
	if len(queue) == 0 {
		return []int{target}, true
	}
	if priority {
		if ahead(target, carFloor, dir) {
			return append([]int{target}, queue...), true
		}
		return append(queue, target), true
	}
	switch {
	case onWayUp(target, carFloor, dir):
		return insertBefore(queue, target, func(stop int) bool { return stop > target }), true
	case onWayDown(target, carFloor, dir):
		return insertBefore(queue, target, func(stop int) bool { return stop < target }), true
	default:
		return append(queue, target), true
	}
}

// ahead reports whether target lies on or past carFloor in the direction of
// travel. A parked car has no ahead.
func ahead(target, carFloor int, dir types.Direction) bool {
	switch dir {
	case types.Up:
		return target >= carFloor
	case types.Down:
		return target <= carFloor
	default:
		return false
	}
}

func onWayUp(target, carFloor int, dir types.Direction) bool {
	heading := dir == types.Up || (dir == types.None && target > carFloor)
	return heading && target >= carFloor
}

func onWayDown(target, carFloor int, dir types.Direction) bool {
	heading := dir == types.Down || (dir == types.None && target < carFloor)
	return heading && target <= carFloor
}

// insertBefore copies queue with target placed before the first stop that
// satisfies after, or at the end when none does.
func insertBefore(queue []int, target int, after func(int) bool) []int {
	at := len(queue)
	for i, stop := range queue {
		if after(stop) {
			at = i
			break
		}
	}
	out := make([]int, 0, len(queue)+1)
	out = append(out, queue[:at]...)
	out = append(out, target)
	out = append(out, queue[at:]...)
	return out
}
