package dispatcher

import (
	"sort"
	"time"

	"liftdispatch/src/config"
)

// candidate is one car's standing for a specific hall call, snapshotted at
// selection time.
type candidate struct {
	index    int
	distance int
	queueLen int
	sameDir  bool
	idle     bool
	idleTime time.Duration
	load     float64
}

// Rank buckets for the balanced ordering. Cars already moving toward the
// caller beat idle cars, which beat everyone else.
const (
	rankSameDir = iota
	rankIdle
	rankBusy
)

func (c candidate) rank() int {
	switch {
	case c.sameDir:
		return rankSameDir
	case c.idle:
		return rankIdle
	default:
		return rankBusy
	}
}

// chooseCar picks the best car for a call with the given urgency. Cars over
// the capacity guard never qualify; reports false when that leaves nobody.
// Both orderings are total, ending at the car index, so equal inputs always
// pick the same car.
func chooseCar(cands []candidate, urgency float64, tuning config.Tuning) (int, bool) {
	eligible := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if c.load > tuning.CapacityGuard {
			continue
		}
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		return 0, false
	}

	less := balancedLess
	if urgency > tuning.FastPickupUrgency {
		less = fastPickupLess
	}
	sort.Slice(eligible, func(i, j int) bool { return less(eligible[i], eligible[j]) })
	return eligible[0].index, true
}

// fastPickupLess favors whoever reaches the caller soonest: same-direction
// cars first, then raw distance, with the longer-idle car breaking ties.
func fastPickupLess(a, b candidate) bool {
	if a.sameDir != b.sameDir {
		return a.sameDir
	}
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.idleTime != b.idleTime {
		return a.idleTime > b.idleTime
	}
	return a.index < b.index
}

// balancedLess is the normal ordering: rank buckets first, distance within a
// bucket. Busy cars additionally prefer the shorter queue so backlog spreads
// out instead of piling onto one car.
func balancedLess(a, b candidate) bool {
	if a.rank() != b.rank() {
		return a.rank() < b.rank()
	}
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.rank() == rankBusy && a.queueLen != b.queueLen {
		return a.queueLen < b.queueLen
	}
	if a.idleTime != b.idleTime {
		return a.idleTime > b.idleTime
	}
	return a.index < b.index
}
