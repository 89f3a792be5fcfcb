package sim

import "time"

// Stats aggregates what one run did. Waits are hall time (arrival to
// boarding), rides are car time (boarding to drop-off).
type Stats struct {
	Served   int
	Unserved int
	SimTime  time.Duration
	MaxWait  time.Duration
	MaxRide  time.Duration

	totalWait   time.Duration
	totalRide   time.Duration
	totalRiders int
}

func (st *Stats) record(r *Rider) {
	wait := r.boardedAt.Sub(r.ArriveAt)
	ride := r.servedAt.Sub(r.boardedAt)
	st.Served++
	st.totalWait += wait
	st.totalRide += ride
	if wait > st.MaxWait {
		st.MaxWait = wait
	}
	if ride > st.MaxRide {
		st.MaxRide = ride
	}
}

// AvgWait is the mean hall wait across served riders.
func (st Stats) AvgWait() time.Duration {
	if st.Served == 0 {
		return 0
	}
	return st.totalWait / time.Duration(st.Served)
}

// AvgRide is the mean in-car time across served riders.
func (st Stats) AvgRide() time.Duration {
	if st.Served == 0 {
		return 0
	}
	return st.totalRide / time.Duration(st.Served)
}
