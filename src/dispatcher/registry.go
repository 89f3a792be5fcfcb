package dispatcher

import (
	"sort"
	"time"

	"liftdispatch/src/types"
)

// callRegistry tracks unserved hall calls and when each was first requested.
// One map carries both roles the heuristic needs: the key set is the pending
// set, the value is the wait-clock origin.
type callRegistry struct {
	calls map[types.HallCall]time.Time
}

func newCallRegistry() *callRegistry {
	return &callRegistry{calls: make(map[types.HallCall]time.Time)}
}

// register records a call at now unless the same (floor, direction) pair is
// already pending. Reports whether the call is new.
func (r *callRegistry) register(floor int, dir types.Direction, now time.Time) bool {
	call := types.HallCall{Floor: floor, Dir: dir}
	if _, pending := r.calls[call]; pending {
		return false
	}
	r.calls[call] = now
	return true
}

// clear drops pending calls in both directions at floor. No-op when nothing
// waits there.
func (r *callRegistry) clear(floor int) {
	delete(r.calls, types.HallCall{Floor: floor, Dir: types.Up})
	delete(r.calls, types.HallCall{Floor: floor, Dir: types.Down})
}

// pendingAt reports whether a call toward dir is waiting at floor.
func (r *callRegistry) pendingAt(floor int, dir types.Direction) bool {
	_, ok := r.calls[types.HallCall{Floor: floor, Dir: dir}]
	return ok
}

// waitTime reports how long the (floor, dir) call has been pending, zero when
// no such call exists.
func (r *callRegistry) waitTime(floor int, dir types.Direction, now time.Time) time.Duration {
	requestedAt, ok := r.calls[types.HallCall{Floor: floor, Dir: dir}]
	if !ok {
		return 0
	}
	if d := now.Sub(requestedAt); d > 0 {
		return d
	}
	return 0
}

// pending lists every unserved call, longest-waiting first. Map iteration is
// not deterministic, so ties fall back to lower floor, then up before down.
func (r *callRegistry) pending(now time.Time) []types.PendingCall {
	out := make([]types.PendingCall, 0, len(r.calls))
	for call, requestedAt := range r.calls {
		out = append(out, types.PendingCall{HallCall: call, RequestedAt: requestedAt})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.RequestedAt.Equal(b.RequestedAt) {
			return a.RequestedAt.Before(b.RequestedAt)
		}
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		return a.Dir > b.Dir
	})
	return out
}
