package clock

import "time"

// Virtual is a manually advanced clock. The sim moves it forward in fixed
// steps so every run with the same scenario replays identically. Not safe for
// concurrent use; the whole control loop shares one goroutine.
type Virtual struct {
	now time.Time
}

func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

func (v *Virtual) Now() time.Time {
	return v.now
}

func (v *Virtual) Advance(d time.Duration) {
	v.now = v.now.Add(d)
}
