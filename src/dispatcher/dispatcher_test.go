package dispatcher

import (
	"slices"
	"testing"
	"time"

	"liftdispatch/src/clock"
	"liftdispatch/src/config"
	"liftdispatch/src/types"
)

type fakeCar struct {
	floor      int
	dir        types.Direction
	load       float64
	queue      []int
	recomputes int
}

func (f *fakeCar) CurrentFloor() int { return f.floor }

func (f *fakeCar) DestinationDirection() types.Direction { return f.dir }

func (f *fakeCar) LoadFactor() float64 { return f.load }

func (f *fakeCar) DestinationQueue() []int { return slices.Clone(f.queue) }

func (f *fakeCar) SetDestinationQueue(q []int) { f.queue = q }

func (f *fakeCar) RecomputeDestination() { f.recomputes++ }

func newTestController(t *testing.T, cars ...*fakeCar) (*Controller, *clock.Virtual) {
	t.Helper()
	clk := clock.NewVirtual(epoch)
	views := make([]Car, len(cars))
	for i, car := range cars {
		views[i] = car
	}
	return New(views, config.Default(), clk), clk
}

func TestUrgencySaturates(t *testing.T) {
	c, clk := newTestController(t, &fakeCar{})
	c.UpButtonPressed(2)

	call := types.HallCall{Floor: 2, Dir: types.Up}
	if got := c.urgency(call, clk.Now()); got != 0 {
		t.Errorf("urgency at 0s wait = %v, want 0", got)
	}
	clk.Advance(5 * time.Second)
	if got := c.urgency(call, clk.Now()); got != 0.5 {
		t.Errorf("urgency at 5s wait = %v, want 0.5", got)
	}
	clk.Advance(20 * time.Second)
	if got := c.urgency(call, clk.Now()); got != 1 {
		t.Errorf("urgency at 25s wait = %v, want saturation at 1", got)
	}
}

func TestSweepAssignsPendingCall(t *testing.T) {
	near := &fakeCar{floor: 3}
	far := &fakeCar{floor: 7}
	c, _ := newTestController(t, near, far)

	c.UpButtonPressed(4)
	c.Tick()

	if !slices.Equal(near.queue, []int{4}) {
		t.Errorf("near car queue = %v, want [4]", near.queue)
	}
	if len(far.queue) != 0 {
		t.Errorf("far car queue = %v, want empty", far.queue)
	}
	if near.recomputes == 0 {
		t.Error("assignment did not signal a destination recompute")
	}
	if c.lifecycles[0].IsIdle() {
		t.Error("assigned car still counts as idle")
	}
}

func TestSweepSkipsFloorsAlreadyQueued(t *testing.T) {
	busy := &fakeCar{floor: 1, dir: types.Up, queue: []int{4}}
	idle := &fakeCar{floor: 4}
	c, _ := newTestController(t, busy, idle)

	c.UpButtonPressed(4)
	c.Tick()
	c.Tick()

	if len(idle.queue) != 0 {
		t.Errorf("idle car was dispatched to an already-handled floor, queue = %v", idle.queue)
	}
	if !slices.Equal(busy.queue, []int{4}) {
		t.Errorf("busy car queue = %v, want [4] untouched", busy.queue)
	}
}

func TestSweepRetriesWhenAllCarsFull(t *testing.T) {
	car := &fakeCar{floor: 2, load: 0.95}
	c, clk := newTestController(t, car)

	c.DownButtonPressed(6)
	c.Tick()
	if len(car.queue) != 0 {
		t.Fatalf("overloaded car was dispatched, queue = %v", car.queue)
	}
	if c.Snapshot().PendingCalls() != 1 {
		t.Fatal("unassignable call was dropped instead of staying pending")
	}

	// Riders leave, next sweep picks the call up.
	car.load = 0.5
	clk.Advance(100 * time.Millisecond)
	c.Tick()
	if !slices.Equal(car.queue, []int{6}) {
		t.Errorf("queue after load dropped = %v, want [6]", car.queue)
	}
}

func TestSweepAgedCallJumpsTheQueue(t *testing.T) {
	car := &fakeCar{floor: 5, dir: types.Up, queue: []int{7, 9}, load: 0.2}
	c, clk := newTestController(t, car)

	c.UpButtonPressed(6)
	clk.Advance(8 * time.Second)
	c.Tick()

	if !slices.Equal(car.queue, []int{6, 7, 9}) {
		t.Errorf("queue = %v, want the aged call front-inserted as [6 7 9]", car.queue)
	}
}

func TestPickupEvaluator(t *testing.T) {
	cases := []struct {
		name      string
		load      float64
		wait      time.Duration
		wantQueue []int
	}{
		{
			name: "mid load and young call passes by",
			load: 0.5, wait: 3 * time.Second,
			wantQueue: []int{9},
		},
		{
			name: "spare capacity detours for a young call",
			load: 0.3, wait: 3 * time.Second,
			wantQueue: []int{7, 9},
		},
		{
			name: "urgent call stops the car regardless of mid load",
			load: 0.5, wait: 11 * time.Second,
			wantQueue: []int{7, 9},
		},
		{
			name: "full car never detours",
			load: 0.65, wait: 11 * time.Second,
			wantQueue: []int{9},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			car := &fakeCar{floor: 6, dir: types.Up, queue: []int{9}, load: tc.load}
			c, clk := newTestController(t, car)
			c.UpButtonPressed(7)
			clk.Advance(tc.wait)

			c.PassingFloor(0, 7, types.Up)

			if !slices.Equal(car.queue, tc.wantQueue) {
				t.Errorf("queue = %v, want %v", car.queue, tc.wantQueue)
			}
		})
	}
}

func TestPickupIgnoresOppositeDirectionCall(t *testing.T) {
	car := &fakeCar{floor: 2, dir: types.Up, queue: []int{8}, load: 0.1}
	c, _ := newTestController(t, car)
	c.DownButtonPressed(5)

	c.PassingFloor(0, 5, types.Up)

	if !slices.Equal(car.queue, []int{8}) {
		t.Errorf("queue = %v, car stopped for a call heading the other way", car.queue)
	}
}

func TestUrgentPickupInsertsAtFront(t *testing.T) {
	car := &fakeCar{floor: 3, dir: types.Up, queue: []int{5, 8}, load: 0.6}
	c, clk := newTestController(t, car)
	c.UpButtonPressed(4)
	clk.Advance(10 * time.Second)

	c.PassingFloor(0, 4, types.Up)

	if !slices.Equal(car.queue, []int{4, 5, 8}) {
		t.Errorf("queue = %v, want urgent stop at the front as [4 5 8]", car.queue)
	}
}

func TestStoppedAtFloorClearsBothDirections(t *testing.T) {
	car := &fakeCar{floor: 5}
	c, _ := newTestController(t, car)
	c.UpButtonPressed(5)
	c.DownButtonPressed(5)

	c.StoppedAtFloor(0, 5)

	if n := c.Snapshot().PendingCalls(); n != 0 {
		t.Errorf("%d calls still pending after the car stopped at their floor", n)
	}
}

func TestCarIdleDropsStaleQueueAndStartsIdleClock(t *testing.T) {
	car := &fakeCar{floor: 4}
	c, clk := newTestController(t, car)

	c.UpButtonPressed(6)
	c.Tick()
	if !slices.Equal(car.queue, []int{6}) {
		t.Fatalf("queue after sweep = %v, want [6]", car.queue)
	}

	// The car reaches the floor and reports idle with the stale stop still
	// queued; the reset must drop it and start the idle clock.
	clk.Advance(4 * time.Second)
	car.floor = 6
	c.CarIdle(0)
	if len(car.queue) != 0 {
		t.Errorf("stale queue survived idle reset: %v", car.queue)
	}

	clk.Advance(30 * time.Second)
	if got := c.lifecycles[0].IdleTime(clk.Now()); got != 30*time.Second {
		t.Errorf("idle time = %v, want 30s", got)
	}

	// A repeated idle report must not restart the clock.
	c.CarIdle(0)
	if got := c.lifecycles[0].IdleTime(clk.Now()); got != 30*time.Second {
		t.Errorf("idle time after repeated idle report = %v, want 30s", got)
	}
}

func TestFloorButtonQueuesCarCall(t *testing.T) {
	car := &fakeCar{floor: 2, dir: types.Up, queue: []int{6}}
	c, _ := newTestController(t, car)

	c.FloorButtonPressed(0, 4)
	c.FloorButtonPressed(0, 4)

	if !slices.Equal(car.queue, []int{4, 6}) {
		t.Errorf("queue = %v, want [4 6]", car.queue)
	}
}

func TestSnapshotSharesNoMemory(t *testing.T) {
	car := &fakeCar{floor: 1, dir: types.Up, queue: []int{3, 5}}
	c, _ := newTestController(t, car)
	c.UpButtonPressed(2)

	snap := c.Snapshot()
	snap.Queues[0][0] = 99
	for call := range snap.Waits {
		delete(snap.Waits, call)
	}

	if !slices.Equal(car.queue, []int{3, 5}) {
		t.Errorf("mutating the snapshot changed the live queue: %v", car.queue)
	}
	if c.Snapshot().PendingCalls() != 1 {
		t.Error("mutating the snapshot changed the live registry")
	}
}

// One rider's full journey: call, sweep dispatch, pickup stop, drop-off.
func TestCallLifecycle(t *testing.T) {
	car := &fakeCar{floor: 1}
	c, clk := newTestController(t, car)

	c.UpButtonPressed(3)
	c.Tick()
	if !slices.Equal(car.queue, []int{3}) {
		t.Fatalf("queue after sweep = %v, want [3]", car.queue)
	}

	// Car drives to 3 and stops; rider boards and presses 6.
	clk.Advance(4 * time.Second)
	car.floor = 3
	car.queue = nil
	c.StoppedAtFloor(0, 3)
	if c.Snapshot().PendingCalls() != 0 {
		t.Fatal("served call still pending")
	}
	c.FloorButtonPressed(0, 6)
	if !slices.Equal(car.queue, []int{6}) {
		t.Fatalf("queue after car call = %v, want [6]", car.queue)
	}

	// Drop-off drains the queue; the car parks.
	clk.Advance(6 * time.Second)
	car.floor = 6
	car.dir = types.None
	car.queue = nil
	c.StoppedAtFloor(0, 6)
	c.CarIdle(0)
	if !c.lifecycles[0].IsIdle() {
		t.Error("car not idle after its queue drained")
	}
}
