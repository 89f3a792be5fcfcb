package sim

import (
	"math/rand"
	"sort"
	"time"
)

// GenerateRiders builds a reproducible rider schedule: count riders arriving
// uniformly over window, each with distinct origin and destination floors.
// The same seed always yields the same schedule.
func GenerateRiders(seed int64, count, floors int, window time.Duration, start time.Time) []*Rider {
	rng := rand.New(rand.NewSource(seed))
	riders := make([]*Rider, 0, count)
	for i := 0; i < count; i++ {
		origin := rng.Intn(floors)
		dest := rng.Intn(floors - 1)
		if dest >= origin {
			dest++
		}
		riders = append(riders, &Rider{
			Origin:   origin,
			Dest:     dest,
			ArriveAt: start.Add(time.Duration(rng.Int63n(int64(window)))),
		})
	}
	sort.Slice(riders, func(i, j int) bool {
		return riders[i].ArriveAt.Before(riders[j].ArriveAt)
	})
	return riders
}
