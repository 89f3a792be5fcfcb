package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

const (
	// Sim physics. One floor of travel and one door dwell mirror the lab
	// elevator timings; the step interval is the event granularity.
	TravelPerFloor = 2 * time.Second
	DoorDwell      = 3 * time.Second
	StepInterval   = 25 * time.Millisecond

	// CarCapacity is the rider count at load factor 1.0.
	CarCapacity = 8

	DefaultFloors = 8
	DefaultCars   = 3
)

// Tuning holds every dispatch threshold. Zero is never a valid knob, so a
// Tuning must come from Default or Load.
type Tuning struct {
	// CapacityGuard excludes a car from selection when its load factor
	// exceeds it.
	CapacityGuard float64

	// PickupLoadCutoff disables opportunistic pickups at or above this load.
	PickupLoadCutoff float64

	// SpareCapacityCutoff allows a non-urgent pickup detour below this load.
	SpareCapacityCutoff float64

	// UrgentWait is the pending-call age beyond which a passing car stops
	// regardless of spare capacity.
	UrgentWait time.Duration

	// UrgencySaturation is the wait at which urgency reaches 1.0.
	UrgencySaturation time.Duration

	// PrioritySweepUrgency makes the sweep insert at priority above it.
	PrioritySweepUrgency float64

	// FastPickupUrgency switches the selector to pickup-speed ranking above it.
	FastPickupUrgency float64

	// SweepInterval is the cadence of the unassigned-call sweep.
	SweepInterval time.Duration
}

// Default returns the reference thresholds the dispatch heuristic was tuned
// with.
func Default() Tuning {
	return Tuning{
		CapacityGuard:        0.85,
		PickupLoadCutoff:     0.65,
		SpareCapacityCutoff:  0.40,
		UrgentWait:           9 * time.Second,
		UrgencySaturation:    10 * time.Second,
		PrioritySweepUrgency: 0.7,
		FastPickupUrgency:    0.8,
		SweepInterval:        100 * time.Millisecond,
	}
}

// fileTuning is the YAML shape. Pointer fields so an absent key keeps the
// default; durations are plain numbers in natural units.
type fileTuning struct {
	CapacityGuard            *float64 `yaml:"CapacityGuard"`
	PickupLoadCutoff         *float64 `yaml:"PickupLoadCutoff"`
	SpareCapacityCutoff      *float64 `yaml:"SpareCapacityCutoff"`
	UrgentWaitSeconds        *float64 `yaml:"UrgentWaitSeconds"`
	UrgencySaturationSeconds *float64 `yaml:"UrgencySaturationSeconds"`
	PrioritySweepUrgency     *float64 `yaml:"PrioritySweepUrgency"`
	FastPickupUrgency        *float64 `yaml:"FastPickupUrgency"`
	SweepIntervalMillis      *int     `yaml:"SweepIntervalMillis"`
}

// Load overlays the YAML file at path onto the defaults and validates the
// result.
func Load(path string) (Tuning, error) {
	t := Default()

	file, err := os.Open(path)
	if err != nil {
		return t, fmt.Errorf("open tuning config: %w", err)
	}
	defer file.Close()

	var ft fileTuning
	if err := yaml.NewDecoder(file).Decode(&ft); err != nil {
		return t, fmt.Errorf("decode tuning config: %w", err)
	}

	if ft.CapacityGuard != nil {
		t.CapacityGuard = *ft.CapacityGuard
	}
	if ft.PickupLoadCutoff != nil {
		t.PickupLoadCutoff = *ft.PickupLoadCutoff
	}
	if ft.SpareCapacityCutoff != nil {
		t.SpareCapacityCutoff = *ft.SpareCapacityCutoff
	}
	if ft.UrgentWaitSeconds != nil {
		t.UrgentWait = secondsToDuration(*ft.UrgentWaitSeconds)
	}
	if ft.UrgencySaturationSeconds != nil {
		t.UrgencySaturation = secondsToDuration(*ft.UrgencySaturationSeconds)
	}
	if ft.PrioritySweepUrgency != nil {
		t.PrioritySweepUrgency = *ft.PrioritySweepUrgency
	}
	if ft.FastPickupUrgency != nil {
		t.FastPickupUrgency = *ft.FastPickupUrgency
	}
	if ft.SweepIntervalMillis != nil {
		t.SweepInterval = time.Duration(*ft.SweepIntervalMillis) * time.Millisecond
	}

	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning config %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects knob values the dispatch heuristic cannot operate with.
func (t Tuning) Validate() error {
	fractions := map[string]float64{
		"CapacityGuard":        t.CapacityGuard,
		"PickupLoadCutoff":     t.PickupLoadCutoff,
		"SpareCapacityCutoff":  t.SpareCapacityCutoff,
		"PrioritySweepUrgency": t.PrioritySweepUrgency,
		"FastPickupUrgency":    t.FastPickupUrgency,
	}
	for name, v := range fractions {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0, 1], got %v", name, v)
		}
	}
	if t.UrgentWait <= 0 {
		return fmt.Errorf("UrgentWaitSeconds must be positive, got %v", t.UrgentWait)
	}
	if t.UrgencySaturation <= 0 {
		return fmt.Errorf("UrgencySaturationSeconds must be positive, got %v", t.UrgencySaturation)
	}
	if t.SweepInterval <= 0 {
		return fmt.Errorf("SweepIntervalMillis must be positive, got %v", t.SweepInterval)
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
