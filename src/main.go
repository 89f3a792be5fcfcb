package main

import (
	"flag"
	"time"

	"github.com/rs/zerolog"

	"liftdispatch/src/config"
	"liftdispatch/src/logger"
	"liftdispatch/src/sim"
)

func main() {
	floors := flag.Int("floors", config.DefaultFloors, "Number of floors in the building")
	cars := flag.Int("cars", config.DefaultCars, "Number of elevator cars")
	riders := flag.Int("riders", 60, "Number of riders to generate")
	seed := flag.Int64("seed", 1, "Rider schedule seed")
	window := flag.Duration("window", 3*time.Minute, "Arrival window for generated riders")
	budget := flag.Duration("budget", time.Hour, "Simulated time budget for the run")
	cfgPath := flag.String("config", "", "Optional tuning overrides (YAML)")
	verbose := flag.Bool("v", false, "Log every dispatch decision")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.GetLeveled(level)

	tuning := config.Default()
	if *cfgPath != "" {
		var err error
		tuning, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("tuning config rejected")
		}
	}

	start := time.Now()
	schedule := sim.GenerateRiders(*seed, *riders, *floors, *window, start)
	stats := sim.New(*floors, *cars, schedule, tuning, start).Run(*budget)
	if stats.Unserved > 0 {
		log.Error().Int("unserved", stats.Unserved).
			Msg("riders left stranded, raise the budget or the car count")
	}
}
