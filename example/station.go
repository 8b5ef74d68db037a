package main

import (
	"math/rand"
	"sync"
)

// Station is the example's data source: a weather station whose readings
// drift on every report.
type Station struct {
	mu sync.Mutex

	Name               string
	CurrentStatus      string
	CurrentTemperature float64
	Units              string
}

func NewStation() *Station {
	return &Station{
		Name:               "Harbour station",
		CurrentStatus:      "sunny",
		CurrentTemperature: 21.5,
		Units:              "°C",
	}
}

var statuses = []string{"sunny", "raining"}

// Report snapshots the current readings after a random drift.
func (s *Station) Report() Station {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CurrentTemperature += rand.Float64()*2 - 1
	s.CurrentStatus = statuses[rand.Intn(len(statuses))]

	return Station{
		Name:               s.Name,
		CurrentStatus:      s.CurrentStatus,
		CurrentTemperature: s.CurrentTemperature,
		Units:              s.Units,
	}
}
