package utils

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Population           int
	PeakPopulation       int
	Births               int
	Deaths               int
	StartTime            time.Time

	printer *message.Printer
}

func NewStats() *Stats {
	return &Stats{
		StartTime: time.Now(),
		printer:   message.NewPrinter(language.English),
	}
}

// Update records one round. duration is the wall time the round took.
func (s *Stats) Update(generation, population, born, died int, duration time.Duration) {
	s.TotalGenerations = generation
	s.Population = population
	s.Births += born
	s.Deaths += died
	if population > s.PeakPopulation {
		s.PeakPopulation = population
	}
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Status is the one-line per-round summary
func (s *Stats) Status(status string) string {
	return s.printer.Sprintf("Gen: %d | Living: %d | Born: %d | Died: %d | Status: %s",
		s.TotalGenerations, s.Population, s.Births, s.Deaths, status)
}

// Performance summarises throughput since StartTime
func (s *Stats) Performance() string {
	return s.printer.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Peak: %d | Runtime: %.1fs",
		s.GenerationsPerSecond, s.AveragePopulation, s.PeakPopulation, time.Since(s.StartTime).Seconds())
}
