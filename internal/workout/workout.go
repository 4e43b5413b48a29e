// Package workout computes distance, speed and calorie figures for the
// supported training types.
package workout

import "ftracker/internal/report"

const (
	MInKm  = 1000 // meters in a kilometer
	MinInH = 60   // minutes in an hour

	// LenStep is the distance covered by one step, in meters.
	LenStep = 0.65
	// SwimLenStep is the distance covered by one stroke, in meters.
	SwimLenStep = 1.38
)

// Training is a single workout whose figures are derived from raw sensor readings.
// Implementations hold no state beyond the reading, so every method is a pure function.
type Training interface {
	Name() string
	Distance() float64
	MeanSpeed() float64
	SpentCalories() float64
	ShowTrainingInfo() report.InfoMessage
}

// Metrics holds the derived values of one training.
type Metrics struct {
	Distance float64
	Speed    float64
	Calories float64
}

// Compute evaluates all formulas of t. Nothing is cached.
func Compute(t Training) Metrics {
	return Metrics{
		Distance: t.Distance(),
		Speed:    t.MeanSpeed(),
		Calories: t.SpentCalories(),
	}
}

func distance(action int, lenStep float64) float64 {
	return float64(action) * lenStep / MInKm
}

func meanSpeed(distance, duration float64) float64 {
	return distance / duration
}

func info(t Training, duration float64) report.InfoMessage {
	m := Compute(t)
	return report.InfoMessage{
		TrainingType: t.Name(),
		Duration:     duration,
		Distance:     m.Distance,
		Speed:        m.Speed,
		Calories:     m.Calories,
	}
}
