package workout

import "ftracker/internal/report"

const (
	swimCaloriesSpeedShift       = 1.1
	swimCaloriesWeightMultiplier = 2
)

// Swimming is a pool session measured in strokes and laps.
type Swimming struct {
	Action     int
	Duration   float64
	Weight     float64
	LengthPool int // meters
	CountPool  int
}

func (s Swimming) Name() string { return "Swimming" }

// Distance is stroke based and does not feed the speed or calorie figures.
func (s Swimming) Distance() float64 { return distance(s.Action, SwimLenStep) }

// MeanSpeed is derived from the pool laps rather than from strokes.
func (s Swimming) MeanSpeed() float64 {
	return float64(s.LengthPool) * float64(s.CountPool) / MInKm / s.Duration
}

func (s Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimCaloriesSpeedShift) * swimCaloriesWeightMultiplier * s.Weight
}

func (s Swimming) ShowTrainingInfo() report.InfoMessage { return info(s, s.Duration) }
