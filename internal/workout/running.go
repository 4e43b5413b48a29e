package workout

import "ftracker/internal/report"

const (
	runCaloriesSpeedMultiplier = 18
	runCaloriesSpeedShift      = 20
)

// Running is a run measured in steps.
type Running struct {
	Action   int
	Duration float64 // hours
	Weight   float64 // kg
}

func (r Running) Name() string { return "Running" }

func (r Running) Distance() float64 { return distance(r.Action, LenStep) }

func (r Running) MeanSpeed() float64 { return meanSpeed(r.Distance(), r.Duration) }

func (r Running) SpentCalories() float64 {
	cal := runCaloriesSpeedMultiplier*r.MeanSpeed() - runCaloriesSpeedShift
	return cal * r.Weight / MInKm * (r.Duration * MinInH)
}

func (r Running) ShowTrainingInfo() report.InfoMessage { return info(r, r.Duration) }
