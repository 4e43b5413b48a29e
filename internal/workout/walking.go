package workout

import (
	"math"

	"ftracker/internal/report"
)

const (
	walkCaloriesWeightMultiplier = 0.035
	walkSpeedExponent            = 2
	walkSpeedHeightMultiplier    = 0.029
)

// SportsWalking is a walk measured in steps. Height is in centimeters.
type SportsWalking struct {
	Action   int
	Duration float64
	Weight   float64
	Height   int
}

func (w SportsWalking) Name() string { return "SportsWalking" }

func (w SportsWalking) Distance() float64 { return distance(w.Action, LenStep) }

func (w SportsWalking) MeanSpeed() float64 { return meanSpeed(w.Distance(), w.Duration) }

// SpentCalories floors speed² / height before scaling it. Speeds below
// sqrt(height) therefore contribute nothing to the height term.
func (w SportsWalking) SpentCalories() float64 {
	speedTerm := math.Floor(math.Pow(w.MeanSpeed(), walkSpeedExponent) / float64(w.Height))
	cal := walkCaloriesWeightMultiplier*w.Weight + speedTerm*walkSpeedHeightMultiplier*w.Weight
	return cal * (w.Duration * MinInH)
}

func (w SportsWalking) ShowTrainingInfo() report.InfoMessage { return info(w, w.Duration) }
