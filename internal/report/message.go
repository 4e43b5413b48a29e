// Package report renders computed training figures for people and machines.
package report

import "fmt"

// InfoMessage is the summary of one completed training.
type InfoMessage struct {
	TrainingType string
	Duration     float64 // hours
	Distance     float64 // km
	Speed        float64 // km/h
	Calories     float64 // kcal
}

// Message returns the single-line summary shown to the user.
func (m InfoMessage) Message() string {
	return fmt.Sprintf("Тип тренировки: %s; "+
		"Длительность: %.3f ч.; "+
		"Дистанция: %.3f км; "+
		"Ср. скорость: %.3f км/ч; "+
		"Потрачено ккал: %.3f.",
		m.TrainingType, m.Duration, m.Distance, m.Speed, m.Calories)
}

func (m InfoMessage) String() string {
	return m.Message()
}
