package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Format selects how reports are written.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Text, JSON:
		return Format(s), nil
	case "":
		return Text, nil
	}
	return "", fmt.Errorf("output must be 'text' or 'json', got %q", s)
}

// Write renders msgs in format f.
func Write(w io.Writer, f Format, msgs []InfoMessage) error {
	if f == JSON {
		return FormatJSON(w, msgs)
	}
	return FormatText(w, msgs)
}

// FormatText writes one summary line per message.
func FormatText(w io.Writer, msgs []InfoMessage) error {
	for _, m := range msgs {
		if _, err := fmt.Fprintln(w, m.Message()); err != nil {
			return err
		}
	}
	return nil
}

// JSONReport is the machine-readable form of an InfoMessage.
// Numeric fields carry the same three-decimal rounding as the text line.
type JSONReport struct {
	TrainingType string  `json:"trainingType"`
	Duration     float64 `json:"duration"`
	Distance     float64 `json:"distance"`
	Speed        float64 `json:"speed"`
	Calories     float64 `json:"calories"`
	Message      string  `json:"message"`
}

// ToJSON converts m to its JSON form.
func ToJSON(m InfoMessage) JSONReport {
	return JSONReport{
		TrainingType: m.TrainingType,
		Duration:     round3(m.Duration),
		Distance:     round3(m.Distance),
		Speed:        round3(m.Speed),
		Calories:     round3(m.Calories),
		Message:      m.Message(),
	}
}

// FormatJSON writes msgs as an indented JSON array.
func FormatJSON(w io.Writer, msgs []InfoMessage) error {
	out := make([]JSONReport, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ToJSON(m))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// round3 keeps JSON values finite; encoding/json rejects Inf and NaN.
func round3(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return math.Round(v*1000) / 1000
}
