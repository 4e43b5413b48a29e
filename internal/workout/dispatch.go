package workout

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownWorkoutType indicates a type code outside the supported set.
	ErrUnknownWorkoutType = errors.New("unknown workout type")
	// ErrArgumentMismatch indicates the wrong number or kind of readings for a type.
	ErrArgumentMismatch = errors.New("argument mismatch")
)

// Code is the short workout type code sent by a tracker.
type Code string

const (
	CodeRunning  Code = "RUN"
	CodeWalking  Code = "WLK"
	CodeSwimming Code = "SWM"
)

// Package is one raw sensor package: a type code and its positional readings.
type Package struct {
	Type Code      `yaml:"type" json:"type"`
	Args []float64 `yaml:"args" json:"args"`
}

// Kind describes a supported workout type.
type Kind struct {
	Code   Code     `json:"code"`
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

type constructor func(args []float64) (Training, error)

type entry struct {
	kind  Kind
	build constructor
}

var registry = []entry{
	{
		kind: Kind{Code: CodeRunning, Name: "Running", Fields: []string{"action", "duration", "weight"}},
		build: func(a []float64) (Training, error) {
			action, err := integer("action", a[0])
			if err != nil {
				return nil, err
			}
			return Running{Action: action, Duration: a[1], Weight: a[2]}, nil
		},
	},
	{
		kind: Kind{Code: CodeWalking, Name: "SportsWalking", Fields: []string{"action", "duration", "weight", "height"}},
		build: func(a []float64) (Training, error) {
			action, err := integer("action", a[0])
			if err != nil {
				return nil, err
			}
			height, err := integer("height", a[3])
			if err != nil {
				return nil, err
			}
			return SportsWalking{Action: action, Duration: a[1], Weight: a[2], Height: height}, nil
		},
	},
	{
		kind: Kind{Code: CodeSwimming, Name: "Swimming", Fields: []string{"action", "duration", "weight", "length_pool", "count_pool"}},
		build: func(a []float64) (Training, error) {
			action, err := integer("action", a[0])
			if err != nil {
				return nil, err
			}
			length, err := integer("length_pool", a[3])
			if err != nil {
				return nil, err
			}
			count, err := integer("count_pool", a[4])
			if err != nil {
				return nil, err
			}
			return Swimming{Action: action, Duration: a[1], Weight: a[2], LengthPool: length, CountPool: count}, nil
		},
	},
}

// Kinds returns the supported workout types in a fixed order.
func Kinds() []Kind {
	kinds := make([]Kind, len(registry))
	for i, e := range registry {
		kinds[i] = e.kind
	}
	return kinds
}

func lookup(code Code) (entry, bool) {
	for _, e := range registry {
		if e.kind.Code == code {
			return e, true
		}
	}
	return entry{}, false
}

// ReadPackage builds the training for code from its positional readings.
func ReadPackage(code Code, args []float64) (Training, error) {
	e, ok := lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkoutType, string(code))
	}
	if len(args) != len(e.kind.Fields) {
		return nil, fmt.Errorf("%w: %s expects %d args (%v), got %d",
			ErrArgumentMismatch, code, len(e.kind.Fields), e.kind.Fields, len(args))
	}
	t, err := e.build(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", code, err)
	}
	return t, nil
}

// Read is ReadPackage for a Package value.
func (p Package) Read() (Training, error) {
	return ReadPackage(p.Type, p.Args)
}

func integer(field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %v", ErrArgumentMismatch, field, v)
	}
	// On 64-bit platforms float64(math.MaxInt) rounds up to 2^63, one past the largest int.
	if v >= float64(math.MaxInt) || v < float64(math.MinInt) {
		return 0, fmt.Errorf("%w: %s out of range, got %v", ErrArgumentMismatch, field, v)
	}
	return int(v), nil
}
