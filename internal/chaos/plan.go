package chaos

import (
	"fmt"
	"strings"
)

// Intensity selects how aggressively the data passes fire. The empty
// intensity keeps the fair coin of an unplanned run.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

func AvailableIntensities() []string {
	return []string{string(IntensityLow), string(IntensityMedium), string(IntensityHigh)}
}

// ParseIntensity accepts the names above, case-insensitively. An empty
// string is valid and means no plan.
func ParseIntensity(s string) (Intensity, error) {
	switch in := Intensity(strings.ToLower(strings.TrimSpace(s))); in {
	case "", IntensityLow, IntensityMedium, IntensityHigh:
		return in, nil
	default:
		return "", fmt.Errorf("unknown chaos intensity %q (available: %s)", s, strings.Join(AvailableIntensities(), ", "))
	}
}

func (i Intensity) multiplier() float64 {
	switch i {
	case IntensityHigh:
		return 1.0
	case IntensityMedium:
		return 0.7
	default:
		return 0.3
	}
}

// Theme weights the data passes. Only number encoding reads its weight.
type Theme struct {
	Key            string
	Name           string
	EncodingWeight float64
}

var themes = []Theme{
	{Key: "arithmetic", Name: "Arithmetic Overload", EncodingWeight: 0.8},
	{Key: "control_flow", Name: "Control Flow Maze", EncodingWeight: 0.2},
	{Key: "balanced", Name: "Balanced Chaos", EncodingWeight: 0.5},
	{Key: "data_obfuscation", Name: "Data Obfuscation", EncodingWeight: 0.95},
}

func Themes() []Theme {
	return append([]Theme(nil), themes...)
}

func themeByKey(key string) Theme {
	for _, th := range themes {
		if th.Key == key {
			return th
		}
	}
	return themes[2]
}

// Plan is the outcome of intensity-driven planning for one Apply call.
type Plan struct {
	Theme     Theme
	Intensity Intensity
}

// EncodingProbability is the chance that one numeric MOVE gets encoded.
func (p *Plan) EncodingProbability() float64 {
	return p.Theme.EncodingWeight * p.Intensity.multiplier()
}

// selectPlan draws the theme from the transformer's stream: high picks any
// theme, medium picks balanced or arithmetic, low always picks balanced.
func (t *Transformer) selectPlan() *Plan {
	var theme Theme
	switch t.intensity {
	case IntensityHigh:
		theme = themes[t.rand.Intn(len(themes))]
	case IntensityMedium:
		if t.rand.Float64() > 0.5 {
			theme = themeByKey("balanced")
		} else {
			theme = themeByKey("arithmetic")
		}
	default:
		theme = themeByKey("balanced")
	}
	return &Plan{Theme: theme, Intensity: t.intensity}
}
