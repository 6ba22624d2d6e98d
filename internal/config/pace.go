package config

import "fmt"

// Pace is a named timing preset.
type Pace string

const (
	PaceRelaxed Pace = "relaxed"
	PaceNormal  Pace = "normal"
	PaceFast    Pace = "fast"
)

// Paces lists the presets in increasing speed.
var Paces = []Pace{PaceRelaxed, PaceNormal, PaceFast}

// ParsePace parses a preset name. Empty means normal.
func ParsePace(s string) (Pace, error) {
	if s == "" {
		return PaceNormal, nil
	}
	for _, p := range Paces {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown pace %q (want relaxed, normal or fast)", s)
}

// ApplyPace overrides the timing section with a preset. The remake window
// is a third of the step.
func ApplyPace(cfg *CubesConfig, pace Pace) {
	switch pace {
	case PaceRelaxed:
		cfg.Timing.StepFrames = 20
	case PaceFast:
		cfg.Timing.StepFrames = 6
	default:
		cfg.Timing.StepFrames = 12
	}
	cfg.Timing.RemakeFrames = cfg.Timing.StepFrames / 3
}
