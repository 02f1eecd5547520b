package glide

import (
	"fmt"
	"strconv"

	"burgers/internal/core"
)

// Parameters describes the configuration for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				intParam("size", "Size", w.cfg.Size),
				floatParam("start_x", "Start x", w.cfg.Start[0]),
				floatParam("start_y", "Start y", w.cfg.Start[1]),
				floatParam("start_z", "Start z", w.cfg.Start[2]),
			},
			Summary: fmt.Sprintf("%d atoms, glide plane y=%g", len(w.lat.Atoms), w.lat.GlidePlane()),
		},
		{
			Name: "Glide",
			Params: []core.Parameter{
				floatParam("start_delay", "Start delay", params.StartDelay),
				floatParam("speed", "Speed", params.Speed),
				intParam("move_dist", "Move distance", params.MoveDist),
				{
					Key:   "pauses",
					Label: "Pauses",
					Type:  core.ParamTypeString,
					Value: FormatPauses(params.Pauses),
				},
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// Status reports the live clock and scheduler state.
func (w *World) Status() []string {
	lines := []string{
		fmt.Sprintf("t=%.2fs  %s", w.clock.Time(), w.sched.State()),
		fmt.Sprintf("phase %d/%d", max(w.sched.Phase(), 0), w.sched.LastPhase()),
		fmt.Sprintf("bonds %d  moved %d", w.lat.Bonds.Len(), w.lastMoves),
	}
	if w.clock.Paused() {
		lines = append(lines, fmt.Sprintf("paused until wall %.2fs", w.clock.ResumeAt()))
	}
	return lines
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
