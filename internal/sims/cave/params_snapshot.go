package cave

import (
	"strconv"

	"cave-ca/internal/core"
)

// Parameters reports the session configuration and step counters grouped
// for display.
func (s *Session) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				stringParam("id", "Session", s.id.String()),
				intParam("w", "Width", s.cfg.Width),
				intParam("h", "Height", s.cfg.Height),
				int64Param("seed", "Seed", s.seed),
			},
		},
		{
			Name: "Cave",
			Params: []core.Parameter{
				intParam("step_thresh", "Rock threshold", s.cfg.StepThresh),
				intParam("cave_steps", "Cave steps", s.caveSteps),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				intParam("growth_steps", "Growth steps", s.growthSteps),
			},
		},
		{
			Name: "Driver",
			Params: []core.Parameter{
				intParam("max_steps", "Step budget", s.cfg.MaxSteps),
			},
			Summary: "0 means unbounded",
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
