package dla

import (
	"strconv"

	"dla/internal/core"
)

// Parameters reports the configuration and the live drift for display.
func (f *Field) Parameters() core.ParameterSnapshot {
	params := f.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				intParam("w", "Width", f.cfg.Width),
				int64Param("seed", "Seed", f.cfg.Seed),
				intParam("iterations", "Iteration budget", params.Iterations),
				stringParam("index", "Spatial index", string(params.Index)),
			},
		},
		{
			Name: "Walk",
			Params: []core.Parameter{
				stringParam("conn", "Connectivity", params.Connectivity.String()),
				boolParam("boundary_spawn", "Boundary spawn", params.BoundarySpawn),
				intParam("min_spawn_dist", "Min spawn dist²", params.MinSpawnDist),
				intParam("max_dist", "Max dist²", params.MaxDist),
				intParam("max_steps", "Max steps", params.MaxSteps),
			},
		},
		{
			Name: "Attachment",
			Params: []core.Parameter{
				floatParam("stickiness", "Stickiness", params.Stickiness),
				floatParam("drift", "Drift", f.drift),
				floatParam("drift_decay", "Drift decay", params.DriftDecay),
				boolParam("attract_center", "Attract centre", params.AttractCenter),
			},
		},
		{
			Name:    "Progress",
			Summary: "live values",
			Params: []core.Parameter{
				intParam("iteration", "Attachments", f.iteration),
				intParam("aggregate", "Aggregate size", f.AggregateSize()),
			},
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

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
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
