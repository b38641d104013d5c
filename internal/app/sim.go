package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dla/internal/core"
	"dla/internal/sims/dla"
)

// ErrUnknownSim reports a name missing from the simulation registry.
var ErrUnknownSim = errors.New("app: unknown simulation")

// OpenField looks name up in the simulation registry and builds it from kv.
// Only sims that grow an aggregate can be driven, so other registered sims
// are refused.
func OpenField(name string, kv map[string]string) (*dla.Field, error) {
	factory, ok := core.Sims()[name]
	if !ok {
		return nil, fmt.Errorf("%q (available: %s): %w", name, strings.Join(core.SimNames(), ", "), ErrUnknownSim)
	}
	sim, err := factory(kv)
	if err != nil {
		return nil, err
	}
	field, ok := sim.(*dla.Field)
	if !ok {
		return nil, fmt.Errorf("sim %q does not grow an aggregate", name)
	}
	return field, nil
}

// SimOptions returns the factory options selected by the viewer flags.
func (c *Config) SimOptions() map[string]string {
	kv := map[string]string{}
	if c.ConfigPath != "" {
		kv["config"] = c.ConfigPath
	}
	if c.Seed != 0 {
		kv["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return kv
}
