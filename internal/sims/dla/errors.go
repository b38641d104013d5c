package dla

import "errors"

var (
	// ErrConfig reports an invalid configuration. Returned from NewWithConfig
	// and Config.Validate wrapped with the offending field.
	ErrConfig = errors.New("dla: invalid configuration")

	// ErrBoxedIn reports a walker whose every neighbour is occupied. The
	// engine recovers by attaching the walker where it stands.
	ErrBoxedIn = errors.New("dla: no valid direction")

	// ErrSpawnExhausted reports that no free cell satisfying the spawn band
	// was found, which only happens once the aggregate saturates the grid.
	ErrSpawnExhausted = errors.New("dla: no spawn position available")

	// ErrNoGrowth reports a Run asked to grow an aggregate that cannot grow,
	// such as one with zero stickiness.
	ErrNoGrowth = errors.New("dla: aggregate cannot grow")
)
