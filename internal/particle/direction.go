package particle

import (
	"errors"
	"fmt"
)

// ErrInvalidDirection reports a direction outside the active scheme.
var ErrInvalidDirection = errors.New("particle: invalid direction")

// Direction identifies one move of a walking particle.
type Direction uint8

// Directions are ordered clockwise from north. Conn4 uses the cardinal subset
// in the same relative order.
const (
	Stay Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{"stay", "north", "north-east", "east", "south-east", "south", "south-west", "west", "north-west"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Offset returns the coordinate delta of d. North decreases y.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case NorthEast:
		return 1, -1
	case East:
		return 1, 0
	case SouthEast:
		return 1, 1
	case South:
		return 0, 1
	case SouthWest:
		return -1, 1
	case West:
		return -1, 0
	case NorthWest:
		return -1, -1
	}
	return 0, 0
}

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction {
	if d == Stay || d > NorthWest {
		return d
	}
	return Direction((uint8(d)-1+4)%8 + 1)
}

// Connectivity selects the 4- or 8-neighbour movement scheme.
type Connectivity uint8

const (
	// Conn4 moves along the four cardinal directions.
	Conn4 Connectivity = 4
	// Conn8 adds the four diagonals.
	Conn8 Connectivity = 8
)

var (
	cardinal = []Direction{North, East, South, West}
	compass  = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
)

// Valid reports whether c is a supported scheme.
func (c Connectivity) Valid() bool { return c == Conn4 || c == Conn8 }

// Directions lists the moves of the scheme in neighbour order. The returned
// slice is shared and must not be modified.
func (c Connectivity) Directions() []Direction {
	if c == Conn8 {
		return compass
	}
	return cardinal
}

// Allows reports whether d may be used with c. Stay is always allowed.
func (c Connectivity) Allows(d Direction) bool {
	switch {
	case d == Stay:
		return true
	case d > NorthWest:
		return false
	case c == Conn8:
		return true
	default:
		return d == North || d == East || d == South || d == West
	}
}

// ParseConnectivity accepts "4", "8", "conn4" or "conn8".
func ParseConnectivity(s string) (Connectivity, error) {
	switch s {
	case "4", "conn4":
		return Conn4, nil
	case "8", "conn8":
		return Conn8, nil
	}
	return 0, fmt.Errorf("unknown connectivity %q", s)
}

func (c Connectivity) String() string {
	return fmt.Sprintf("conn%d", uint8(c))
}
