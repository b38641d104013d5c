package particle

import (
	"testing"

	"dla/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromIndexRoundTrip(t *testing.T) {
	for _, m := range []int{1, 3, 101} {
		for i := 0; i < m*m; i++ {
			p, err := FromIndex(i, m, Conn4)
			require.NoError(t, err)
			pos := p.Position()
			require.Equal(t, i, pos.Y*m+pos.X)
			require.Equal(t, i, p.Index())
		}
	}
}

func TestFromIndexOutOfBounds(t *testing.T) {
	for _, idx := range []int{-1, 101 * 101} {
		_, err := FromIndex(idx, 101, Conn4)
		assert.ErrorIs(t, err, core.ErrOutOfBounds, "index %d", idx)
	}
	_, err := New(5, -1, 5, Conn8)
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
}

func TestMoveOppositeReturnsHome(t *testing.T) {
	const m = 7
	for _, conn := range []Connectivity{Conn4, Conn8} {
		for i := 0; i < m*m; i++ {
			for _, d := range conn.Directions() {
				p, err := FromIndex(i, m, conn)
				require.NoError(t, err)
				start := p.Position()
				require.NoError(t, p.Move(d))
				require.NoError(t, p.Move(d.Opposite()))
				require.Equal(t, start, p.Position(), "%s then %s from %v", d, d.Opposite(), start)
			}
		}
	}
}

func TestMoveWrapsAtEdges(t *testing.T) {
	p, err := New(0, 0, 5, Conn8)
	require.NoError(t, err)

	require.NoError(t, p.Move(North))
	assert.Equal(t, core.Point{X: 0, Y: 4}, p.Position())
	require.NoError(t, p.Move(West))
	assert.Equal(t, core.Point{X: 4, Y: 4}, p.Position())
	require.NoError(t, p.Move(SouthEast))
	assert.Equal(t, core.Point{X: 0, Y: 0}, p.Position())
}

func TestMoveRejectsUnknownDirection(t *testing.T) {
	p, err := New(2, 2, 5, Conn4)
	require.NoError(t, err)

	assert.ErrorIs(t, p.Move(NorthEast), ErrInvalidDirection)
	assert.ErrorIs(t, p.Move(Direction(42)), ErrInvalidDirection)
	assert.Equal(t, core.Point{X: 2, Y: 2}, p.Position())

	require.NoError(t, p.Move(Stay))
	assert.Equal(t, core.Point{X: 2, Y: 2}, p.Position())
}

func TestNeighborsOrder(t *testing.T) {
	p, err := New(0, 2, 5, Conn4)
	require.NoError(t, err)
	assert.Equal(t, []core.Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 3}, {X: 4, Y: 2}}, p.Neighbors())

	p8, err := New(4, 4, 5, Conn8)
	require.NoError(t, err)
	assert.Equal(t, []core.Point{
		{X: 4, Y: 3}, {X: 0, Y: 3}, {X: 0, Y: 4}, {X: 0, Y: 0}, {X: 4, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 3},
	}, p8.Neighbors())
}

func TestParseConnectivity(t *testing.T) {
	c, err := ParseConnectivity("8")
	require.NoError(t, err)
	assert.Equal(t, Conn8, c)
	_, err = ParseConnectivity("6")
	assert.Error(t, err)
}
