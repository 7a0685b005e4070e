package odontogram

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChartSpaceRejectsNonPositiveDimensions(t *testing.T) {
	t.Parallel()

	_, err := NewChartSpace(0, 873, 1000, 1200)
	assert.Error(t, err)

	_, err = NewChartSpace(700, -1, 1000, 1200)
	assert.Error(t, err)

	_, err = NewChartSpace(700, 873, 0, 1200)
	assert.Error(t, err)

	_, err = NewChartSpace(700, 873, 1000, 0)
	assert.Error(t, err)

	_, err = NewChartSpace(700, 873, 1000, 1200)
	assert.NoError(t, err)
}

func TestToImageScalesIndependentlyPerAxis(t *testing.T) {
	t.Parallel()

	space, err := NewChartSpace(700, 873, 1000, 1200)
	require.NoError(t, err)

	x, y := space.ToImage(350, 300)
	assert.InDelta(t, 500.0, x, 1e-9)
	assert.InDelta(t, 412.371134, y, 1e-5)

	// canvas origin and far corner map to image origin and far corner
	x, y = space.ToImage(0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)

	x, y = space.ToImage(700, 873)
	assert.InDelta(t, 1000.0, x, 1e-9)
	assert.InDelta(t, 1200.0, y, 1e-9)
}

func TestToCanvasToImageRoundTrip(t *testing.T) {
	t.Parallel()

	space, err := NewChartSpace(700, 873, 1543, 2201)
	require.NoError(t, err)

	points := [][2]float64{
		{0, 0},
		{350, 436.5},
		{1, 1},
		{123.456, 789.012},
		{700, 873},
	}
	for _, p := range points {
		ix, iy := space.ToImage(p[0], p[1])
		cx, cy := space.ToCanvas(ix, iy)
		assert.InDelta(t, p[0], cx, 1e-9, "x round trip for %v", p)
		assert.InDelta(t, p[1], cy, 1e-9, "y round trip for %v", p)
	}
}

func TestEqualDimensionsAreIdentity(t *testing.T) {
	t.Parallel()

	space, err := NewChartSpace(700, 873, 700, 873)
	require.NoError(t, err)

	x, y := space.ToImage(123.5, 456.25)
	assert.Equal(t, 123.5, x)
	assert.Equal(t, 456.25, y)

	x, y = space.ToCanvas(123.5, 456.25)
	assert.Equal(t, 123.5, x)
	assert.Equal(t, 456.25, y)
}

func TestInBounds(t *testing.T) {
	t.Parallel()

	space, err := NewChartSpace(700, 873, 1000, 1200)
	require.NoError(t, err)

	assert.True(t, space.InBounds(0, 0))
	assert.True(t, space.InBounds(1000, 1200))
	assert.True(t, space.InBounds(500, 600))
	assert.False(t, space.InBounds(-0.1, 600))
	assert.False(t, space.InBounds(500, 1200.1))
	assert.False(t, space.InBounds(math.Inf(1), 0))
}
