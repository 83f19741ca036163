package geoportal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundingBoxUnion(t *testing.T) {
	a := BoundingBox{X0: 1, Y0: 1, X1: 5, Y1: 5, LatitudeSeparation: 2}
	b := BoundingBox{X0: 0, Y0: 2, X1: 4, Y1: 6, LatitudeSeparation: 3}

	merged := a.Union(b)

	assert.Equal(t, BoundingBox{
		X0:                 0,
		Y0:                 1,
		X1:                 5,
		Y1:                 6,
		Initialized:        true,
		LatitudeSeparation: 3,
	}, merged)
}

func TestBoundingBoxUnionSelf(t *testing.T) {
	a := BoundingBox{X0: 1, Y0: 2, X1: 3, Y1: 4, LatitudeSeparation: 1}

	merged := a.Union(a)

	assert.True(t, merged.Initialized)
	assert.Equal(t, a.X0, merged.X0)
	assert.Equal(t, a.Y1, merged.Y1)
}
