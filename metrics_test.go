package openmht

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateTracks_Perfect(t *testing.T) {
	gt := []Track{
		{{0, 0}, {1, 1}, {2, 2}},
		{{10, 10}, {11, 11}, {12, 12}},
	}

	result, err := EvaluateTracks(gt, gt, 1.0)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.MOTA, 1e-12)
	assert.InDelta(t, 0.0, result.MOTP, 1e-12)
	assert.Equal(t, 6, result.Matches)
	assert.Equal(t, 0, result.Misses)
	assert.Equal(t, 0, result.FalsePositives)
	assert.Equal(t, 2, result.MostlyTracked)
	assert.Equal(t, 6, result.Objects)
}

func TestEvaluateTracks_MissedFrame(t *testing.T) {
	gt := []Track{
		{{0, 0}, {1, 1}, {2, 2}},
	}
	tracks := []Track{
		{{0, 0}, nil, {2, 2}},
	}

	result, err := EvaluateTracks(gt, tracks, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Matches)
	assert.Equal(t, 1, result.Misses)
	assert.Equal(t, 0, result.FalsePositives)
	assert.InDelta(t, 1.0-1.0/3.0, result.MOTA, 1e-12)
}

func TestEvaluateTracks_IdentitySwap(t *testing.T) {
	gt := []Track{
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{10, 0}, {10, 1}, {10, 2}, {10, 3}},
	}
	// The two hypothesis tracks swap objects halfway through.
	tracks := []Track{
		{{0, 0}, {0, 1}, {10, 2}, {10, 3}},
		{{10, 0}, {10, 1}, {0, 2}, {0, 3}},
	}

	result, err := EvaluateTracks(gt, tracks, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Matches)
	assert.Equal(t, 2, result.Switches)
	assert.InDelta(t, 1.0-2.0/8.0, result.MOTA, 1e-12)
}

func TestEvaluateTracks_Validation(t *testing.T) {
	gt := []Track{{{0, 0}}}

	_, err := EvaluateTracks(gt, gt, 0)
	assert.ErrorIs(t, err, ErrConfig)

	mixed := []Track{{{0, 0, 0}}}
	_, err = EvaluateTracks(gt, mixed, 1.0)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestEvaluateTracks_EndToEnd(t *testing.T) {
	frames := Frames{
		{{0, 0}, {10, 10}},
		{{0.1, 0.1}, {10.1, 10.1}},
		{{0.2, 0.2}, {10.2, 10.2}},
	}
	mht, err := New(frames, DefaultParams())
	require.NoError(t, err)
	tracks, err := mht.Run()
	require.NoError(t, err)

	gt := []Track{
		{{0, 0}, {0.1, 0.1}, {0.2, 0.2}},
		{{10, 10}, {10.1, 10.1}, {10.2, 10.2}},
	}
	result, err := EvaluateTracks(gt, tracks, 0.5)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.MOTA, 1e-12)
	assert.Equal(t, 0, result.Switches)
}
