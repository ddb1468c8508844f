package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingPushAndOrdered(t *testing.T) {
	r := NewRing(4)
	r.Push(0.1)
	r.Push(0.2)
	r.Push(0.3)

	// Unwritten slots read as zero and come first in chronological order.
	assert.Equal(t, []float64{0, 0.1, 0.2, 0.3}, r.Ordered())
	assert.Equal(t, 0.3, r.Last())
}

func TestRingOverwritesOldest(t *testing.T) {
	r := NewRing(3)
	for _, v := range []float64{0.1, 0.2, 0.3, 0.4, 0.5} {
		r.Push(v)
	}
	assert.Equal(t, []float64{0.3, 0.4, 0.5}, r.Ordered())
	assert.Equal(t, 0.5, r.Last())
}

func TestRingTail(t *testing.T) {
	r := NewRing(5)
	for _, v := range []float64{0.1, 0.2, 0.3, 0.4} {
		r.Push(v)
	}
	assert.Equal(t, []float64{0.3, 0.4}, r.Tail(2))
	// asking for more than capacity returns the full window
	assert.Len(t, r.Tail(10), 5)
}

func TestRingZeroCapacity(t *testing.T) {
	r := NewRing(0)
	require.Equal(t, 1, r.Cap())
	r.Push(0.7)
	assert.Equal(t, 0.7, r.Last())
}

func TestRingSetSharedCursorKeepsSeriesAligned(t *testing.T) {
	rs := NewRingSet(2, 3)
	rs.PushAll([]float64{0.1, 0.9})
	rs.PushAll([]float64{0.2, 0.8})

	// Both series advanced under the one cursor, so sample i of one series
	// is simultaneous with sample i of the other.
	assert.Equal(t, []float64{0.1, 0.2}, rs.Tail(0, 2))
	assert.Equal(t, []float64{0.9, 0.8}, rs.Tail(1, 2))
	assert.Equal(t, 0.2, rs.Last(0))
	assert.Equal(t, 0.8, rs.Last(1))
}

func TestRingSetShortPushRecordsZero(t *testing.T) {
	rs := NewRingSet(3, 2)
	rs.PushAll([]float64{0.5})
	assert.Equal(t, 0.5, rs.Last(0))
	assert.Equal(t, 0.0, rs.Last(1))
	assert.Equal(t, 0.0, rs.Last(2))
}

func TestRingSetOutOfRangeSeries(t *testing.T) {
	rs := NewRingSet(1, 2)
	assert.Nil(t, rs.Tail(5, 2))
	assert.Equal(t, 0.0, rs.Last(-1))
}
