package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlePacking(t *testing.T) {
	tests := []struct {
		segment, slot int
		want          Handle
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 0x10000},
		{3, 17, 0x30011},
		{0xFFFF, 0xFFFE, 0xFFFFFFFE},
	}

	for _, tt := range tests {
		h := MakeHandle(tt.segment, tt.slot)
		require.Equal(t, tt.want, h)
		assert.Equal(t, tt.segment, h.Segment())
		assert.Equal(t, tt.slot, h.Slot())
	}
}

func TestHandleString(t *testing.T) {
	assert.Equal(t, "2:5", MakeHandle(2, 5).String())
	assert.Equal(t, "pool.NoHandle", NoHandle.String())
}

// NoHandle must not collide with any slot a pool can construct.
func TestNoHandleUnreachable(t *testing.T) {
	require.Equal(t, MaxSegments-1, NoHandle.Segment())
	require.GreaterOrEqual(t, NoHandle.Slot(), MaxCapacity)
}
