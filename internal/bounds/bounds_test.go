package bounds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulOverflowSafe(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want int
		ok   bool
	}{
		{"zero", 0, math.MaxInt, 0, true},
		{"small", 65535, 65535, 65535 * 65535, true},
		{"positive overflow", math.MaxInt/2 + 1, 2, 0, false},
		{"negative operands", -3, -4, 12, true},
		{"mixed overflow", math.MaxInt, -2, 0, false},
		{"mixed ok", -7, 6, -42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MulOverflowSafe(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 32, Clamp(0, 32, 65535))
	assert.Equal(t, 32, Clamp(-100, 32, 65535))
	assert.Equal(t, 100, Clamp(100, 32, 65535))
	assert.Equal(t, 65535, Clamp(1<<20, 32, 65535))
}

func TestCheckIndex(t *testing.T) {
	require.NoError(t, CheckIndex("slot", 0, 1))
	require.NoError(t, CheckIndex("slot", 31, 32))

	err := CheckIndex("segment", 3, 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "segment index out of range")

	err = CheckIndex("slot", -1, 3)
	require.Error(t, err)
	require.Contains(t, err.Error(), "negative slot index")
}
