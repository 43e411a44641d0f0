package nes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControllerCyclesThroughButtons(t *testing.T) {
	c := NewController()
	c.Set([8]bool{true, false, true, false, false, false, false, false})
	c.write(0)                          // strobe off: advance index on every read
	require.Equal(t, byte(1), c.read()) // A
	require.Equal(t, byte(0), c.read()) // B
	require.Equal(t, byte(1), c.read()) // Select
}

func TestControllerStrobeLocksToFirstButton(t *testing.T) {
	c := NewController()
	c.Set([8]bool{true, false, false, false, false, false, false, false})
	c.write(1) // strobe on: every read reports button A
	require.Equal(t, byte(1), c.read())
	require.Equal(t, byte(1), c.read())
}

func TestControllerReadPastEighthBitIsZero(t *testing.T) {
	c := NewController()
	c.Set([8]bool{true, true, true, true, true, true, true, true})
	c.write(0)
	for i := 0; i < 8; i++ {
		c.read()
	}
	require.Equal(t, byte(0), c.read())
}
