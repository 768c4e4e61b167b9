package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_AdvanceTracksSeconds(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.Step)
	for i := 0; i < 90; i++ {
		c.Advance()
	}
	assert.Equal(t, 90, c.Step)
	assert.InDelta(t, 90, c.T, 1e-9)
	assert.Equal(t, "00:01:30", c.String())
}
