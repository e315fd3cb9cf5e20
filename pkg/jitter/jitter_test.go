package jitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration_StaysWithinBounds(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		d := Duration(base, DefaultJitter)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestExponentialBackoff_CapsAtMax(t *testing.T) {
	base := 10 * time.Millisecond
	max := 50 * time.Millisecond

	assert.Equal(t, base, ExponentialBackoff(base, max, 0, 0))
	assert.Equal(t, 20*time.Millisecond, ExponentialBackoff(base, max, 1, 0))
	assert.Equal(t, 40*time.Millisecond, ExponentialBackoff(base, max, 2, 0))
	assert.Equal(t, max, ExponentialBackoff(base, max, 3, 0))
	assert.Equal(t, max, ExponentialBackoff(base, max, 30, 0))
}

func TestSleep_AbortsOnDone(t *testing.T) {
	done := make(chan struct{})
	close(done)

	assert.False(t, Sleep(done, time.Hour, time.Hour, 0))
	assert.True(t, Sleep(make(chan struct{}), time.Millisecond, time.Millisecond, 0))
}
