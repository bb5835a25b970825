//go:build unit

package clock_test

import (
	"testing"
	"time"

	"booking-pricing/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	c := clock.NewFixedClock(time.Date(2025, 9, 1, 9, 0, 0, 0, tokyo))

	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), c.Now())
	assert.Equal(t, time.UTC, c.Now().Location())

	c.Advance(90 * time.Minute)
	assert.Equal(t, time.Date(2025, 9, 1, 1, 30, 0, 0, time.UTC), c.Now())
}

func TestRealClock_ReturnsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, clock.NewRealClock().Now().Location())
}
