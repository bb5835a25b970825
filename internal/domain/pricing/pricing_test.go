//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"booking-pricing/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse(pricing.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRound(t *testing.T) {
	testCases := []struct {
		name   string
		value  string
		mode   pricing.RoundingMode
		places int32
		expect string
	}{
		{name: "up rounds away from zero", value: "10.001", mode: pricing.RoundingUp, places: 2, expect: "10.01"},
		{name: "down truncates", value: "10.009", mode: pricing.RoundingDown, places: 2, expect: "10"},
		{name: "half up at midpoint", value: "10.005", mode: pricing.RoundingHalfRoundUp, places: 2, expect: "10.01"},
		{name: "half up below midpoint", value: "10.004", mode: pricing.RoundingHalfRoundUp, places: 2, expect: "10"},
		{name: "no rounding behaves as half up", value: "10.005", mode: pricing.RoundingNoRounding, places: 2, expect: "10.01"},
		{name: "unknown mode behaves as half up", value: "2.5", mode: pricing.RoundingMode("BANKERS"), places: 0, expect: "3"},
		{name: "negative places clamp to zero", value: "2.4", mode: pricing.RoundingHalfRoundUp, places: -3, expect: "2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := pricing.Round(d(tc.value), tc.mode, tc.places)
			assert.True(t, d(tc.expect).Equal(actual), "expected %s, got %s", tc.expect, actual)
		})
	}
}

func TestSumWithRounding(t *testing.T) {
	t.Run("sums before rounding", func(t *testing.T) {
		values := []decimal.Decimal{d("0.004"), d("0.004"), d("0.004")}

		actual := pricing.SumWithRounding(values, pricing.RoundingHalfRoundUp, 2)

		assert.True(t, d("0.01").Equal(actual), "got %s", actual)
	})

	t.Run("empty input is zero", func(t *testing.T) {
		assert.True(t, pricing.SumWithRounding(nil, pricing.RoundingUp, 2).IsZero())
	})
}

func TestSafeDiv(t *testing.T) {
	assert.True(t, pricing.SafeDiv(d("10"), decimal.Zero).IsZero())
	assert.True(t, d("2.5").Equal(pricing.SafeDiv(d("10"), d("4"))))
}

func TestParseRoundingMode(t *testing.T) {
	assert.Equal(t, pricing.RoundingUp, pricing.ParseRoundingMode(" up "))
	assert.Equal(t, pricing.RoundingHalfRoundUp, pricing.ParseRoundingMode("whatever"))
}

func TestSplitAcrossDates(t *testing.T) {
	t.Run("remainder goes to the last date", func(t *testing.T) {
		shares := pricing.SplitAcrossDates(date("2025-03-01"), date("2025-03-03"), d("100"), 2, pricing.RoundingHalfRoundUp)

		require.Len(t, shares, 3)
		assert.True(t, d("33.33").Equal(shares[0]))
		assert.True(t, d("33.33").Equal(shares[1]))
		assert.True(t, d("33.34").Equal(shares[2]))
	})

	t.Run("single day keeps the total", func(t *testing.T) {
		shares := pricing.SplitAcrossDates(date("2025-03-01"), date("2025-03-01"), d("10.12345"), 2, pricing.RoundingUp)

		require.Len(t, shares, 1)
		assert.True(t, d("10.12345").Equal(shares[0]))
	})

	t.Run("empty range", func(t *testing.T) {
		shares := pricing.SplitAcrossDates(date("2025-03-02"), date("2025-03-01"), d("10"), 2, pricing.RoundingUp)
		assert.Empty(t, shares)
	})

	t.Run("conservation across modes and totals", func(t *testing.T) {
		modes := []pricing.RoundingMode{pricing.RoundingUp, pricing.RoundingDown, pricing.RoundingHalfRoundUp, pricing.RoundingNoRounding}
		totals := []string{"0", "0.01", "1", "99.99", "1000", "123456.789", "7"}
		for _, mode := range modes {
			for _, total := range totals {
				for nights := 1; nights <= 11; nights++ {
					from := date("2025-01-30")
					to := from.AddDate(0, 0, nights-1)
					shares := pricing.SplitAcrossDates(from, to, d(total), 2, mode)

					require.Len(t, shares, nights)
					assert.True(t, d(total).Equal(pricing.Sum(shares...)),
						"mode=%s total=%s nights=%d sum=%s", mode, total, nights, pricing.Sum(shares...))
				}
			}
		}
	})
}

func TestAllocateByWeight(t *testing.T) {
	rule := pricing.DefaultRoundingRule()

	t.Run("proportional with exact sum", func(t *testing.T) {
		shares := pricing.AllocateByWeight(d("10"), []decimal.Decimal{d("1"), d("1"), d("1")}, rule)

		assert.True(t, d("3.33").Equal(shares[0]))
		assert.True(t, d("3.33").Equal(shares[1]))
		assert.True(t, d("3.34").Equal(shares[2]))
	})

	t.Run("zero weights get nothing", func(t *testing.T) {
		shares := pricing.AllocateByWeight(d("10"), []decimal.Decimal{d("2"), decimal.Zero}, rule)

		assert.True(t, d("10").Equal(shares[0]))
		assert.True(t, shares[1].IsZero())
	})

	t.Run("no weight at all", func(t *testing.T) {
		shares := pricing.AllocateByWeight(d("10"), []decimal.Decimal{decimal.Zero}, rule)
		assert.True(t, shares[0].IsZero())
	})
}

func TestDateRange(t *testing.T) {
	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := pricing.NewDateRange(date("2025-03-02"), date("2025-03-01"))
		assert.ErrorIs(t, err, pricing.ErrInvalidDateRange)
	})

	t.Run("nights exclude departure", func(t *testing.T) {
		r, err := pricing.NightsOf(date("2025-03-01"), date("2025-03-04"))
		require.NoError(t, err)

		assert.Equal(t, 3, r.Len())
		assert.Equal(t, date("2025-03-03"), r.To())
	})

	t.Run("intersect with open and closed bounds", func(t *testing.T) {
		r, err := pricing.NewDateRange(date("2025-03-01"), date("2025-03-10"))
		require.NoError(t, err)

		from := date("2025-03-05")
		to := date("2025-03-20")
		before := date("2025-02-01")

		assert.Equal(t, 10, r.IntersectDays(nil, nil))
		assert.Equal(t, 6, r.IntersectDays(&from, nil))
		assert.Equal(t, 6, r.IntersectDays(&from, &to))
		assert.Equal(t, 0, r.IntersectDays(nil, &before))
	})

	t.Run("valid on", func(t *testing.T) {
		to := date("2025-03-05")
		assert.True(t, pricing.ValidOn(date("2025-03-05"), nil, &to))
		assert.False(t, pricing.ValidOn(date("2025-03-06"), nil, &to))
	})
}
