//go:build unit

package citytax_test

import (
	"testing"
	"time"

	"booking-pricing/internal/domain/citytax"
	"booking-pricing/internal/domain/pricing"

	"github.com/google/uuid"
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

func ptr[T any](v T) *T {
	return &v
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

// nights builds n consecutive nights starting at from, each with the same gross and net.
func nights(from string, n int, gross, net string) []citytax.DailyRoomPrice {
	start := date(from)
	days := make([]citytax.DailyRoomPrice, n)
	for i := range days {
		days[i] = citytax.DailyRoomPrice{
			Date:                  start.AddDate(0, 0, i),
			Gross:                 d(gross),
			Net:                   d(net),
			GrossBeforeAdjustment: d(gross),
			NetBeforeAdjustment:   d(net),
		}
	}
	return days
}

func TestCalculate_PerPersonPerNight(t *testing.T) {
	t.Run("adults and a child without age group", func(t *testing.T) {
		in := citytax.Input{
			Rules:        []citytax.Rule{{Code: "CITY", Unit: citytax.UnitPerPersonPerNight, Value: d("2")}},
			Days:         nights("2025-06-01", 3, "100", "90"),
			Adults:       2,
			ChildrenAges: []int{8},
			TotalRooms:   1,
			Rounding:     pricing.DefaultRoundingRule(),
		}

		actual := citytax.Calculate(in)

		require.Len(t, actual.Entries, 1)
		entry := actual.Entries[0]
		assertDecimal(t, "12", entry.TaxAmountAdult)
		assertDecimal(t, "18", entry.TaxAmount)
		require.Len(t, entry.TaxAmountAgeGroup, 1)
		assert.Equal(t, uuid.Nil, entry.TaxAmountAgeGroup[0].AgeGroupID)
		assertDecimal(t, "6", entry.TaxAmountAgeGroup[0].TaxAmount)
		assertDecimal(t, "18", actual.TaxAmount)
	})

	t.Run("rule expiring mid stay is charged for its nights only", func(t *testing.T) {
		in := citytax.Input{
			Rules: []citytax.Rule{{
				Code:    "CITY",
				Unit:    citytax.UnitPerPersonPerNight,
				Value:   d("3"),
				ValidTo: ptr(date("2025-06-02")),
			}},
			Days:       nights("2025-06-01", 4, "100", "90"),
			Adults:     1,
			TotalRooms: 1,
			Rounding:   pricing.DefaultRoundingRule(),
		}

		actual := citytax.Calculate(in)

		assertDecimal(t, "6", actual.TaxAmount)
	})
}

func TestCalculate_AgeGroups(t *testing.T) {
	infantGroup := uuid.New()
	rule := citytax.Rule{
		Code:  "CITY",
		Unit:  citytax.UnitPerPersonPerStayFixed,
		Value: d("5"),
		AgeGroups: []citytax.AgeGroup{
			{ID: infantGroup, FromAge: ptr(0), ToAge: ptr(5), Value: d("0")},
		},
	}

	tests := []struct {
		name     string
		ages     []int
		expected string
	}{
		{name: "child inside the band pays the band value", ages: []int{3}, expected: "0"},
		{name: "child outside the band pays the default", ages: []int{10}, expected: "5"},
		{name: "mixed children", ages: []int{3, 10}, expected: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := citytax.Input{
				Rules:        []citytax.Rule{rule},
				Days:         nights("2025-06-01", 2, "100", "90"),
				ChildrenAges: tt.ages,
				TotalRooms:   1,
				Rounding:     pricing.DefaultRoundingRule(),
			}

			actual := citytax.Calculate(in)

			require.Len(t, actual.Entries, 1)
			assert.True(t, actual.Entries[0].TaxAmountAdult.IsZero())
			assertDecimal(t, tt.expected, actual.TaxAmount)
		})
	}

	t.Run("open ended bands", func(t *testing.T) {
		g := citytax.AgeGroup{ToAge: ptr(12)}
		assert.True(t, g.Contains(0))
		assert.True(t, g.Contains(12))
		assert.False(t, g.Contains(13))

		g = citytax.AgeGroup{FromAge: ptr(13)}
		assert.False(t, g.Contains(12))
		assert.True(t, g.Contains(99))
	})

	t.Run("first matching band wins", func(t *testing.T) {
		first, second := uuid.New(), uuid.New()
		r := citytax.Rule{AgeGroups: []citytax.AgeGroup{
			{ID: first, FromAge: ptr(0), ToAge: ptr(10)},
			{ID: second, FromAge: ptr(5), ToAge: ptr(17)},
		}}

		g, ok := r.AgeGroupFor(7)

		require.True(t, ok)
		assert.Equal(t, first, g.ID)
	})
}

func TestCalculate_CountedOnce(t *testing.T) {
	t.Run("percentage on gross over ten nights equals once on the stay total", func(t *testing.T) {
		in := citytax.Input{
			Rules:      []citytax.Rule{{Code: "CITY", Unit: citytax.UnitPercentageOnGrossAmountRoom, Value: d("5")}},
			Days:       nights("2025-06-01", 10, "120", "100"),
			Adults:     2,
			TotalRooms: 1,
			Rounding:   pricing.DefaultRoundingRule(),
		}

		actual := citytax.Calculate(in)

		require.Len(t, actual.Entries, 1)
		assertDecimal(t, "60", actual.TaxAmount)
	})

	t.Run("percentage on net uses before adjustment prices for the before variant", func(t *testing.T) {
		days := nights("2025-06-01", 2, "120", "100")
		for i := range days {
			days[i].NetBeforeAdjustment = d("110")
		}
		in := citytax.Input{
			Rules:      []citytax.Rule{{Code: "CITY", Unit: citytax.UnitPercentageOnNetAmountRoom, Value: d("10")}},
			Days:       days,
			TotalRooms: 1,
			Rounding:   pricing.DefaultRoundingRule(),
		}

		actual := citytax.Calculate(in)

		assertDecimal(t, "20", actual.TaxAmount)
		assertDecimal(t, "22", actual.TaxAmountBeforeAdjustment)
	})

	t.Run("fixed per room is charged once for all rooms", func(t *testing.T) {
		in := citytax.Input{
			Rules:      []citytax.Rule{{Code: "CITY", Unit: citytax.UnitFixedOnGrossAmountRoom, Value: d("7.5")}},
			Days:       nights("2025-06-01", 3, "120", "100"),
			TotalRooms: 2,
			Rounding:   pricing.DefaultRoundingRule(),
		}

		actual := citytax.Calculate(in)

		assertDecimal(t, "15", actual.TaxAmount)
	})

	t.Run("per person per stay charges adults once", func(t *testing.T) {
		in := citytax.Input{
			Rules:      []citytax.Rule{{Code: "CITY", Unit: citytax.UnitPerPersonPerStayFixed, Value: d("4")}},
			Days:       nights("2025-06-01", 5, "120", "100"),
			Adults:     3,
			TotalRooms: 1,
			Rounding:   pricing.DefaultRoundingRule(),
		}

		actual := citytax.Calculate(in)

		assertDecimal(t, "12", actual.TaxAmount)
	})
}

func TestCalculate_PerRoomPerNight(t *testing.T) {
	in := citytax.Input{
		Rules:        []citytax.Rule{{Code: "ROOM", Unit: citytax.UnitPerRoomPerNight, Value: d("1.5")}},
		Days:         nights("2025-06-01", 4, "120", "100"),
		Adults:       2,
		ChildrenAges: []int{4},
		TotalRooms:   3,
		Rounding:     pricing.DefaultRoundingRule(),
	}

	actual := citytax.Calculate(in)

	require.Len(t, actual.Entries, 1)
	assertDecimal(t, "18", actual.TaxAmount)
	assert.Empty(t, actual.Entries[0].TaxAmountAgeGroup)
}

func TestCalculate_MergesByCode(t *testing.T) {
	in := citytax.Input{
		Rules: []citytax.Rule{
			{Code: "CITY", Name: "City", Unit: citytax.UnitPerPersonPerNight, Value: d("1")},
			{Code: "TOURISM", Name: "Tourism", Unit: citytax.UnitPerRoomPerNight, Value: d("2")},
			{Code: "CITY", Name: "City", Unit: citytax.UnitPerPersonPerNight, Value: d("1"), ValidFrom: ptr(date("2026-01-01"))},
		},
		Days:       nights("2025-06-01", 2, "120", "100"),
		Adults:     2,
		TotalRooms: 1,
		Rounding:   pricing.DefaultRoundingRule(),
	}

	actual := citytax.Calculate(in)

	require.Len(t, actual.Entries, 2)
	assert.Equal(t, "CITY", actual.Entries[0].Code)
	assertDecimal(t, "4", actual.Entries[0].TaxAmount)
	assert.Equal(t, "TOURISM", actual.Entries[1].Code)
	assertDecimal(t, "4", actual.Entries[1].TaxAmount)
	assertDecimal(t, "8", actual.TaxAmount)
}

func TestCalculate_IsReentrant(t *testing.T) {
	in := citytax.Input{
		Rules:      []citytax.Rule{{Code: "CITY", Unit: citytax.UnitPercentageOnGrossAmountRoom, Value: d("10")}},
		Days:       nights("2025-06-01", 3, "100", "90"),
		TotalRooms: 1,
		Rounding:   pricing.DefaultRoundingRule(),
	}

	first := citytax.Calculate(in)
	second := citytax.Calculate(in)

	assertDecimal(t, "30", first.TaxAmount)
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
}

func TestRule_NightCount(t *testing.T) {
	r := citytax.Rule{ValidFrom: ptr(date("2025-06-03")), ValidTo: ptr(date("2025-06-05"))}

	assert.Equal(t, 3, r.NightCount(date("2025-06-01"), date("2025-06-10")))
	assert.Equal(t, 1, r.NightCount(date("2025-06-05"), date("2025-06-06")))
	assert.Equal(t, 0, r.NightCount(date("2025-06-06"), date("2025-06-07")))
	assert.Equal(t, 2, citytax.Rule{}.NightCount(date("2025-06-01"), date("2025-06-03")))
}

func TestTotalRooms(t *testing.T) {
	assert.Equal(t, 4, citytax.TotalRooms(4, true))
	assert.Equal(t, 1, citytax.TotalRooms(4, false))
	assert.Equal(t, 1, citytax.TotalRooms(0, true))
}
