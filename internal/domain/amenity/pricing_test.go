//go:build unit

package amenity_test

import (
	"errors"
	"testing"
	"time"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/occupancy"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/domain/tax"

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

func stay(t *testing.T, from, to string) pricing.DateRange {
	t.Helper()
	r, err := pricing.NewDateRange(date(from), date(to))
	require.NoError(t, err)
	return r
}

func exclusiveEngine() *tax.Engine {
	return tax.NewEngine(tax.HotelTaxProfile{Setting: tax.SettingExclusive}, pricing.DefaultRoundingRule())
}

func TestPrice_Catalogue(t *testing.T) {
	breakfast := amenity.Amenity{
		ID:          uuid.New(),
		Code:        "BRK",
		Name:        "Breakfast",
		Type:        amenity.TypeMealPlan,
		PricingUnit: amenity.UnitPerPersonPerNight,
		BaseRate:    d("20"),
	}
	categories := []occupancy.AgeCategory{
		{Code: "CHILD", FromAge: ptr(3), ToAge: ptr(12)},
		{Code: "INFANT", FromAge: ptr(0), ToAge: ptr(2)},
	}
	prices := []amenity.AgeCategoryPrice{
		{AmenityID: breakfast.ID, AgeCategoryCode: "CHILD", Price: d("10")},
		{AmenityID: breakfast.ID, AgeCategoryCode: "INFANT", Price: d("0")},
	}

	t.Run("per person per night with age category prices", func(t *testing.T) {
		pc := amenity.PriceContext{
			Inclusion:     amenity.InclusionIncluded,
			Stay:          stay(t, "2025-08-01", "2025-08-02"),
			Adults:        2,
			ChildrenAges:  []int{7, 1},
			AgeCategories: categories,
			Prices:        prices,
			Tax:           exclusiveEngine(),
			TaxRules:      []tax.Rule{{Code: "VAT", Rate: d("10"), ServiceCode: "BRK"}},
		}

		actual, err := amenity.Price(breakfast, pc)

		require.NoError(t, err)
		require.Len(t, actual.Daily, 2)
		assertDecimal(t, "50", actual.Daily[0].BaseAmount)
		assertDecimal(t, "100", actual.BaseAmount)
		assertDecimal(t, "10", actual.TaxAmount)
		assertDecimal(t, "110", actual.GrossAmount)
		assertDecimal(t, "10", actual.TaxDetails["VAT"])
		assert.False(t, actual.Degraded)

		require.Len(t, actual.AgeCategories, 3)
		assert.Equal(t, amenity.AdultCategoryCode, actual.AgeCategories[0].Code)
		assert.Equal(t, 2, actual.AgeCategories[0].Count)
		assertDecimal(t, "80", actual.AgeCategories[0].Amount)
	})

	t.Run("per room per stay is prorated", func(t *testing.T) {
		transfer := amenity.Amenity{Code: "TRF", PricingUnit: amenity.UnitPerRoomPerStay, BaseRate: d("100")}
		pc := amenity.PriceContext{
			Stay: stay(t, "2025-08-01", "2025-08-03"),
			Tax:  exclusiveEngine(),
		}

		actual, err := amenity.Price(transfer, pc)

		require.NoError(t, err)
		require.Len(t, actual.Daily, 3)
		assertDecimal(t, "33.33", actual.Daily[0].BaseAmount)
		assertDecimal(t, "33.34", actual.Daily[2].BaseAmount)
		assertDecimal(t, "100", actual.GrossAmount)
	})

	t.Run("per item multiplies by count", func(t *testing.T) {
		flowers := amenity.Amenity{Code: "FLW", PricingUnit: amenity.UnitPerItem, BaseRate: d("15")}
		pc := amenity.PriceContext{
			Stay:  stay(t, "2025-08-01", "2025-08-01"),
			Count: 3,
			Tax:   exclusiveEngine(),
		}

		actual, err := amenity.Price(flowers, pc)

		require.NoError(t, err)
		assert.Equal(t, 3, actual.Count)
		assertDecimal(t, "45", actual.GrossAmount)
	})
}

func TestPrice_Quote(t *testing.T) {
	dinner := amenity.Amenity{ID: uuid.New(), Code: "DIN", PricingUnit: amenity.UnitPerPersonPerNight, BaseRate: d("999")}

	t.Run("daily amounts from the quote win over the catalogue", func(t *testing.T) {
		pc := amenity.PriceContext{
			Stay:   stay(t, "2025-08-01", "2025-08-02"),
			Adults: 2,
			Quote: &amenity.BaseQuote{
				AmenityID:   dinner.ID,
				TotalAmount: d("70"),
				DailyAmounts: []pricing.DailyAmount{
					{Date: date("2025-08-01"), Amount: d("30")},
					{Date: date("2025-08-02"), Amount: d("40")},
					{Date: date("2025-08-03"), Amount: d("50")},
				},
				AgeCategories: []amenity.AgeCategoryAmount{{Code: amenity.AdultCategoryCode, Count: 2, Amount: d("70")}},
			},
			Tax:      exclusiveEngine(),
			TaxRules: []tax.Rule{{Code: "VAT", Rate: d("10"), ServiceCode: "DIN"}},
		}

		actual, err := amenity.Price(dinner, pc)

		require.NoError(t, err)
		require.Len(t, actual.Daily, 2)
		assertDecimal(t, "70", actual.BaseAmount)
		assertDecimal(t, "7", actual.TaxAmount)
		assertDecimal(t, "77", actual.GrossAmount)
		require.Len(t, actual.AgeCategories, 1)
	})

	t.Run("total only quote is prorated", func(t *testing.T) {
		pc := amenity.PriceContext{
			Stay:  stay(t, "2025-08-01", "2025-08-02"),
			Quote: &amenity.BaseQuote{AmenityID: dinner.ID, TotalAmount: d("61")},
			Tax:   exclusiveEngine(),
		}

		actual, err := amenity.Price(dinner, pc)

		require.NoError(t, err)
		assertDecimal(t, "30.5", actual.Daily[0].BaseAmount)
		assertDecimal(t, "61", actual.GrossAmount)
	})
}

func TestPrice_IncompleteQuote(t *testing.T) {
	breakfast := amenity.Amenity{ID: uuid.New(), Code: "BRK", PricingUnit: amenity.UnitPerRoomPerNight, BaseRate: d("20")}

	testCases := []struct {
		name  string
		daily []pricing.DailyAmount
	}{
		{
			name:  "no amount inside the stay",
			daily: []pricing.DailyAmount{{Date: date("2025-06-04"), Amount: d("60")}},
		},
		{
			name: "a night is missing",
			daily: []pricing.DailyAmount{
				{Date: date("2025-06-01"), Amount: d("20")},
				{Date: date("2025-06-03"), Amount: d("20")},
			},
		},
		{
			name: "a night is quoted twice",
			daily: []pricing.DailyAmount{
				{Date: date("2025-06-01"), Amount: d("20")},
				{Date: date("2025-06-01"), Amount: d("20")},
				{Date: date("2025-06-02"), Amount: d("20")},
				{Date: date("2025-06-03"), Amount: d("20")},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pc := amenity.PriceContext{
				Stay:  stay(t, "2025-06-01", "2025-06-03"),
				Quote: &amenity.BaseQuote{AmenityID: breakfast.ID, TotalAmount: d("60"), DailyAmounts: tc.daily},
				Tax:   exclusiveEngine(),
			}

			actual, err := amenity.Price(breakfast, pc)

			require.Error(t, err)
			assert.ErrorIs(t, err, amenity.ErrIncompleteQuote)
			assert.Empty(t, actual.Daily)
		})
	}
}

func TestPrice_Errors(t *testing.T) {
	t.Run("unknown pricing unit", func(t *testing.T) {
		_, err := amenity.Price(amenity.Amenity{Code: "X", PricingUnit: "PER_MOON"}, amenity.PriceContext{Tax: exclusiveEngine()})
		assert.ErrorIs(t, err, amenity.ErrUnsupportedPricingUnit)
	})

	t.Run("missing tax engine", func(t *testing.T) {
		_, err := amenity.Price(amenity.Amenity{Code: "X", PricingUnit: amenity.UnitPerItem}, amenity.PriceContext{})
		assert.ErrorIs(t, err, amenity.ErrMissingTaxEngine)
	})
}

func TestPlaceholder(t *testing.T) {
	a := amenity.Amenity{Code: "SPA", PricingUnit: amenity.UnitPerItem, BaseRate: d("80")}

	actual := amenity.Placeholder(a, amenity.InclusionExtra, errors.New("platform down"))

	assert.True(t, actual.Degraded)
	assert.Equal(t, "platform down", actual.Error)
	assert.Equal(t, amenity.InclusionExtra, actual.Inclusion)
	assert.True(t, actual.GrossAmount.IsZero())
	assert.True(t, actual.TaxAmount.IsZero())
	assert.Empty(t, actual.TaxDetails)
}
