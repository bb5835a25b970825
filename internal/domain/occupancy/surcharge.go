package occupancy

import (
	"time"

	"booking-pricing/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinExtraPeople = 2
	MaxExtraPeople = 10
)

// AgeCategory is a hotel age band; children in a band flagged IncludeExtraOccupancyRate
// count as guests for the surcharge.
type AgeCategory struct {
	Code                      string
	FromAge                   *int
	ToAge                     *int
	IncludeExtraOccupancyRate bool
}

func (c AgeCategory) Contains(age int) bool {
	if c.FromAge != nil && age < *c.FromAge {
		return false
	}
	if c.ToAge != nil && age > *c.ToAge {
		return false
	}
	return true
}

// CategoryFor returns the first category containing age.
func CategoryFor(age int, categories []AgeCategory) (AgeCategory, bool) {
	for _, c := range categories {
		if c.Contains(age) {
			return c, true
		}
	}
	return AgeCategory{}, false
}

func GuestCount(adults int, childAges []int, categories []AgeCategory) int {
	count := adults
	for _, age := range childAges {
		for _, c := range categories {
			if c.IncludeExtraOccupancyRate && c.Contains(age) {
				count++
				break
			}
		}
	}
	return count
}

type DefaultRate struct {
	RoomProductID uuid.UUID
	ExtraPeople   int
	Rate          decimal.Decimal
}

type OverrideRate struct {
	RoomProductRatePlanID uuid.UUID
	Date                  time.Time
	ExtraPeople           int
	Rate                  decimal.Decimal
}

type defaultKey struct {
	roomProductID uuid.UUID
	extraPeople   int
}

type overrideKey struct {
	roomProductRatePlanID uuid.UUID
	date                  string
	extraPeople           int
}

// RateTable resolves surcharge rates: a per-date override wins over the room product default.
type RateTable struct {
	defaults  map[defaultKey]decimal.Decimal
	overrides map[overrideKey]decimal.Decimal
}

func NewRateTable(defaults []DefaultRate, overrides []OverrideRate) *RateTable {
	t := &RateTable{
		defaults:  make(map[defaultKey]decimal.Decimal, len(defaults)),
		overrides: make(map[overrideKey]decimal.Decimal, len(overrides)),
	}
	for _, r := range defaults {
		t.defaults[defaultKey{r.RoomProductID, r.ExtraPeople}] = r.Rate
	}
	for _, r := range overrides {
		t.overrides[overrideKey{r.RoomProductRatePlanID, pricing.DateKey(r.Date), r.ExtraPeople}] = r.Rate
	}
	return t
}

func (t *RateTable) Rate(roomProductID, roomProductRatePlanID uuid.UUID, d time.Time, extraPeople int) decimal.Decimal {
	if rate, ok := t.overrides[overrideKey{roomProductRatePlanID, pricing.DateKey(d), extraPeople}]; ok {
		return rate
	}
	if rate, ok := t.defaults[defaultKey{roomProductID, extraPeople}]; ok {
		return rate
	}
	return decimal.Zero
}

// Surcharge sums the rates of tiers 2..guests for one date.
func (t *RateTable) Surcharge(roomProductID, roomProductRatePlanID uuid.UUID, d time.Time, guests int) decimal.Decimal {
	total := decimal.Zero
	if guests <= 1 {
		return total
	}
	for extra := MinExtraPeople; extra <= guests; extra++ {
		total = total.Add(t.Rate(roomProductID, roomProductRatePlanID, d, extra))
	}
	return total
}

func (t *RateTable) DailySurcharges(roomProductID, roomProductRatePlanID uuid.UUID, dates []time.Time, guests int) []pricing.DailyAmount {
	out := make([]pricing.DailyAmount, len(dates))
	for i, d := range dates {
		out[i] = pricing.DailyAmount{Date: d, Amount: t.Surcharge(roomProductID, roomProductRatePlanID, d, guests)}
	}
	return out
}
