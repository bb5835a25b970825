package amenity

import (
	"errors"
	"fmt"

	"booking-pricing/internal/domain/occupancy"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/domain/tax"

	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedPricingUnit = errors.New("unsupported amenity pricing unit")
	ErrMissingTaxEngine       = errors.New("tax engine is required to price an amenity")
	// ErrIncompleteQuote means the remote daily breakdown does not match the stay nights.
	ErrIncompleteQuote = errors.New("amenity quote does not cover the stay")
)

// PriceContext is everything Price needs besides the amenity itself.
// A nil Quote means the amenity is priced from the local catalogue.
type PriceContext struct {
	Inclusion     Inclusion
	Stay          pricing.DateRange
	Adults        int
	ChildrenAges  []int
	AgeCategories []occupancy.AgeCategory
	Prices        []AgeCategoryPrice
	Count         int
	Quote         *BaseQuote
	Tax           *tax.Engine
	ChargeRates   tax.ChargeRates
	TaxRules      []tax.Rule
}

type PricedAmenity struct {
	Amenity             Amenity
	Inclusion           Inclusion
	Count               int
	SellingAmount       decimal.Decimal
	BaseAmount          decimal.Decimal
	ServiceChargeAmount decimal.Decimal
	TaxAmount           decimal.Decimal
	GrossAmount         decimal.Decimal
	TaxDetails          tax.Details
	AgeCategories       []AgeCategoryAmount
	Daily               []tax.Breakdown
	Degraded            bool
	Error               string
}

// Price computes the daily selling amounts of a and runs them through the tax engine with the
// amenity code as service code.
func Price(a Amenity, pc PriceContext) (PricedAmenity, error) {
	if !a.PricingUnit.IsValid() {
		return PricedAmenity{}, fmt.Errorf("%w: %q for amenity %s", ErrUnsupportedPricingUnit, a.PricingUnit, a.Code)
	}
	if pc.Tax == nil {
		return PricedAmenity{}, ErrMissingTaxEngine
	}
	count := max(pc.Count, 1)

	var (
		daily      []pricing.DailyAmount
		categories []AgeCategoryAmount
	)
	if pc.Quote != nil {
		var err error
		if daily, categories, err = fromQuote(pc, count); err != nil {
			return PricedAmenity{}, fmt.Errorf("amenity %s: %w", a.Code, err)
		}
	} else {
		daily, categories = fromCatalogue(a, pc, count)
	}

	res := pc.Tax.CalculatePerDay(daily, a.Code, pc.ChargeRates, pc.TaxRules)
	return PricedAmenity{
		Amenity:             a,
		Inclusion:           pc.Inclusion,
		Count:               count,
		SellingAmount:       res.Totals.SellingAmount,
		BaseAmount:          res.Totals.BaseAmount,
		ServiceChargeAmount: res.Totals.ServiceChargeAmount,
		TaxAmount:           res.Totals.TaxAmount,
		GrossAmount:         res.Totals.GrossAmount,
		TaxDetails:          res.Totals.TaxDetails,
		AgeCategories:       categories,
		Daily:               res.Days,
	}, nil
}

// Placeholder is the zero priced line used when an amenity could not be priced.
func Placeholder(a Amenity, inclusion Inclusion, cause error) PricedAmenity {
	p := PricedAmenity{
		Amenity:             a,
		Inclusion:           inclusion,
		Count:               1,
		SellingAmount:       decimal.Zero,
		BaseAmount:          decimal.Zero,
		ServiceChargeAmount: decimal.Zero,
		TaxAmount:           decimal.Zero,
		GrossAmount:         decimal.Zero,
		TaxDetails:          tax.Details{},
		Degraded:            true,
	}
	if cause != nil {
		p.Error = cause.Error()
	}
	return p
}

// fromQuote uses the remote daily breakdown when present. It must hold exactly one amount for
// every stay night; amounts outside the stay are ignored.
func fromQuote(pc PriceContext, count int) ([]pricing.DailyAmount, []AgeCategoryAmount, error) {
	multiplier := decimal.NewFromInt(int64(count))
	q := pc.Quote

	var daily []pricing.DailyAmount
	if len(q.DailyAmounts) > 0 {
		byDate := make(map[string]decimal.Decimal, len(q.DailyAmounts))
		for _, amount := range q.DailyAmounts {
			if !pc.Stay.Contains(amount.Date) {
				continue
			}
			key := pricing.DateKey(amount.Date)
			if _, dup := byDate[key]; dup {
				return nil, nil, fmt.Errorf("%w: duplicate amount for %s", ErrIncompleteQuote, key)
			}
			byDate[key] = amount.Amount
		}

		dates := pc.Stay.Dates()
		daily = make([]pricing.DailyAmount, 0, len(dates))
		for _, date := range dates {
			amount, ok := byDate[pricing.DateKey(date)]
			if !ok {
				return nil, nil, fmt.Errorf("%w: no amount for %s", ErrIncompleteQuote, pricing.DateKey(date))
			}
			daily = append(daily, pricing.DailyAmount{Date: date, Amount: amount.Mul(multiplier)})
		}
	} else {
		daily = pricing.SplitToDailyAmounts(pc.Stay, q.TotalAmount.Mul(multiplier), pc.Tax.Rounding)
	}

	categories := make([]AgeCategoryAmount, len(q.AgeCategories))
	for i, c := range q.AgeCategories {
		categories[i] = AgeCategoryAmount{Code: c.Code, Count: c.Count, Amount: c.Amount.Mul(multiplier)}
	}
	return daily, categories, nil
}

func fromCatalogue(a Amenity, pc PriceContext, count int) ([]pricing.DailyAmount, []AgeCategoryAmount) {
	multiplier := decimal.NewFromInt(int64(count))
	nights := decimal.NewFromInt(int64(pc.Stay.Len()))

	unitAmount := a.BaseRate
	var categories []AgeCategoryAmount
	if a.PricingUnit.perPerson() {
		categories = guestCategories(a, pc)
		unitAmount = decimal.Zero
		for i, c := range categories {
			unitAmount = unitAmount.Add(c.Amount)
			categories[i].Amount = c.Amount.Mul(multiplier)
			if a.PricingUnit.perNight() {
				categories[i].Amount = categories[i].Amount.Mul(nights)
			}
		}
	}
	unitAmount = unitAmount.Mul(multiplier)

	if !a.PricingUnit.perNight() {
		return pricing.SplitToDailyAmounts(pc.Stay, unitAmount, pc.Tax.Rounding), categories
	}
	dates := pc.Stay.Dates()
	daily := make([]pricing.DailyAmount, len(dates))
	for i, d := range dates {
		daily[i] = pricing.DailyAmount{Date: d, Amount: unitAmount}
	}
	return daily, categories
}

// guestCategories groups the guests by age category and prices one unit per guest.
func guestCategories(a Amenity, pc PriceContext) []AgeCategoryAmount {
	var out []AgeCategoryAmount
	index := map[string]int{}
	add := func(code string) {
		price := priceFor(a, code, pc.Prices)
		if i, ok := index[code]; ok {
			out[i].Count++
			out[i].Amount = out[i].Amount.Add(price)
			return
		}
		index[code] = len(out)
		out = append(out, AgeCategoryAmount{Code: code, Count: 1, Amount: price})
	}

	for range pc.Adults {
		add(AdultCategoryCode)
	}
	for _, age := range pc.ChildrenAges {
		code := AdultCategoryCode
		if c, ok := occupancy.CategoryFor(age, pc.AgeCategories); ok {
			code = c.Code
		}
		add(code)
	}
	return out
}

func priceFor(a Amenity, code string, prices []AgeCategoryPrice) decimal.Decimal {
	for _, p := range prices {
		if p.AmenityID == a.ID && p.AgeCategoryCode == code {
			return p.Price
		}
	}
	return a.BaseRate
}
