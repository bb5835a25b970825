package tax

import (
	"time"

	"booking-pricing/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Breakdown splits one selling amount into base, service charge and tax.
// GrossAmount always equals BaseAmount + ServiceChargeAmount + TaxAmount.
type Breakdown struct {
	Date                time.Time
	SellingAmount       decimal.Decimal
	BaseAmount          decimal.Decimal
	ServiceChargeAmount decimal.Decimal
	TaxAmount           decimal.Decimal
	GrossAmount         decimal.Decimal
	TaxDetails          Details
}

func ZeroBreakdown(d time.Time) Breakdown {
	return Breakdown{
		Date:                d,
		SellingAmount:       decimal.Zero,
		BaseAmount:          decimal.Zero,
		ServiceChargeAmount: decimal.Zero,
		TaxAmount:           decimal.Zero,
		GrossAmount:         decimal.Zero,
		TaxDetails:          Details{},
	}
}

// Add folds other into b; TaxDetails of b is mutated.
func (b Breakdown) Add(other Breakdown) Breakdown {
	details := b.TaxDetails
	if details == nil {
		details = Details{}
	}
	details.Merge(other.TaxDetails)
	return Breakdown{
		Date:                b.Date,
		SellingAmount:       b.SellingAmount.Add(other.SellingAmount),
		BaseAmount:          b.BaseAmount.Add(other.BaseAmount),
		ServiceChargeAmount: b.ServiceChargeAmount.Add(other.ServiceChargeAmount),
		TaxAmount:           b.TaxAmount.Add(other.TaxAmount),
		GrossAmount:         b.GrossAmount.Add(other.GrossAmount),
		TaxDetails:          details,
	}
}

type DailyResult struct {
	Days   []Breakdown
	Totals Breakdown
}

type Engine struct {
	Profile  HotelTaxProfile
	Rounding pricing.RoundingRule
}

func NewEngine(profile HotelTaxProfile, rounding pricing.RoundingRule) *Engine {
	return &Engine{Profile: profile, Rounding: rounding}
}

// Calculate interprets sellingAmount as gross for inclusive hotels and as base for exclusive
// hotels, applying only the rules for serviceCode that are valid on d.
func (e *Engine) Calculate(sellingAmount decimal.Decimal, serviceCode string, d time.Time, rates ChargeRates, rules []Rule) Breakdown {
	matched := MatchRules(rules, serviceCode, d)

	var b Breakdown
	if e.Profile.IsInclusive() {
		b = e.CalculateInclusive(sellingAmount, rates, matched)
	} else {
		b = e.CalculateExclusive(sellingAmount, rates, matched)
	}
	b.Date = d
	return b
}

// CalculateInclusive derives base and service charge from a tax-inclusive gross amount.
// The divisor mirrors CalculateExclusive so that pricing the base forward returns the gross;
// the resulting tax is shared between rules by rate.
func (e *Engine) CalculateInclusive(gross decimal.Decimal, rates ChargeRates, rules []Rule) Breakdown {
	s := pricing.Percent(rates.ServiceChargeRate)
	totalRate := sumRates(rules)

	rawBase := gross.Div(e.inclusiveDivisor(s, rates.ServiceChargeTaxRate.IsPositive(), rules))
	base := e.Rounding.Apply(rawBase)
	serviceCharge := e.Rounding.Apply(base.Mul(s))
	taxAmount := gross.Sub(base).Sub(serviceCharge)

	details := Details{}
	if totalRate.IsZero() {
		serviceCharge = serviceCharge.Add(taxAmount)
		taxAmount = decimal.Zero
	} else {
		weights := make([]decimal.Decimal, len(rules))
		for i, r := range rules {
			weights[i] = r.Rate
		}
		shares := pricing.AllocateByWeight(taxAmount, weights, e.Rounding)
		for i, r := range rules {
			details.Add(r.Code, shares[i])
		}
	}

	return Breakdown{
		SellingAmount:       gross,
		BaseAmount:          base,
		ServiceChargeAmount: serviceCharge,
		TaxAmount:           taxAmount,
		GrossAmount:         gross,
		TaxDetails:          details,
	}
}

// inclusiveDivisor is gross/base under the exclusive formula: 1 + s + k·t + sp·(1 + k·t) where
// k is 1+s when the service charge is taxed and 1 otherwise, t the non-special rate and sp the
// special rate.
func (e *Engine) inclusiveDivisor(s decimal.Decimal, serviceChargeTaxed bool, rules []Rule) decimal.Decimal {
	k := one
	if serviceChargeTaxed {
		k = one.Add(s)
	}
	others, special := decimal.Zero, decimal.Zero
	for _, r := range rules {
		if e.Profile.IsSpecial(r) {
			special = special.Add(r.Rate)
		} else {
			others = others.Add(r.Rate)
		}
	}
	otherTaxes := k.Mul(pricing.Percent(others))
	return one.Add(s).Add(otherTaxes).Add(pricing.Percent(special).Mul(one.Add(otherTaxes)))
}

// CalculateExclusive adds service charge and taxes on top of base. The special rule, if any,
// is computed last on base plus every other tax.
func (e *Engine) CalculateExclusive(base decimal.Decimal, rates ChargeRates, rules []Rule) Breakdown {
	s := pricing.Percent(rates.ServiceChargeRate)
	serviceCharge := e.Rounding.Apply(base.Mul(s))

	taxable := base
	if rates.ServiceChargeTaxRate.IsPositive() {
		taxable = taxable.Add(serviceCharge)
	}

	details := Details{}
	otherTaxes := decimal.Zero
	var special []Rule
	for _, r := range rules {
		if e.Profile.IsSpecial(r) {
			special = append(special, r)
			continue
		}
		amount := e.Rounding.Apply(taxable.Mul(pricing.Percent(r.Rate)))
		details.Add(r.Code, amount)
		otherTaxes = otherTaxes.Add(amount)
	}

	taxAmount := otherTaxes
	for _, r := range special {
		amount := e.Rounding.Apply(otherTaxes.Add(base).Mul(pricing.Percent(r.Rate)))
		details.Add(r.Code, amount)
		taxAmount = taxAmount.Add(amount)
	}

	return Breakdown{
		SellingAmount:       base,
		BaseAmount:          base,
		ServiceChargeAmount: serviceCharge,
		TaxAmount:           taxAmount,
		GrossAmount:         base.Add(serviceCharge).Add(taxAmount),
		TaxDetails:          details,
	}
}

// CalculateDaily prorates sellingAmount over dates and runs Calculate for each day so that
// rules starting or expiring mid-stay are honoured.
func (e *Engine) CalculateDaily(dates pricing.DateRange, sellingAmount decimal.Decimal, serviceCode string, rates ChargeRates, rules []Rule) DailyResult {
	return e.CalculatePerDay(pricing.SplitToDailyAmounts(dates, sellingAmount, e.Rounding), serviceCode, rates, rules)
}

func (e *Engine) CalculatePerDay(amounts []pricing.DailyAmount, serviceCode string, rates ChargeRates, rules []Rule) DailyResult {
	result := DailyResult{
		Days:   make([]Breakdown, 0, len(amounts)),
		Totals: ZeroBreakdown(time.Time{}),
	}
	for _, a := range amounts {
		day := e.Calculate(a.Amount, serviceCode, a.Date, rates, rules)
		result.Days = append(result.Days, day)
		result.Totals = result.Totals.Add(day)
	}
	return result
}

// NetFromGross backs the taxes out of a gross room price for exclusive hotels. Without a
// matching rule, or for inclusive hotels, the gross is returned unchanged.
func (e *Engine) NetFromGross(gross decimal.Decimal, serviceCode string, d time.Time, rules []Rule) decimal.Decimal {
	if e.Profile.IsInclusive() {
		return gross
	}
	matched := MatchRules(rules, serviceCode, d)
	if len(matched) == 0 {
		return gross
	}

	var specialRate *decimal.Decimal
	others := decimal.Zero
	for _, r := range matched {
		if e.Profile.IsSpecial(r) && specialRate == nil {
			rate := r.Rate
			specialRate = &rate
			continue
		}
		others = others.Add(r.Rate)
	}

	multiplier := one.Add(pricing.Percent(others))
	if specialRate != nil {
		multiplier = one.Add(pricing.Percent(*specialRate)).Mul(multiplier)
	}
	return e.Rounding.Apply(pricing.SafeDiv(gross, multiplier))
}
