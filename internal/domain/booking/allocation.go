package booking

import (
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/domain/tax"

	"github.com/shopspring/decimal"
)

// AllocateAccommodationTax distributes an already known accommodation tax total across tax codes,
// weighting each rule of serviceCode by rate times the nights it is valid within stay.
// The last weighted code absorbs the rounding remainder.
func AllocateAccommodationTax(total decimal.Decimal, stay pricing.DateRange, serviceCode string, rules []tax.Rule, rounding pricing.RoundingRule) tax.Details {
	details := tax.Details{}
	if total.IsZero() {
		return details
	}

	var codes []string
	weights := map[string]decimal.Decimal{}
	for _, r := range tax.RulesForService(rules, serviceCode) {
		w := r.Rate.Mul(decimal.NewFromInt(int64(stay.IntersectDays(r.ValidFrom, r.ValidTo))))
		cur, ok := weights[r.Code]
		if !ok {
			codes = append(codes, r.Code)
			cur = decimal.Zero
		}
		weights[r.Code] = cur.Add(w)
	}

	ordered := make([]decimal.Decimal, len(codes))
	sum := decimal.Zero
	for i, code := range codes {
		ordered[i] = weights[code]
		sum = sum.Add(ordered[i])
	}
	if !sum.IsPositive() {
		details.Add(UnallocatedTaxCode, total)
		return details
	}

	shares := pricing.AllocateByWeight(total, ordered, rounding)
	for i, code := range codes {
		if ordered[i].IsZero() {
			continue
		}
		details.Add(code, shares[i])
	}
	return details
}
