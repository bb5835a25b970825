package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitAcrossDates divides total evenly over the inclusive range [from, to]. Each share is
// rounded and the last date absorbs the remainder so the series sums to total exactly.
func SplitAcrossDates(from, to time.Time, total decimal.Decimal, places int32, mode RoundingMode) []decimal.Decimal {
	dates := DatesBetween(from, to)
	switch len(dates) {
	case 0:
		return []decimal.Decimal{}
	case 1:
		return []decimal.Decimal{total}
	}

	share := Round(total.Div(decimal.NewFromInt(int64(len(dates)))), mode, places)
	shares := make([]decimal.Decimal, len(dates))
	allocated := decimal.Zero
	for i := 0; i < len(dates)-1; i++ {
		shares[i] = share
		allocated = allocated.Add(share)
	}
	shares[len(dates)-1] = total.Sub(allocated)
	return shares
}

// DailyAmount pairs a date with an amount.
type DailyAmount struct {
	Date   time.Time
	Amount decimal.Decimal
}

func SplitToDailyAmounts(dates DateRange, total decimal.Decimal, rule RoundingRule) []DailyAmount {
	shares := SplitAcrossDates(dates.From(), dates.To(), total, rule.places(), rule.Mode)
	out := make([]DailyAmount, len(shares))
	for i, d := range dates.Dates() {
		if i >= len(shares) {
			break
		}
		out[i] = DailyAmount{Date: d, Amount: shares[i]}
	}
	return out
}

// AllocateByWeight distributes total over weights proportionally. Shares are rounded with rule
// and the last non-zero weight absorbs the remainder. A zero weight sum yields all zeros.
func AllocateByWeight(total decimal.Decimal, weights []decimal.Decimal, rule RoundingRule) []decimal.Decimal {
	out := make([]decimal.Decimal, len(weights))
	for i := range out {
		out[i] = decimal.Zero
	}
	sum := Sum(weights...)
	if sum.IsZero() {
		return out
	}

	last := -1
	for i, w := range weights {
		if !w.IsZero() {
			last = i
		}
	}

	allocated := decimal.Zero
	for i, w := range weights {
		if i == last {
			out[i] = total.Sub(allocated)
			break
		}
		if w.IsZero() {
			continue
		}
		out[i] = rule.Apply(total.Mul(w).Div(sum))
		allocated = allocated.Add(out[i])
	}
	return out
}
