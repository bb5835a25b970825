package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

type RoundingMode string

const (
	RoundingUp          RoundingMode = "UP"
	RoundingDown        RoundingMode = "DOWN"
	RoundingHalfRoundUp RoundingMode = "HALF_ROUND_UP"
	RoundingNoRounding  RoundingMode = "NO_ROUNDING"
)

var hundred = decimal.NewFromInt(100)

func (m RoundingMode) String() string {
	return string(m)
}

func (m RoundingMode) IsValid() bool {
	switch m {
	case RoundingUp, RoundingDown, RoundingHalfRoundUp, RoundingNoRounding:
		return true
	default:
		return false
	}
}

// ParseRoundingMode never fails; unknown values resolve to HALF_ROUND_UP.
func ParseRoundingMode(s string) RoundingMode {
	m := RoundingMode(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return RoundingHalfRoundUp
	}
	return m
}

// RoundingRule is supplied per hotel per request and never mutated mid-calculation.
type RoundingRule struct {
	Mode         RoundingMode
	DecimalUnits int32
}

func DefaultRoundingRule() RoundingRule {
	return RoundingRule{Mode: RoundingHalfRoundUp, DecimalUnits: 2}
}

func (r RoundingRule) Apply(v decimal.Decimal) decimal.Decimal {
	return Round(v, r.Mode, r.DecimalUnits)
}

func (r RoundingRule) Sum(values ...decimal.Decimal) decimal.Decimal {
	return SumWithRounding(values, r.Mode, r.DecimalUnits)
}

// Unit is the smallest representable amount at the configured precision.
func (r RoundingRule) Unit() decimal.Decimal {
	return decimal.New(1, -r.places())
}

func (r RoundingRule) places() int32 {
	if r.DecimalUnits < 0 {
		return 0
	}
	return r.DecimalUnits
}

// Round applies mode at the given number of decimal places.
// NO_ROUNDING is treated as HALF_ROUND_UP: it is a display hint, downstream sums rely on it.
func Round(v decimal.Decimal, mode RoundingMode, places int32) decimal.Decimal {
	if places < 0 {
		places = 0
	}
	switch mode {
	case RoundingUp:
		return v.RoundUp(places)
	case RoundingDown:
		return v.RoundDown(places)
	default:
		return v.Round(places)
	}
}

// SumWithRounding sums first and rounds once.
func SumWithRounding(values []decimal.Decimal, mode RoundingMode, places int32) decimal.Decimal {
	return Round(Sum(values...), mode, places)
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// SafeDiv returns zero for a zero divisor.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Percent converts a percentage (15 for 15%) into a ratio.
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(hundred)
}
