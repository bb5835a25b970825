package tax

import (
	"strings"
	"time"

	"booking-pricing/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Setting string

const (
	SettingInclusive Setting = "INCLUSIVE"
	SettingExclusive Setting = "EXCLUSIVE"
)

func (s Setting) IsValid() bool {
	switch s {
	case SettingInclusive, SettingExclusive:
		return true
	default:
		return false
	}
}

// HotelTaxProfile describes how quoted prices relate to tax for one hotel.
// SpecialTaxCode names the rule that is levied on the tax-inclusive subtotal; empty means none.
type HotelTaxProfile struct {
	Setting        Setting
	SpecialTaxCode string
}

func (p HotelTaxProfile) IsInclusive() bool {
	return p.Setting == SettingInclusive
}

func (p HotelTaxProfile) IsSpecial(r Rule) bool {
	return p.SpecialTaxCode != "" && strings.EqualFold(strings.TrimSpace(r.Code), strings.TrimSpace(p.SpecialTaxCode))
}

// Rule is a tax definition scoped to a service code (rate plan or amenity code).
// Rate is a percentage: 15 means 15%.
type Rule struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Rate        decimal.Decimal
	ValidFrom   *time.Time
	ValidTo     *time.Time
	ServiceCode string
}

func (r Rule) ValidOn(d time.Time) bool {
	return pricing.ValidOn(d, r.ValidFrom, r.ValidTo)
}

func (r Rule) Matches(serviceCode string, d time.Time) bool {
	return r.ServiceCode == serviceCode && r.ValidOn(d)
}

// ChargeRates are the hotel service charge and the tax rate applied to it, both percentages.
type ChargeRates struct {
	ServiceChargeRate    decimal.Decimal
	ServiceChargeTaxRate decimal.Decimal
}

// MatchRules keeps the rules for serviceCode that are valid on d, preserving input order.
func MatchRules(rules []Rule, serviceCode string, d time.Time) []Rule {
	matched := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Matches(serviceCode, d) {
			matched = append(matched, r)
		}
	}
	return matched
}

// RulesForService keeps the rules for serviceCode regardless of validity.
func RulesForService(rules []Rule, serviceCode string) []Rule {
	matched := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.ServiceCode == serviceCode {
			matched = append(matched, r)
		}
	}
	return matched
}

func sumRates(rules []Rule) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rules {
		total = total.Add(r.Rate)
	}
	return total
}

// Details accumulates tax amounts by tax code.
type Details map[string]decimal.Decimal

func (d Details) Add(code string, amount decimal.Decimal) {
	if cur, ok := d[code]; ok {
		d[code] = cur.Add(amount)
		return
	}
	d[code] = amount
}

func (d Details) Merge(other Details) {
	for code, amount := range other {
		d.Add(code, amount)
	}
}

func (d Details) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range d {
		total = total.Add(amount)
	}
	return total
}

func (d Details) Clone() Details {
	out := make(Details, len(d))
	for code, amount := range d {
		out[code] = amount
	}
	return out
}
