package citytax

import (
	"time"

	"booking-pricing/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyRoomPrice is the room price of one night, after and before rate plan adjustments.
type DailyRoomPrice struct {
	Date                  time.Time
	Gross                 decimal.Decimal
	Net                   decimal.Decimal
	GrossBeforeAdjustment decimal.Decimal
	NetBeforeAdjustment   decimal.Decimal
}

type Input struct {
	Rules        []Rule
	Days         []DailyRoomPrice
	Adults       int
	ChildrenAges []int
	TotalRooms   int
	Rounding     pricing.RoundingRule
}

// AgeGroupAmount is the child tax charged under one age group; a nil AgeGroupID collects
// children that matched no group and paid the default value.
type AgeGroupAmount struct {
	AgeGroupID uuid.UUID
	FromAge    *int
	ToAge      *int
	TaxAmount  decimal.Decimal
}

type Entry struct {
	Code                      string
	Name                      string
	Unit                      Unit
	ChargeMethod              ChargeMethod
	TaxAmount                 decimal.Decimal
	TaxAmountAdult            decimal.Decimal
	TaxAmountBeforeAdjustment decimal.Decimal
	TaxAmountAgeGroup         []AgeGroupAmount
}

type Result struct {
	Entries                   []Entry
	TaxAmount                 decimal.Decimal
	TaxAmountBeforeAdjustment decimal.Decimal
}

// accumulator is threaded through the date fold; it never outlives one Calculate call.
type accumulator struct {
	seen    map[Unit]struct{}
	entries []Entry
	index   map[string]int
}

func newAccumulator() accumulator {
	return accumulator{
		seen:  map[Unit]struct{}{},
		index: map[string]int{},
	}
}

// Calculate computes the city tax of one room for the nights in in.Days.
func Calculate(in Input) Result {
	acc := newAccumulator()
	for _, day := range in.Days {
		acc = acc.applyDay(in, day)
	}
	return acc.result()
}

func (acc accumulator) applyDay(in Input, day DailyRoomPrice) accumulator {
	for _, rule := range in.Rules {
		if !rule.Unit.IsValid() || !rule.ValidOn(day.Date) {
			continue
		}
		if rule.Unit.CountedOnce() {
			if _, ok := acc.seen[rule.Unit]; ok {
				continue
			}
			acc.seen[rule.Unit] = struct{}{}
		}
		acc = acc.merge(evaluate(in, rule, day))
	}
	return acc
}

func (acc accumulator) merge(e Entry) accumulator {
	i, ok := acc.index[e.Code]
	if !ok {
		acc.index[e.Code] = len(acc.entries)
		acc.entries = append(acc.entries, e)
		return acc
	}
	cur := acc.entries[i]
	cur.TaxAmount = cur.TaxAmount.Add(e.TaxAmount)
	cur.TaxAmountAdult = cur.TaxAmountAdult.Add(e.TaxAmountAdult)
	cur.TaxAmountBeforeAdjustment = cur.TaxAmountBeforeAdjustment.Add(e.TaxAmountBeforeAdjustment)
	cur.TaxAmountAgeGroup = mergeAgeGroups(append(cur.TaxAmountAgeGroup, e.TaxAmountAgeGroup...))
	acc.entries[i] = cur
	return acc
}

func (acc accumulator) result() Result {
	res := Result{
		Entries:                   make([]Entry, len(acc.entries)),
		TaxAmount:                 decimal.Zero,
		TaxAmountBeforeAdjustment: decimal.Zero,
	}
	copy(res.Entries, acc.entries)
	for _, e := range acc.entries {
		res.TaxAmount = res.TaxAmount.Add(e.TaxAmount)
		res.TaxAmountBeforeAdjustment = res.TaxAmountBeforeAdjustment.Add(e.TaxAmountBeforeAdjustment)
	}
	return res
}

func evaluate(in Input, rule Rule, day DailyRoomPrice) Entry {
	nights := 1
	if rule.Unit.PerNight() {
		nights = rule.NightCount(day.Date, day.Date.AddDate(0, 0, 1))
	}
	rate := rule.Value
	rooms := decimal.NewFromInt(int64(max(in.TotalRooms, 1)))
	n := decimal.NewFromInt(int64(nights))

	var adult, adultBefore decimal.Decimal
	switch rule.Unit {
	case UnitFixedOnGrossAmountRoom:
		adult = rooms.Mul(rate)
		adultBefore = adult
	case UnitPercentageOnGrossAmountRoom:
		gross, grossBefore := stayTotals(in.Days, rule, func(p DailyRoomPrice) (decimal.Decimal, decimal.Decimal) {
			return p.Gross, p.GrossBeforeAdjustment
		})
		adult = gross.Mul(pricing.Percent(rate))
		adultBefore = grossBefore.Mul(pricing.Percent(rate))
	case UnitPercentageOnNetAmountRoom:
		net, netBefore := stayTotals(in.Days, rule, func(p DailyRoomPrice) (decimal.Decimal, decimal.Decimal) {
			return p.Net, p.NetBeforeAdjustment
		})
		adult = net.Mul(pricing.Percent(rate))
		adultBefore = netBefore.Mul(pricing.Percent(rate))
	case UnitPerPersonPerNight:
		adult = decimal.NewFromInt(int64(in.Adults)).Mul(n).Mul(rate)
		adultBefore = adult
	case UnitPerPersonPerStayFixed:
		adult = decimal.NewFromInt(int64(in.Adults)).Mul(rate)
		adultBefore = adult
	case UnitPerRoomPerNight:
		adult = rooms.Mul(n).Mul(rate)
		adultBefore = adult
	}
	adult = in.Rounding.Apply(adult)
	adultBefore = in.Rounding.Apply(adultBefore)

	var groups []AgeGroupAmount
	children := decimal.Zero
	if rule.Unit.PerPerson() {
		for _, age := range in.ChildrenAges {
			amount := AgeGroupAmount{}
			childRate := rule.Value
			if g, ok := rule.AgeGroupFor(age); ok {
				amount.AgeGroupID = g.ID
				amount.FromAge = g.FromAge
				amount.ToAge = g.ToAge
				childRate = g.Value
			}
			if rule.Unit == UnitPerPersonPerNight {
				amount.TaxAmount = in.Rounding.Apply(n.Mul(childRate))
			} else {
				amount.TaxAmount = in.Rounding.Apply(childRate)
			}
			children = children.Add(amount.TaxAmount)
			groups = append(groups, amount)
		}
	}

	return Entry{
		Code:                      rule.Code,
		Name:                      rule.Name,
		Unit:                      rule.Unit,
		ChargeMethod:              rule.ChargeMethod,
		TaxAmount:                 adult.Add(children),
		TaxAmountAdult:            adult,
		TaxAmountBeforeAdjustment: adultBefore.Add(children),
		TaxAmountAgeGroup:         mergeAgeGroups(groups),
	}
}

// stayTotals sums the prices of the nights on which the rule is valid.
func stayTotals(days []DailyRoomPrice, rule Rule, pick func(DailyRoomPrice) (decimal.Decimal, decimal.Decimal)) (decimal.Decimal, decimal.Decimal) {
	after, before := decimal.Zero, decimal.Zero
	for _, day := range days {
		if !rule.ValidOn(day.Date) {
			continue
		}
		a, b := pick(day)
		after = after.Add(a)
		before = before.Add(b)
	}
	return after, before
}

func mergeAgeGroups(groups []AgeGroupAmount) []AgeGroupAmount {
	if len(groups) == 0 {
		return nil
	}
	out := make([]AgeGroupAmount, 0, len(groups))
	index := make(map[uuid.UUID]int, len(groups))
	for _, g := range groups {
		if i, ok := index[g.AgeGroupID]; ok {
			out[i].TaxAmount = out[i].TaxAmount.Add(g.TaxAmount)
			continue
		}
		index[g.AgeGroupID] = len(out)
		out = append(out, g)
	}
	return out
}
