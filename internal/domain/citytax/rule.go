package citytax

import (
	"time"

	"booking-pricing/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitFixedOnGrossAmountRoom      Unit = "FIXED_ON_GROSS_AMOUNT_ROOM"
	UnitPercentageOnGrossAmountRoom Unit = "PERCENTAGE_ON_GROSS_AMOUNT_ROOM"
	UnitPercentageOnNetAmountRoom   Unit = "PERCENTAGE_ON_NET_AMOUNT_ROOM"
	UnitPerPersonPerNight           Unit = "PER_PERSON_PER_NIGHT"
	UnitPerPersonPerStayFixed       Unit = "PER_PERSON_PER_STAY_FIXED"
	UnitPerRoomPerNight             Unit = "PER_ROOM_PER_NIGHT"
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitFixedOnGrossAmountRoom, UnitPercentageOnGrossAmountRoom, UnitPercentageOnNetAmountRoom,
		UnitPerPersonPerNight, UnitPerPersonPerStayFixed, UnitPerRoomPerNight:
		return true
	default:
		return false
	}
}

// CountedOnce units are charged at most once per calculation regardless of stay length.
func (u Unit) CountedOnce() bool {
	switch u {
	case UnitPercentageOnGrossAmountRoom, UnitPercentageOnNetAmountRoom,
		UnitPerPersonPerStayFixed, UnitFixedOnGrossAmountRoom:
		return true
	default:
		return false
	}
}

func (u Unit) PerNight() bool {
	return u == UnitPerPersonPerNight || u == UnitPerRoomPerNight
}

// PerPerson units charge children individually, honouring age groups.
func (u Unit) PerPerson() bool {
	return u == UnitPerPersonPerNight || u == UnitPerPersonPerStayFixed
}

type ChargeMethod string

const (
	ChargeMethodPayAtProperty ChargeMethod = "PAY_AT_PROPERTY"
	ChargeMethodPayOnBooking  ChargeMethod = "PAY_ON_BOOKING"
)

// AgeGroup overrides the rule value for children whose age lies in [FromAge, ToAge].
// A nil bound is open on that side.
type AgeGroup struct {
	ID      uuid.UUID
	FromAge *int
	ToAge   *int
	Value   decimal.Decimal
}

func (g AgeGroup) Contains(age int) bool {
	if g.FromAge != nil && age < *g.FromAge {
		return false
	}
	if g.ToAge != nil && age > *g.ToAge {
		return false
	}
	return true
}

type Rule struct {
	ID           uuid.UUID
	Code         string
	Name         string
	Unit         Unit
	Value        decimal.Decimal
	ChargeMethod ChargeMethod
	ValidFrom    *time.Time
	ValidTo      *time.Time
	AgeGroups    []AgeGroup
}

func (r Rule) ValidOn(d time.Time) bool {
	return pricing.ValidOn(d, r.ValidFrom, r.ValidTo)
}

// AgeGroupFor returns the first age group containing age.
func (r Rule) AgeGroupFor(age int) (AgeGroup, bool) {
	for _, g := range r.AgeGroups {
		if g.Contains(age) {
			return g, true
		}
	}
	return AgeGroup{}, false
}

// NightCount clips the rule validity against [from, to) and returns the nights left.
func (r Rule) NightCount(from, to time.Time) int {
	finalFrom, finalTo := pricing.TruncateDate(from), pricing.TruncateDate(to)
	if r.ValidFrom != nil && pricing.TruncateDate(*r.ValidFrom).After(finalFrom) {
		finalFrom = pricing.TruncateDate(*r.ValidFrom)
	}
	if r.ValidTo != nil {
		end := pricing.TruncateDate(*r.ValidTo).AddDate(0, 0, 1)
		if end.Before(finalTo) {
			finalTo = end
		}
	}
	if !finalFrom.Before(finalTo) {
		return 0
	}
	return pricing.DaysBetween(finalFrom, finalTo)
}

// TotalRooms is the number of units a city tax per room applies to.
func TotalRooms(roomSize int, allUnits bool) int {
	if allUnits && roomSize > 0 {
		return roomSize
	}
	return 1
}
