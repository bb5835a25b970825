package amenity

import (
	"booking-pricing/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeService  Type = "SERVICE"
	TypeMealPlan Type = "MEAL_PLAN"
	TypeExtraBed Type = "EXTRA_BED"
	TypePet      Type = "PET"
)

type PricingUnit string

const (
	UnitPerPersonPerNight PricingUnit = "PER_PERSON_PER_NIGHT"
	UnitPerRoomPerNight   PricingUnit = "PER_ROOM_PER_NIGHT"
	UnitPerPersonPerStay  PricingUnit = "PER_PERSON_PER_STAY"
	UnitPerRoomPerStay    PricingUnit = "PER_ROOM_PER_STAY"
	UnitPerItem           PricingUnit = "PER_ITEM"
)

func (u PricingUnit) IsValid() bool {
	switch u {
	case UnitPerPersonPerNight, UnitPerRoomPerNight, UnitPerPersonPerStay, UnitPerRoomPerStay, UnitPerItem:
		return true
	default:
		return false
	}
}

func (u PricingUnit) perPerson() bool {
	return u == UnitPerPersonPerNight || u == UnitPerPersonPerStay
}

func (u PricingUnit) perNight() bool {
	return u == UnitPerPersonPerNight || u == UnitPerRoomPerNight
}

// Inclusion says why an amenity is on a booking.
type Inclusion string

const (
	InclusionIncluded  Inclusion = "INCLUDED"
	InclusionMandatory Inclusion = "MANDATORY"
	InclusionExtra     Inclusion = "EXTRA"
	InclusionSurcharge Inclusion = "SURCHARGE"
)

// AdultCategoryCode is the age category code adults are priced under.
const AdultCategoryCode = "ADULT"

type Amenity struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Type        Type
	PricingUnit PricingUnit
	BaseRate    decimal.Decimal
}

// AgeCategoryPrice is the selling price of an amenity for one age category.
type AgeCategoryPrice struct {
	AmenityID       uuid.UUID
	AgeCategoryCode string
	Price           decimal.Decimal
}

type AgeCategoryAmount struct {
	Code   string
	Count  int
	Amount decimal.Decimal
}

// BaseQuote is the remote base pricing of one amenity for one stay and occupancy.
type BaseQuote struct {
	AmenityID     uuid.UUID
	TotalAmount   decimal.Decimal
	AgeCategories []AgeCategoryAmount
	DailyAmounts  []pricing.DailyAmount
}

// QuoteResult carries the outcome of the remote call for one amenity.
type QuoteResult struct {
	Quote *BaseQuote
	Err   error
}
