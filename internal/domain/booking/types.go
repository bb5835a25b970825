package booking

import (
	"errors"
	"time"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/citytax"
	"booking-pricing/internal/domain/occupancy"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/domain/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput        = errors.New("invalid pricing input")
	ErrUpstreamUnavailable = errors.New("upstream pricing unavailable")
)

// UnallocatedTaxCode receives accommodation tax no rule could be weighted against.
const UnallocatedTaxCode = "UNALLOCATED"

type Allocation string

const (
	AllocationAll    Allocation = "ALL"
	AllocationSingle Allocation = "SINGLE"
)

type Hotel struct {
	ID          uuid.UUID
	Code        string
	Currency    string
	TaxProfile  tax.HotelTaxProfile
	ChargeRates tax.ChargeRates
	Rounding    pricing.RoundingRule
}

type RoomProduct struct {
	ID         uuid.UUID
	Code       string
	Name       string
	RoomSize   int
	Allocation Allocation
	AmenityIDs []uuid.UUID
}

func (p RoomProduct) TotalRooms() int {
	return citytax.TotalRooms(p.RoomSize, p.Allocation == AllocationAll)
}

type RatePlan struct {
	ID                  uuid.UUID
	Code                string
	Name                string
	IncludedAmenityIDs  []uuid.UUID
	MandatoryAmenityIDs []uuid.UUID
}

// RoomProductRatePlan links a sellable room product to a compatible rate plan.
type RoomProductRatePlan struct {
	ID            uuid.UUID
	RoomProductID uuid.UUID
	RatePlanID    uuid.UUID
}

// DailySellingPrice is the stored price of one night. An invalid NetPrice means only the gross
// is known and the net is composed from it.
type DailySellingPrice struct {
	RoomProductRatePlanID uuid.UUID
	Date                  time.Time
	NetPrice              decimal.NullDecimal
	GrossPrice            decimal.Decimal
	TaxAmount             decimal.Decimal
	RatePlanAdjustment    decimal.Decimal
}

// Snapshot is the immutable data of one hotel a calculation runs against.
type Snapshot struct {
	Hotel                Hotel
	RoomProducts         []RoomProduct
	RatePlans            []RatePlan
	RoomProductRatePlans []RoomProductRatePlan
	DailySellingPrices   []DailySellingPrice
	TaxRules             []tax.Rule
	CityTaxRules         []citytax.Rule
	AgeCategories        []occupancy.AgeCategory
	OccupancyRates       *occupancy.RateTable
	Amenities            []amenity.Amenity
	AmenityPrices        []amenity.AgeCategoryPrice
}

type AmenityRequest struct {
	AmenityID uuid.UUID
	Count     int
}

// Occupancy is who stays in one room. Pets and ExtraBeds trigger the matching
// room product amenities as surcharges.
type Occupancy struct {
	Adults       int
	ChildrenAges []int
	Pets         int
	ExtraBeds    int
}

type Reservation struct {
	RoomProductID uuid.UUID
	RatePlanID    uuid.UUID
	Arrival       time.Time
	Departure     time.Time
	Occupancy     Occupancy
	Amenities     []AmenityRequest
	// Quotes holds the remote base pricing per amenity ID; amenities without an entry are
	// priced from the catalogue.
	Quotes map[uuid.UUID]amenity.QuoteResult
}

type BookingInput struct {
	Snapshot       *Snapshot
	Reservations   []Reservation
	IncludeCityTax bool
}

// RoomProductInput asks for every compatible room product and rate plan over one stay.
// Empty ID filters select everything.
type RoomProductInput struct {
	Snapshot       *Snapshot
	Arrival        time.Time
	Departure      time.Time
	Occupancy      Occupancy
	RoomProductIDs []uuid.UUID
	RatePlanIDs    []uuid.UUID
	IncludeCityTax bool
	Quotes         map[uuid.UUID]amenity.QuoteResult
}

type DailyRoomRate struct {
	Date                        time.Time
	BaseAmount                  decimal.Decimal
	TaxAmount                   decimal.Decimal
	ServiceChargeAmount         decimal.Decimal
	GrossAmount                 decimal.Decimal
	OccupancySurcharge          decimal.Decimal
	RatePlanAdjustment          decimal.Decimal
	BaseAmountBeforeAdjustment  decimal.Decimal
	TaxAmountBeforeAdjustment   decimal.Decimal
	GrossAmountBeforeAdjustment decimal.Decimal
}

type RoomProductPricing struct {
	RoomProductID         uuid.UUID
	RoomProductCode       string
	RatePlanID            uuid.UUID
	RatePlanCode          string
	RoomProductRatePlanID uuid.UUID
	Currency              string
	Nights                int

	TotalBaseAmount     decimal.Decimal
	TotalGrossAmount    decimal.Decimal
	TotalSellingRate    decimal.Decimal
	TaxAmount           decimal.Decimal
	ServiceChargeAmount decimal.Decimal
	AverageDailyRate    decimal.Decimal
	TaxDetailsByCode    tax.Details

	CityTaxAmount    decimal.Decimal
	CityTaxBreakdown []citytax.Entry

	IncludedAmenities  []amenity.PricedAmenity
	AddOnAmenities     []amenity.PricedAmenity
	AmenityTaxAmount   decimal.Decimal
	AmenityGrossAmount decimal.Decimal

	TotalBaseAmountBeforeAdjustment  decimal.Decimal
	TotalGrossAmountBeforeAdjustment decimal.Decimal
	TaxAmountBeforeAdjustment        decimal.Decimal
	CityTaxAmountBeforeAdjustment    decimal.Decimal

	DailyRoomRateList []DailyRoomRate
}

type ReservationPricing struct {
	Index   int
	Pricing RoomProductPricing
}

type BookingTotals struct {
	TotalBaseAmount     decimal.Decimal
	TotalGrossAmount    decimal.Decimal
	TotalSellingRate    decimal.Decimal
	TaxAmount           decimal.Decimal
	ServiceChargeAmount decimal.Decimal
	CityTaxAmount       decimal.Decimal
	AmenityTaxAmount    decimal.Decimal
	AmenityGrossAmount  decimal.Decimal
	// TotalAmount is what the guest pays: selling rate, add-on amenities and, for exclusive
	// hotels, city tax.
	TotalAmount      decimal.Decimal
	TaxDetailsByCode tax.Details
}

type BookingPricingResult struct {
	HotelID      uuid.UUID
	Currency     string
	Reservations []ReservationPricing
	Totals       BookingTotals
}
