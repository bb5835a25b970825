//go:build unit || e2e

package builder

import (
	"time"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/booking"
	"booking-pricing/internal/domain/citytax"
	"booking-pricing/internal/domain/occupancy"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/domain/tax"
	reqdto "booking-pricing/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SnapshotBuilder builds a one room product, one rate plan hotel with a flat nightly price.
type SnapshotBuilder struct {
	HotelID        uuid.UUID
	HotelCode      string
	Currency       string
	TaxSetting     tax.Setting
	SpecialTaxCode string
	ChargeRates    tax.ChargeRates
	Rounding       pricing.RoundingRule

	RoomProduct booking.RoomProduct
	RatePlan    booking.RatePlan
	LinkID      uuid.UUID

	Arrival    time.Time
	Nights     int
	NetPrice   decimal.Decimal
	GrossPrice decimal.Decimal
	TaxAmount  decimal.Decimal
	Adjustment decimal.Decimal

	// GrossOnly leaves the stored net price unset.
	GrossOnly bool

	TaxRules       []tax.Rule
	CityTaxRules   []citytax.Rule
	AgeCategories  []occupancy.AgeCategory
	DefaultRates   []occupancy.DefaultRate
	OverrideRates  []occupancy.OverrideRate
	Amenities      []amenity.Amenity
	AmenityPrices  []amenity.AgeCategoryPrice
	ExtraLinks     []booking.RoomProductRatePlan
	ExtraRatePlans []booking.RatePlan
}

func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{
		HotelID:    uuid.New(),
		HotelCode:  "HTL",
		Currency:   "EUR",
		TaxSetting: tax.SettingExclusive,
		Rounding:   pricing.DefaultRoundingRule(),
		RoomProduct: booking.RoomProduct{
			ID:         uuid.New(),
			Code:       "DLX",
			Name:       "Deluxe",
			RoomSize:   1,
			Allocation: booking.AllocationSingle,
		},
		RatePlan: booking.RatePlan{
			ID:   uuid.New(),
			Code: "BAR",
			Name: "Best available rate",
		},
		LinkID:     uuid.New(),
		Arrival:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Nights:     2,
		NetPrice:   decimal.NewFromInt(100),
		GrossPrice: decimal.NewFromInt(115),
		TaxAmount:  decimal.NewFromInt(15),
		Adjustment: decimal.Zero,
		TaxRules: []tax.Rule{
			{ID: uuid.New(), Code: "VAT", Name: "Value added tax", Rate: decimal.NewFromInt(15), ServiceCode: "BAR"},
		},
	}
}

func (b *SnapshotBuilder) With(mutate func(*SnapshotBuilder)) *SnapshotBuilder {
	mutate(b)
	return b
}

func (b *SnapshotBuilder) Departure() time.Time {
	return b.Arrival.AddDate(0, 0, b.Nights)
}

func (b *SnapshotBuilder) BuildDomain() *booking.Snapshot {
	net := decimal.NewNullDecimal(b.NetPrice)
	if b.GrossOnly {
		net = decimal.NullDecimal{}
	}
	prices := make([]booking.DailySellingPrice, 0, b.Nights)
	for i := range b.Nights {
		prices = append(prices, booking.DailySellingPrice{
			RoomProductRatePlanID: b.LinkID,
			Date:                  b.Arrival.AddDate(0, 0, i),
			NetPrice:              net,
			GrossPrice:            b.GrossPrice,
			TaxAmount:             b.TaxAmount,
			RatePlanAdjustment:    b.Adjustment,
		})
	}

	links := append([]booking.RoomProductRatePlan{{
		ID:            b.LinkID,
		RoomProductID: b.RoomProduct.ID,
		RatePlanID:    b.RatePlan.ID,
	}}, b.ExtraLinks...)

	return &booking.Snapshot{
		Hotel: booking.Hotel{
			ID:          b.HotelID,
			Code:        b.HotelCode,
			Currency:    b.Currency,
			TaxProfile:  tax.HotelTaxProfile{Setting: b.TaxSetting, SpecialTaxCode: b.SpecialTaxCode},
			ChargeRates: b.ChargeRates,
			Rounding:    b.Rounding,
		},
		RoomProducts:         []booking.RoomProduct{b.RoomProduct},
		RatePlans:            append([]booking.RatePlan{b.RatePlan}, b.ExtraRatePlans...),
		RoomProductRatePlans: links,
		DailySellingPrices:   prices,
		TaxRules:             b.TaxRules,
		CityTaxRules:         b.CityTaxRules,
		AgeCategories:        b.AgeCategories,
		OccupancyRates:       occupancy.NewRateTable(b.DefaultRates, b.OverrideRates),
		Amenities:            b.Amenities,
		AmenityPrices:        b.AmenityPrices,
	}
}

func (b *SnapshotBuilder) BuildReservation(adults int, childrenAges ...int) booking.Reservation {
	return booking.Reservation{
		RoomProductID: b.RoomProduct.ID,
		RatePlanID:    b.RatePlan.ID,
		Arrival:       b.Arrival,
		Departure:     b.Departure(),
		Occupancy:     booking.Occupancy{Adults: adults, ChildrenAges: childrenAges},
	}
}

func (b *SnapshotBuilder) BuildBookingRequestDTO(adults int, childrenAges ...int) reqdto.BookingPricingRequest {
	return reqdto.BookingPricingRequest{
		HotelID: b.HotelID,
		Reservations: []reqdto.ReservationRequest{{
			RoomProductID: b.RoomProduct.ID,
			RatePlanID:    b.RatePlan.ID,
			Arrival:       b.Arrival.Format(pricing.DateLayout),
			Departure:     b.Departure().Format(pricing.DateLayout),
			Occupancy:     reqdto.OccupancyRequest{Adults: adults, ChildrenAges: childrenAges},
		}},
		IncludeCityTax: true,
	}
}

func (b *SnapshotBuilder) BuildRoomProductRequestDTO(adults int, childrenAges ...int) reqdto.RoomProductPricingRequest {
	return reqdto.RoomProductPricingRequest{
		HotelID:        b.HotelID,
		Arrival:        b.Arrival.Format(pricing.DateLayout),
		Departure:      b.Departure().Format(pricing.DateLayout),
		Occupancy:      reqdto.OccupancyRequest{Adults: adults, ChildrenAges: childrenAges},
		IncludeCityTax: true,
	}
}

// BuildRoomProductPricing returns a priced stay at the builder's flat nightly price with
// one add-on amenity and one city tax line.
func (b *SnapshotBuilder) BuildRoomProductPricing() booking.RoomProductPricing {
	nights := decimal.NewFromInt(int64(b.Nights))
	daily := make([]booking.DailyRoomRate, 0, b.Nights)
	for i := range b.Nights {
		daily = append(daily, booking.DailyRoomRate{
			Date:                        b.Arrival.AddDate(0, 0, i),
			BaseAmount:                  b.NetPrice,
			TaxAmount:                   b.TaxAmount,
			GrossAmount:                 b.GrossPrice,
			BaseAmountBeforeAdjustment:  b.NetPrice,
			TaxAmountBeforeAdjustment:   b.TaxAmount,
			GrossAmountBeforeAdjustment: b.GrossPrice,
		})
	}
	parking := amenity.Amenity{
		ID:          uuid.New(),
		Code:        "PARK",
		Name:        "Parking",
		Type:        amenity.TypeService,
		PricingUnit: amenity.UnitPerRoomPerStay,
		BaseRate:    decimal.NewFromInt(20),
	}
	gross := b.GrossPrice.Mul(nights)
	return booking.RoomProductPricing{
		RoomProductID:         b.RoomProduct.ID,
		RoomProductCode:       b.RoomProduct.Code,
		RatePlanID:            b.RatePlan.ID,
		RatePlanCode:          b.RatePlan.Code,
		RoomProductRatePlanID: b.LinkID,
		Currency:              b.Currency,
		Nights:                b.Nights,
		TotalBaseAmount:       b.NetPrice.Mul(nights),
		TotalGrossAmount:      gross,
		TotalSellingRate:      gross,
		TaxAmount:             b.TaxAmount.Mul(nights),
		AverageDailyRate:      b.GrossPrice,
		TaxDetailsByCode:      tax.Details{"VAT": b.TaxAmount.Mul(nights)},
		CityTaxAmount:         decimal.NewFromInt(5),
		CityTaxBreakdown: []citytax.Entry{{
			Code:                      "CT",
			Name:                      "City tax",
			Unit:                      citytax.UnitPerPersonPerNight,
			ChargeMethod:              citytax.ChargeMethodPayAtProperty,
			TaxAmount:                 decimal.NewFromInt(5),
			TaxAmountBeforeAdjustment: decimal.NewFromInt(5),
		}},
		AddOnAmenities: []amenity.PricedAmenity{{
			Amenity:       parking,
			Inclusion:     amenity.InclusionExtra,
			Count:         1,
			SellingAmount: parking.BaseRate,
			BaseAmount:    parking.BaseRate,
			GrossAmount:   parking.BaseRate,
			Daily: []tax.Breakdown{{
				Date:          b.Arrival,
				SellingAmount: parking.BaseRate,
				BaseAmount:    parking.BaseRate,
				GrossAmount:   parking.BaseRate,
			}},
		}},
		AmenityGrossAmount:               parking.BaseRate,
		TotalBaseAmountBeforeAdjustment:  b.NetPrice.Mul(nights),
		TotalGrossAmountBeforeAdjustment: gross,
		TaxAmountBeforeAdjustment:        b.TaxAmount.Mul(nights),
		CityTaxAmountBeforeAdjustment:    decimal.NewFromInt(5),
		DailyRoomRateList:                daily,
	}
}
