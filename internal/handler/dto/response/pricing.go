package response

import (
	"time"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/booking"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/usecase/queries"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type DailyRoomRateResponse struct {
	Date                        string          `json:"date"`
	BaseAmount                  decimal.Decimal `json:"base_amount"`
	TaxAmount                   decimal.Decimal `json:"tax_amount"`
	ServiceChargeAmount         decimal.Decimal `json:"service_charge_amount"`
	GrossAmount                 decimal.Decimal `json:"gross_amount"`
	OccupancySurcharge          decimal.Decimal `json:"occupancy_surcharge"`
	RatePlanAdjustment          decimal.Decimal `json:"rate_plan_adjustment"`
	BaseAmountBeforeAdjustment  decimal.Decimal `json:"base_amount_before_adjustment"`
	TaxAmountBeforeAdjustment   decimal.Decimal `json:"tax_amount_before_adjustment"`
	GrossAmountBeforeAdjustment decimal.Decimal `json:"gross_amount_before_adjustment"`
}

type AmenityDailyResponse struct {
	Date                string                     `json:"date"`
	SellingAmount       decimal.Decimal            `json:"selling_amount"`
	BaseAmount          decimal.Decimal            `json:"base_amount"`
	ServiceChargeAmount decimal.Decimal            `json:"service_charge_amount"`
	TaxAmount           decimal.Decimal            `json:"tax_amount"`
	GrossAmount         decimal.Decimal            `json:"gross_amount"`
	TaxDetails          map[string]decimal.Decimal `json:"tax_details,omitempty"`
}

type AgeCategoryAmountResponse struct {
	Code   string          `json:"code"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type AmenityResponse struct {
	AmenityID           string                      `json:"amenity_id"`
	Code                string                      `json:"code"`
	Name                string                      `json:"name"`
	Type                string                      `json:"type"`
	PricingUnit         string                      `json:"pricing_unit"`
	Inclusion           string                      `json:"inclusion"`
	Count               int                         `json:"count"`
	SellingAmount       decimal.Decimal             `json:"selling_amount"`
	BaseAmount          decimal.Decimal             `json:"base_amount"`
	ServiceChargeAmount decimal.Decimal             `json:"service_charge_amount"`
	TaxAmount           decimal.Decimal             `json:"tax_amount"`
	GrossAmount         decimal.Decimal             `json:"gross_amount"`
	TaxDetails          map[string]decimal.Decimal  `json:"tax_details,omitempty"`
	AgeCategories       []AgeCategoryAmountResponse `json:"age_categories,omitempty"`
	Daily               []AmenityDailyResponse      `json:"daily"`
	Degraded            bool                        `json:"degraded,omitempty"`
	Error               string                      `json:"error,omitempty"`
}

type CityTaxAgeGroupResponse struct {
	AgeGroupID string          `json:"age_group_id"`
	FromAge    *int            `json:"from_age,omitempty"`
	ToAge      *int            `json:"to_age,omitempty"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
}

type CityTaxResponse struct {
	Code                      string                    `json:"code"`
	Name                      string                    `json:"name"`
	Unit                      string                    `json:"unit"`
	ChargeMethod              string                    `json:"charge_method"`
	TaxAmount                 decimal.Decimal           `json:"tax_amount"`
	TaxAmountAdult            decimal.Decimal           `json:"tax_amount_adult"`
	TaxAmountBeforeAdjustment decimal.Decimal           `json:"tax_amount_before_adjustment"`
	TaxAmountAgeGroup         []CityTaxAgeGroupResponse `json:"tax_amount_age_group,omitempty"`
}

type RoomProductPricingResponse struct {
	RoomProductID         string `json:"room_product_id"`
	RoomProductCode       string `json:"room_product_code"`
	RatePlanID            string `json:"rate_plan_id"`
	RatePlanCode          string `json:"rate_plan_code"`
	RoomProductRatePlanID string `json:"room_product_rate_plan_id"`
	Currency              string `json:"currency"`
	Nights                int    `json:"nights"`

	TotalBaseAmount     decimal.Decimal            `json:"total_base_amount"`
	TotalGrossAmount    decimal.Decimal            `json:"total_gross_amount"`
	TotalSellingRate    decimal.Decimal            `json:"total_selling_rate"`
	TaxAmount           decimal.Decimal            `json:"tax_amount"`
	ServiceChargeAmount decimal.Decimal            `json:"service_charge_amount"`
	AverageDailyRate    decimal.Decimal            `json:"average_daily_rate"`
	TaxDetailsByCode    map[string]decimal.Decimal `json:"tax_details_by_code,omitempty"`

	CityTaxAmount    decimal.Decimal   `json:"city_tax_amount"`
	CityTaxBreakdown []CityTaxResponse `json:"city_tax_breakdown"`

	IncludedAmenities  []AmenityResponse `json:"included_amenities"`
	AddOnAmenities     []AmenityResponse `json:"add_on_amenities"`
	AmenityTaxAmount   decimal.Decimal   `json:"amenity_tax_amount"`
	AmenityGrossAmount decimal.Decimal   `json:"amenity_gross_amount"`

	TotalBaseAmountBeforeAdjustment  decimal.Decimal `json:"total_base_amount_before_adjustment"`
	TotalGrossAmountBeforeAdjustment decimal.Decimal `json:"total_gross_amount_before_adjustment"`
	TaxAmountBeforeAdjustment        decimal.Decimal `json:"tax_amount_before_adjustment"`
	CityTaxAmountBeforeAdjustment    decimal.Decimal `json:"city_tax_amount_before_adjustment"`

	DailyRoomRateList []DailyRoomRateResponse `json:"daily_room_rate_list"`
}

type ReservationPricingResponse struct {
	Index   int                        `json:"index"`
	Pricing RoomProductPricingResponse `json:"pricing"`
}

type BookingTotalsResponse struct {
	TotalBaseAmount     decimal.Decimal            `json:"total_base_amount"`
	TotalGrossAmount    decimal.Decimal            `json:"total_gross_amount"`
	TotalSellingRate    decimal.Decimal            `json:"total_selling_rate"`
	TaxAmount           decimal.Decimal            `json:"tax_amount"`
	ServiceChargeAmount decimal.Decimal            `json:"service_charge_amount"`
	CityTaxAmount       decimal.Decimal            `json:"city_tax_amount"`
	AmenityTaxAmount    decimal.Decimal            `json:"amenity_tax_amount"`
	AmenityGrossAmount  decimal.Decimal            `json:"amenity_gross_amount"`
	TotalAmount         decimal.Decimal            `json:"total_amount"`
	TaxDetailsByCode    map[string]decimal.Decimal `json:"tax_details_by_code,omitempty"`
}

type BookingPricingResponse struct {
	HotelID      string                       `json:"hotel_id"`
	Currency     string                       `json:"currency"`
	Reservations []ReservationPricingResponse `json:"reservations"`
	Totals       BookingTotalsResponse        `json:"totals"`
	CalculatedAt int64                        `json:"calculated_at"`
}

type RoomProductPricingListResponse struct {
	HotelID      string                       `json:"hotel_id"`
	Currency     string                       `json:"currency"`
	Arrival      string                       `json:"arrival"`
	Departure    string                       `json:"departure"`
	Items        []RoomProductPricingResponse `json:"items"`
	CalculatedAt int64                        `json:"calculated_at"`
}

// dates travel as YYYY-MM-DD
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				t, _ := src.(time.Time)
				return t.Format(pricing.DateLayout), nil
			},
		},
	},
}

func FromBookingPricingView(v *queries.BookingPricingView) (*BookingPricingResponse, error) {
	res := &BookingPricingResponse{
		HotelID:      v.Result.HotelID.String(),
		Currency:     v.Result.Currency,
		Reservations: make([]ReservationPricingResponse, 0, len(v.Result.Reservations)),
		CalculatedAt: v.CalculatedAt.Unix(),
	}
	for _, r := range v.Result.Reservations {
		item, err := fromRoomProductPricing(r.Pricing)
		if err != nil {
			return nil, err
		}
		res.Reservations = append(res.Reservations, ReservationPricingResponse{Index: r.Index, Pricing: *item})
	}
	if err := copier.CopyWithOption(&res.Totals, &v.Result.Totals, copyOption); err != nil {
		return nil, err
	}
	return res, nil
}

func FromRoomProductPricingView(v *queries.RoomProductPricingView) (*RoomProductPricingListResponse, error) {
	res := &RoomProductPricingListResponse{
		HotelID:      v.HotelID.String(),
		Currency:     v.Currency,
		Arrival:      v.Arrival.Format(pricing.DateLayout),
		Departure:    v.Departure.Format(pricing.DateLayout),
		Items:        make([]RoomProductPricingResponse, 0, len(v.Items)),
		CalculatedAt: v.CalculatedAt.Unix(),
	}
	for _, p := range v.Items {
		item, err := fromRoomProductPricing(p)
		if err != nil {
			return nil, err
		}
		res.Items = append(res.Items, *item)
	}
	return res, nil
}

func fromRoomProductPricing(p booking.RoomProductPricing) (*RoomProductPricingResponse, error) {
	res := &RoomProductPricingResponse{
		RoomProductID:         p.RoomProductID.String(),
		RoomProductCode:       p.RoomProductCode,
		RatePlanID:            p.RatePlanID.String(),
		RatePlanCode:          p.RatePlanCode,
		RoomProductRatePlanID: p.RoomProductRatePlanID.String(),
		Currency:              p.Currency,
		Nights:                p.Nights,

		TotalBaseAmount:     p.TotalBaseAmount,
		TotalGrossAmount:    p.TotalGrossAmount,
		TotalSellingRate:    p.TotalSellingRate,
		TaxAmount:           p.TaxAmount,
		ServiceChargeAmount: p.ServiceChargeAmount,
		AverageDailyRate:    p.AverageDailyRate,
		TaxDetailsByCode:    p.TaxDetailsByCode,

		CityTaxAmount:      p.CityTaxAmount,
		CityTaxBreakdown:   make([]CityTaxResponse, 0, len(p.CityTaxBreakdown)),
		AmenityTaxAmount:   p.AmenityTaxAmount,
		AmenityGrossAmount: p.AmenityGrossAmount,

		TotalBaseAmountBeforeAdjustment:  p.TotalBaseAmountBeforeAdjustment,
		TotalGrossAmountBeforeAdjustment: p.TotalGrossAmountBeforeAdjustment,
		TaxAmountBeforeAdjustment:        p.TaxAmountBeforeAdjustment,
		CityTaxAmountBeforeAdjustment:    p.CityTaxAmountBeforeAdjustment,
	}

	if err := copier.CopyWithOption(&res.DailyRoomRateList, &p.DailyRoomRateList, copyOption); err != nil {
		return nil, err
	}
	for _, e := range p.CityTaxBreakdown {
		entry := CityTaxResponse{
			Code:                      e.Code,
			Name:                      e.Name,
			Unit:                      string(e.Unit),
			ChargeMethod:              string(e.ChargeMethod),
			TaxAmount:                 e.TaxAmount,
			TaxAmountAdult:            e.TaxAmountAdult,
			TaxAmountBeforeAdjustment: e.TaxAmountBeforeAdjustment,
		}
		for _, g := range e.TaxAmountAgeGroup {
			entry.TaxAmountAgeGroup = append(entry.TaxAmountAgeGroup, CityTaxAgeGroupResponse{
				AgeGroupID: g.AgeGroupID.String(),
				FromAge:    g.FromAge,
				ToAge:      g.ToAge,
				TaxAmount:  g.TaxAmount,
			})
		}
		res.CityTaxBreakdown = append(res.CityTaxBreakdown, entry)
	}

	var err error
	if res.IncludedAmenities, err = fromPricedAmenities(p.IncludedAmenities); err != nil {
		return nil, err
	}
	if res.AddOnAmenities, err = fromPricedAmenities(p.AddOnAmenities); err != nil {
		return nil, err
	}
	return res, nil
}

func fromPricedAmenities(items []amenity.PricedAmenity) ([]AmenityResponse, error) {
	res := make([]AmenityResponse, 0, len(items))
	for _, it := range items {
		a := AmenityResponse{
			AmenityID:           it.Amenity.ID.String(),
			Code:                it.Amenity.Code,
			Name:                it.Amenity.Name,
			Type:                string(it.Amenity.Type),
			PricingUnit:         string(it.Amenity.PricingUnit),
			Inclusion:           string(it.Inclusion),
			Count:               it.Count,
			SellingAmount:       it.SellingAmount,
			BaseAmount:          it.BaseAmount,
			ServiceChargeAmount: it.ServiceChargeAmount,
			TaxAmount:           it.TaxAmount,
			GrossAmount:         it.GrossAmount,
			TaxDetails:          it.TaxDetails,
			Degraded:            it.Degraded,
			Error:               it.Error,
		}
		if err := copier.Copy(&a.AgeCategories, &it.AgeCategories); err != nil {
			return nil, err
		}
		if err := copier.CopyWithOption(&a.Daily, &it.Daily, copyOption); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}
