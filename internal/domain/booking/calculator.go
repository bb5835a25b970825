package booking

import (
	"errors"
	"fmt"
	"log/slog"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/citytax"
	"booking-pricing/internal/domain/occupancy"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/domain/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoomRequest is one room product and rate plan priced over a stay.
type RoomRequest struct {
	RoomProduct    RoomProduct
	RatePlan       RatePlan
	Link           RoomProductRatePlan
	Stay           pricing.DateRange
	Occupancy      Occupancy
	Amenities      []AmenityRequest
	Quotes         map[uuid.UUID]amenity.QuoteResult
	IncludeCityTax bool
}

// Calculator prices bookings against a Snapshot. It holds no state between calls.
type Calculator struct {
	logger *slog.Logger
}

func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

func (c *Calculator) CalculateBookingPricing(in BookingInput) (BookingPricingResult, error) {
	if in.Snapshot == nil {
		return BookingPricingResult{}, fmt.Errorf("%w: missing hotel snapshot", ErrInvalidInput)
	}
	if len(in.Reservations) == 0 {
		return BookingPricingResult{}, fmt.Errorf("%w: no reservations", ErrInvalidInput)
	}

	res := BookingPricingResult{
		HotelID:      in.Snapshot.Hotel.ID,
		Currency:     in.Snapshot.Hotel.Currency,
		Reservations: make([]ReservationPricing, 0, len(in.Reservations)),
		Totals:       zeroTotals(),
	}
	for i, r := range in.Reservations {
		req, err := in.Snapshot.Resolve(r)
		if err != nil {
			return BookingPricingResult{}, fmt.Errorf("reservation %d: %w", i, err)
		}
		req.IncludeCityTax = in.IncludeCityTax

		p, err := c.PriceRoomProductRatePlan(in.Snapshot, req)
		if err != nil {
			return BookingPricingResult{}, fmt.Errorf("reservation %d: %w", i, err)
		}
		res.Reservations = append(res.Reservations, ReservationPricing{Index: i, Pricing: p})
		res.Totals = res.Totals.add(p, in.Snapshot.Hotel.TaxProfile.IsInclusive())
	}
	return res, nil
}

// CalculateRoomProductPricing prices every compatible room product and rate plan pair for one
// stay. Pairs without a selling price on every night are not sellable and are skipped.
func (c *Calculator) CalculateRoomProductPricing(in RoomProductInput) ([]RoomProductPricing, error) {
	snap := in.Snapshot
	if snap == nil {
		return nil, fmt.Errorf("%w: missing hotel snapshot", ErrInvalidInput)
	}
	stay, err := pricing.NightsOf(in.Arrival, in.Departure)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	for _, id := range in.RoomProductIDs {
		if _, ok := snap.RoomProduct(id); !ok {
			return nil, fmt.Errorf("%w: unknown room product %s", ErrInvalidInput, id)
		}
	}
	for _, id := range in.RatePlanIDs {
		if _, ok := snap.RatePlan(id); !ok {
			return nil, fmt.Errorf("%w: unknown rate plan %s", ErrInvalidInput, id)
		}
	}

	var out []RoomProductPricing
	for _, pair := range snap.Pairs(in.RoomProductIDs, in.RatePlanIDs) {
		if _, err := snap.DailyPrices(pair.Link.ID, stay.Dates()); err != nil {
			c.logger.Debug("room product rate plan not sellable for stay",
				slog.String("room_product", pair.RoomProduct.Code),
				slog.String("rate_plan", pair.RatePlan.Code),
				slog.String("reason", err.Error()))
			continue
		}

		p, err := c.PriceRoomProductRatePlan(snap, RoomRequest{
			RoomProduct:    pair.RoomProduct,
			RatePlan:       pair.RatePlan,
			Link:           pair.Link,
			Stay:           stay,
			Occupancy:      in.Occupancy,
			Quotes:         in.Quotes,
			IncludeCityTax: in.IncludeCityTax,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// day carries the figures of one night while the room price is assembled.
type day struct {
	price     DailySellingPrice
	surcharge decimal.Decimal
	roomBase  decimal.Decimal
	roomTax   decimal.Decimal
	roomGross decimal.Decimal
	base      decimal.Decimal
	tax       decimal.Decimal
	gross     decimal.Decimal
}

func (c *Calculator) PriceRoomProductRatePlan(snap *Snapshot, req RoomRequest) (RoomProductPricing, error) {
	hotel := snap.Hotel
	rounding := hotel.Rounding
	engine := tax.NewEngine(hotel.TaxProfile, rounding)
	dates := req.Stay.Dates()

	prices, err := snap.DailyPrices(req.Link.ID, dates)
	if err != nil {
		return RoomProductPricing{}, err
	}

	guests := occupancy.GuestCount(req.Occupancy.Adults, req.Occupancy.ChildrenAges, snap.AgeCategories)
	var surcharges []pricing.DailyAmount
	if snap.OccupancyRates != nil {
		surcharges = snap.OccupancyRates.DailySurcharges(req.RoomProduct.ID, req.Link.ID, dates, guests)
	}

	days := make([]day, len(prices))
	for i, p := range prices {
		p = composeNet(engine, p, req.RatePlan.Code, hotel.ChargeRates, snap.TaxRules)
		base, taxAmount, gross := p.NetPrice.Decimal, p.TaxAmount, p.GrossPrice
		surcharge := decimal.Zero
		if surcharges != nil && !surcharges[i].Amount.IsZero() {
			b := engine.Calculate(surcharges[i].Amount, req.RatePlan.Code, p.Date, hotel.ChargeRates, snap.TaxRules)
			base = base.Add(b.BaseAmount)
			taxAmount = taxAmount.Add(b.TaxAmount)
			gross = gross.Add(b.GrossAmount)
			surcharge = b.GrossAmount
		}
		d := day{
			price:     p,
			surcharge: rounding.Apply(surcharge),
			roomBase:  rounding.Apply(base),
			roomTax:   rounding.Apply(taxAmount),
			roomGross: rounding.Apply(gross),
		}
		d.base, d.tax, d.gross = d.roomBase, d.roomTax, d.roomGross
		days[i] = d
	}

	lines, err := snap.AmenityLines(req.RoomProduct, req.RatePlan, req.Occupancy, req.Amenities)
	if err != nil {
		return RoomProductPricing{}, err
	}
	included, addOns, err := c.priceAmenities(snap, req, engine, lines)
	if err != nil {
		return RoomProductPricing{}, err
	}
	foldIncluded(days, included)

	out := RoomProductPricing{
		RoomProductID:         req.RoomProduct.ID,
		RoomProductCode:       req.RoomProduct.Code,
		RatePlanID:            req.RatePlan.ID,
		RatePlanCode:          req.RatePlan.Code,
		RoomProductRatePlanID: req.Link.ID,
		Currency:              hotel.Currency,
		Nights:                len(days),
		IncludedAmenities:     included,
		AddOnAmenities:        addOns,
		AmenityTaxAmount:      decimal.Zero,
		AmenityGrossAmount:    decimal.Zero,
		CityTaxAmount:         decimal.Zero,
	}

	totalBase, totalTax, totalGross, totalAdjustment, accommodationTax := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	out.DailyRoomRateList = make([]DailyRoomRate, len(days))
	for i, d := range days {
		adjustment := rounding.Apply(d.price.RatePlanAdjustment)
		out.DailyRoomRateList[i] = DailyRoomRate{
			Date:                        d.price.Date,
			BaseAmount:                  d.base,
			TaxAmount:                   d.tax,
			ServiceChargeAmount:         d.gross.Sub(d.base).Sub(d.tax),
			GrossAmount:                 d.gross,
			OccupancySurcharge:          d.surcharge,
			RatePlanAdjustment:          adjustment,
			BaseAmountBeforeAdjustment:  d.base.Sub(adjustment),
			TaxAmountBeforeAdjustment:   d.tax,
			GrossAmountBeforeAdjustment: d.gross.Sub(adjustment),
		}
		totalBase = totalBase.Add(d.base)
		totalTax = totalTax.Add(d.tax)
		totalGross = totalGross.Add(d.gross)
		totalAdjustment = totalAdjustment.Add(adjustment)
		accommodationTax = accommodationTax.Add(d.roomTax)
	}

	out.TotalBaseAmount = totalBase
	out.TaxAmount = totalTax
	out.TotalGrossAmount = totalGross
	out.ServiceChargeAmount = totalGross.Sub(totalBase).Sub(totalTax)

	out.TaxDetailsByCode = AllocateAccommodationTax(accommodationTax, req.Stay, req.RatePlan.Code, snap.TaxRules, rounding)
	for _, a := range included {
		out.TaxDetailsByCode.Merge(a.TaxDetails)
	}
	for _, a := range addOns {
		out.AmenityTaxAmount = out.AmenityTaxAmount.Add(a.TaxAmount)
		out.AmenityGrossAmount = out.AmenityGrossAmount.Add(a.GrossAmount)
	}

	out.CityTaxAmountBeforeAdjustment = decimal.Zero
	if req.IncludeCityTax && len(snap.CityTaxRules) > 0 {
		ct := citytax.Calculate(citytax.Input{
			Rules:        snap.CityTaxRules,
			Days:         cityTaxDays(days, rounding),
			Adults:       req.Occupancy.Adults,
			ChildrenAges: req.Occupancy.ChildrenAges,
			TotalRooms:   req.RoomProduct.TotalRooms(),
			Rounding:     rounding,
		})
		out.CityTaxAmount = ct.TaxAmount
		out.CityTaxAmountBeforeAdjustment = ct.TaxAmountBeforeAdjustment
		out.CityTaxBreakdown = ct.Entries
	}

	out.TotalSellingRate = out.TotalGrossAmount
	if hotel.TaxProfile.IsInclusive() {
		out.TotalGrossAmount = out.TotalGrossAmount.Add(out.CityTaxAmount)
		out.TotalSellingRate = out.TotalSellingRate.Add(out.CityTaxAmount)
	}
	out.AverageDailyRate = rounding.Apply(pricing.SafeDiv(out.TotalSellingRate, decimal.NewFromInt(int64(len(days)))))

	out.TotalBaseAmountBeforeAdjustment = out.TotalBaseAmount.Sub(totalAdjustment)
	out.TotalGrossAmountBeforeAdjustment = out.TotalGrossAmount.Sub(totalAdjustment)
	if hotel.TaxProfile.IsInclusive() {
		// the folded city tax is swapped for its pre-adjustment figure
		out.TotalGrossAmountBeforeAdjustment = out.TotalGrossAmountBeforeAdjustment.
			Sub(out.CityTaxAmount).
			Add(out.CityTaxAmountBeforeAdjustment)
	}
	out.TaxAmountBeforeAdjustment = out.TaxAmount
	return out, nil
}

func (c *Calculator) priceAmenities(snap *Snapshot, req RoomRequest, engine *tax.Engine, lines []AmenityLine) (included, addOns []amenity.PricedAmenity, err error) {
	for _, line := range lines {
		priced, err := c.priceAmenity(snap, req, engine, line)
		if err != nil {
			return nil, nil, err
		}
		if line.Inclusion == amenity.InclusionIncluded {
			included = append(included, priced)
		} else {
			addOns = append(addOns, priced)
		}
	}
	return included, addOns, nil
}

// priceAmenity aborts when an included amenity cannot be priced since it is part of the room
// total; other amenities degrade to a zero priced placeholder.
func (c *Calculator) priceAmenity(snap *Snapshot, req RoomRequest, engine *tax.Engine, line AmenityLine) (amenity.PricedAmenity, error) {
	a := line.Amenity
	pc := amenity.PriceContext{
		Inclusion:     line.Inclusion,
		Stay:          req.Stay,
		Adults:        req.Occupancy.Adults,
		ChildrenAges:  req.Occupancy.ChildrenAges,
		AgeCategories: snap.AgeCategories,
		Prices:        snap.AmenityPrices,
		Count:         line.Count,
		Tax:           engine,
		ChargeRates:   snap.Hotel.ChargeRates,
		TaxRules:      snap.TaxRules,
	}

	var cause error
	if q, ok := req.Quotes[a.ID]; ok {
		if q.Err != nil {
			cause = fmt.Errorf("%w: %w", ErrUpstreamUnavailable, q.Err)
		}
		pc.Quote = q.Quote
	}
	if cause == nil {
		priced, err := amenity.Price(a, pc)
		switch {
		case err == nil:
			return priced, nil
		case errors.Is(err, amenity.ErrIncompleteQuote):
			cause = fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		default:
			cause = err
		}
	}

	if line.Inclusion == amenity.InclusionIncluded {
		return amenity.PricedAmenity{}, fmt.Errorf("included amenity %s: %w", a.Code, cause)
	}
	c.logger.Warn("amenity pricing degraded",
		slog.String("amenity", a.Code),
		slog.String("inclusion", string(line.Inclusion)),
		slog.String("room_product", req.RoomProduct.Code),
		slog.String("rate_plan", req.RatePlan.Code),
		slog.String("error", cause.Error()))
	return amenity.Placeholder(a, line.Inclusion, cause), nil
}

// composeNet fills a missing net price from the gross. Exclusive hotels back the room taxes
// out with NetFromGross and the stored tax becomes gross minus net; inclusive hotels split the
// gross like any other tax-inclusive amount.
func composeNet(engine *tax.Engine, p DailySellingPrice, serviceCode string, rates tax.ChargeRates, rules []tax.Rule) DailySellingPrice {
	if p.NetPrice.Valid {
		return p
	}
	if engine.Profile.IsInclusive() {
		b := engine.Calculate(p.GrossPrice, serviceCode, p.Date, rates, rules)
		p.NetPrice = decimal.NewNullDecimal(b.BaseAmount)
		p.TaxAmount = b.TaxAmount
		return p
	}
	net := engine.NetFromGross(p.GrossPrice, serviceCode, p.Date, rules)
	p.NetPrice = decimal.NewNullDecimal(net)
	p.TaxAmount = p.GrossPrice.Sub(net)
	return p
}

// foldIncluded adds the daily figures of included amenities to the room nights.
func foldIncluded(days []day, included []amenity.PricedAmenity) {
	index := make(map[string]int, len(days))
	for i, d := range days {
		index[pricing.DateKey(d.price.Date)] = i
	}
	for _, a := range included {
		for _, b := range a.Daily {
			i, ok := index[pricing.DateKey(b.Date)]
			if !ok {
				continue
			}
			days[i].base = days[i].base.Add(b.BaseAmount)
			days[i].tax = days[i].tax.Add(b.TaxAmount)
			days[i].gross = days[i].gross.Add(b.GrossAmount)
		}
	}
}

func cityTaxDays(days []day, rounding pricing.RoundingRule) []citytax.DailyRoomPrice {
	out := make([]citytax.DailyRoomPrice, len(days))
	for i, d := range days {
		adjustment := rounding.Apply(d.price.RatePlanAdjustment)
		out[i] = citytax.DailyRoomPrice{
			Date:                  d.price.Date,
			Gross:                 d.roomGross,
			Net:                   d.roomBase,
			GrossBeforeAdjustment: d.roomGross.Sub(adjustment),
			NetBeforeAdjustment:   d.roomBase.Sub(adjustment),
		}
	}
	return out
}

func zeroTotals() BookingTotals {
	return BookingTotals{
		TotalBaseAmount:     decimal.Zero,
		TotalGrossAmount:    decimal.Zero,
		TotalSellingRate:    decimal.Zero,
		TaxAmount:           decimal.Zero,
		ServiceChargeAmount: decimal.Zero,
		CityTaxAmount:       decimal.Zero,
		AmenityTaxAmount:    decimal.Zero,
		AmenityGrossAmount:  decimal.Zero,
		TotalAmount:         decimal.Zero,
		TaxDetailsByCode:    tax.Details{},
	}
}

func (t BookingTotals) add(p RoomProductPricing, inclusive bool) BookingTotals {
	t.TotalBaseAmount = t.TotalBaseAmount.Add(p.TotalBaseAmount)
	t.TotalGrossAmount = t.TotalGrossAmount.Add(p.TotalGrossAmount)
	t.TotalSellingRate = t.TotalSellingRate.Add(p.TotalSellingRate)
	t.TaxAmount = t.TaxAmount.Add(p.TaxAmount)
	t.ServiceChargeAmount = t.ServiceChargeAmount.Add(p.ServiceChargeAmount)
	t.CityTaxAmount = t.CityTaxAmount.Add(p.CityTaxAmount)
	t.AmenityTaxAmount = t.AmenityTaxAmount.Add(p.AmenityTaxAmount)
	t.AmenityGrossAmount = t.AmenityGrossAmount.Add(p.AmenityGrossAmount)

	total := p.TotalSellingRate.Add(p.AmenityGrossAmount)
	if !inclusive {
		total = total.Add(p.CityTaxAmount)
	}
	t.TotalAmount = t.TotalAmount.Add(total)

	details := t.TaxDetailsByCode.Clone()
	details.Merge(p.TaxDetailsByCode)
	t.TaxDetailsByCode = details
	return t
}
