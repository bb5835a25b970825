package queries

//go:generate mockgen -source=pricing.go -destination=../../../tests/mock/queries/pricing_mock.go -package=queriesmock

import (
	"context"
	"log/slog"
	"time"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/booking"
	"booking-pricing/internal/domain/citytax"
	"booking-pricing/internal/domain/occupancy"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/domain/tax"
	"booking-pricing/internal/infra"
	"booking-pricing/internal/pkg/clock"
	"booking-pricing/internal/pkg/config"
	"booking-pricing/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PricingReadStore loads the pricing data of one hotel. Date bounded reads are inclusive.
type PricingReadStore interface {
	FindHotel(ctx context.Context, hotelID uuid.UUID) (*booking.Hotel, error)
	FindRoomProducts(ctx context.Context, hotelID uuid.UUID) ([]booking.RoomProduct, error)
	FindRatePlans(ctx context.Context, hotelID uuid.UUID) ([]booking.RatePlan, error)
	FindRoomProductRatePlans(ctx context.Context, hotelID uuid.UUID) ([]booking.RoomProductRatePlan, error)
	FindDailySellingPrices(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]booking.DailySellingPrice, error)
	FindTaxRules(ctx context.Context, hotelID uuid.UUID) ([]tax.Rule, error)
	FindCityTaxRules(ctx context.Context, hotelID uuid.UUID) ([]citytax.Rule, error)
	FindAgeCategories(ctx context.Context, hotelID uuid.UUID) ([]occupancy.AgeCategory, error)
	FindOccupancyRates(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]occupancy.DefaultRate, []occupancy.OverrideRate, error)
	FindAmenities(ctx context.Context, hotelID uuid.UUID) ([]amenity.Amenity, []amenity.AgeCategoryPrice, error)
}

type AmenityQuoteRequest struct {
	HotelID      uuid.UUID
	HotelCode    string
	AmenityID    uuid.UUID
	AmenityCode  string
	From         time.Time
	To           time.Time
	Adults       int
	ChildrenAges []int
	Rounding     pricing.RoundingRule
}

// AmenityPricingClient fetches the base pricing of one amenity from the platform service.
// A disabled client is never called and amenities are priced from the local catalogue.
type AmenityPricingClient interface {
	Enabled() bool
	Quote(ctx context.Context, req AmenityQuoteRequest) (*amenity.BaseQuote, error)
}

type BookingPricingQuery struct {
	HotelID        uuid.UUID
	Reservations   []booking.Reservation
	IncludeCityTax bool
}

type RoomProductPricingQuery struct {
	HotelID        uuid.UUID
	Arrival        time.Time
	Departure      time.Time
	Occupancy      booking.Occupancy
	RoomProductIDs []uuid.UUID
	RatePlanIDs    []uuid.UUID
	IncludeCityTax bool
}

type BookingPricingView struct {
	Result       booking.BookingPricingResult
	CalculatedAt time.Time
}

type RoomProductPricingView struct {
	HotelID      uuid.UUID
	Currency     string
	Arrival      time.Time
	Departure    time.Time
	Items        []booking.RoomProductPricing
	CalculatedAt time.Time
}

type PricingQueries interface {
	CalculateBookingPricing(ctx context.Context, q BookingPricingQuery) (*BookingPricingView, error)
	CalculateRoomProductPricing(ctx context.Context, q RoomProductPricingQuery) (*RoomProductPricingView, error)
}

type pricingQueriesImpl struct {
	store           PricingReadStore
	platform        AmenityPricingClient
	calculator      *booking.Calculator
	clock           clock.Clock
	concurrency     int
	defaultCurrency string
	logger          *slog.Logger
}

func NewPricingQueries(store PricingReadStore, platform AmenityPricingClient, clk clock.Clock, cfg config.Config, logger *slog.Logger) PricingQueries {
	return &pricingQueriesImpl{
		store:           store,
		platform:        platform,
		calculator:      booking.NewCalculator(logger),
		logger:          logger,
		clock:           clk,
		concurrency:     max(cfg.Platform.Concurrency, 1),
		defaultCurrency: cfg.Pricing.DefaultCurrency,
	}
}

func (q *pricingQueriesImpl) CalculateBookingPricing(ctx context.Context, query BookingPricingQuery) (*BookingPricingView, error) {
	if len(query.Reservations) == 0 {
		return nil, errs.Mark(errs.New("no reservations"), booking.ErrInvalidInput)
	}

	var from, to time.Time
	for i, r := range query.Reservations {
		stay, err := pricing.NightsOf(r.Arrival, r.Departure)
		if err != nil {
			return nil, errs.Mark(errs.Wrapf(err, "reservation %d", i), booking.ErrInvalidInput)
		}
		if from.IsZero() || stay.From().Before(from) {
			from = stay.From()
		}
		if stay.To().After(to) {
			to = stay.To()
		}
	}

	snap, err := q.loadSnapshot(ctx, query.HotelID, from, to)
	if err != nil {
		return nil, err
	}

	reservations := make([]booking.Reservation, len(query.Reservations))
	for i, r := range query.Reservations {
		req, err := snap.Resolve(r)
		if err != nil {
			return nil, errs.Wrapf(err, "reservation %d", i)
		}
		lines, err := snap.AmenityLines(req.RoomProduct, req.RatePlan, r.Occupancy, r.Amenities)
		if err != nil {
			return nil, errs.Wrapf(err, "reservation %d", i)
		}
		r.Quotes = q.fetchQuotes(ctx, snap, req.Stay, r.Occupancy, lines)
		reservations[i] = r
	}

	result, err := q.calculator.CalculateBookingPricing(booking.BookingInput{
		Snapshot:       snap,
		Reservations:   reservations,
		IncludeCityTax: query.IncludeCityTax,
	})
	if err != nil {
		return nil, errs.Wrap(err, "calculate booking pricing")
	}
	return &BookingPricingView{Result: result, CalculatedAt: q.clock.Now()}, nil
}

func (q *pricingQueriesImpl) CalculateRoomProductPricing(ctx context.Context, query RoomProductPricingQuery) (*RoomProductPricingView, error) {
	stay, err := pricing.NightsOf(query.Arrival, query.Departure)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stay"), booking.ErrInvalidInput)
	}

	snap, err := q.loadSnapshot(ctx, query.HotelID, stay.From(), stay.To())
	if err != nil {
		return nil, err
	}

	var lines []booking.AmenityLine
	seen := map[uuid.UUID]struct{}{}
	for _, pair := range snap.Pairs(query.RoomProductIDs, query.RatePlanIDs) {
		linkLines, err := snap.AmenityLines(pair.RoomProduct, pair.RatePlan, query.Occupancy, nil)
		if err != nil {
			return nil, errs.Wrap(err, "resolve amenities")
		}
		for _, l := range linkLines {
			if _, ok := seen[l.Amenity.ID]; ok {
				continue
			}
			seen[l.Amenity.ID] = struct{}{}
			lines = append(lines, l)
		}
	}

	items, err := q.calculator.CalculateRoomProductPricing(booking.RoomProductInput{
		Snapshot:       snap,
		Arrival:        query.Arrival,
		Departure:      query.Departure,
		Occupancy:      query.Occupancy,
		RoomProductIDs: query.RoomProductIDs,
		RatePlanIDs:    query.RatePlanIDs,
		IncludeCityTax: query.IncludeCityTax,
		Quotes:         q.fetchQuotes(ctx, snap, stay, query.Occupancy, lines),
	})
	if err != nil {
		return nil, errs.Wrap(err, "calculate room product pricing")
	}

	return &RoomProductPricingView{
		HotelID:      snap.Hotel.ID,
		Currency:     snap.Hotel.Currency,
		Arrival:      stay.From(),
		Departure:    query.Departure,
		Items:        items,
		CalculatedAt: q.clock.Now(),
	}, nil
}

// loadSnapshot reads everything the calculator needs for [from, to] concurrently.
func (q *pricingQueriesImpl) loadSnapshot(ctx context.Context, hotelID uuid.UUID, from, to time.Time) (*booking.Snapshot, error) {
	hotel, err := q.store.FindHotel(ctx, hotelID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Wrap(err, "hotel not found"), booking.ErrInvalidInput)
		}
		return nil, errs.Wrap(err, "failed to load hotel")
	}
	if hotel.Currency == "" {
		hotel.Currency = q.defaultCurrency
	}

	snap := &booking.Snapshot{Hotel: *hotel}
	var (
		defaults  []occupancy.DefaultRate
		overrides []occupancy.OverrideRate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.RoomProducts, err = q.store.FindRoomProducts(gctx, hotelID)
		return err
	})
	g.Go(func() (err error) {
		snap.RatePlans, err = q.store.FindRatePlans(gctx, hotelID)
		return err
	})
	g.Go(func() (err error) {
		snap.RoomProductRatePlans, err = q.store.FindRoomProductRatePlans(gctx, hotelID)
		return err
	})
	g.Go(func() (err error) {
		snap.DailySellingPrices, err = q.store.FindDailySellingPrices(gctx, hotelID, from, to)
		return err
	})
	g.Go(func() (err error) {
		snap.TaxRules, err = q.store.FindTaxRules(gctx, hotelID)
		return err
	})
	g.Go(func() (err error) {
		snap.CityTaxRules, err = q.store.FindCityTaxRules(gctx, hotelID)
		return err
	})
	g.Go(func() (err error) {
		snap.AgeCategories, err = q.store.FindAgeCategories(gctx, hotelID)
		return err
	})
	g.Go(func() (err error) {
		defaults, overrides, err = q.store.FindOccupancyRates(gctx, hotelID, from, to)
		return err
	})
	g.Go(func() (err error) {
		snap.Amenities, snap.AmenityPrices, err = q.store.FindAmenities(gctx, hotelID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errs.Wrap(err, "failed to load pricing snapshot")
	}

	snap.OccupancyRates = occupancy.NewRateTable(defaults, overrides)
	return snap, nil
}

// fetchQuotes asks the platform for every amenity line. Failures are kept per amenity so the
// calculator decides whether the line aborts or degrades.
func (q *pricingQueriesImpl) fetchQuotes(ctx context.Context, snap *booking.Snapshot, stay pricing.DateRange, occ booking.Occupancy, lines []booking.AmenityLine) map[uuid.UUID]amenity.QuoteResult {
	if len(lines) == 0 || q.platform == nil || !q.platform.Enabled() {
		return nil
	}

	results := make([]amenity.QuoteResult, len(lines))
	var g errgroup.Group
	g.SetLimit(q.concurrency)
	for i, line := range lines {
		g.Go(func() error {
			quote, err := q.platform.Quote(ctx, AmenityQuoteRequest{
				HotelID:      snap.Hotel.ID,
				HotelCode:    snap.Hotel.Code,
				AmenityID:    line.Amenity.ID,
				AmenityCode:  line.Amenity.Code,
				From:         stay.From(),
				To:           stay.To(),
				Adults:       occ.Adults,
				ChildrenAges: occ.ChildrenAges,
				Rounding:     snap.Hotel.Rounding,
			})
			if err != nil {
				q.logger.WarnContext(ctx, "amenity quote failed",
					slog.String("hotel", snap.Hotel.Code),
					slog.String("amenity", line.Amenity.Code),
					slog.String("error", err.Error()))
			}
			results[i] = amenity.QuoteResult{Quote: quote, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	quotes := make(map[uuid.UUID]amenity.QuoteResult, len(lines))
	for i, line := range lines {
		quotes[line.Amenity.ID] = results[i]
	}
	return quotes
}
