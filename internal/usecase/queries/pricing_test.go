//go:build unit

package queries_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/booking"
	"booking-pricing/internal/infra"
	"booking-pricing/internal/pkg/clock"
	"booking-pricing/internal/pkg/config"
	"booking-pricing/internal/pkg/errs"
	"booking-pricing/internal/usecase/queries"
	"booking-pricing/tests/common/builder"
	queriesmock "booking-pricing/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

type PricingQueriesTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockCtrl     *gomock.Controller
	mockStore    *queriesmock.MockPricingReadStore
	mockPlatform *queriesmock.MockAmenityPricingClient
	clock        *clock.FixedClock
	queries      queries.PricingQueries
	logs         *bytes.Buffer

	parking amenity.Amenity
	b       *builder.SnapshotBuilder
}

func (s *PricingQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockPricingReadStore(s.mockCtrl)
	s.mockPlatform = queriesmock.NewMockAmenityPricingClient(s.mockCtrl)
	s.clock = clock.NewFixedClock(time.Date(2025, 8, 15, 9, 30, 0, 0, time.UTC))
	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s.queries = queries.NewPricingQueries(s.mockStore, s.mockPlatform, s.clock, config.NewTestConfig(), logger)

	s.parking = amenity.Amenity{
		ID:          uuid.New(),
		Code:        "PARK",
		Name:        "Parking",
		Type:        amenity.TypeService,
		PricingUnit: amenity.UnitPerRoomPerStay,
		BaseRate:    decimal.NewFromInt(99),
	}
	s.b = builder.NewSnapshotBuilder().With(func(b *builder.SnapshotBuilder) {
		b.Amenities = []amenity.Amenity{s.parking}
	})
}

func (s *PricingQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPricingQueriesSuite(t *testing.T) {
	suite.Run(t, new(PricingQueriesTestSuite))
}

// expectSnapshot serves the builder's snapshot from every read.
func (s *PricingQueriesTestSuite) expectSnapshot() {
	snap := s.b.BuildDomain()
	hotel := snap.Hotel

	s.mockStore.EXPECT().FindHotel(gomock.Any(), s.b.HotelID).Return(&hotel, nil)
	s.mockStore.EXPECT().FindRoomProducts(gomock.Any(), s.b.HotelID).Return(snap.RoomProducts, nil)
	s.mockStore.EXPECT().FindRatePlans(gomock.Any(), s.b.HotelID).Return(snap.RatePlans, nil)
	s.mockStore.EXPECT().FindRoomProductRatePlans(gomock.Any(), s.b.HotelID).Return(snap.RoomProductRatePlans, nil)
	s.mockStore.EXPECT().FindDailySellingPrices(gomock.Any(), s.b.HotelID, s.b.Arrival, s.b.Departure().AddDate(0, 0, -1)).
		Return(snap.DailySellingPrices, nil)
	s.mockStore.EXPECT().FindTaxRules(gomock.Any(), s.b.HotelID).Return(snap.TaxRules, nil)
	s.mockStore.EXPECT().FindCityTaxRules(gomock.Any(), s.b.HotelID).Return(snap.CityTaxRules, nil)
	s.mockStore.EXPECT().FindAgeCategories(gomock.Any(), s.b.HotelID).Return(snap.AgeCategories, nil)
	s.mockStore.EXPECT().FindOccupancyRates(gomock.Any(), s.b.HotelID, gomock.Any(), gomock.Any()).
		Return(s.b.DefaultRates, s.b.OverrideRates, nil)
	s.mockStore.EXPECT().FindAmenities(gomock.Any(), s.b.HotelID).Return(snap.Amenities, snap.AmenityPrices, nil)
}

func (s *PricingQueriesTestSuite) bookingQuery(withParking bool) queries.BookingPricingQuery {
	r := s.b.BuildReservation(2)
	if withParking {
		r.Amenities = []booking.AmenityRequest{{AmenityID: s.parking.ID, Count: 1}}
	}
	return queries.BookingPricingQuery{HotelID: s.b.HotelID, Reservations: []booking.Reservation{r}}
}

func (s *PricingQueriesTestSuite) assertDecimal(expected string, actual decimal.Decimal) {
	s.T().Helper()
	s.True(decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

// =============================================================================
// CalculateBookingPricing Tests
// =============================================================================

func (s *PricingQueriesTestSuite) TestCalculateBookingPricing_Success() {
	s.expectSnapshot()
	s.mockPlatform.EXPECT().Enabled().Return(false).AnyTimes()

	view, err := s.queries.CalculateBookingPricing(s.ctx, s.bookingQuery(true))

	s.Require().NoError(err)
	s.Equal(s.clock.Now(), view.CalculatedAt)
	s.Equal(s.b.HotelID, view.Result.HotelID)
	s.Require().Len(view.Result.Reservations, 1)
	pricing := view.Result.Reservations[0].Pricing
	s.assertDecimal("230", pricing.TotalGrossAmount)
	s.assertDecimal("99", pricing.AmenityGrossAmount)
	s.assertDecimal("329", view.Result.Totals.TotalAmount)
}

func (s *PricingQueriesTestSuite) TestCalculateBookingPricing_UsesRemoteQuote() {
	s.expectSnapshot()
	s.mockPlatform.EXPECT().Enabled().Return(true).AnyTimes()
	s.mockPlatform.EXPECT().Quote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req queries.AmenityQuoteRequest) (*amenity.BaseQuote, error) {
			s.Equal("PARK", req.AmenityCode)
			s.Equal("HTL", req.HotelCode)
			s.Equal(s.b.Arrival, req.From)
			s.Equal(s.b.Departure().AddDate(0, 0, -1), req.To)
			s.Equal(2, req.Adults)
			return &amenity.BaseQuote{AmenityID: req.AmenityID, TotalAmount: decimal.NewFromInt(30)}, nil
		})

	view, err := s.queries.CalculateBookingPricing(s.ctx, s.bookingQuery(true))

	s.Require().NoError(err)
	s.assertDecimal("30", view.Result.Reservations[0].Pricing.AmenityGrossAmount)
	s.assertDecimal("260", view.Result.Totals.TotalAmount)
}

func (s *PricingQueriesTestSuite) TestCalculateBookingPricing_QuoteFailureDegrades() {
	s.expectSnapshot()
	s.mockPlatform.EXPECT().Enabled().Return(true).AnyTimes()
	s.mockPlatform.EXPECT().Quote(gomock.Any(), gomock.Any()).
		Return(nil, errs.Mark(errs.New("status 503"), booking.ErrUpstreamUnavailable))

	view, err := s.queries.CalculateBookingPricing(s.ctx, s.bookingQuery(true))

	s.Require().NoError(err)
	pricing := view.Result.Reservations[0].Pricing
	s.Require().Len(pricing.AddOnAmenities, 1)
	s.True(pricing.AddOnAmenities[0].Degraded)
	s.True(pricing.AmenityGrossAmount.IsZero())
	s.assertDecimal("230", view.Result.Totals.TotalAmount)
	s.Contains(s.logs.String(), "amenity quote failed")
	s.Contains(s.logs.String(), "status 503")
}

func (s *PricingQueriesTestSuite) TestCalculateBookingPricing_NoAmenitiesSkipsPlatform() {
	s.expectSnapshot()
	s.mockPlatform.EXPECT().Quote(gomock.Any(), gomock.Any()).Times(0)

	view, err := s.queries.CalculateBookingPricing(s.ctx, s.bookingQuery(false))

	s.Require().NoError(err)
	s.assertDecimal("230", view.Result.Totals.TotalAmount)
}

func (s *PricingQueriesTestSuite) TestCalculateBookingPricing_InvalidInput() {
	testCases := []struct {
		name  string
		query func() queries.BookingPricingQuery
		setup func()
	}{
		{
			name:  "no reservations",
			query: func() queries.BookingPricingQuery { return queries.BookingPricingQuery{HotelID: s.b.HotelID} },
			setup: func() {},
		},
		{
			name: "departure before arrival",
			query: func() queries.BookingPricingQuery {
				q := s.bookingQuery(false)
				q.Reservations[0].Departure = q.Reservations[0].Arrival
				return q
			},
			setup: func() {},
		},
		{
			name:  "hotel not found",
			query: func() queries.BookingPricingQuery { return s.bookingQuery(false) },
			setup: func() {
				notFound := infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "hotel not found", errors.New("no rows"))
				s.mockStore.EXPECT().FindHotel(gomock.Any(), s.b.HotelID).Return(nil, notFound)
			},
		},
		{
			name: "unknown rate plan",
			query: func() queries.BookingPricingQuery {
				q := s.bookingQuery(false)
				q.Reservations[0].RatePlanID = uuid.New()
				return q
			},
			setup: s.expectSnapshot,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setup()

			view, err := s.queries.CalculateBookingPricing(s.ctx, tc.query())

			s.Require().Error(err)
			s.True(errs.Is(err, booking.ErrInvalidInput), "expected invalid input, got %v", err)
			s.Nil(view)
		})
	}
}

func (s *PricingQueriesTestSuite) TestCalculateBookingPricing_StoreFailure() {
	hotel := s.b.BuildDomain().Hotel
	s.mockStore.EXPECT().FindHotel(gomock.Any(), s.b.HotelID).Return(&hotel, nil)
	s.mockStore.EXPECT().FindRoomProducts(gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)
	s.mockStore.EXPECT().FindRatePlans(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockStore.EXPECT().FindRoomProductRatePlans(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockStore.EXPECT().FindDailySellingPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockStore.EXPECT().FindTaxRules(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockStore.EXPECT().FindCityTaxRules(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockStore.EXPECT().FindAgeCategories(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.mockStore.EXPECT().FindOccupancyRates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil, nil).AnyTimes()
	s.mockStore.EXPECT().FindAmenities(gomock.Any(), gomock.Any()).Return(nil, nil, nil).AnyTimes()

	view, err := s.queries.CalculateBookingPricing(s.ctx, s.bookingQuery(false))

	s.Require().Error(err)
	s.ErrorIs(err, errDBConnectionLost)
	s.False(errs.Is(err, booking.ErrInvalidInput))
	s.Nil(view)
}

// =============================================================================
// CalculateRoomProductPricing Tests
// =============================================================================

func (s *PricingQueriesTestSuite) TestCalculateRoomProductPricing() {
	s.b.Currency = ""
	s.expectSnapshot()
	s.mockPlatform.EXPECT().Enabled().Return(true).AnyTimes()

	view, err := s.queries.CalculateRoomProductPricing(s.ctx, queries.RoomProductPricingQuery{
		HotelID:   s.b.HotelID,
		Arrival:   s.b.Arrival,
		Departure: s.b.Departure(),
		Occupancy: booking.Occupancy{Adults: 2},
	})

	s.Require().NoError(err)
	s.Equal("EUR", view.Currency)
	s.Equal(s.clock.Now(), view.CalculatedAt)
	s.Equal(s.b.Arrival, view.Arrival)
	s.Require().Len(view.Items, 1)
	s.Equal(s.b.RatePlan.ID, view.Items[0].RatePlanID)
	s.assertDecimal("230", view.Items[0].TotalSellingRate)
}

func (s *PricingQueriesTestSuite) TestCalculateRoomProductPricing_InvalidStay() {
	view, err := s.queries.CalculateRoomProductPricing(s.ctx, queries.RoomProductPricingQuery{
		HotelID:   s.b.HotelID,
		Arrival:   s.b.Departure(),
		Departure: s.b.Arrival,
	})

	require.Error(s.T(), err)
	assert.True(s.T(), errs.Is(err, booking.ErrInvalidInput))
	assert.Nil(s.T(), view)
}
