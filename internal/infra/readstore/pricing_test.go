//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/domain/tax"
	"booking-pricing/internal/infra"
	"booking-pricing/internal/infra/readstore"
	readstoremock "booking-pricing/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error {
	return r.scan(dest...)
}

func errRow(err error) fakeRow {
	return fakeRow{scan: func(...any) error { return err }}
}

func numeric(unscaled int64, exp int32) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(unscaled), Exp: exp, Valid: true}
}

func newStore(ctrl *gomock.Controller) (*readstore.PricingReadStore, *readstoremock.MockDBTX) {
	db := readstoremock.NewMockDBTX(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return readstore.NewPricingReadStore(db, logger), db
}

// =============================================================================
// FindHotel Tests
// =============================================================================

func TestPricingReadStore_FindHotel(t *testing.T) {
	ctx := context.Background()
	hotelID := uuid.New()

	hotelRow := fakeRow{scan: func(dest ...any) error {
		*dest[0].(*uuid.UUID) = hotelID
		*dest[1].(*string) = "HTL"
		*dest[2].(*string) = "EUR"
		*dest[3].(*string) = "INCLUSIVE"
		*dest[4].(*pgtype.Text) = pgtype.Text{String: "SPC", Valid: true}
		*dest[5].(*pgtype.Numeric) = numeric(1000, -2)
		*dest[6].(*pgtype.Numeric) = numeric(7, 0)
		*dest[7].(*string) = " down "
		*dest[8].(*int32) = 3
		return nil
	}}

	testCases := []struct {
		name          string
		row           pgx.Row
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: hotel found",
			row:  hotelRow,
		},
		{
			name:          "error: hotel not found",
			row:           errRow(pgx.ErrNoRows),
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name:          "error: database error",
			row:           errRow(errDBConnectionLost),
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store, db := newStore(ctrl)

			db.EXPECT().QueryRow(ctx, gomock.Any(), hotelID).Return(tc.row)

			hotel, err := store.FindHotel(ctx, hotelID)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, err, err)
				assert.Nil(t, hotel)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, hotel)
			assert.Equal(t, hotelID, hotel.ID)
			assert.Equal(t, "EUR", hotel.Currency)
			assert.Equal(t, tax.HotelTaxProfile{Setting: tax.SettingInclusive, SpecialTaxCode: "SPC"}, hotel.TaxProfile)
			assert.True(t, decimal.NewFromInt(10).Equal(hotel.ChargeRates.ServiceChargeRate))
			assert.True(t, decimal.NewFromInt(7).Equal(hotel.ChargeRates.ServiceChargeTaxRate))
			assert.Equal(t, pricing.RoundingRule{Mode: pricing.RoundingDown, DecimalUnits: 3}, hotel.Rounding)
		})
	}
}

func TestPricingReadStore_FindHotel_InvalidNumeric(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store, db := newStore(ctrl)

	db.EXPECT().QueryRow(ctx, gomock.Any(), gomock.Any()).Return(fakeRow{scan: func(dest ...any) error {
		*dest[5].(*pgtype.Numeric) = pgtype.Numeric{NaN: true, Valid: true}
		return nil
	}})

	hotel, err := store.FindHotel(ctx, uuid.New())

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	assert.Nil(t, hotel)
}

// =============================================================================
// Query failure Tests
// =============================================================================

func TestPricingReadStore_QueryFailures(t *testing.T) {
	ctx := context.Background()
	hotelID := uuid.New()
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		expect func(db *readstoremock.MockDBTX)
		call   func(s *readstore.PricingReadStore) (any, error)
	}{
		{
			name: "room products",
			expect: func(db *readstoremock.MockDBTX) {
				db.EXPECT().Query(ctx, gomock.Any(), hotelID).Return(nil, errDBConnectionLost)
			},
			call: func(s *readstore.PricingReadStore) (any, error) { return s.FindRoomProducts(ctx, hotelID) },
		},
		{
			name: "rate plans",
			expect: func(db *readstoremock.MockDBTX) {
				db.EXPECT().Query(ctx, gomock.Any(), hotelID).Return(nil, errDBConnectionLost)
			},
			call: func(s *readstore.PricingReadStore) (any, error) { return s.FindRatePlans(ctx, hotelID) },
		},
		{
			name: "daily selling prices",
			expect: func(db *readstoremock.MockDBTX) {
				db.EXPECT().Query(ctx, gomock.Any(), hotelID, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)
			},
			call: func(s *readstore.PricingReadStore) (any, error) {
				return s.FindDailySellingPrices(ctx, hotelID, from, to)
			},
		},
		{
			name: "tax rules",
			expect: func(db *readstoremock.MockDBTX) {
				db.EXPECT().Query(ctx, gomock.Any(), hotelID).Return(nil, errDBConnectionLost)
			},
			call: func(s *readstore.PricingReadStore) (any, error) { return s.FindTaxRules(ctx, hotelID) },
		},
		{
			name: "city tax rules",
			expect: func(db *readstoremock.MockDBTX) {
				db.EXPECT().Query(ctx, gomock.Any(), hotelID).Return(nil, errDBConnectionLost)
			},
			call: func(s *readstore.PricingReadStore) (any, error) { return s.FindCityTaxRules(ctx, hotelID) },
		},
		{
			name: "age categories",
			expect: func(db *readstoremock.MockDBTX) {
				db.EXPECT().Query(ctx, gomock.Any(), hotelID).Return(nil, errDBConnectionLost)
			},
			call: func(s *readstore.PricingReadStore) (any, error) { return s.FindAgeCategories(ctx, hotelID) },
		},
		{
			name: "amenities",
			expect: func(db *readstoremock.MockDBTX) {
				db.EXPECT().Query(ctx, gomock.Any(), hotelID).Return(nil, errDBConnectionLost)
			},
			call: func(s *readstore.PricingReadStore) (any, error) {
				amenities, _, err := s.FindAmenities(ctx, hotelID)
				return amenities, err
			},
		},
		{
			name: "occupancy rates",
			expect: func(db *readstoremock.MockDBTX) {
				db.EXPECT().Query(ctx, gomock.Any(), hotelID).Return(nil, errDBConnectionLost)
			},
			call: func(s *readstore.PricingReadStore) (any, error) {
				defaults, _, err := s.FindOccupancyRates(ctx, hotelID, from, to)
				return defaults, err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store, db := newStore(ctrl)
			tc.expect(db)

			result, err := tc.call(store)

			require.Error(t, err)
			assert.True(t, infra.IsKind(err, infra.KindDBFailure), "expected kind [%v] but got [%T] (%v)", infra.KindDBFailure, err, err)
			assert.ErrorIs(t, err, errDBConnectionLost)
			assert.Nil(t, result)
		})
	}
}
