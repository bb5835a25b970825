//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx so fixtures can seed inside a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PricingFixture is an exclusive-tax hotel with one room product sold under one rate plan for
// two nights from Arrival at 100 net / 115 gross, a 15% VAT on the rate plan, a 2.50 per person
// per night city tax and a parking amenity at 99 per stay.
type PricingFixture struct {
	HotelID       uuid.UUID
	RoomProductID uuid.UUID
	RatePlanID    uuid.UUID
	LinkID        uuid.UUID
	ParkingID     uuid.UUID
	Arrival       time.Time
	Nights        int
}

func (f PricingFixture) Departure() time.Time {
	return f.Arrival.AddDate(0, 0, f.Nights)
}

func SeedPricingHotel(t *testing.T, db DBLike, code string) PricingFixture {
	t.Helper()

	f := PricingFixture{
		HotelID:       uuid.New(),
		RoomProductID: uuid.New(),
		RatePlanID:    uuid.New(),
		LinkID:        uuid.New(),
		ParkingID:     uuid.New(),
		Arrival:       time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Nights:        2,
	}
	ctx := context.Background()

	exec := func(sql string, args ...any) {
		t.Helper()
		_, err := db.Exec(ctx, sql, args...)
		require.NoError(t, err, "fixture insert failed: %s", sql)
	}

	exec(`INSERT INTO hotels (id, code, currency, tax_setting) VALUES ($1, $2, 'EUR', 'EXCLUSIVE')`, f.HotelID, code)
	exec(`INSERT INTO room_products (id, hotel_id, code, name) VALUES ($1, $2, 'DLX', 'Deluxe')`, f.RoomProductID, f.HotelID)
	exec(`INSERT INTO rate_plans (id, hotel_id, code, name) VALUES ($1, $2, 'BAR', 'Best available rate')`, f.RatePlanID, f.HotelID)
	exec(`INSERT INTO room_product_rate_plans (id, hotel_id, room_product_id, rate_plan_id) VALUES ($1, $2, $3, $4)`,
		f.LinkID, f.HotelID, f.RoomProductID, f.RatePlanID)
	for i := range f.Nights {
		exec(`INSERT INTO daily_selling_prices (room_product_rate_plan_id, hotel_id, date, net_price, gross_price, tax_amount)
			VALUES ($1, $2, $3, 100, 115, 15)`, f.LinkID, f.HotelID, f.Arrival.AddDate(0, 0, i))
	}
	exec(`INSERT INTO tax_rules (id, hotel_id, code, name, rate, service_code) VALUES ($1, $2, 'VAT', 'Value added tax', 15, 'BAR')`,
		uuid.New(), f.HotelID)
	exec(`INSERT INTO city_tax_rules (id, hotel_id, code, name, unit, value) VALUES ($1, $2, 'CT', 'City tax', 'PER_PERSON_PER_NIGHT', 2.5)`,
		uuid.New(), f.HotelID)
	exec(`INSERT INTO amenities (id, hotel_id, code, name, type, pricing_unit, base_rate) VALUES ($1, $2, 'PARK', 'Parking', 'SERVICE', 'PER_ROOM_PER_STAY', 99)`,
		f.ParkingID, f.HotelID)

	return f
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
