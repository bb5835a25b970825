package readstore

//go:generate mockgen -source=pricing.go -destination=../../../tests/mock/readstore/pricing_mock.go -package=readstoremock

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
	"booking-pricing/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// DBTX is the subset of *pgxpool.Pool the read store needs.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PricingReadStore struct {
	db     DBTX
	logger *slog.Logger
}

func NewPricingReadStore(db DBTX, logger *slog.Logger) *PricingReadStore {
	return &PricingReadStore{db: db, logger: logger}
}

const findHotelSQL = `
SELECT id, code, currency, tax_setting, special_tax_code, service_charge_rate,
       service_charge_tax_rate, rounding_mode, decimal_units
FROM hotels
WHERE id = $1`

func (s *PricingReadStore) FindHotel(ctx context.Context, hotelID uuid.UUID) (*booking.Hotel, error) {
	var (
		id                   uuid.UUID
		code, currency       string
		setting, mode        string
		specialTaxCode       pgtype.Text
		serviceCharge, scTax pgtype.Numeric
		decimalUnits         int32
	)
	err := s.db.QueryRow(ctx, findHotelSQL, hotelID).Scan(
		&id, &code, &currency, &setting, &specialTaxCode, &serviceCharge, &scTax, &mode, &decimalUnits,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "hotel not found", err)
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find hotel", err)
	}

	scRate, err := pgconv.DecimalFromNumeric(serviceCharge)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid service charge rate", err)
	}
	scTaxRate, err := pgconv.DecimalFromNumeric(scTax)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid service charge tax rate", err)
	}

	hotel := &booking.Hotel{
		ID:       id,
		Code:     code,
		Currency: currency,
		TaxProfile: tax.HotelTaxProfile{
			Setting: tax.Setting(setting),
		},
		ChargeRates: tax.ChargeRates{
			ServiceChargeRate:    scRate,
			ServiceChargeTaxRate: scTaxRate,
		},
		Rounding: pricing.RoundingRule{
			Mode:         pricing.ParseRoundingMode(mode),
			DecimalUnits: decimalUnits,
		},
	}
	if p := pgconv.StringPtrFromPgtype(specialTaxCode); p != nil {
		hotel.TaxProfile.SpecialTaxCode = *p
	}
	return hotel, nil
}

type roomProductRow struct {
	ID         uuid.UUID `db:"id"`
	Code       string    `db:"code"`
	Name       string    `db:"name"`
	RoomSize   int32     `db:"room_size"`
	Allocation string    `db:"allocation"`
}

type amenityLinkRow struct {
	OwnerID   uuid.UUID `db:"owner_id"`
	AmenityID uuid.UUID `db:"amenity_id"`
	Inclusion string    `db:"inclusion"`
}

const (
	findRoomProductsSQL = `
SELECT id, code, name, room_size, allocation
FROM room_products
WHERE hotel_id = $1
ORDER BY code`

	findRoomProductAmenitiesSQL = `
SELECT rpa.room_product_id AS owner_id, rpa.amenity_id, '' AS inclusion
FROM room_product_amenities rpa
JOIN room_products rp ON rp.id = rpa.room_product_id
WHERE rp.hotel_id = $1
ORDER BY rpa.room_product_id, rpa.amenity_id`
)

func (s *PricingReadStore) FindRoomProducts(ctx context.Context, hotelID uuid.UUID) ([]booking.RoomProduct, error) {
	rows, err := collect[roomProductRow](ctx, s.db, findRoomProductsSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find room products", err)
	}
	links, err := collect[amenityLinkRow](ctx, s.db, findRoomProductAmenitiesSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find room product amenities", err)
	}

	amenityIDs := map[uuid.UUID][]uuid.UUID{}
	for _, l := range links {
		amenityIDs[l.OwnerID] = append(amenityIDs[l.OwnerID], l.AmenityID)
	}

	products := make([]booking.RoomProduct, 0, len(rows))
	for _, r := range rows {
		products = append(products, booking.RoomProduct{
			ID:         r.ID,
			Code:       r.Code,
			Name:       r.Name,
			RoomSize:   int(r.RoomSize),
			Allocation: booking.Allocation(r.Allocation),
			AmenityIDs: amenityIDs[r.ID],
		})
	}
	return products, nil
}

type ratePlanRow struct {
	ID   uuid.UUID `db:"id"`
	Code string    `db:"code"`
	Name string    `db:"name"`
}

const (
	findRatePlansSQL = `
SELECT id, code, name
FROM rate_plans
WHERE hotel_id = $1
ORDER BY code`

	findRatePlanAmenitiesSQL = `
SELECT rpa.rate_plan_id AS owner_id, rpa.amenity_id, rpa.inclusion
FROM rate_plan_amenities rpa
JOIN rate_plans rp ON rp.id = rpa.rate_plan_id
WHERE rp.hotel_id = $1
ORDER BY rpa.rate_plan_id, rpa.position`
)

func (s *PricingReadStore) FindRatePlans(ctx context.Context, hotelID uuid.UUID) ([]booking.RatePlan, error) {
	rows, err := collect[ratePlanRow](ctx, s.db, findRatePlansSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find rate plans", err)
	}
	links, err := collect[amenityLinkRow](ctx, s.db, findRatePlanAmenitiesSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find rate plan amenities", err)
	}

	included := map[uuid.UUID][]uuid.UUID{}
	mandatory := map[uuid.UUID][]uuid.UUID{}
	for _, l := range links {
		switch amenity.Inclusion(l.Inclusion) {
		case amenity.InclusionIncluded:
			included[l.OwnerID] = append(included[l.OwnerID], l.AmenityID)
		case amenity.InclusionMandatory:
			mandatory[l.OwnerID] = append(mandatory[l.OwnerID], l.AmenityID)
		}
	}

	plans := make([]booking.RatePlan, 0, len(rows))
	for _, r := range rows {
		plans = append(plans, booking.RatePlan{
			ID:                  r.ID,
			Code:                r.Code,
			Name:                r.Name,
			IncludedAmenityIDs:  included[r.ID],
			MandatoryAmenityIDs: mandatory[r.ID],
		})
	}
	return plans, nil
}

type roomProductRatePlanRow struct {
	ID            uuid.UUID `db:"id"`
	RoomProductID uuid.UUID `db:"room_product_id"`
	RatePlanID    uuid.UUID `db:"rate_plan_id"`
}

const findRoomProductRatePlansSQL = `
SELECT id, room_product_id, rate_plan_id
FROM room_product_rate_plans
WHERE hotel_id = $1
ORDER BY id`

func (s *PricingReadStore) FindRoomProductRatePlans(ctx context.Context, hotelID uuid.UUID) ([]booking.RoomProductRatePlan, error) {
	rows, err := collect[roomProductRatePlanRow](ctx, s.db, findRoomProductRatePlansSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find room product rate plans", err)
	}
	links := make([]booking.RoomProductRatePlan, 0, len(rows))
	for _, r := range rows {
		links = append(links, booking.RoomProductRatePlan(r))
	}
	return links, nil
}

type dailySellingPriceRow struct {
	RoomProductRatePlanID uuid.UUID      `db:"room_product_rate_plan_id"`
	Date                  pgtype.Date    `db:"date"`
	NetPrice              pgtype.Numeric `db:"net_price"`
	GrossPrice            pgtype.Numeric `db:"gross_price"`
	TaxAmount             pgtype.Numeric `db:"tax_amount"`
	RatePlanAdjustment    pgtype.Numeric `db:"rate_plan_adjustment"`
}

const findDailySellingPricesSQL = `
SELECT room_product_rate_plan_id, date, net_price, gross_price, tax_amount, rate_plan_adjustment
FROM daily_selling_prices
WHERE hotel_id = $1 AND date BETWEEN $2 AND $3
ORDER BY room_product_rate_plan_id, date`

func (s *PricingReadStore) FindDailySellingPrices(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]booking.DailySellingPrice, error) {
	rows, err := collect[dailySellingPriceRow](ctx, s.db, findDailySellingPricesSQL,
		hotelID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find daily selling prices", err)
	}

	prices := make([]booking.DailySellingPrice, 0, len(rows))
	for _, r := range rows {
		p := booking.DailySellingPrice{
			RoomProductRatePlanID: r.RoomProductRatePlanID,
			Date:                  pgconv.DateFromPgtype(r.Date),
		}
		if r.NetPrice.Valid {
			net, err := pgconv.DecimalFromNumeric(r.NetPrice)
			if err != nil {
				return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid daily net price", err)
			}
			p.NetPrice = decimal.NewNullDecimal(net)
		}
		if err := decodeNumerics(
			numericField{r.GrossPrice, &p.GrossPrice},
			numericField{r.TaxAmount, &p.TaxAmount},
			numericField{r.RatePlanAdjustment, &p.RatePlanAdjustment},
		); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid daily selling price", err)
		}
		prices = append(prices, p)
	}
	return prices, nil
}

type taxRuleRow struct {
	ID          uuid.UUID      `db:"id"`
	Code        string         `db:"code"`
	Name        string         `db:"name"`
	Rate        pgtype.Numeric `db:"rate"`
	ServiceCode string         `db:"service_code"`
	ValidFrom   pgtype.Date    `db:"valid_from"`
	ValidTo     pgtype.Date    `db:"valid_to"`
}

const findTaxRulesSQL = `
SELECT id, code, name, rate, service_code, valid_from, valid_to
FROM tax_rules
WHERE hotel_id = $1
ORDER BY position, code`

func (s *PricingReadStore) FindTaxRules(ctx context.Context, hotelID uuid.UUID) ([]tax.Rule, error) {
	rows, err := collect[taxRuleRow](ctx, s.db, findTaxRulesSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find tax rules", err)
	}

	rules := make([]tax.Rule, 0, len(rows))
	for _, r := range rows {
		rate, err := pgconv.DecimalFromNumeric(r.Rate)
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid tax rate", err)
		}
		rules = append(rules, tax.Rule{
			ID:          r.ID,
			Code:        r.Code,
			Name:        r.Name,
			Rate:        rate,
			ServiceCode: r.ServiceCode,
			ValidFrom:   pgconv.DatePtrFromPgtype(r.ValidFrom),
			ValidTo:     pgconv.DatePtrFromPgtype(r.ValidTo),
		})
	}
	return rules, nil
}

type cityTaxRuleRow struct {
	ID           uuid.UUID      `db:"id"`
	Code         string         `db:"code"`
	Name         string         `db:"name"`
	Unit         string         `db:"unit"`
	Value        pgtype.Numeric `db:"value"`
	ChargeMethod string         `db:"charge_method"`
	ValidFrom    pgtype.Date    `db:"valid_from"`
	ValidTo      pgtype.Date    `db:"valid_to"`
}

type cityTaxAgeGroupRow struct {
	ID            uuid.UUID      `db:"id"`
	CityTaxRuleID uuid.UUID      `db:"city_tax_rule_id"`
	FromAge       pgtype.Int4    `db:"from_age"`
	ToAge         pgtype.Int4    `db:"to_age"`
	Value         pgtype.Numeric `db:"value"`
}

const (
	findCityTaxRulesSQL = `
SELECT id, code, name, unit, value, charge_method, valid_from, valid_to
FROM city_tax_rules
WHERE hotel_id = $1
ORDER BY position, code`

	findCityTaxAgeGroupsSQL = `
SELECT g.id, g.city_tax_rule_id, g.from_age, g.to_age, g.value
FROM city_tax_age_groups g
JOIN city_tax_rules r ON r.id = g.city_tax_rule_id
WHERE r.hotel_id = $1
ORDER BY g.city_tax_rule_id, g.position`
)

func (s *PricingReadStore) FindCityTaxRules(ctx context.Context, hotelID uuid.UUID) ([]citytax.Rule, error) {
	rows, err := collect[cityTaxRuleRow](ctx, s.db, findCityTaxRulesSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find city tax rules", err)
	}
	groupRows, err := collect[cityTaxAgeGroupRow](ctx, s.db, findCityTaxAgeGroupsSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find city tax age groups", err)
	}

	groups := map[uuid.UUID][]citytax.AgeGroup{}
	for _, g := range groupRows {
		value, err := pgconv.DecimalFromNumeric(g.Value)
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid city tax age group value", err)
		}
		groups[g.CityTaxRuleID] = append(groups[g.CityTaxRuleID], citytax.AgeGroup{
			ID:      g.ID,
			FromAge: pgconv.IntPtrFromPgtype(g.FromAge),
			ToAge:   pgconv.IntPtrFromPgtype(g.ToAge),
			Value:   value,
		})
	}

	rules := make([]citytax.Rule, 0, len(rows))
	for _, r := range rows {
		unit := citytax.Unit(r.Unit)
		if !unit.IsValid() {
			s.logger.WarnContext(ctx, "skipping city tax rule with unknown unit",
				slog.String("code", r.Code), slog.String("unit", r.Unit))
			continue
		}
		value, err := pgconv.DecimalFromNumeric(r.Value)
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid city tax value", err)
		}
		rules = append(rules, citytax.Rule{
			ID:           r.ID,
			Code:         r.Code,
			Name:         r.Name,
			Unit:         unit,
			Value:        value,
			ChargeMethod: citytax.ChargeMethod(r.ChargeMethod),
			ValidFrom:    pgconv.DatePtrFromPgtype(r.ValidFrom),
			ValidTo:      pgconv.DatePtrFromPgtype(r.ValidTo),
			AgeGroups:    groups[r.ID],
		})
	}
	return rules, nil
}

type ageCategoryRow struct {
	Code                      string      `db:"code"`
	FromAge                   pgtype.Int4 `db:"from_age"`
	ToAge                     pgtype.Int4 `db:"to_age"`
	IncludeExtraOccupancyRate bool        `db:"include_extra_occupancy_rate"`
}

const findAgeCategoriesSQL = `
SELECT code, from_age, to_age, include_extra_occupancy_rate
FROM age_categories
WHERE hotel_id = $1
ORDER BY position, code`

func (s *PricingReadStore) FindAgeCategories(ctx context.Context, hotelID uuid.UUID) ([]occupancy.AgeCategory, error) {
	rows, err := collect[ageCategoryRow](ctx, s.db, findAgeCategoriesSQL, hotelID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find age categories", err)
	}

	categories := make([]occupancy.AgeCategory, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, occupancy.AgeCategory{
			Code:                      r.Code,
			FromAge:                   pgconv.IntPtrFromPgtype(r.FromAge),
			ToAge:                     pgconv.IntPtrFromPgtype(r.ToAge),
			IncludeExtraOccupancyRate: r.IncludeExtraOccupancyRate,
		})
	}
	return categories, nil
}

type defaultRateRow struct {
	RoomProductID uuid.UUID      `db:"room_product_id"`
	ExtraPeople   int32          `db:"extra_people"`
	Rate          pgtype.Numeric `db:"rate"`
}

type overrideRateRow struct {
	RoomProductRatePlanID uuid.UUID      `db:"room_product_rate_plan_id"`
	Date                  pgtype.Date    `db:"date"`
	ExtraPeople           int32          `db:"extra_people"`
	Rate                  pgtype.Numeric `db:"rate"`
}

const (
	findDefaultRatesSQL = `
SELECT d.room_product_id, d.extra_people, d.rate
FROM occupancy_default_rates d
JOIN room_products rp ON rp.id = d.room_product_id
WHERE rp.hotel_id = $1`

	findOverrideRatesSQL = `
SELECT o.room_product_rate_plan_id, o.date, o.extra_people, o.rate
FROM occupancy_override_rates o
JOIN room_product_rate_plans l ON l.id = o.room_product_rate_plan_id
WHERE l.hotel_id = $1 AND o.date BETWEEN $2 AND $3`
)

func (s *PricingReadStore) FindOccupancyRates(ctx context.Context, hotelID uuid.UUID, from, to time.Time) ([]occupancy.DefaultRate, []occupancy.OverrideRate, error) {
	defaultRows, err := collect[defaultRateRow](ctx, s.db, findDefaultRatesSQL, hotelID)
	if err != nil {
		return nil, nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find default occupancy rates", err)
	}
	overrideRows, err := collect[overrideRateRow](ctx, s.db, findOverrideRatesSQL,
		hotelID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find occupancy overrides", err)
	}

	defaults := make([]occupancy.DefaultRate, 0, len(defaultRows))
	for _, r := range defaultRows {
		rate, err := pgconv.DecimalFromNumeric(r.Rate)
		if err != nil {
			return nil, nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid occupancy rate", err)
		}
		defaults = append(defaults, occupancy.DefaultRate{
			RoomProductID: r.RoomProductID,
			ExtraPeople:   int(r.ExtraPeople),
			Rate:          rate,
		})
	}

	overrides := make([]occupancy.OverrideRate, 0, len(overrideRows))
	for _, r := range overrideRows {
		rate, err := pgconv.DecimalFromNumeric(r.Rate)
		if err != nil {
			return nil, nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid occupancy override", err)
		}
		overrides = append(overrides, occupancy.OverrideRate{
			RoomProductRatePlanID: r.RoomProductRatePlanID,
			Date:                  pgconv.DateFromPgtype(r.Date),
			ExtraPeople:           int(r.ExtraPeople),
			Rate:                  rate,
		})
	}
	return defaults, overrides, nil
}

type amenityRow struct {
	ID          uuid.UUID      `db:"id"`
	Code        string         `db:"code"`
	Name        string         `db:"name"`
	Type        string         `db:"type"`
	PricingUnit string         `db:"pricing_unit"`
	BaseRate    pgtype.Numeric `db:"base_rate"`
}

type amenityPriceRow struct {
	AmenityID       uuid.UUID      `db:"amenity_id"`
	AgeCategoryCode string         `db:"age_category_code"`
	Price           pgtype.Numeric `db:"price"`
}

const (
	findAmenitiesSQL = `
SELECT id, code, name, type, pricing_unit, base_rate
FROM amenities
WHERE hotel_id = $1
ORDER BY code`

	findAmenityPricesSQL = `
SELECT p.amenity_id, p.age_category_code, p.price
FROM amenity_age_category_prices p
JOIN amenities a ON a.id = p.amenity_id
WHERE a.hotel_id = $1`
)

func (s *PricingReadStore) FindAmenities(ctx context.Context, hotelID uuid.UUID) ([]amenity.Amenity, []amenity.AgeCategoryPrice, error) {
	rows, err := collect[amenityRow](ctx, s.db, findAmenitiesSQL, hotelID)
	if err != nil {
		return nil, nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find amenities", err)
	}
	priceRows, err := collect[amenityPriceRow](ctx, s.db, findAmenityPricesSQL, hotelID)
	if err != nil {
		return nil, nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find amenity prices", err)
	}

	amenities := make([]amenity.Amenity, 0, len(rows))
	for _, r := range rows {
		baseRate, err := pgconv.DecimalFromNumeric(r.BaseRate)
		if err != nil {
			return nil, nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid amenity base rate", err)
		}
		amenities = append(amenities, amenity.Amenity{
			ID:          r.ID,
			Code:        r.Code,
			Name:        r.Name,
			Type:        amenity.Type(r.Type),
			PricingUnit: amenity.PricingUnit(r.PricingUnit),
			BaseRate:    baseRate,
		})
	}

	prices := make([]amenity.AgeCategoryPrice, 0, len(priceRows))
	for _, r := range priceRows {
		price, err := pgconv.DecimalFromNumeric(r.Price)
		if err != nil {
			return nil, nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid amenity price", err)
		}
		prices = append(prices, amenity.AgeCategoryPrice{
			AmenityID:       r.AmenityID,
			AgeCategoryCode: r.AgeCategoryCode,
			Price:           price,
		})
	}
	return amenities, prices, nil
}

func collect[T any](ctx context.Context, db DBTX, sql string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

type numericField struct {
	src pgtype.Numeric
	dst *decimal.Decimal
}

func decodeNumerics(fields ...numericField) error {
	for _, f := range fields {
		v, err := pgconv.DecimalFromNumeric(f.src)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}
