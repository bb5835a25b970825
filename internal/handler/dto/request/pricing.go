package request

import (
	"time"

	"booking-pricing/internal/domain/booking"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/pkg/errs"
	"booking-pricing/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// maxStayNights bounds one stay so a request cannot ask for years of nightly prices.
const maxStayNights = 365

type OccupancyRequest struct {
	Adults       int   `json:"adults" binding:"required,min=1"`
	ChildrenAges []int `json:"children_ages" binding:"omitempty,max=10,dive,min=0,max=17"`
	Pets         int   `json:"pets" binding:"min=0"`
	ExtraBeds    int   `json:"extra_beds" binding:"min=0"`
}

type AmenityRequest struct {
	AmenityID uuid.UUID `json:"amenity_id" binding:"required"`
	Count     int       `json:"count" binding:"omitempty,min=1"`
}

type ReservationRequest struct {
	RoomProductID uuid.UUID        `json:"room_product_id" binding:"required"`
	RatePlanID    uuid.UUID        `json:"rate_plan_id" binding:"required"`
	Arrival       string           `json:"arrival" binding:"required,datetime=2006-01-02"`
	Departure     string           `json:"departure" binding:"required,datetime=2006-01-02"`
	Occupancy     OccupancyRequest `json:"occupancy"`
	Amenities     []AmenityRequest `json:"amenities" binding:"omitempty,dive"`
}

type BookingPricingRequest struct {
	HotelID        uuid.UUID            `json:"hotel_id" binding:"required"`
	Reservations   []ReservationRequest `json:"reservations" binding:"required,min=1,max=20,dive"`
	IncludeCityTax bool                 `json:"include_city_tax"`
}

type RoomProductPricingRequest struct {
	HotelID        uuid.UUID        `json:"hotel_id" binding:"required"`
	Arrival        string           `json:"arrival" binding:"required,datetime=2006-01-02"`
	Departure      string           `json:"departure" binding:"required,datetime=2006-01-02"`
	Occupancy      OccupancyRequest `json:"occupancy"`
	RoomProductIDs []uuid.UUID      `json:"room_product_ids" binding:"omitempty,dive,required"`
	RatePlanIDs    []uuid.UUID      `json:"rate_plan_ids" binding:"omitempty,dive,required"`
	IncludeCityTax bool             `json:"include_city_tax"`
}

func (r *BookingPricingRequest) ToQuery() (queries.BookingPricingQuery, error) {
	q := queries.BookingPricingQuery{
		HotelID:        r.HotelID,
		IncludeCityTax: r.IncludeCityTax,
		Reservations:   make([]booking.Reservation, 0, len(r.Reservations)),
	}
	for _, res := range r.Reservations {
		reservation, err := res.toDomain()
		if err != nil {
			return queries.BookingPricingQuery{}, err
		}
		q.Reservations = append(q.Reservations, reservation)
	}
	return q, nil
}

func (r *ReservationRequest) toDomain() (booking.Reservation, error) {
	arrival, departure, err := parseStay(r.Arrival, r.Departure)
	if err != nil {
		return booking.Reservation{}, err
	}
	occ, err := r.Occupancy.toDomain()
	if err != nil {
		return booking.Reservation{}, err
	}

	var amenities []booking.AmenityRequest
	if err := copier.Copy(&amenities, &r.Amenities); err != nil {
		return booking.Reservation{}, errs.Wrap(err, "copy amenity requests")
	}
	for i := range amenities {
		amenities[i].Count = max(amenities[i].Count, 1)
	}

	return booking.Reservation{
		RoomProductID: r.RoomProductID,
		RatePlanID:    r.RatePlanID,
		Arrival:       arrival,
		Departure:     departure,
		Occupancy:     occ,
		Amenities:     amenities,
	}, nil
}

func (r *RoomProductPricingRequest) ToQuery() (queries.RoomProductPricingQuery, error) {
	arrival, departure, err := parseStay(r.Arrival, r.Departure)
	if err != nil {
		return queries.RoomProductPricingQuery{}, err
	}
	occ, err := r.Occupancy.toDomain()
	if err != nil {
		return queries.RoomProductPricingQuery{}, err
	}
	return queries.RoomProductPricingQuery{
		HotelID:        r.HotelID,
		Arrival:        arrival,
		Departure:      departure,
		Occupancy:      occ,
		RoomProductIDs: r.RoomProductIDs,
		RatePlanIDs:    r.RatePlanIDs,
		IncludeCityTax: r.IncludeCityTax,
	}, nil
}

func (o *OccupancyRequest) toDomain() (booking.Occupancy, error) {
	var occ booking.Occupancy
	if err := copier.Copy(&occ, o); err != nil {
		return booking.Occupancy{}, errs.Wrap(err, "copy occupancy")
	}
	return occ, nil
}

func parseStay(arrival, departure string) (time.Time, time.Time, error) {
	from, err := time.Parse(pricing.DateLayout, arrival)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(errs.Wrapf(err, "invalid arrival %q", arrival), booking.ErrInvalidInput)
	}
	to, err := time.Parse(pricing.DateLayout, departure)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(errs.Wrapf(err, "invalid departure %q", departure), booking.ErrInvalidInput)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, errs.Mark(errs.Newf("departure %s must be after arrival %s", departure, arrival), booking.ErrInvalidInput)
	}
	if to.After(from.AddDate(0, 0, maxStayNights)) {
		return time.Time{}, time.Time{}, errs.Mark(errs.Newf("stay from %s to %s exceeds %d nights", arrival, departure, maxStayNights), booking.ErrInvalidInput)
	}
	return from, to, nil
}
