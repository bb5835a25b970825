package booking

import (
	"fmt"
	"slices"
	"time"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/pricing"

	"github.com/google/uuid"
)

func (s *Snapshot) RoomProduct(id uuid.UUID) (RoomProduct, bool) {
	for _, p := range s.RoomProducts {
		if p.ID == id {
			return p, true
		}
	}
	return RoomProduct{}, false
}

func (s *Snapshot) RatePlan(id uuid.UUID) (RatePlan, bool) {
	for _, p := range s.RatePlans {
		if p.ID == id {
			return p, true
		}
	}
	return RatePlan{}, false
}

func (s *Snapshot) Link(roomProductID, ratePlanID uuid.UUID) (RoomProductRatePlan, bool) {
	for _, l := range s.RoomProductRatePlans {
		if l.RoomProductID == roomProductID && l.RatePlanID == ratePlanID {
			return l, true
		}
	}
	return RoomProductRatePlan{}, false
}

func (s *Snapshot) Amenity(id uuid.UUID) (amenity.Amenity, bool) {
	for _, a := range s.Amenities {
		if a.ID == id {
			return a, true
		}
	}
	return amenity.Amenity{}, false
}

// DailyPrices returns one selling price per date, in date order.
func (s *Snapshot) DailyPrices(linkID uuid.UUID, dates []time.Time) ([]DailySellingPrice, error) {
	byDate := make(map[string]DailySellingPrice, len(dates))
	for _, p := range s.DailySellingPrices {
		if p.RoomProductRatePlanID == linkID {
			byDate[pricing.DateKey(p.Date)] = p
		}
	}
	out := make([]DailySellingPrice, len(dates))
	for i, d := range dates {
		p, ok := byDate[pricing.DateKey(d)]
		if !ok {
			return nil, fmt.Errorf("%w: no selling price for %s on %s", ErrInvalidInput, linkID, pricing.DateKey(d))
		}
		p.Date = d
		out[i] = p
	}
	return out, nil
}

// AmenityLine is one amenity a room will be charged for and why.
type AmenityLine struct {
	Amenity   amenity.Amenity
	Inclusion amenity.Inclusion
	Count     int
}

// AmenityLines resolves the amenities of one room: rate plan inclusions first, then requested
// extras, then pet and extra bed surcharges. An amenity appears once.
func (s *Snapshot) AmenityLines(product RoomProduct, plan RatePlan, occ Occupancy, extras []AmenityRequest) ([]AmenityLine, error) {
	var lines []AmenityLine
	seen := map[uuid.UUID]struct{}{}
	add := func(id uuid.UUID, inclusion amenity.Inclusion, count int) error {
		if _, ok := seen[id]; ok {
			return nil
		}
		a, ok := s.Amenity(id)
		if !ok {
			return fmt.Errorf("%w: unknown amenity %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		lines = append(lines, AmenityLine{Amenity: a, Inclusion: inclusion, Count: max(count, 1)})
		return nil
	}

	for _, id := range plan.IncludedAmenityIDs {
		if err := add(id, amenity.InclusionIncluded, 1); err != nil {
			return nil, err
		}
	}
	for _, id := range plan.MandatoryAmenityIDs {
		if err := add(id, amenity.InclusionMandatory, 1); err != nil {
			return nil, err
		}
	}
	for _, r := range extras {
		if err := add(r.AmenityID, amenity.InclusionExtra, r.Count); err != nil {
			return nil, err
		}
	}
	for _, id := range product.AmenityIDs {
		a, ok := s.Amenity(id)
		if !ok {
			continue
		}
		switch {
		case a.Type == amenity.TypePet && occ.Pets > 0:
			_ = add(id, amenity.InclusionSurcharge, occ.Pets)
		case a.Type == amenity.TypeExtraBed && occ.ExtraBeds > 0:
			_ = add(id, amenity.InclusionSurcharge, occ.ExtraBeds)
		}
	}
	return lines, nil
}

// Resolve validates a reservation against the snapshot.
func (s *Snapshot) Resolve(r Reservation) (RoomRequest, error) {
	stay, err := pricing.NightsOf(r.Arrival, r.Departure)
	if err != nil {
		return RoomRequest{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	product, ok := s.RoomProduct(r.RoomProductID)
	if !ok {
		return RoomRequest{}, fmt.Errorf("%w: unknown room product %s", ErrInvalidInput, r.RoomProductID)
	}
	plan, ok := s.RatePlan(r.RatePlanID)
	if !ok {
		return RoomRequest{}, fmt.Errorf("%w: unknown rate plan %s", ErrInvalidInput, r.RatePlanID)
	}
	link, ok := s.Link(product.ID, plan.ID)
	if !ok {
		return RoomRequest{}, fmt.Errorf("%w: rate plan %s is not sold with room product %s", ErrInvalidInput, plan.Code, product.Code)
	}
	return RoomRequest{
		RoomProduct: product,
		RatePlan:    plan,
		Link:        link,
		Stay:        stay,
		Occupancy:   r.Occupancy,
		Amenities:   r.Amenities,
		Quotes:      r.Quotes,
	}, nil
}

// LinkedPair is a room product and rate plan sold together, both present in the snapshot.
type LinkedPair struct {
	RoomProduct RoomProduct
	RatePlan    RatePlan
	Link        RoomProductRatePlan
}

// Pairs returns the linked pairs whose room product and rate plan pass the filters, in link
// order. An empty filter matches everything.
func (s *Snapshot) Pairs(roomProductIDs, ratePlanIDs []uuid.UUID) []LinkedPair {
	var out []LinkedPair
	for _, link := range s.RoomProductRatePlans {
		if !containsOrEmpty(roomProductIDs, link.RoomProductID) || !containsOrEmpty(ratePlanIDs, link.RatePlanID) {
			continue
		}
		product, okProduct := s.RoomProduct(link.RoomProductID)
		plan, okPlan := s.RatePlan(link.RatePlanID)
		if !okProduct || !okPlan {
			continue
		}
		out = append(out, LinkedPair{RoomProduct: product, RatePlan: plan, Link: link})
	}
	return out
}

func containsOrEmpty(ids []uuid.UUID, id uuid.UUID) bool {
	return len(ids) == 0 || slices.Contains(ids, id)
}
