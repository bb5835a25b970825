package pricing

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDateRange = errors.New("from date must not be after to date")

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	from time.Time
	to   time.Time
}

func NewDateRange(from, to time.Time) (DateRange, error) {
	f, t := TruncateDate(from), TruncateDate(to)
	if f.After(t) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{from: f, to: t}, nil
}

// NightsOf returns the inclusive range of nights for a stay, i.e. arrival .. departure-1.
func NightsOf(arrival, departure time.Time) (DateRange, error) {
	a, d := TruncateDate(arrival), TruncateDate(departure)
	if !a.Before(d) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{from: a, to: d.AddDate(0, 0, -1)}, nil
}

func (r DateRange) From() time.Time { return r.from }
func (r DateRange) To() time.Time   { return r.to }

func (r DateRange) Len() int {
	if r.from.IsZero() && r.to.IsZero() {
		return 0
	}
	return DaysBetween(r.from, r.to) + 1
}

func (r DateRange) Dates() []time.Time {
	return DatesBetween(r.from, r.to)
}

func (r DateRange) Contains(d time.Time) bool {
	d = TruncateDate(d)
	return !d.Before(r.from) && !d.After(r.to)
}

// IntersectDays counts the dates of r that fall inside [validFrom, validTo]; nil bounds are open.
func (r DateRange) IntersectDays(validFrom, validTo *time.Time) int {
	from, to := r.from, r.to
	if validFrom != nil && TruncateDate(*validFrom).After(from) {
		from = TruncateDate(*validFrom)
	}
	if validTo != nil && TruncateDate(*validTo).Before(to) {
		to = TruncateDate(*validTo)
	}
	if from.After(to) {
		return 0
	}
	return DaysBetween(from, to) + 1
}

// ValidOn reports whether d lies in [from, to]; nil bounds are open.
func ValidOn(d time.Time, from, to *time.Time) bool {
	d = TruncateDate(d)
	if from != nil && d.Before(TruncateDate(*from)) {
		return false
	}
	if to != nil && d.After(TruncateDate(*to)) {
		return false
	}
	return true
}

func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DaysBetween(from, to time.Time) int {
	return int(TruncateDate(to).Sub(TruncateDate(from)).Hours() / 24)
}

// DatesBetween lists the inclusive dates; empty when from is after to.
func DatesBetween(from, to time.Time) []time.Time {
	f, t := TruncateDate(from), TruncateDate(to)
	if f.After(t) {
		return []time.Time{}
	}
	dates := make([]time.Time, 0, DaysBetween(f, t)+1)
	for d := f; !d.After(t); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func DateKey(t time.Time) string {
	return TruncateDate(t).Format(DateLayout)
}
