package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"roomgrid/pkg/logger"
	"roomgrid/pkg/model"
)

type OverlapPolicy string

const (
	// PolicyInterval paints every hour a booking's [start, end) touches.
	PolicyInterval OverlapPolicy = "interval"
	// PolicyStartHour paints only the slot of the booking's start hour.
	PolicyStartHour OverlapPolicy = "start-hour"
)

func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch p := OverlapPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyInterval, PolicyStartHour:
		return p, nil
	default:
		return "", fmt.Errorf("unknown overlap policy %q, want %q or %q", s, PolicyInterval, PolicyStartHour)
	}
}

// StatusFilter is the set of statuses that mark a slot as taken. Cancelled
// bookings never pass, whatever the set contains.
type StatusFilter struct {
	visible map[model.BookingStatus]struct{}
}

func NewStatusFilter(statuses ...model.BookingStatus) StatusFilter {
	f := StatusFilter{visible: make(map[model.BookingStatus]struct{}, len(statuses))}
	for _, s := range statuses {
		if s == model.StatusCancelled {
			continue
		}
		f.visible[s] = struct{}{}
	}
	return f
}

func DefaultStatusFilter() StatusFilter {
	return NewStatusFilter(model.StatusCreated, model.StatusCompleted)
}

// Allows normalizes status (legacy names included) before checking the set.
func (f StatusFilter) Allows(status model.BookingStatus) bool {
	s, ok := model.ParseBookingStatus(string(status))
	if !ok || s == model.StatusCancelled {
		return false
	}
	_, visible := f.visible[s]
	return visible
}

// Statuses lists the visible set in a stable order.
func (f StatusFilter) Statuses() []model.BookingStatus {
	out := make([]model.BookingStatus, 0, len(f.visible))
	for s := range f.visible {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Span is a booking whose timestamps parsed cleanly.
type Span struct {
	Booking model.Booking
	Start   time.Time
	End     time.Time
}

type Resolver struct {
	policy OverlapPolicy
	loc    *time.Location
	log    *logger.Logger
}

// NewResolver builds a resolver. A nil loc means UTC and a nil log discards.
func NewResolver(policy OverlapPolicy, loc *time.Location, log *logger.Logger) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Discard()
	}
	if policy == "" {
		policy = PolicyInterval
	}
	return &Resolver{policy: policy, loc: loc, log: log}
}

func (r *Resolver) Policy() OverlapPolicy {
	return r.policy
}

func (r *Resolver) Location() *time.Location {
	return r.loc
}

// WithPolicy returns a copy of r resolving under policy.
func (r *Resolver) WithPolicy(policy OverlapPolicy) *Resolver {
	cp := *r
	cp.policy = policy
	return &cp
}

// Spans parses every booking once. Bookings with malformed timestamps or a
// non-positive duration are logged and left out, so they never occupy a cell.
func (r *Resolver) Spans(bookings []model.Booking) []Span {
	spans := make([]Span, 0, len(bookings))
	for _, b := range bookings {
		start, err := ParseTimestamp(b.StartTime, r.loc)
		if err != nil {
			r.log.Warn("Ignoring booking with malformed start time",
				"booking_id", b.ID, "room_id", b.RoomID, "start_time", b.StartTime, "error", err)
			continue
		}
		end, err := ParseTimestamp(b.EndTime, r.loc)
		if err != nil {
			r.log.Warn("Ignoring booking with malformed end time",
				"booking_id", b.ID, "room_id", b.RoomID, "end_time", b.EndTime, "error", err)
			continue
		}
		if !start.Before(end) {
			r.log.Warn("Ignoring booking that ends before it starts",
				"booking_id", b.ID, "room_id", b.RoomID, "start_time", b.StartTime, "end_time", b.EndTime)
			continue
		}
		spans = append(spans, Span{Booking: b, Start: start, End: end})
	}
	return spans
}

// OccupantsOf returns the bookings occupying slot on day, created first.
func (r *Resolver) OccupantsOf(bookings []model.Booking, day time.Time, slot Slot, filter StatusFilter) []model.Booking {
	return r.SpanOccupants(r.Spans(bookings), day, slot, filter)
}

// IsOccupied reports whether any visible booking occupies slot on day.
func (r *Resolver) IsOccupied(bookings []model.Booking, day time.Time, slot Slot, filter StatusFilter) bool {
	return len(r.OccupantsOf(bookings, day, slot, filter)) > 0
}

// SpanOccupants is OccupantsOf over bookings already parsed by Spans.
func (r *Resolver) SpanOccupants(spans []Span, day time.Time, slot Slot, filter StatusFilter) []model.Booking {
	slotStart, slotEnd := slot.Window(day, r.loc)

	var out []model.Booking
	for _, s := range spans {
		if !filter.Allows(s.Booking.Status) {
			continue
		}
		if r.occupies(s, slotStart, slotEnd) {
			out = append(out, s.Booking)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return statusRank(out[i].Status) < statusRank(out[j].Status)
	})
	return out
}

func (r *Resolver) occupies(s Span, slotStart, slotEnd time.Time) bool {
	switch r.policy {
	case PolicyStartHour:
		sy, sm, sd := s.Start.Date()
		dy, dm, dd := slotStart.Date()
		return sy == dy && sm == dm && sd == dd && s.Start.Hour() == slotStart.Hour()
	default:
		// half-open on both sides: a booking ending at 10:00 leaves 10:00 free
		return s.Start.Before(slotEnd) && s.End.After(slotStart)
	}
}

func statusRank(status model.BookingStatus) int {
	if s, _ := model.ParseBookingStatus(string(status)); s == model.StatusCreated {
		return 0
	}
	return 1
}
