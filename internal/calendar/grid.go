package calendar

import (
	"time"

	"roomgrid/pkg/model"
)

const dateLayout = "2006-01-02"

// BookingSummary is the detail shown for a booking to authenticated viewers.
type BookingSummary struct {
	ID          string `json:"id"`
	UserEmail   string `json:"user_email"`
	UserPhone   string `json:"user_phone,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TimeRange   string `json:"time_range"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Color       string `json:"color"`
}

type DayHeader struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Label   string `json:"label"`
}

// Cell is one (day, slot) intersection. Primary and More are only set for
// detailed views.
type Cell struct {
	Date     string          `json:"date"`
	Occupied bool            `json:"occupied"`
	Label    string          `json:"label"`
	Primary  *BookingSummary `json:"primary,omitempty"`
	More     int             `json:"more,omitempty"`
}

type Row struct {
	Slot  string `json:"slot"`
	Hour  int    `json:"hour"`
	Cells []Cell `json:"cells"`
}

// WeekView is one rendered week. CurrentWeek is left for callers that know
// today's date.
type WeekView struct {
	RoomID      string      `json:"room_id"`
	Anchor      string      `json:"anchor"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	Label       string      `json:"label"`
	Policy      string      `json:"policy"`
	Detailed    bool        `json:"detailed"`
	CurrentWeek bool        `json:"current_week"`
	Days        []DayHeader `json:"days"`
	Rows        []Row       `json:"rows"`
}

// BuildView resolves every cell of week for one room's bookings. Timestamps
// are parsed once for the whole grid.
func (r *Resolver) BuildView(roomID string, week Week, bookings []model.Booking, filter StatusFilter, detailed bool) WeekView {
	spans := r.Spans(bookings)

	view := WeekView{
		RoomID:    roomID,
		Anchor:    week.Anchor.Format(dateLayout),
		StartDate: week.Start().Format(dateLayout),
		EndDate:   week.Days[DaysPerWeek-1].Format(dateLayout),
		Label:     WeekLabel(week),
		Policy:    string(r.policy),
		Detailed:  detailed,
		Days:      make([]DayHeader, len(week.Days)),
		Rows:      make([]Row, len(week.Slots)),
	}

	for i, day := range week.Days {
		view.Days[i] = DayHeader{
			Date:    day.Format(dateLayout),
			Weekday: WeekdayName(day),
			Label:   FormatShortDate(day),
		}
	}

	for i, slot := range week.Slots {
		row := Row{Slot: slot.Label(), Hour: slot.Hour, Cells: make([]Cell, len(week.Days))}
		for j, day := range week.Days {
			occupants := r.SpanOccupants(spans, day, slot, filter)
			cell := Cell{
				Date:     view.Days[j].Date,
				Occupied: len(occupants) > 0,
				Label:    CellLabel(len(occupants) > 0),
			}
			if detailed && len(occupants) > 0 {
				primary := r.Summarize(occupants[0])
				cell.Primary = &primary
				cell.More = len(occupants) - 1
			}
			row.Cells[j] = cell
		}
		view.Rows[i] = row
	}

	return view
}

// Summarize renders a booking for display. Times that fail to parse are left
// as sent by the backend.
func (r *Resolver) Summarize(b model.Booking) BookingSummary {
	status := b.Status
	if s, ok := model.ParseBookingStatus(string(b.Status)); ok {
		status = s
	}

	summary := BookingSummary{
		ID:          b.ID,
		UserEmail:   b.UserEmail,
		UserPhone:   b.UserPhone,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(status),
		StatusLabel: StatusLabel(status),
		Color:       ColorForEmail(b.UserEmail),
	}

	start, startErr := ParseTimestamp(b.StartTime, r.loc)
	end, endErr := ParseTimestamp(b.EndTime, r.loc)
	if startErr == nil && endErr == nil {
		summary.StartTime = start.Format(time.RFC3339)
		summary.EndTime = end.Format(time.RFC3339)
		summary.TimeRange = FormatClock(start) + " - " + FormatClock(end)
	}
	return summary
}

// SlotDetail lists every occupant of one cell.
type SlotDetail struct {
	RoomID    string           `json:"room_id"`
	Date      string           `json:"date"`
	Slot      string           `json:"slot"`
	Policy    string           `json:"policy"`
	Occupied  bool             `json:"occupied"`
	Label     string           `json:"label"`
	Count     int              `json:"count"`
	Occupants []BookingSummary `json:"occupants,omitempty"`
}

func (r *Resolver) BuildSlotDetail(roomID string, day time.Time, slot Slot, bookings []model.Booking, filter StatusFilter, detailed bool) SlotDetail {
	occupants := r.OccupantsOf(bookings, day, slot, filter)
	detail := SlotDetail{
		RoomID:   roomID,
		Date:     day.In(r.loc).Format(dateLayout),
		Slot:     slot.Label(),
		Policy:   string(r.policy),
		Occupied: len(occupants) > 0,
		Label:    CellLabel(len(occupants) > 0),
		Count:    len(occupants),
	}
	if detailed {
		for _, b := range occupants {
			detail.Occupants = append(detail.Occupants, r.Summarize(b))
		}
	}
	return detail
}
