package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	FirstSlotHour = 8
	SlotCount     = 15
	DaysPerWeek   = 7
)

// Slot is one hour row of the grid, spanning [Hour:00, Hour+1:00).
type Slot struct {
	Hour int
}

func (s Slot) Label() string {
	return strconv.Itoa(s.Hour) + ":00"
}

func (s Slot) String() string {
	return s.Label()
}

// Window returns the slot's bounds on the calendar date of day, in loc.
func (s Slot) Window(day time.Time, loc *time.Location) (start, end time.Time) {
	y, m, d := day.In(loc).Date()
	start = time.Date(y, m, d, s.Hour, 0, 0, 0, loc)
	end = time.Date(y, m, d, s.Hour+1, 0, 0, 0, loc)
	return start, end
}

var timeSlots = func() []Slot {
	slots := make([]Slot, SlotCount)
	for i := range slots {
		slots[i] = Slot{Hour: FirstSlotHour + i}
	}
	return slots
}()

// TimeSlots returns the fixed 8:00..22:00 sequence.
func TimeSlots() []Slot {
	out := make([]Slot, len(timeSlots))
	copy(out, timeSlots)
	return out
}

func SlotLabels() []string {
	labels := make([]string, len(timeSlots))
	for i, s := range timeSlots {
		labels[i] = s.Label()
	}
	return labels
}

// ParseSlot accepts "9:00", "09:00" or "9" and rejects hours outside the grid.
func ParseSlot(label string) (Slot, error) {
	label = strings.TrimSpace(label)
	hourPart, minutePart, hasMinutes := strings.Cut(label, ":")
	if hasMinutes && minutePart != "00" {
		return Slot{}, fmt.Errorf("slot %q must start on the hour", label)
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid slot %q", label)
	}
	if hour < FirstSlotHour || hour >= FirstSlotHour+SlotCount {
		return Slot{}, fmt.Errorf("slot %q is outside %s-%s", label, timeSlots[0].Label(), timeSlots[SlotCount-1].Label())
	}
	return Slot{Hour: hour}, nil
}

// Week is the displayed window derived from an anchor date.
type Week struct {
	Anchor time.Time
	Days   []time.Time
	Slots  []Slot
}

// BuildWeek returns the Sunday-to-Saturday week containing anchor. Days are
// midnights in the anchor's location.
func BuildWeek(anchor time.Time) Week {
	start := StartOfWeek(anchor)
	y, m, d := start.Date()

	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = time.Date(y, m, d+i, 0, 0, 0, 0, anchor.Location())
	}

	return Week{
		Anchor: anchor,
		Days:   days,
		Slots:  TimeSlots(),
	}
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}

func (w Week) Start() time.Time {
	return w.Days[0]
}

// End is the midnight closing the week, exclusive.
func (w Week) End() time.Time {
	last := w.Days[DaysPerWeek-1]
	y, m, d := last.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, last.Location())
}

// Contains reports whether day falls on one of the week's dates.
func (w Week) Contains(day time.Time) bool {
	day = day.In(w.Days[0].Location())
	return !day.Before(w.Start()) && day.Before(w.End())
}
