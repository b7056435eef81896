package calendar

import (
	"testing"
	"time"

	"roomgrid/pkg/model"
)

func gridBookings() []model.Booking {
	return []model.Booking{
		booking("done", "2024-05-01T09:00:00Z", "2024-05-01T10:00:00Z", model.StatusCompleted),
		booking("new", "2024-05-01T09:30:00Z", "2024-05-01T11:30:00Z", model.StatusCreated),
		booking("gone", "2024-05-02T14:00:00Z", "2024-05-02T15:00:00Z", model.StatusCancelled),
		booking("broken", "yesterday", "2024-05-02T15:00:00Z", model.StatusCreated),
	}
}

func cellAt(t *testing.T, view WeekView, date string, hour int) Cell {
	t.Helper()
	for _, row := range view.Rows {
		if row.Hour != hour {
			continue
		}
		for _, cell := range row.Cells {
			if cell.Date == date {
				return cell
			}
		}
	}
	t.Fatalf("no cell for %s %d:00", date, hour)
	return Cell{}
}

func TestBuildView_Shape(t *testing.T) {
	r := NewResolver(PolicyInterval, time.UTC, nil)
	week := BuildWeek(date(time.UTC, 2024, time.May, 1, 12, 0))
	view := r.BuildView("room-1", week, gridBookings(), DefaultStatusFilter(), false)

	if len(view.Days) != DaysPerWeek || len(view.Rows) != SlotCount {
		t.Fatalf("view is %d days x %d rows", len(view.Days), len(view.Rows))
	}
	if view.StartDate != "2024-04-28" || view.EndDate != "2024-05-04" {
		t.Errorf("range = %s..%s", view.StartDate, view.EndDate)
	}
	if view.Anchor != "2024-05-01" {
		t.Errorf("anchor = %s", view.Anchor)
	}
	if view.Rows[0].Slot != "8:00" || view.Rows[SlotCount-1].Slot != "22:00" {
		t.Errorf("rows span %s..%s", view.Rows[0].Slot, view.Rows[SlotCount-1].Slot)
	}
	if view.Policy != "interval" {
		t.Errorf("policy = %s", view.Policy)
	}
	for _, row := range view.Rows {
		if len(row.Cells) != DaysPerWeek {
			t.Fatalf("row %s has %d cells", row.Slot, len(row.Cells))
		}
	}
}

func TestBuildView_PublicHidesDetails(t *testing.T) {
	r := NewResolver(PolicyInterval, time.UTC, nil)
	week := BuildWeek(date(time.UTC, 2024, time.May, 1, 12, 0))
	view := r.BuildView("room-1", week, gridBookings(), DefaultStatusFilter(), false)

	reserved := 0
	for _, row := range view.Rows {
		for _, cell := range row.Cells {
			if cell.Primary != nil || cell.More != 0 {
				t.Fatalf("public view leaked details in %s %s", cell.Date, row.Slot)
			}
			if cell.Occupied {
				reserved++
				if cell.Label != LabelReserved {
					t.Errorf("occupied cell label = %q", cell.Label)
				}
			} else if cell.Label != LabelAvailable {
				t.Errorf("free cell label = %q", cell.Label)
			}
		}
	}
	// 9:00 (both), 10:00 and 11:00 (new)
	if reserved != 3 {
		t.Errorf("reserved cells = %d, want 3", reserved)
	}
	if cellAt(t, view, "2024-05-02", 14).Occupied {
		t.Error("cancelled booking must leave the cell free")
	}
}

func TestBuildView_DetailedShowsPrimaryAndMore(t *testing.T) {
	r := NewResolver(PolicyInterval, time.UTC, nil)
	week := BuildWeek(date(time.UTC, 2024, time.May, 1, 12, 0))
	view := r.BuildView("room-1", week, gridBookings(), DefaultStatusFilter(), true)

	nine := cellAt(t, view, "2024-05-01", 9)
	if nine.Primary == nil || nine.Primary.ID != "new" {
		t.Fatalf("9:00 primary = %+v, want the created booking", nine.Primary)
	}
	if nine.More != 1 {
		t.Errorf("9:00 more = %d, want 1", nine.More)
	}
	if nine.Primary.TimeRange != "09:30 - 11:30" {
		t.Errorf("time range = %q", nine.Primary.TimeRange)
	}
	if nine.Primary.StatusLabel != "⏳ Pendente" {
		t.Errorf("status label = %q", nine.Primary.StatusLabel)
	}

	ten := cellAt(t, view, "2024-05-01", 10)
	if ten.Primary == nil || ten.More != 0 {
		t.Errorf("10:00 cell = %+v", ten)
	}
}

func TestBuildView_StartHourPolicy(t *testing.T) {
	r := NewResolver(PolicyStartHour, time.UTC, nil)
	week := BuildWeek(date(time.UTC, 2024, time.May, 1, 12, 0))
	view := r.BuildView("room-1", week, gridBookings(), DefaultStatusFilter(), true)

	nine := cellAt(t, view, "2024-05-01", 9)
	if nine.More != 1 {
		t.Errorf("9:00 more = %d, want 1", nine.More)
	}
	if cellAt(t, view, "2024-05-01", 10).Occupied {
		t.Error("start-hour policy must leave 10:00 free")
	}
}

func TestSummarize_KeepsRawTimesWhenUnparseable(t *testing.T) {
	r := NewResolver(PolicyInterval, time.UTC, nil)
	b := booking("raw", "soon", "later", "concluido")

	got := r.Summarize(b)
	if got.StartTime != "soon" || got.EndTime != "later" || got.TimeRange != "" {
		t.Errorf("unexpected times %+v", got)
	}
	if got.Status != string(model.StatusCompleted) {
		t.Errorf("status = %q, want normalized", got.Status)
	}
	if got.Color != ColorForEmail("raw@example.com") {
		t.Errorf("color = %q", got.Color)
	}
}

func TestBuildSlotDetail(t *testing.T) {
	r := NewResolver(PolicyInterval, time.UTC, nil)
	day := date(time.UTC, 2024, time.May, 1, 0, 0)

	public := r.BuildSlotDetail("room-1", day, Slot{Hour: 9}, gridBookings(), DefaultStatusFilter(), false)
	if !public.Occupied || public.Count != 2 || len(public.Occupants) != 0 {
		t.Errorf("public detail = %+v", public)
	}

	detailed := r.BuildSlotDetail("room-1", day, Slot{Hour: 9}, gridBookings(), DefaultStatusFilter(), true)
	if len(detailed.Occupants) != 2 || detailed.Occupants[0].ID != "new" || detailed.Occupants[1].ID != "done" {
		t.Errorf("detailed occupants = %+v", detailed.Occupants)
	}

	free := r.BuildSlotDetail("room-1", day, Slot{Hour: 20}, gridBookings(), DefaultStatusFilter(), true)
	if free.Occupied || free.Label != LabelAvailable {
		t.Errorf("free detail = %+v", free)
	}
}
