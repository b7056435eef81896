package calendar

import (
	"reflect"
	"testing"
	"time"
	_ "time/tzdata"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%q) error = %v", name, err)
	}
	return loc
}

func date(loc *time.Location, y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, loc)
}

func TestBuildWeek_SevenConsecutiveDaysFromSunday(t *testing.T) {
	zones := []string{"UTC", "America/Sao_Paulo", "America/New_York", "Europe/Lisbon"}

	for _, zone := range zones {
		loc := mustLoad(t, zone)
		t.Run(zone, func(t *testing.T) {
			// two full years, including every DST switch of the zones above
			for anchor := date(loc, 2023, time.January, 1, 13, 37); anchor.Year() < 2025; anchor = anchor.AddDate(0, 0, 1) {
				week := BuildWeek(anchor)

				if len(week.Days) != DaysPerWeek {
					t.Fatalf("anchor %s: got %d days", anchor, len(week.Days))
				}
				if week.Days[0].Weekday() != time.Sunday {
					t.Fatalf("anchor %s: week starts on %s", anchor, week.Days[0].Weekday())
				}
				if week.Days[0].After(anchor) {
					t.Fatalf("anchor %s: week starts after anchor (%s)", anchor, week.Days[0])
				}
				for i := 1; i < len(week.Days); i++ {
					prev, cur := week.Days[i-1], week.Days[i]
					py, pm, pd := prev.Date()
					if !cur.Equal(time.Date(py, pm, pd+1, 0, 0, 0, 0, loc)) {
						t.Fatalf("anchor %s: day %d is %s, want the day after %s", anchor, i, cur, prev)
					}
				}
				if !week.Contains(anchor) {
					t.Fatalf("anchor %s not inside its own week", anchor)
				}
			}
		})
	}
}

func TestBuildWeek_KnownWeeks(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		wantStart time.Time
	}{
		{"wednesday", date(time.UTC, 2024, time.May, 1, 10, 0), date(time.UTC, 2024, time.April, 28, 0, 0)},
		{"sunday is its own start", date(time.UTC, 2024, time.May, 5, 0, 0), date(time.UTC, 2024, time.May, 5, 0, 0)},
		{"saturday late night", date(time.UTC, 2024, time.May, 11, 23, 59), date(time.UTC, 2024, time.May, 5, 0, 0)},
		{"across year end", date(time.UTC, 2025, time.January, 1, 9, 0), date(time.UTC, 2024, time.December, 29, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := BuildWeek(tt.anchor)
			if !week.Start().Equal(tt.wantStart) {
				t.Errorf("Start() = %s, want %s", week.Start(), tt.wantStart)
			}
			if !week.End().Equal(tt.wantStart.AddDate(0, 0, 7)) {
				t.Errorf("End() = %s, want %s", week.End(), tt.wantStart.AddDate(0, 0, 7))
			}
		})
	}
}

func TestBuildWeek_Idempotent(t *testing.T) {
	anchor := date(mustLoad(t, "America/Sao_Paulo"), 2024, time.May, 1, 9, 0)

	first := BuildWeek(anchor)
	second := BuildWeek(anchor)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildWeek not idempotent:\n%v\n%v", first, second)
	}
}

func TestTimeSlots_Fixed(t *testing.T) {
	want := []string{
		"8:00", "9:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00",
		"16:00", "17:00", "18:00", "19:00", "20:00", "21:00", "22:00",
	}

	if got := SlotLabels(); !reflect.DeepEqual(got, want) {
		t.Errorf("SlotLabels() = %v, want %v", got, want)
	}

	for _, anchor := range []time.Time{date(time.UTC, 1999, time.December, 31, 23, 0), date(time.UTC, 2024, time.May, 1, 9, 0)} {
		week := BuildWeek(anchor)
		if len(week.Slots) != SlotCount {
			t.Fatalf("got %d slots", len(week.Slots))
		}
		for i, s := range week.Slots {
			if s.Label() != want[i] {
				t.Errorf("slot %d = %s, want %s", i, s.Label(), want[i])
			}
		}
	}
}

func TestTimeSlots_ReturnsCopy(t *testing.T) {
	slots := TimeSlots()
	slots[0].Hour = 99
	if TimeSlots()[0].Hour != FirstSlotHour {
		t.Error("mutating the returned slice must not change the grid")
	}
}

func TestSlot_Window(t *testing.T) {
	loc := mustLoad(t, "America/Sao_Paulo")
	// 23:30 UTC on May 1 is 20:30 on May 1 in Sao Paulo
	day := time.Date(2024, time.May, 1, 23, 30, 0, 0, time.UTC)

	start, end := Slot{Hour: 9}.Window(day, loc)
	if !start.Equal(date(loc, 2024, time.May, 1, 9, 0)) {
		t.Errorf("start = %s", start)
	}
	if end.Sub(start) != time.Hour {
		t.Errorf("window length = %s", end.Sub(start))
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		input    string
		wantHour int
		wantErr  bool
	}{
		{"9:00", 9, false},
		{"09:00", 9, false},
		{"22:00", 22, false},
		{"8", 8, false},
		{" 14:00 ", 14, false},
		{"7:00", 0, true},
		{"23:00", 0, true},
		{"9:30", 0, true},
		{"nine", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSlot(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSlot(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.Hour != tt.wantHour {
				t.Errorf("ParseSlot(%q) = %d, want %d", tt.input, got.Hour, tt.wantHour)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	loc := mustLoad(t, "America/Sao_Paulo")
	want := date(loc, 2024, time.May, 1, 9, 0)

	tests := []struct {
		name  string
		input string
	}{
		{"rfc3339 utc", "2024-05-01T12:00:00Z"},
		{"rfc3339 offset", "2024-05-01T12:00:00+00:00"},
		{"rfc3339 local offset", "2024-05-01T09:00:00-03:00"},
		{"fractional seconds", "2024-05-01T12:00:00.000000+00:00"},
		{"postgres text", "2024-05-01 12:00:00+00"},
		{"no zone uses calendar zone", "2024-05-01T09:00:00"},
		{"no seconds", "2024-05-01 09:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input, loc)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error = %v", tt.input, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseTimestamp(%q) = %s, want %s", tt.input, got, want)
			}
			if got.Location() != loc {
				t.Errorf("expected result in %s, got %s", loc, got.Location())
			}
		})
	}

	for _, bad := range []string{"", "yesterday", "2024-13-01T09:00:00Z", "01/05/2024 09:00"} {
		if _, err := ParseTimestamp(bad, loc); err == nil {
			t.Errorf("ParseTimestamp(%q) expected error", bad)
		}
	}
}
