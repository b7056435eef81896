package calendar

import (
	"testing"
	"time"

	"roomgrid/pkg/model"
)

func TestWeekLabel(t *testing.T) {
	week := BuildWeek(date(time.UTC, 2024, time.May, 8, 12, 0))
	want := "05 de maio de 2024 - 11 de maio de 2024"
	if got := WeekLabel(week); got != want {
		t.Errorf("WeekLabel() = %q, want %q", got, want)
	}

	crossYear := BuildWeek(date(time.UTC, 2024, time.December, 31, 12, 0))
	want = "29 de dezembro de 2024 - 04 de janeiro de 2025"
	if got := WeekLabel(crossYear); got != want {
		t.Errorf("WeekLabel() = %q, want %q", got, want)
	}
}

func TestWeekdayName(t *testing.T) {
	week := BuildWeek(date(time.UTC, 2024, time.May, 8, 12, 0))
	if got := WeekdayName(week.Days[0]); got != "domingo" {
		t.Errorf("first day = %q, want domingo", got)
	}
	if got := WeekdayName(week.Days[6]); got != "sábado" {
		t.Errorf("last day = %q, want sábado", got)
	}
}

func TestFormatters(t *testing.T) {
	ts := date(time.UTC, 2024, time.March, 7, 9, 5)
	if got := FormatShortDate(ts); got != "07/03/2024" {
		t.Errorf("FormatShortDate() = %q", got)
	}
	if got := FormatClock(ts); got != "09:05" {
		t.Errorf("FormatClock() = %q", got)
	}
	if got := FormatLongDate(ts); got != "07 de março de 2024" {
		t.Errorf("FormatLongDate() = %q", got)
	}
}

func TestCellLabel(t *testing.T) {
	if CellLabel(true) != "Reservado" {
		t.Error("occupied cell should read Reservado")
	}
	if CellLabel(false) != "Disponível" {
		t.Error("free cell should read Disponível")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status model.BookingStatus
		want   string
	}{
		{model.StatusCreated, "⏳ Pendente"},
		{"criado", "⏳ Pendente"},
		{model.StatusCompleted, "✓ Concluído"},
		{"concluído", "✓ Concluído"},
		{model.StatusCancelled, "✗ Cancelado"},
		{"on-hold", "on-hold"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := StatusLabel(tt.status); got != tt.want {
				t.Errorf("StatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestColorForEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"", "#0f3c8c"},
		{"a", "#9333ea"},
		{"ab", "#4f46e5"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ColorForEmail(tt.email); got != tt.want {
				t.Errorf("ColorForEmail(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}

	if ColorForEmail("ana@example.com") != ColorForEmail("ana@example.com") {
		t.Error("colour must be stable for the same email")
	}
}
