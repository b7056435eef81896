package calendar

import (
	"fmt"
	"time"

	"roomgrid/pkg/model"
)

const (
	LabelReserved  = "Reservado"
	LabelAvailable = "Disponível"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var weekdayNames = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

var emailPalette = [...]string{
	"#0f3c8c", "#2563eb", "#0891b2", "#0d9488", "#059669",
	"#4f46e5", "#7c3aed", "#9333ea", "#c026d3", "#db2777",
}

// FormatLongDate renders t as "05 de maio de 2024".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// WeekLabel renders the week range as shown above the grid.
func WeekLabel(w Week) string {
	return FormatLongDate(w.Days[0]) + " - " + FormatLongDate(w.Days[DaysPerWeek-1])
}

func WeekdayName(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// FormatShortDate renders t as dd/MM/yyyy.
func FormatShortDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

func CellLabel(occupied bool) string {
	if occupied {
		return LabelReserved
	}
	return LabelAvailable
}

// StatusLabel returns the display text of a status. Unknown values are
// echoed back unchanged.
func StatusLabel(status model.BookingStatus) string {
	s, ok := model.ParseBookingStatus(string(status))
	if !ok {
		return string(status)
	}
	switch s {
	case model.StatusCreated:
		return "⏳ Pendente"
	case model.StatusCompleted:
		return "✓ Concluído"
	default:
		return "✗ Cancelado"
	}
}

// ColorForEmail picks a palette colour from the sum of the email's code
// points, so one person keeps one colour across cells and weeks.
func ColorForEmail(email string) string {
	sum := 0
	for _, r := range email {
		sum += int(r)
	}
	return emailPalette[sum%len(emailPalette)]
}
