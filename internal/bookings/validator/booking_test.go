package validator

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"roomgrid/pkg/logger"
	"roomgrid/pkg/model"
)

func validBooking() model.Booking {
	return model.Booking{
		ID:        "b1",
		RoomID:    "r1",
		StartTime: "2024-05-01T09:00:00-03:00",
		EndTime:   "2024-05-01T10:00:00-03:00",
		Status:    model.StatusCreated,
		UserEmail: "ana@example.com",
		UserPhone: "+5511987654321",
	}
}

func TestValidate(t *testing.T) {
	v := NewBookingValidator(logger.New(logger.Config{Output: io.Discard}))

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantField string
	}{
		{"valid", func(b *model.Booking) {}, ""},
		{"valid without phone", func(b *model.Booking) { b.UserPhone = "" }, ""},
		{"legacy space separated time", func(b *model.Booking) {
			b.StartTime = "2024-05-01 09:00:00+00"
			b.EndTime = "2024-05-01 10:00:00+00"
		}, ""},
		{"missing room", func(b *model.Booking) { b.RoomID = "" }, "RoomID"},
		{"bad start", func(b *model.Booking) { b.StartTime = "tomorrow" }, "StartTime"},
		{"end before start", func(b *model.Booking) { b.EndTime = "2024-05-01T08:00:00-03:00" }, "EndTime"},
		{"zero length", func(b *model.Booking) { b.EndTime = b.StartTime }, "EndTime"},
		{"unknown status", func(b *model.Booking) { b.Status = "pending" }, "Status"},
		{"bad email", func(b *model.Booking) { b.UserEmail = "not-an-email" }, "UserEmail"},
		{"bad phone", func(b *model.Booking) { b.UserPhone = "11 98765" }, "UserPhone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(&b)

			err := v.Validate(&b)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			found := false
			for _, e := range verrs {
				if e.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error on %s, got %v", tt.wantField, verrs)
			}
		})
	}
}

func TestReport_LogsAndKeeps(t *testing.T) {
	var buf bytes.Buffer
	v := NewBookingValidator(logger.New(logger.Config{Output: &buf, Level: logger.WARN}))

	bad := validBooking()
	bad.ID = "broken-1"
	bad.EndTime = "never"
	bookings := []model.Booking{validBooking(), bad}

	if got := v.Report(bookings); got != 1 {
		t.Errorf("Report() = %d, want 1", got)
	}
	if len(bookings) != 2 || bookings[1].EndTime != "never" {
		t.Error("Report must not modify the bookings")
	}
	if !strings.Contains(buf.String(), "broken-1") {
		t.Errorf("expected the invalid booking to be logged, got %s", buf.String())
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "StartTime", Message: "StartTime is required"},
		{Field: "EndTime", Message: "end_time must be after start_time"},
	}
	want := "validation failed: 2 error(s): [StartTime: StartTime is required; EndTime: end_time must be after start_time]"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should render empty")
	}
}
