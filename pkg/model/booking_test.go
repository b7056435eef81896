package model

import "testing"

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   BookingStatus
		wantOK bool
	}{
		{"created", StatusCreated, true},
		{"completed", StatusCompleted, true},
		{"cancelled", StatusCancelled, true},
		{"criado", StatusCreated, true},
		{"concluido", StatusCompleted, true},
		{"cancelado", StatusCancelled, true},
		{"  CRIADO ", StatusCreated, true},
		{"Completed", StatusCompleted, true},
		{"pending", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBookingStatus(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseBookingStatus(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseBookingStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
