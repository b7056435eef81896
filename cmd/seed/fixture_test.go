package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"roomgrid/pkg/model"
)

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixtures.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFixture(t *testing.T) {
	path := writeFixture(t, `{
		"rooms": [{"id": "r1", "name": "Sala Azul"}, {"id": "r2", "name": "Sala Verde"}],
		"bookings": [
			{"id": "b1", "room_id": " r1 ", "start_time": "2024-05-01T09:00:00Z", "end_time": "2024-05-01T10:00:00Z", "status": "created"}
		]
	}`)

	f, err := loadFixture(path)
	if err != nil {
		t.Fatalf("loadFixture() error = %v", err)
	}
	if len(f.Rooms) != 2 || len(f.Bookings) != 1 {
		t.Fatalf("unexpected fixture %+v", f)
	}
	if f.Bookings[0].RoomID != "r1" {
		t.Errorf("room id not trimmed: %q", f.Bookings[0].RoomID)
	}

	at := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	ev := f.event(at)
	if ev.Type != model.EventSnapshotReplaced || ev.Rooms != 2 || ev.Bookings != 1 || !ev.At.Equal(at) {
		t.Errorf("event = %+v", ev)
	}
}

func TestLoadFixture_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed json", `{"rooms": [`, "decode fixture"},
		{"room without id", `{"rooms": [{"name": "x"}]}`, "has no id"},
		{"duplicate room", `{"rooms": [{"id": "r1"}, {"id": "r1"}]}`, "duplicate room id"},
		{"orphan booking", `{"rooms": [{"id": "r1"}], "bookings": [{"id": "b1", "room_id": "r9"}]}`, "unknown room"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFixture(writeFixture(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("loadFixture() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if _, err := loadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
