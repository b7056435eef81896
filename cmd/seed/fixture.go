package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"roomgrid/pkg/model"
)

// Fixture is the on-disk seed format.
type Fixture struct {
	Rooms    []*model.Room    `json:"rooms"`
	Bookings []*model.Booking `json:"bookings"`
}

func loadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

// check rejects fixtures that would leave bookings pointing at no room.
func (f *Fixture) check() error {
	rooms := make(map[string]struct{}, len(f.Rooms))
	for i, r := range f.Rooms {
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			return fmt.Errorf("room %d has no id", i)
		}
		if _, dup := rooms[r.ID]; dup {
			return fmt.Errorf("duplicate room id %s", r.ID)
		}
		rooms[r.ID] = struct{}{}
	}

	for i, b := range f.Bookings {
		b.RoomID = strings.TrimSpace(b.RoomID)
		if _, ok := rooms[b.RoomID]; !ok {
			return fmt.Errorf("booking %d (%s) references unknown room %q", i, b.ID, b.RoomID)
		}
	}
	return nil
}

func (f *Fixture) bookings() []model.Booking {
	out := make([]model.Booking, len(f.Bookings))
	for i, b := range f.Bookings {
		out[i] = *b
	}
	return out
}

func (f *Fixture) event(at time.Time) model.ChangeEvent {
	return model.ChangeEvent{
		Type:     model.EventSnapshotReplaced,
		Source:   JobName,
		Rooms:    len(f.Rooms),
		Bookings: len(f.Bookings),
		At:       at.UTC(),
	}
}
