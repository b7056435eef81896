package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	mongotx "roomgrid/pkg/db/mongo"
)

func TestCollections(t *testing.T) {
	defs := Collections()
	if len(defs) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(defs))
	}
	if defs[0].Name != mongotx.RoomsCollection || defs[1].Name != mongotx.BookingsCollection {
		t.Errorf("unexpected collection order: %s, %s", defs[0].Name, defs[1].Name)
	}
	for _, def := range defs {
		if def.Validator["$jsonSchema"] == nil {
			t.Errorf("%s has no $jsonSchema validator", def.Name)
		}
	}
}

func TestBookingsIndexes(t *testing.T) {
	keys, ok := BookingsIndexes[0].Keys.(bson.D)
	if !ok {
		t.Fatalf("unexpected key type %T", BookingsIndexes[0].Keys)
	}
	if len(keys) != 2 || keys[0].Key != "room_id" || keys[1].Key != "start_time" {
		t.Errorf("bookings lookup index = %v", keys)
	}
}

func TestRoomsIndexes(t *testing.T) {
	keys := RoomsIndexes[0].Keys.(bson.D)
	if keys[0].Key != "name" {
		t.Errorf("rooms index = %v", keys)
	}
}
