package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func rawField(t *testing.T, value any) bson.RawValue {
	t.Helper()
	doc, err := bson.Marshal(bson.M{"v": value})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bson.Raw(doc).Lookup("v")
}

func TestRawString(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2024, time.May, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value bson.RawValue
		want  string
	}{
		{"string", rawField(t, "2024-05-01T09:00:00-03:00"), "2024-05-01T09:00:00-03:00"},
		{"date", rawField(t, primitive.NewDateTimeFromTime(when)), "2024-05-01T12:30:00Z"},
		{"object id", rawField(t, oid), oid.Hex()},
		{"int32", rawField(t, int32(7)), "7"},
		{"int64", rawField(t, int64(1714566600)), "1714566600"},
		{"bool", rawField(t, true), ""},
		{"missing", bson.RawValue{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RawString(tt.value); got != tt.want {
				t.Errorf("RawString() = %q, want %q", got, tt.want)
			}
		})
	}
}

