package snapshot

import (
	"context"
	"encoding/json"
	"strings"

	"roomgrid/pkg/model"
)

// Refresher is the part of Store the change listeners drive.
type Refresher interface {
	RefreshFrom(ctx context.Context, source string) error
}

// triggersRefresh reports whether an event type invalidates the snapshot.
func triggersRefresh(eventType string) bool {
	switch eventType {
	case model.EventRoomsChanged, model.EventBookingsChanged, model.EventSnapshotReplaced:
		return true
	default:
		return false
	}
}

// parseEventType accepts either a JSON ChangeEvent or a bare event type, the
// form publishers on the redis channel tend to use.
func parseEventType(payload []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return "", false
	}
	if strings.HasPrefix(trimmed, "{") {
		var ev model.ChangeEvent
		if err := json.Unmarshal([]byte(trimmed), &ev); err != nil || ev.Type == "" {
			return "", false
		}
		return ev.Type, true
	}
	return trimmed, true
}
