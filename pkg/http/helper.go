package http

import (
	"net/http"
	"time"

	apperrors "roomgrid/pkg/errors"
)

const DateLayout = "2006-01-02"

// ExtractDate reads a YYYY-MM-DD query parameter as midnight in loc.
// A missing parameter yields fallback.
func ExtractDate(r *http.Request, name string, loc *time.Location, fallback time.Time) (time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback, nil
	}

	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid " + name + " parameter, must be YYYY-MM-DD: " + s)
	}
	return d, nil
}
