package service

import (
	"context"
	"strings"

	"roomgrid/internal/bookings/repository"
	"roomgrid/internal/bookings/validator"
	"roomgrid/pkg/config"
	apperrors "roomgrid/pkg/errors"
	"roomgrid/pkg/locale"
	"roomgrid/pkg/model"
	"roomgrid/pkg/sanitizer"
)

type BookingService interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	cfg       *config.Config
	region    string
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
		region:    locale.RegionForTimezone(cfg.TimeZone),
	}
}

// ListBookings returns every booking ordered by start time. Records failing
// validation are logged and still returned; the calendar decides per cell
// whether they can occupy anything.
func (s *bookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	found, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return s.prepare(found), nil
}

func (s *bookingService) prepare(found []*model.Booking) []model.Booking {
	bookings := make([]model.Booking, 0, len(found))
	for _, b := range found {
		if b == nil {
			continue
		}
		bookings = append(bookings, s.sanitize(*b))
	}

	if invalid := s.validator.Report(bookings); invalid > 0 {
		s.cfg.Log.Warn("Snapshot contains invalid booking records",
			"invalid", invalid,
			"total", len(bookings),
		)
	}
	return bookings
}

// sanitize normalizes legacy statuses and contact fields. Values that cannot
// be normalized are kept as sent. Local phone numbers are read in the
// region of the calendar's zone.
func (s *bookingService) sanitize(b model.Booking) model.Booking {
	b.ID = strings.TrimSpace(b.ID)
	b.RoomID = strings.TrimSpace(b.RoomID)
	if status, ok := model.ParseBookingStatus(string(b.Status)); ok {
		b.Status = status
	}
	b.UserEmail = sanitizer.NormalizeEmail(b.UserEmail)
	if phone := sanitizer.NormalizePhoneIn(b.UserPhone, s.region); phone != "" {
		b.UserPhone = phone
	} else {
		b.UserPhone = strings.TrimSpace(b.UserPhone)
	}
	return b
}
