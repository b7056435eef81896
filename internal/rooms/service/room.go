package service

import (
	"context"
	"strings"

	"roomgrid/internal/rooms/repository"
	"roomgrid/pkg/config"
	apperrors "roomgrid/pkg/errors"
	"roomgrid/pkg/model"
	"roomgrid/pkg/sanitizer"
)

type RoomService interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
}

type roomService struct {
	repo repository.RoomRepository
	cfg  *config.Config
}

func NewRoomService(repo repository.RoomRepository, cfg *config.Config) RoomService {
	return &roomService{repo: repo, cfg: cfg}
}

// ListRooms returns every room, normalized for display and ordered by name.
func (s *roomService) ListRooms(ctx context.Context) ([]model.Room, error) {
	found, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	rooms := make([]model.Room, 0, len(found))
	for _, r := range found {
		if r == nil {
			continue
		}
		rooms = append(rooms, s.normalize(*r))
	}
	return rooms, nil
}

func (s *roomService) normalize(r model.Room) model.Room {
	r.Name = sanitizer.NormalizeName(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	r.Description = strings.TrimSpace(r.Description)

	r.ImageURL = sanitizer.NormalizeImageURL(r.ImageURL)
	if r.ImageURL == "" {
		r.ImageURL = s.cfg.DefaultRoomImage
	}
	return r
}
