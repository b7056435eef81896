package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"roomgrid/pkg/config"
	mongotx "roomgrid/pkg/db/mongo"
	apperrors "roomgrid/pkg/errors"
	"roomgrid/pkg/logger"
	"roomgrid/pkg/model"
)

type mockRoomRepository struct {
	findAllFunc func(ctx context.Context) ([]*model.Room, error)
}

func (m *mockRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Room{}, nil
}

func (m *mockRoomRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *mockRoomRepository) ReplaceAll(ctx context.Context, rooms []*model.Room) error {
	return nil
}

func (m *mockRoomRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultRoomImage: config.DefaultRoomImage,
		Log:              logger.New(logger.Config{Output: io.Discard}),
	}
}

func TestListRooms_Normalizes(t *testing.T) {
	repo := &mockRoomRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Room, error) {
			return []*model.Room{
				{ID: "r1", Name: "  Sala   Azul ", Code: " AZ ", ImageURL: "HTTPS://CDN.Example.com/azul.png"},
				{ID: "r2", Name: "Sala Verde", Description: "  janela ", ImageURL: ""},
				nil,
				{ID: "r3", Name: "Sala Roxa", ImageURL: "javascript:alert(1)"},
			}, nil
		},
	}
	svc := NewRoomService(repo, testConfig())

	rooms, err := svc.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}

	if rooms[0].Name != "Sala Azul" || rooms[0].Code != "AZ" {
		t.Errorf("room 0 not normalized: %+v", rooms[0])
	}
	if rooms[0].ImageURL != "https://cdn.example.com/azul.png" {
		t.Errorf("room 0 image = %q", rooms[0].ImageURL)
	}
	if rooms[1].ImageURL != config.DefaultRoomImage {
		t.Errorf("missing image should fall back to default, got %q", rooms[1].ImageURL)
	}
	if rooms[1].Description != "janela" {
		t.Errorf("description = %q", rooms[1].Description)
	}
	if rooms[2].ImageURL != config.DefaultRoomImage {
		t.Errorf("unsafe image should fall back to default, got %q", rooms[2].ImageURL)
	}
}

func TestListRooms_RepositoryError(t *testing.T) {
	repo := &mockRoomRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Room, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewRoomService(repo, testConfig())

	_, err := svc.ListRooms(context.Background())
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", appErr.StatusCode())
	}
}
