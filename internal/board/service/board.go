package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"roomgrid/internal/calendar"
	"roomgrid/internal/snapshot"
	"roomgrid/pkg/config"
	apperrors "roomgrid/pkg/errors"
	"roomgrid/pkg/middleware"
	"roomgrid/pkg/model"
)

// Snapshot is the read side of snapshot.Store used by the board.
type Snapshot interface {
	Rooms() []model.Room
	Room(id string) (model.Room, bool)
	BookingsForRoom(roomID string) []model.Booking
	Refresh(ctx context.Context) error
	Status() snapshot.Status
	Subscribers() int
}

// Move is a navigator transition applied before rendering a calendar.
type Move int

const (
	Stay Move = iota
	Previous
	Next
	Today
)

// ViewOptions tune a single rendering. An empty Policy uses the configured one.
type ViewOptions struct {
	Policy   string
	Detailed bool
}

type StatusReport struct {
	Snapshot        snapshot.Status `json:"snapshot"`
	Subscribers     int             `json:"subscribers"`
	Sessions        int             `json:"sessions"`
	Navigators      int             `json:"navigators"`
	MaxSessions     int             `json:"max_sessions"`
	Policy          string          `json:"policy"`
	TimeZone        string          `json:"time_zone"`
	Slots           []string        `json:"slots"`
	VisibleStatuses []string        `json:"visible_statuses"`
}

type BoardService interface {
	ListRooms(ctx context.Context) []model.Room
	GetRoom(ctx context.Context, id string) (model.Room, error)
	WeekView(ctx context.Context, roomID string, anchor time.Time, opts ViewOptions) (calendar.WeekView, error)
	CalendarView(ctx context.Context, viewerID, roomID string, move Move, opts ViewOptions) (calendar.WeekView, error)
	SlotDetail(ctx context.Context, roomID string, day time.Time, slot string, opts ViewOptions) (calendar.SlotDetail, error)
	Today() time.Time
	Refresh(ctx context.Context) (snapshot.Status, error)
	CheckToken(token string) bool
	PruneSessions() int
	Status() StatusReport
}

type boardService struct {
	store    Snapshot
	resolver *calendar.Resolver
	filter   calendar.StatusFilter
	sessions *sessions
	now      calendar.Clock
	cfg      *config.Config
}

// NewBoardService fails on an overlap policy the calendar does not know. An
// unset policy means interval.
func NewBoardService(store Snapshot, cfg *config.Config) (BoardService, error) {
	svc, err := newBoardService(store, cfg, time.Now)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func newBoardService(store Snapshot, cfg *config.Config, now calendar.Clock) (*boardService, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	policy := calendar.PolicyInterval
	if cfg.OverlapPolicy != "" {
		p, err := calendar.ParseOverlapPolicy(string(cfg.OverlapPolicy))
		if err != nil {
			return nil, err
		}
		policy = p
	}

	filter := calendar.DefaultStatusFilter()
	if len(cfg.VisibleStatuses) > 0 {
		filter = calendar.NewStatusFilter(cfg.VisibleStatuses...)
	}

	return &boardService{
		store:    store,
		resolver: calendar.NewResolver(policy, loc, cfg.Log.With("calendar")),
		filter:   filter,
		sessions: newSessions(now, loc, cfg.MaxSessions),
		now:      now,
		cfg:      cfg,
	}, nil
}

func (s *boardService) ListRooms(ctx context.Context) []model.Room {
	return s.store.Rooms()
}

func (s *boardService) GetRoom(ctx context.Context, id string) (model.Room, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Room{}, apperrors.InvalidInput("Room ID cannot be empty")
	}
	room, ok := s.store.Room(id)
	if !ok {
		return model.Room{}, apperrors.NotFoundWithID("Room", id)
	}
	return room, nil
}

// WeekView renders the week containing anchor without touching any session.
func (s *boardService) WeekView(ctx context.Context, roomID string, anchor time.Time, opts ViewOptions) (calendar.WeekView, error) {
	room, resolver, err := s.prepare(ctx, roomID, opts)
	if err != nil {
		return calendar.WeekView{}, err
	}
	week := calendar.BuildWeek(anchor.In(resolver.Location()))
	return s.render(room, resolver, week, opts), nil
}

// CalendarView applies move to the viewer's navigator for roomID and renders
// the resulting week. Other rooms of the same viewer are not affected. Stay
// never creates a session: a viewer without one sees the current week.
func (s *boardService) CalendarView(ctx context.Context, viewerID, roomID string, move Move, opts ViewOptions) (calendar.WeekView, error) {
	viewerID = strings.TrimSpace(viewerID)
	if viewerID == "" && move != Stay {
		return calendar.WeekView{}, apperrors.InvalidInput("Viewer ID cannot be empty")
	}
	room, resolver, err := s.prepare(ctx, roomID, opts)
	if err != nil {
		return calendar.WeekView{}, err
	}

	var week calendar.Week
	switch move {
	case Stay:
		if set, ok := s.sessions.lookup(viewerID); ok {
			week = set.For(room.ID).Week()
		} else {
			week = calendar.BuildWeek(s.Today())
		}
	case Today:
		set := s.sessions.navigators(viewerID)
		set.Reset(room.ID)
		week = set.For(room.ID).Week()
	case Previous:
		week = s.sessions.navigators(viewerID).For(room.ID).PreviousWeek()
	case Next:
		week = s.sessions.navigators(viewerID).For(room.ID).NextWeek()
	}

	s.cfg.Log.Debug("Calendar view",
		"request_id", middleware.RequestIDFromContext(ctx),
		"viewer_id", viewerID,
		"room_id", room.ID,
		"week_start", week.Start().Format(time.DateOnly),
	)
	return s.render(room, resolver, week, opts), nil
}

func (s *boardService) render(room model.Room, resolver *calendar.Resolver, week calendar.Week, opts ViewOptions) calendar.WeekView {
	view := resolver.BuildView(room.ID, week, s.store.BookingsForRoom(room.ID), s.filter, opts.Detailed)
	view.CurrentWeek = week.Contains(s.Today())
	return view
}

func (s *boardService) SlotDetail(ctx context.Context, roomID string, day time.Time, slot string, opts ViewOptions) (calendar.SlotDetail, error) {
	parsed, err := calendar.ParseSlot(slot)
	if err != nil {
		return calendar.SlotDetail{}, apperrors.InvalidInput(err.Error())
	}
	room, resolver, err := s.prepare(ctx, roomID, opts)
	if err != nil {
		return calendar.SlotDetail{}, err
	}
	return resolver.BuildSlotDetail(room.ID, day, parsed, s.store.BookingsForRoom(room.ID), s.filter, opts.Detailed), nil
}

func (s *boardService) prepare(ctx context.Context, roomID string, opts ViewOptions) (model.Room, *calendar.Resolver, error) {
	resolver, err := s.resolverFor(opts.Policy)
	if err != nil {
		return model.Room{}, nil, err
	}
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return model.Room{}, nil, err
	}
	return room, resolver, nil
}

func (s *boardService) resolverFor(policy string) (*calendar.Resolver, error) {
	if policy == "" {
		return s.resolver, nil
	}
	p, err := calendar.ParseOverlapPolicy(policy)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}
	if p == s.resolver.Policy() {
		return s.resolver, nil
	}
	return s.resolver.WithPolicy(p), nil
}

// Today is the current date in the calendar's zone.
func (s *boardService) Today() time.Time {
	return s.now().In(s.resolver.Location())
}

func (s *boardService) Refresh(ctx context.Context) (snapshot.Status, error) {
	if err := s.store.Refresh(ctx); err != nil {
		return s.store.Status(), apperrors.Wrap(err, apperrors.CodeUnavailable, "Booking snapshot could not be refreshed", http.StatusServiceUnavailable)
	}
	return s.store.Status(), nil
}

func (s *boardService) CheckToken(token string) bool {
	return middleware.TokenMatches(s.cfg.AuthToken, strings.TrimSpace(token))
}

func (s *boardService) PruneSessions() int {
	removed := s.sessions.prune(s.cfg.SessionIdleTTL)
	if removed > 0 {
		s.cfg.Log.Info("Pruned idle viewer sessions", "removed", removed, "remaining", s.sessions.len())
	}
	return removed
}

func (s *boardService) Status() StatusReport {
	statuses := s.filter.Statuses()
	visible := make([]string, len(statuses))
	for i, st := range statuses {
		visible[i] = string(st)
	}
	return StatusReport{
		Snapshot:        s.store.Status(),
		Subscribers:     s.store.Subscribers(),
		Sessions:        s.sessions.len(),
		Navigators:      s.sessions.navigatorCount(),
		MaxSessions:     s.cfg.MaxSessions,
		Policy:          string(s.resolver.Policy()),
		TimeZone:        s.resolver.Location().String(),
		Slots:           calendar.SlotLabels(),
		VisibleStatuses: visible,
	}
}
