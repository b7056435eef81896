package snapshot

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"roomgrid/pkg/logger"
	"roomgrid/pkg/model"
)

// Refresh trigger names, reported as Event.Source.
const (
	SourceManual  = "manual"
	SourceStartup = "startup"
	SourcePoller  = "poller"
	SourceKafka   = "kafka"
	SourceRedis   = "redis"
)

type Event = model.ChangeEvent

type RoomSource interface {
	ListRooms(ctx context.Context) ([]model.Room, error)
}

type BookingSource interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
}

type snapshot struct {
	rooms        []model.Room
	roomIndex    map[string]int
	bookings     map[string][]model.Booking
	bookingCount int
	refreshedAt  time.Time
}

// Status describes the snapshot currently served.
type Status struct {
	Ready       bool      `json:"ready"`
	Rooms       int       `json:"rooms"`
	Bookings    int       `json:"bookings"`
	RefreshedAt time.Time `json:"refreshed_at,omitempty"`
	Refreshes   int64     `json:"refreshes"`
	Failures    int64     `json:"failures"`
	LastError   string    `json:"last_error,omitempty"`
}

// Store holds the latest full snapshot of rooms and bookings. Every refresh
// replaces the whole snapshot; readers see either the old or the new one.
type Store struct {
	rooms    RoomSource
	bookings BookingSource
	log      *logger.Logger
	now      func() time.Time

	current   atomic.Pointer[snapshot]
	refreshMu sync.Mutex
	refreshes atomic.Int64
	failures  atomic.Int64
	lastErr   atomic.Value

	subMu  sync.RWMutex
	subs   map[uint64]func(Event)
	nextID uint64
}

func NewStore(rooms RoomSource, bookings BookingSource, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Discard()
	}
	s := &Store{
		rooms:    rooms,
		bookings: bookings,
		log:      log.With("snapshot"),
		now:      time.Now,
		subs:     make(map[uint64]func(Event)),
	}
	s.lastErr.Store("")
	return s
}

func (s *Store) Refresh(ctx context.Context) error {
	return s.RefreshFrom(ctx, SourceManual)
}

// RefreshFrom fetches rooms and bookings concurrently and swaps them in. On
// any failure the previous snapshot stays in place and the error is returned.
// Concurrent calls are serialized.
func (s *Store) RefreshFrom(ctx context.Context, source string) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	var (
		rooms                []model.Room
		bookings             []model.Booking
		errRooms, errBooking error
		wg                   sync.WaitGroup
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		rooms, errRooms = s.rooms.ListRooms(ctx)
	}()

	go func() {
		defer wg.Done()
		bookings, errBooking = s.bookings.ListBookings(ctx)
	}()

	wg.Wait()

	if errRooms != nil || errBooking != nil {
		err := errRooms
		if err == nil {
			err = errBooking
		}
		s.failures.Add(1)
		s.lastErr.Store(err.Error())
		s.log.Error("Snapshot refresh failed, keeping previous snapshot",
			"source", source,
			"rooms_error", errString(errRooms),
			"bookings_error", errString(errBooking),
		)
		return fmt.Errorf("refresh snapshot: %w", err)
	}

	next := build(rooms, bookings, s.now())
	s.current.Store(next)
	s.refreshes.Add(1)
	s.lastErr.Store("")

	s.log.Info("Snapshot replaced",
		"source", source,
		"rooms", len(next.rooms),
		"bookings", next.bookingCount,
	)

	s.publish(Event{
		Type:     model.EventSnapshotReplaced,
		Source:   source,
		Rooms:    len(next.rooms),
		Bookings: next.bookingCount,
		At:       next.refreshedAt,
	})
	return nil
}

func build(rooms []model.Room, bookings []model.Booking, at time.Time) *snapshot {
	snap := &snapshot{
		rooms:        append([]model.Room(nil), rooms...),
		roomIndex:    make(map[string]int, len(rooms)),
		bookings:     make(map[string][]model.Booking),
		bookingCount: len(bookings),
		refreshedAt:  at,
	}

	sort.SliceStable(snap.rooms, func(i, j int) bool {
		return snap.rooms[i].Name < snap.rooms[j].Name
	})
	for i, r := range snap.rooms {
		snap.roomIndex[r.ID] = i
	}
	for _, b := range bookings {
		snap.bookings[b.RoomID] = append(snap.bookings[b.RoomID], b)
	}
	return snap
}

// Ready reports whether at least one refresh has succeeded.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// Rooms returns a copy of the room list, ordered by name. Empty before the
// first successful refresh.
func (s *Store) Rooms() []model.Room {
	snap := s.current.Load()
	if snap == nil {
		return []model.Room{}
	}
	return append([]model.Room{}, snap.rooms...)
}

func (s *Store) Room(id string) (model.Room, bool) {
	snap := s.current.Load()
	if snap == nil {
		return model.Room{}, false
	}
	i, ok := snap.roomIndex[id]
	if !ok {
		return model.Room{}, false
	}
	return snap.rooms[i], true
}

// BookingsForRoom returns a copy of the room's bookings, in backend order.
func (s *Store) BookingsForRoom(roomID string) []model.Booking {
	snap := s.current.Load()
	if snap == nil {
		return []model.Booking{}
	}
	return append([]model.Booking{}, snap.bookings[roomID]...)
}

func (s *Store) Status() Status {
	st := Status{
		Refreshes: s.refreshes.Load(),
		Failures:  s.failures.Load(),
		LastError: s.lastErr.Load().(string),
	}
	if snap := s.current.Load(); snap != nil {
		st.Ready = true
		st.Rooms = len(snap.rooms)
		st.Bookings = snap.bookingCount
		st.RefreshedAt = snap.refreshedAt
	}
	return st
}

// Subscribe registers fn for every replaced snapshot. The returned function
// removes it and may be called more than once.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) Subscribers() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

// publish calls subscribers in registration order. A panicking subscriber is
// logged and does not stop the others.
func (s *Store) publish(ev Event) {
	s.subMu.RLock()
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(Event), len(ids))
	for i, id := range ids {
		fns[i] = s.subs[id]
	}
	s.subMu.RUnlock()

	for _, fn := range fns {
		s.deliver(fn, ev)
	}
}

func (s *Store) deliver(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Snapshot subscriber panicked", "event", ev.Type, "panic", r)
		}
	}()
	fn(ev)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
