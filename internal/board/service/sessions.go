package service

import (
	"sync"
	"time"

	"roomgrid/internal/calendar"
)

// sessions maps a viewer id to that viewer's per-room navigators. At most
// limit viewers are kept; the least recently used one makes room for a new
// viewer.
type sessions struct {
	mu       sync.Mutex
	byViewer map[string]*calendar.NavigatorSet
	limit    int
	now      calendar.Clock
	loc      *time.Location
}

func newSessions(now calendar.Clock, loc *time.Location, limit int) *sessions {
	return &sessions{
		byViewer: make(map[string]*calendar.NavigatorSet),
		limit:    limit,
		now:      now,
		loc:      loc,
	}
}

// navigators returns the viewer's set, creating it when absent.
func (s *sessions) navigators(viewerID string) *calendar.NavigatorSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.byViewer[viewerID]
	if !ok {
		if s.limit > 0 && len(s.byViewer) >= s.limit {
			s.evictOldest()
		}
		set = calendar.NewNavigatorSet(s.now, s.loc)
		s.byViewer[viewerID] = set
	}
	return set
}

// lookup returns the viewer's set without creating one.
func (s *sessions) lookup(viewerID string) (*calendar.NavigatorSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.byViewer[viewerID]
	return set, ok
}

func (s *sessions) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, set := range s.byViewer {
		if used := set.LastUsed(); oldestID == "" || used.Before(oldest) {
			oldestID, oldest = id, used
		}
	}
	delete(s.byViewer, oldestID)
}

// prune drops viewers idle for longer than ttl and returns how many went.
func (s *sessions) prune(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, set := range s.byViewer {
		if set.LastUsed().Before(cutoff) {
			delete(s.byViewer, id)
			removed++
		}
	}
	return removed
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byViewer)
}

// navigatorCount is the number of room navigators across all viewers.
func (s *sessions) navigatorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, set := range s.byViewer {
		n += set.Len()
	}
	return n
}
