package calendar

import (
	"sync"
	"time"
)

// Clock returns the current time. Tests inject fixed clocks.
type Clock func() time.Time

// Navigator is the week cursor of one displayed calendar.
type Navigator struct {
	mu     sync.Mutex
	anchor time.Time
	week   Week
}

func NewNavigator(now Clock, loc *time.Location) *Navigator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	anchor := now().In(loc)
	return &Navigator{anchor: anchor, week: BuildWeek(anchor)}
}

func (n *Navigator) Anchor() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.anchor
}

func (n *Navigator) Week() Week {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.week
}

func (n *Navigator) PreviousWeek() Week {
	return n.shift(-DaysPerWeek)
}

func (n *Navigator) NextWeek() Week {
	return n.shift(DaysPerWeek)
}

func (n *Navigator) shift(days int) Week {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.anchor = n.anchor.AddDate(0, 0, days)
	n.week = BuildWeek(n.anchor)
	return n.week
}

// NavigatorSet holds an independent Navigator per room, created on first use.
type NavigatorSet struct {
	mu         sync.Mutex
	navigators map[string]*Navigator
	now        Clock
	loc        *time.Location
	lastUsed   time.Time
}

func NewNavigatorSet(now Clock, loc *time.Location) *NavigatorSet {
	if now == nil {
		now = time.Now
	}
	return &NavigatorSet{
		navigators: make(map[string]*Navigator),
		now:        now,
		loc:        loc,
		lastUsed:   now(),
	}
}

// For returns the navigator of roomID, creating one anchored at now.
func (s *NavigatorSet) For(roomID string) *Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = s.now()
	nav, ok := s.navigators[roomID]
	if !ok {
		nav = NewNavigator(s.now, s.loc)
		s.navigators[roomID] = nav
	}
	return nav
}

// Reset drops the navigator of roomID; the next For starts at now again.
func (s *NavigatorSet) Reset(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.navigators, roomID)
}

func (s *NavigatorSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.navigators)
}

// LastUsed is the time of the most recent For call.
func (s *NavigatorSet) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
