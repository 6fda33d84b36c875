// Package attendancestats summarises who is going where.
package attendancestats

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db/repositories/attendance"
	"github.com/MyelinBots/connectmap-go/internal/services/timer"
	"go.uber.org/zap"
)

// DefaultRefreshInterval is used when Start is given a non-positive interval.
const DefaultRefreshInterval = 5 * time.Minute

const (
	recentAttendees = 5
	refreshTimeout  = 30 * time.Second
)

type Attendee struct {
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar"`
	GoingDate  string `json:"goingDate,omitempty"`
	GoingTime  string `json:"goingTime,omitempty"`
}

type Event struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Count int    `json:"count"`
}

type Stats struct {
	PlaceID         string     `json:"placeId"`
	TotalGoing      int        `json:"totalGoing"`
	PublicGoing     int        `json:"publicGoing"`
	RecentAttendees []Attendee `json:"recentAttendees"`
	UpcomingEvents  []Event    `json:"upcomingEvents"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type Service interface {
	// Get returns the last snapshot, computing one if the place has none.
	Get(ctx context.Context, placeID string) (*Stats, error)
	Refresh(ctx context.Context, placeID string) (*Stats, error)
	RefreshAll(ctx context.Context) error

	Start(interval time.Duration)
	Stop()
}

type Impl struct {
	repo attendance.AttendanceRepository
	log  *zap.Logger
	now  func() time.Time

	mu        sync.RWMutex
	snapshots map[string]*Stats
	timer     *timer.RepeatedTimer
}

func New(repo attendance.AttendanceRepository, log *zap.Logger) *Impl {
	return &Impl{
		repo:      repo,
		log:       log,
		now:       time.Now,
		snapshots: map[string]*Stats{},
	}
}

func (s *Impl) Get(ctx context.Context, placeID string) (*Stats, error) {
	s.mu.RLock()
	st, ok := s.snapshots[placeID]
	s.mu.RUnlock()
	if ok {
		return st, nil
	}
	return s.Refresh(ctx, placeID)
}

func (s *Impl) Refresh(ctx context.Context, placeID string) (*Stats, error) {
	rows, err := s.repo.ListGoing(ctx, placeID)
	if err != nil {
		return nil, err
	}
	st := Compute(placeID, rows, s.now())

	s.mu.Lock()
	s.snapshots[placeID] = st
	s.mu.Unlock()
	return st, nil
}

// RefreshAll recomputes every place with active attendees and drops
// snapshots for places that no longer have any.
func (s *Impl) RefreshAll(ctx context.Context) error {
	ids, err := s.repo.ListPlaceIDsWithGoing(ctx)
	if err != nil {
		return err
	}
	active := make(map[string]bool, len(ids))
	for _, id := range ids {
		active[id] = true
		if _, err := s.Refresh(ctx, id); err != nil {
			return err
		}
	}

	s.mu.Lock()
	for id := range s.snapshots {
		if !active[id] {
			delete(s.snapshots, id)
		}
	}
	s.mu.Unlock()

	s.log.Debug("attendance stats refreshed", zap.Int("places", len(ids)))
	return nil
}

// Start refreshes all snapshots every interval in the background.
// Non-positive intervals fall back to DefaultRefreshInterval.
func (s *Impl) Start(interval time.Duration) {
	if interval <= 0 {
		s.log.Warn("invalid stats refresh interval, using default",
			zap.Duration("interval", interval), zap.Duration("default", DefaultRefreshInterval))
		interval = DefaultRefreshInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		return
	}
	s.timer = timer.NewRepeatedTimer(interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := s.RefreshAll(ctx); err != nil {
			s.log.Error("attendance stats refresh failed", zap.Error(err))
		}
	})
}

func (s *Impl) Stop() {
	s.mu.Lock()
	t := s.timer
	s.timer = nil
	s.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}

// Compute builds stats from active attendance rows, newest first.
// Every row is counted, but only public attendees are named.
// Events are grouped by (date, time) and only kept from today on.
func Compute(placeID string, rows []*attendance.Attendance, now time.Time) *Stats {
	st := &Stats{
		PlaceID:         placeID,
		RecentAttendees: []Attendee{},
		UpcomingEvents:  []Event{},
		UpdatedAt:       now,
	}
	today := now.Format(time.DateOnly)

	type slot struct{ date, time string }
	counts := map[slot]int{}
	for _, a := range rows {
		if a.Status != attendance.StatusGoing {
			continue
		}
		st.TotalGoing++
		public := a.Visibility == attendance.VisibilityPublic
		if public {
			st.PublicGoing++
		}
		if public && len(st.RecentAttendees) < recentAttendees {
			st.RecentAttendees = append(st.RecentAttendees, Attendee{
				UserID:     a.UserID,
				UserName:   a.UserName,
				UserAvatar: a.UserAvatar,
				GoingDate:  a.GoingDate,
				GoingTime:  a.GoingTime,
			})
		}
		if a.GoingDate != "" && a.GoingDate >= today {
			counts[slot{a.GoingDate, a.GoingTime}]++
		}
	}

	for k, n := range counts {
		st.UpcomingEvents = append(st.UpcomingEvents, Event{Date: k.date, Time: k.time, Count: n})
	}
	sort.Slice(st.UpcomingEvents, func(i, j int) bool {
		a, b := st.UpcomingEvents[i], st.UpcomingEvents[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.Time < b.Time
	})
	return st
}
