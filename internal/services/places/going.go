package places

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MyelinBots/connectmap-go/internal/db/repositories/attendance"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"go.uber.org/zap"
)

const (
	anonymousName   = "Anonymous"
	anonymousAvatar = "👤"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// GoingInput is what a user tells us when marking a place as going.
// Date (YYYY-MM-DD) and Time (HH:MM) are optional.
type GoingInput struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Visibility string `json:"visibility"`
}

func (in *GoingInput) normalise() error {
	if in.Visibility == "" {
		in.Visibility = attendance.VisibilityFriends
	}
	if in.Visibility != attendance.VisibilityFriends && in.Visibility != attendance.VisibilityPublic {
		return fmt.Errorf("%w: visibility must be friends or public", errs.ErrInvalid)
	}
	if in.Date != "" && !datePattern.MatchString(in.Date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", errs.ErrInvalid)
	}
	if in.Time != "" && !timePattern.MatchString(in.Time) {
		return fmt.Errorf("%w: time must be HH:MM", errs.ErrInvalid)
	}
	return nil
}

type GoingStatus struct {
	Going      bool                   `json:"going"`
	GoingCount int64                  `json:"goingCount"`
	Attendance *attendance.Attendance `json:"attendance,omitempty"`
}

func (s *Impl) MarkGoing(ctx context.Context, userID, placeID string, in GoingInput) (*attendance.Attendance, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := in.normalise(); err != nil {
		return nil, err
	}
	if _, err := s.lookup(ctx, placeID); err != nil {
		return nil, err
	}

	// name and avatar are cached on the row so attendee lists need no join
	name, avatar := anonymousName, anonymousAvatar
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if profile.DisplayName != "" {
			name = profile.DisplayName
		}
		if profile.AvatarEmoji != "" {
			avatar = profile.AvatarEmoji
		}
	}

	a := &attendance.Attendance{
		PlaceID:    placeID,
		UserID:     userID,
		UserName:   name,
		UserAvatar: avatar,
		GoingDate:  in.Date,
		GoingTime:  in.Time,
		Visibility: in.Visibility,
		Status:     attendance.StatusGoing,
	}
	if err := s.attendances.Upsert(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("marked going", zap.String("user_id", userID), zap.String("place_id", placeID))
	return s.attendances.Get(ctx, placeID, userID)
}

func (s *Impl) CancelGoing(ctx context.Context, userID, placeID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	ok, err := s.attendances.Cancel(ctx, placeID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: not going to %s", errs.ErrNotFound, placeID)
	}
	return nil
}

func (s *Impl) GoingStatus(ctx context.Context, userID, placeID string) (*GoingStatus, error) {
	n, err := s.attendances.CountGoing(ctx, placeID)
	if err != nil {
		return nil, err
	}
	st := &GoingStatus{GoingCount: n}
	if userID == "" {
		return st, nil
	}
	a, err := s.attendances.Get(ctx, placeID, userID)
	if err != nil {
		return nil, err
	}
	if a != nil && a.Status == attendance.StatusGoing {
		st.Going = true
		st.Attendance = a
	}
	return st, nil
}
