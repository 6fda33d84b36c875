// Package moderation runs the place submission queue and admin management.
package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/category"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/submission"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/geo"
	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"go.uber.org/zap"
)

const maxTitleLength = 120

// SubmissionInput is a user proposed place. Lat and Lng may be omitted when
// MapsLink carries coordinates.
type SubmissionInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Tags        []string `json:"tags"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	MapsLink    string   `json:"mapsLink"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Images      []string `json:"images"`
}

type ApproveResult struct {
	Place *place.Place `json:"place"`
	XP    xp.Result    `json:"xp"`
}

type Service interface {
	Submit(ctx context.Context, userID string, in SubmissionInput) (*submission.PlaceSubmission, error)
	MySubmissions(ctx context.Context, userID string) ([]*submission.PlaceSubmission, error)

	ListPending(ctx context.Context, moderatorID string) ([]*submission.PlaceSubmission, error)
	Approve(ctx context.Context, moderatorID, submissionID string) (*ApproveResult, error)
	Reject(ctx context.Context, moderatorID, submissionID, notes string) error

	ListAdmins(ctx context.Context, adminID string) ([]*user_profile.UserProfile, error)
	GrantAdmin(ctx context.Context, adminID, userID string) error
	RevokeAdmin(ctx context.Context, adminID, userID string) error

	CreateCategory(ctx context.Context, adminID string, c *category.Category) error
	DeleteCategory(ctx context.Context, adminID, categoryID string) error
}

type Impl struct {
	db          *db.DB
	submissions submission.SubmissionRepository
	profiles    user_profile.UserProfileRepository
	categories  category.CategoryRepository
	log         *zap.Logger
	now         func() time.Time
}

func New(database *db.DB, log *zap.Logger) *Impl {
	return &Impl{
		db:          database,
		submissions: submission.NewSubmissionRepository(database),
		profiles:    user_profile.NewUserProfileRepository(database),
		categories:  category.NewCategoryRepository(database),
		log:         log,
		now:         time.Now,
	}
}

func (in SubmissionInput) point() (geo.Point, error) {
	if in.Lat != nil && in.Lng != nil {
		p := geo.Point{Lat: *in.Lat, Lng: *in.Lng}
		if !p.Valid() {
			return geo.Point{}, fmt.Errorf("%w: coordinates out of range", errs.ErrInvalid)
		}
		return p, nil
	}
	if in.MapsLink != "" {
		if parsed, ok := geo.ParseGoogleMapsLink(in.MapsLink); ok && parsed.Valid() {
			return parsed.Point, nil
		}
		return geo.Point{}, fmt.Errorf("%w: no coordinates in maps link", errs.ErrInvalid)
	}
	return geo.Point{}, fmt.Errorf("%w: lat and lng are required", errs.ErrInvalid)
}

func (s *Impl) Submit(ctx context.Context, userID string, in SubmissionInput) (*submission.PlaceSubmission, error) {
	if userID == "" {
		return nil, errs.ErrUnauthenticated
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrInvalid)
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, fmt.Errorf("%w: title is longer than %d characters", errs.ErrInvalid, maxTitleLength)
	}
	pt, err := in.point()
	if err != nil {
		return nil, err
	}

	sub := &submission.PlaceSubmission{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		Subcategory: strings.TrimSpace(in.Subcategory),
		Tags:        cleanList(in.Tags),
		Lat:         pt.Lat,
		Lng:         pt.Lng,
		Address:     strings.TrimSpace(in.Address),
		City:        strings.TrimSpace(in.City),
		Images:      cleanList(in.Images),
		SubmittedBy: userID,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("place submitted", zap.String("submission_id", sub.ID), zap.String("user_id", userID))
	return sub, nil
}

func (s *Impl) MySubmissions(ctx context.Context, userID string) ([]*submission.PlaceSubmission, error) {
	if userID == "" {
		return nil, errs.ErrUnauthenticated
	}
	list, err := s.submissions.ListBySubmitter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*submission.PlaceSubmission{}
	}
	return list, nil
}

func (s *Impl) ListPending(ctx context.Context, moderatorID string) ([]*submission.PlaceSubmission, error) {
	if _, err := s.requireModerator(ctx, moderatorID); err != nil {
		return nil, err
	}
	list, err := s.submissions.ListByStatus(ctx, submission.StatusPending, 0)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*submission.PlaceSubmission{}
	}
	return list, nil
}

func (s *Impl) pending(ctx context.Context, id string) (*submission.PlaceSubmission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: submission %s", errs.ErrNotFound, id)
	}
	if sub.Status != submission.StatusPending {
		return nil, fmt.Errorf("%w: submission already %s", errs.ErrConflict, sub.Status)
	}
	return sub, nil
}

func (s *Impl) Approve(ctx context.Context, moderatorID, submissionID string) (*ApproveResult, error) {
	if _, err := s.requireModerator(ctx, moderatorID); err != nil {
		return nil, err
	}
	sub, err := s.pending(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	res := &ApproveResult{Place: &place.Place{
		Title:       sub.Title,
		Description: sub.Description,
		Category:    sub.Category,
		Subcategory: sub.Subcategory,
		Tags:        sub.Tags,
		Lat:         sub.Lat,
		Lng:         sub.Lng,
		Address:     sub.Address,
		City:        sub.City,
		Images:      sub.Images,
		CreatedBy:   sub.SubmittedBy,
		Status:      place.StatusPublished,
	}}

	// 1) publish the place and close the submission together
	err = s.db.Transaction(ctx, func(tx *db.DB) error {
		if err := place.NewPlaceRepository(tx).Create(ctx, res.Place); err != nil {
			return err
		}
		ok, err := submission.NewSubmissionRepository(tx).
			Resolve(ctx, sub.ID, submission.StatusApproved, moderatorID, "", res.Place.ID, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: submission already resolved", errs.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 2) credit the submitter; the place stays published if this fails
	if err := s.profiles.IncrementCounter(ctx, sub.SubmittedBy, user_profile.CounterPlaces, 1); err != nil {
		s.log.Error("failed to bump places count", zap.String("user_id", sub.SubmittedBy), zap.Error(err))
		return res, nil
	}
	award, err := xp.New(s.profiles, s.log).AwardNewPlace(ctx, sub.SubmittedBy)
	if err != nil {
		s.log.Error("failed to award place xp", zap.String("user_id", sub.SubmittedBy), zap.Error(err))
		return res, nil
	}
	res.XP = award

	s.log.Info("submission approved",
		zap.String("submission_id", sub.ID),
		zap.String("place_id", res.Place.ID),
		zap.String("moderator_id", moderatorID),
	)
	return res, nil
}

func (s *Impl) Reject(ctx context.Context, moderatorID, submissionID, notes string) error {
	if _, err := s.requireModerator(ctx, moderatorID); err != nil {
		return err
	}
	sub, err := s.pending(ctx, submissionID)
	if err != nil {
		return err
	}
	ok, err := s.submissions.Resolve(ctx, sub.ID, submission.StatusRejected, moderatorID, strings.TrimSpace(notes), "", s.now())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: submission already resolved", errs.ErrConflict)
	}
	s.log.Info("submission rejected", zap.String("submission_id", sub.ID), zap.String("moderator_id", moderatorID))
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
