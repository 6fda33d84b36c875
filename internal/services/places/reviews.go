package places

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/review"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"go.uber.org/zap"
)

const maxReviewLength = 2000

type ReviewInput struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

type ReviewResult struct {
	Review *review.Review `json:"review"`
	XP     xp.Result      `json:"xp"`
}

func (s *Impl) AddReview(ctx context.Context, userID, placeID string, in ReviewInput) (*ReviewResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", errs.ErrInvalid)
	}
	text := strings.TrimSpace(in.Text)
	if utf8.RuneCountInString(text) > maxReviewLength {
		return nil, fmt.Errorf("%w: review is longer than %d characters", errs.ErrInvalid, maxReviewLength)
	}
	if _, err := s.lookup(ctx, placeID); err != nil {
		return nil, err
	}

	out := &ReviewResult{Review: &review.Review{PlaceID: placeID, UserID: userID, Rating: in.Rating, Text: text}}
	err := s.db.Transaction(ctx, func(tx *db.DB) error {
		if err := review.NewReviewRepository(tx).Create(ctx, out.Review); err != nil {
			return err
		}
		if err := place.NewPlaceRepository(tx).AddRating(ctx, placeID, in.Rating); err != nil {
			return err
		}
		profiles := user_profile.NewUserProfileRepository(tx)
		if err := profiles.IncrementCounter(ctx, userID, user_profile.CounterReviews, 1); err != nil {
			return err
		}
		award, err := xp.New(profiles, s.log).AwardReview(ctx, userID)
		if err != nil {
			return err
		}
		out.XP = award
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Invalidate(placeID)
	s.log.Info("review added",
		zap.String("user_id", userID),
		zap.String("place_id", placeID),
		zap.Int("rating", in.Rating),
	)
	return out, nil
}

func (s *Impl) Reviews(ctx context.Context, placeID string, limit int) ([]*review.Review, error) {
	list, err := s.reviews.ListByPlace(ctx, placeID, limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*review.Review{}
	}
	return list, nil
}
