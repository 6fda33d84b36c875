package places

import (
	"context"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place_save"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"go.uber.org/zap"
)

type SaveResult struct {
	Saved     bool       `json:"saved"`
	SaveCount int64      `json:"saveCount"`
	XP        *xp.Result `json:"xp,omitempty"`
}

// ToggleSave saves the place, or unsaves it when already saved.
// XP is only awarded when a new save row is created.
func (s *Impl) ToggleSave(ctx context.Context, userID, placeID string) (*SaveResult, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if _, err := s.lookup(ctx, placeID); err != nil {
		return nil, err
	}

	res := &SaveResult{}
	err := s.db.Transaction(ctx, func(tx *db.DB) error {
		saves := place_save.NewPlaceSaveRepository(tx)

		removed, err := saves.Unsave(ctx, userID, placeID)
		if err != nil {
			return err
		}
		if removed {
			return nil
		}

		created, err := saves.Save(ctx, userID, placeID)
		if err != nil {
			return err
		}
		res.Saved = true
		if !created {
			return nil
		}
		award, err := xp.New(user_profile.NewUserProfileRepository(tx), s.log).AwardSavePlace(ctx, userID)
		if err != nil {
			return err
		}
		res.XP = &award
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.SaveCount, err = s.saves.CountForPlace(ctx, placeID); err != nil {
		return nil, err
	}
	s.log.Debug("place save toggled",
		zap.String("user_id", userID),
		zap.String("place_id", placeID),
		zap.Bool("saved", res.Saved),
	)
	return res, nil
}

func (s *Impl) IsSaved(ctx context.Context, userID, placeID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.saves.IsSaved(ctx, userID, placeID)
}

func (s *Impl) SaveCount(ctx context.Context, placeID string) (int64, error) {
	return s.saves.CountForPlace(ctx, placeID)
}

// SavedPlaces lists the user's saved places, newest save first.
// Saves pointing at deleted places are skipped.
func (s *Impl) SavedPlaces(ctx context.Context, userID string) ([]*place.Place, error) {
	ids, err := s.saves.ListPlaceIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []*place.Place{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.places.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*place.Place, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
