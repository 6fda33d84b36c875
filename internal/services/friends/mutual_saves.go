package friends

import (
	"context"

	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place_save"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"golang.org/x/sync/errgroup"
)

const unknownPlaceTitle = "Unknown Place"

// MutualSave is a place the user saved that at least one friend saved too.
type MutualSave struct {
	PlaceID         string              `json:"placeId"`
	PlaceTitle      string              `json:"placeTitle"`
	FriendsWhoSaved []user_profile.Card `json:"friendsWhoSaved"`
}

func (s *Impl) MutualSaves(ctx context.Context, userID string) ([]MutualSave, error) {
	out := []MutualSave{}

	friendIDs, err := s.friendships.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	placeIDs, err := s.saves.ListPlaceIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 || len(placeIDs) == 0 {
		return out, nil
	}

	var (
		friendSaves []*place_save.PlaceSave
		friendRows  []*user_profile.UserProfile
		placeRows   []*place.Place
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		friendSaves, err = s.saves.ListByUsersForPlaces(gctx, friendIDs, placeIDs)
		return err
	})
	g.Go(func() error {
		var err error
		friendRows, err = s.profiles.GetByIDs(gctx, friendIDs)
		return err
	})
	g.Go(func() error {
		var err error
		placeRows, err = s.places.GetByIDs(gctx, placeIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles := make(map[string]*user_profile.UserProfile, len(friendRows))
	for _, p := range friendRows {
		profiles[p.ID] = p
	}
	titles := make(map[string]string, len(placeRows))
	for _, p := range placeRows {
		titles[p.ID] = p.Title
	}
	savers := make(map[string][]user_profile.Card)
	for _, sv := range friendSaves {
		if p, ok := profiles[sv.UserID]; ok {
			savers[sv.PlaceID] = append(savers[sv.PlaceID], p.Card())
		}
	}

	// keep the user's save order; skip places that no longer exist
	for _, id := range placeIDs {
		friends := savers[id]
		if len(friends) == 0 {
			continue
		}
		title, ok := titles[id]
		if !ok {
			continue
		}
		if title == "" {
			title = unknownPlaceTitle
		}
		out = append(out, MutualSave{PlaceID: id, PlaceTitle: title, FriendsWhoSaved: friends})
	}
	return out, nil
}
