package friends

import (
	"context"
	"fmt"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/friendship"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place_save"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/xp"
	"go.uber.org/zap"
)

// RequestView pairs a request with the public card of the other end.
type RequestView struct {
	Request *friendship.FriendRequest `json:"request"`
	User    *user_profile.Card        `json:"user,omitempty"`
}

type Service interface {
	SendRequest(ctx context.Context, fromUserID, toUserID string) (*friendship.FriendRequest, error)
	Accept(ctx context.Context, userID, requestID string) error
	Reject(ctx context.Context, userID, requestID string) error
	Remove(ctx context.Context, userID, friendID string) error

	ListFriends(ctx context.Context, userID string) ([]user_profile.Card, error)
	FriendIDs(ctx context.Context, userID string) ([]string, error)
	Incoming(ctx context.Context, userID string) ([]RequestView, error)
	Outgoing(ctx context.Context, userID string) ([]RequestView, error)

	MutualSaves(ctx context.Context, userID string) ([]MutualSave, error)
}

type Impl struct {
	db          *db.DB
	profiles    user_profile.UserProfileRepository
	friendships friendship.FriendshipRepository
	saves       place_save.PlaceSaveRepository
	places      place.PlaceRepository
	log         *zap.Logger
}

func New(database *db.DB, log *zap.Logger) Service {
	return &Impl{
		db:          database,
		profiles:    user_profile.NewUserProfileRepository(database),
		friendships: friendship.NewFriendshipRepository(database),
		saves:       place_save.NewPlaceSaveRepository(database),
		places:      place.NewPlaceRepository(database),
		log:         log,
	}
}

func (s *Impl) SendRequest(ctx context.Context, fromUserID, toUserID string) (*friendship.FriendRequest, error) {
	if fromUserID == "" {
		return nil, errs.ErrUnauthenticated
	}
	if fromUserID == toUserID {
		return nil, fmt.Errorf("%w: cannot befriend yourself", errs.ErrInvalid)
	}

	target, err := s.profiles.GetByID(ctx, toUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, toUserID)
	}

	existing, err := s.friendships.FindPendingRequest(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: friend request already sent", errs.ErrConflict)
	}

	already, err := s.friendships.AreFriends(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, fmt.Errorf("%w: already friends", errs.ErrConflict)
	}

	req, err := s.friendships.CreateRequest(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	s.log.Info("friend request sent", zap.String("from", fromUserID), zap.String("to", toUserID))
	return req, nil
}

// pendingFor loads a request the user may act on.
func (s *Impl) pendingFor(ctx context.Context, userID, requestID string) (*friendship.FriendRequest, error) {
	req, err := s.friendships.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: friend request %s", errs.ErrNotFound, requestID)
	}
	if req.ToUserID != userID {
		return nil, fmt.Errorf("%w: request is addressed to someone else", errs.ErrForbidden)
	}
	if req.Status != friendship.RequestPending {
		return nil, fmt.Errorf("%w: request already %s", errs.ErrConflict, req.Status)
	}
	return req, nil
}

func (s *Impl) Accept(ctx context.Context, userID, requestID string) error {
	req, err := s.pendingFor(ctx, userID, requestID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(ctx, func(tx *db.DB) error {
		friendships := friendship.NewFriendshipRepository(tx)
		profiles := user_profile.NewUserProfileRepository(tx)
		rewards := xp.New(profiles, s.log)

		ok, err := friendships.SetRequestStatus(ctx, req.ID, friendship.RequestAccepted)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: request is no longer pending", errs.ErrConflict)
		}

		already, err := friendships.AreFriends(ctx, req.FromUserID, req.ToUserID)
		if err != nil {
			return err
		}
		if already {
			return fmt.Errorf("%w: already friends", errs.ErrConflict)
		}

		// a crossed request in the other direction is settled by this one
		mirror, err := friendships.FindPendingRequest(ctx, req.ToUserID, req.FromUserID)
		if err != nil {
			return err
		}
		if mirror != nil {
			if _, err := friendships.SetRequestStatus(ctx, mirror.ID, friendship.RequestAccepted); err != nil {
				return err
			}
		}

		if _, err := friendships.CreateFriendship(ctx, req.FromUserID, req.ToUserID); err != nil {
			return fmt.Errorf("create friendship: %w", err)
		}
		for _, id := range []string{req.FromUserID, req.ToUserID} {
			if err := profiles.IncrementCounter(ctx, id, user_profile.CounterFriends, 1); err != nil {
				return err
			}
			if _, err := rewards.AwardFriend(ctx, id); err != nil {
				return fmt.Errorf("award friend xp: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("friend request accepted", zap.String("from", req.FromUserID), zap.String("to", req.ToUserID))
	return nil
}

func (s *Impl) Reject(ctx context.Context, userID, requestID string) error {
	req, err := s.pendingFor(ctx, userID, requestID)
	if err != nil {
		return err
	}
	ok, err := s.friendships.SetRequestStatus(ctx, req.ID, friendship.RequestRejected)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: request is no longer pending", errs.ErrConflict)
	}
	return nil
}

func (s *Impl) Remove(ctx context.Context, userID, friendID string) error {
	return s.db.Transaction(ctx, func(tx *db.DB) error {
		friendships := friendship.NewFriendshipRepository(tx)
		profiles := user_profile.NewUserProfileRepository(tx)

		n, err := friendships.DeleteFriendship(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: not friends with %s", errs.ErrNotFound, friendID)
		}
		for _, id := range []string{userID, friendID} {
			if err := profiles.IncrementCounter(ctx, id, user_profile.CounterFriends, -1); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Impl) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	return s.friendships.ListFriendIDs(ctx, userID)
}

func (s *Impl) ListFriends(ctx context.Context, userID string) ([]user_profile.Card, error) {
	ids, err := s.friendships.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return user_profile.Cards(profiles), nil
}

func (s *Impl) Incoming(ctx context.Context, userID string) ([]RequestView, error) {
	reqs, err := s.friendships.ListIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, reqs, func(r *friendship.FriendRequest) string { return r.FromUserID })
}

func (s *Impl) Outgoing(ctx context.Context, userID string) ([]RequestView, error) {
	reqs, err := s.friendships.ListOutgoing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, reqs, func(r *friendship.FriendRequest) string { return r.ToUserID })
}

func (s *Impl) views(ctx context.Context, reqs []*friendship.FriendRequest, other func(*friendship.FriendRequest) string) ([]RequestView, error) {
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, other(r))
	}
	profiles, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*user_profile.Card, len(profiles))
	for _, p := range profiles {
		card := p.Card()
		byID[p.ID] = &card
	}

	out := make([]RequestView, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, RequestView{Request: r, User: byID[other(r)]})
	}
	return out, nil
}
