package friendship

import (
	"context"
	"errors"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"gorm.io/gorm"
)

// pairClause matches either orientation of a pair. The grouping is explicit
// so extra conditions never bind to only one side of the OR.
const pairClause = "((user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?))"

type FriendshipRepository interface {
	CreateRequest(ctx context.Context, fromUserID, toUserID string) (*FriendRequest, error)
	GetRequest(ctx context.Context, id string) (*FriendRequest, error)
	FindPendingRequest(ctx context.Context, fromUserID, toUserID string) (*FriendRequest, error)
	// SetRequestStatus resolves a pending request. It returns false when the
	// request was no longer pending.
	SetRequestStatus(ctx context.Context, id, status string) (bool, error)
	ListIncoming(ctx context.Context, userID string) ([]*FriendRequest, error)
	ListOutgoing(ctx context.Context, userID string) ([]*FriendRequest, error)

	CreateFriendship(ctx context.Context, user1ID, user2ID string) (*Friendship, error)
	AreFriends(ctx context.Context, a, b string) (bool, error)
	// DeleteFriendship removes every row for the pair and reports how many went.
	DeleteFriendship(ctx context.Context, a, b string) (int64, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
}

type FriendshipRepositoryImpl struct {
	db *db.DB
}

func NewFriendshipRepository(database *db.DB) FriendshipRepository {
	return &FriendshipRepositoryImpl{db: database}
}

/*
REQUESTS
*/

func (r *FriendshipRepositoryImpl) CreateRequest(ctx context.Context, fromUserID, toUserID string) (*FriendRequest, error) {
	req := &FriendRequest{FromUserID: fromUserID, ToUserID: toUserID, Status: RequestPending}
	if err := r.db.DB.WithContext(ctx).Create(req).Error; err != nil {
		return nil, db.Conflict(err, "friend request already pending")
	}
	return req, nil
}

func (r *FriendshipRepositoryImpl) GetRequest(ctx context.Context, id string) (*FriendRequest, error) {
	var req FriendRequest
	err := r.db.DB.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *FriendshipRepositoryImpl) FindPendingRequest(ctx context.Context, fromUserID, toUserID string) (*FriendRequest, error) {
	var req FriendRequest
	err := r.db.DB.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromUserID, toUserID, RequestPending).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *FriendshipRepositoryImpl) SetRequestStatus(ctx context.Context, id, status string) (bool, error) {
	res := r.db.DB.WithContext(ctx).
		Model(&FriendRequest{}).
		Where("id = ? AND status = ?", id, RequestPending).
		Update("status", status)
	return res.RowsAffected == 1, res.Error
}

func (r *FriendshipRepositoryImpl) ListIncoming(ctx context.Context, userID string) ([]*FriendRequest, error) {
	var out []*FriendRequest
	if err := r.db.DB.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, RequestPending).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FriendshipRepositoryImpl) ListOutgoing(ctx context.Context, userID string) ([]*FriendRequest, error) {
	var out []*FriendRequest
	if err := r.db.DB.WithContext(ctx).
		Where("from_user_id = ? AND status = ?", userID, RequestPending).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

/*
FRIENDSHIPS
*/

func (r *FriendshipRepositoryImpl) CreateFriendship(ctx context.Context, user1ID, user2ID string) (*Friendship, error) {
	f := &Friendship{User1ID: user1ID, User2ID: user2ID}
	if err := r.db.DB.WithContext(ctx).Create(f).Error; err != nil {
		return nil, db.Conflict(err, "already friends")
	}
	return f, nil
}

func (r *FriendshipRepositoryImpl) AreFriends(ctx context.Context, a, b string) (bool, error) {
	var n int64
	err := r.db.DB.WithContext(ctx).
		Model(&Friendship{}).
		Where(pairClause, a, b, b, a).
		Count(&n).Error
	return n > 0, err
}

func (r *FriendshipRepositoryImpl) DeleteFriendship(ctx context.Context, a, b string) (int64, error) {
	res := r.db.DB.WithContext(ctx).
		Where(pairClause, a, b, b, a).
		Delete(&Friendship{})
	return res.RowsAffected, res.Error
}

func (r *FriendshipRepositoryImpl) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	var rows []*Friendship
	if err := r.db.DB.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rows))
	ids := make([]string, 0, len(rows))
	for _, f := range rows {
		other := f.Other(userID)
		if !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}
	return ids, nil
}
