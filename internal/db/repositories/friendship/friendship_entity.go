package friendship

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

type FriendRequest struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FromUserID string    `gorm:"column:from_user_id;not null;index;uniqueIndex:idx_friend_requests_pending_pair,where:status = 'pending'" json:"fromUserId"`
	ToUserID   string    `gorm:"column:to_user_id;not null;index;uniqueIndex:idx_friend_requests_pending_pair,where:status = 'pending'" json:"toUserId"`
	Status     string    `gorm:"column:status;not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

func (f *FriendRequest) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Friendship is stored once per pair; User1 sent the request and User2 accepted it.
type Friendship struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	User1ID   string    `gorm:"column:user1_id;not null;index" json:"user1Id"`
	User2ID   string    `gorm:"column:user2_id;not null;index" json:"user2Id"`
	// PairKey is the same for both orientations and unique per pair.
	PairKey   string    `gorm:"column:pair_key;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}

func (f *Friendship) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.PairKey = PairKey(f.User1ID, f.User2ID)
	return nil
}

// PairKey orders the two ids so a→b and b→a share one key.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

// Other returns the member of the pair that is not userID.
func (f *Friendship) Other(userID string) string {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}
