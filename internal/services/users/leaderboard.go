package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
)

const (
	DefaultLeaderboardSize = 10
	MaxLeaderboardSize     = 50
)

// Rank is one leaderboard row.
type Rank struct {
	Rank        int    `json:"rank"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Username    string `json:"username,omitempty"`
	AvatarEmoji string `json:"avatarEmoji"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
}

func clampBoard(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardSize
	}
	return min(limit, MaxLeaderboardSize)
}

// Leaderboard ranks public profiles by XP.
func (s *Impl) Leaderboard(ctx context.Context, limit int) ([]Rank, error) {
	top, err := s.repo.TopByXP(ctx, nil, clampBoard(limit))
	if err != nil {
		return nil, err
	}
	return ranked(top), nil
}

// CircleLeaderboard ranks the user among the given friends.
func (s *Impl) CircleLeaderboard(ctx context.Context, userID string, friendIDs []string, limit int) ([]Rank, error) {
	ids := append([]string{userID}, friendIDs...)
	top, err := s.repo.TopByXP(ctx, ids, clampBoard(limit))
	if err != nil {
		return nil, err
	}
	return ranked(top), nil
}

func ranked(profiles []*user_profile.UserProfile) []Rank {
	out := make([]Rank, 0, len(profiles))
	for i, p := range profiles {
		out = append(out, Rank{
			Rank:        i + 1,
			UserID:      p.ID,
			DisplayName: p.DisplayName,
			Username:    p.Handle(),
			AvatarEmoji: p.AvatarEmoji,
			XP:          p.XP,
			Level:       p.Level,
		})
	}
	return out
}

// FormatLeaderboard renders a one-line summary, e.g. for share text.
func FormatLeaderboard(ranks []Rank) string {
	if len(ranks) == 0 {
		return "No XP yet. Save a place to get started!"
	}
	parts := make([]string, 0, len(ranks))
	for _, r := range ranks {
		name := r.DisplayName
		if r.Username != "" {
			name = "@" + r.Username
		}
		parts = append(parts, fmt.Sprintf("#%d %s (%d XP)", r.Rank, name, r.XP))
	}
	return strings.Join(parts, "  •  ")
}
