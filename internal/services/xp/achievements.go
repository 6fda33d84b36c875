package xp

import "github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"

type Achievement struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Emoji       string   `json:"emoji"`
	Category    Category `json:"category"`
	XPReward    int      `json:"xpReward"`

	unlocked func(p *user_profile.UserProfile) bool
}

var achievements = []Achievement{
	{
		ID: "first_place", Title: "First Steps", Description: "Added your first place to the map",
		Emoji: "🎯", Category: Explorer, XPReward: 100,
		unlocked: func(p *user_profile.UserProfile) bool { return p.PlacesCount >= 1 },
	},
	{
		ID: "first_review", Title: "Taste Tester", Description: "Shared your first review",
		Emoji: "✍️", Category: Curator, XPReward: 50,
		unlocked: func(p *user_profile.UserProfile) bool { return p.ReviewCount >= 1 },
	},
	{
		ID: "foodie_10", Title: "Food Explorer", Description: "Reviewed 10 food places",
		Emoji: "🍕", Category: Foodie, XPReward: 500,
		unlocked: func(p *user_profile.UserProfile) bool { return p.ReviewCount >= 10 },
	},
	{
		ID: "explorer_25", Title: "City Navigator", Description: "Added 25 places to the map",
		Emoji: "🗺️", Category: Explorer, XPReward: 1000,
		unlocked: func(p *user_profile.UserProfile) bool { return p.PlacesCount >= 25 },
	},
	{
		ID: "social_5", Title: "Connector", Description: "Made 5 friends on ConnectMap",
		Emoji: "🤝", Category: Social, XPReward: 300,
		unlocked: func(p *user_profile.UserProfile) bool { return p.FriendCount >= 5 },
	},
}

// Achievements lists every defined achievement in catalogue order.
func Achievements() []Achievement {
	out := make([]Achievement, len(achievements))
	copy(out, achievements)
	return out
}

func TotalAchievements() int { return len(achievements) }

func GetAchievement(id string) (Achievement, bool) {
	for _, a := range achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// UserAchievements resolves ids to achievements, skipping unknown ones.
func UserAchievements(ids []string) []Achievement {
	out := []Achievement{}
	for _, a := range achievements {
		for _, id := range ids {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
