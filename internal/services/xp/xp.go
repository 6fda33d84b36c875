package xp

import (
	"fmt"
	"strings"
)

type Category string

const (
	Foodie   Category = "foodie"
	Explorer Category = "explorer"
	Curator  Category = "curator"
	Social   Category = "social"
)

const XPPerLevel = 100

// XP granted per action.
const (
	RewardReview    = 120
	RewardNewPlace  = 360
	RewardFriend    = 60
	RewardSavePlace = 10
)

func (c Category) Valid() bool {
	switch c {
	case Foodie, Explorer, Curator, Social:
		return true
	}
	return false
}

// CalculateLevel maps total XP to a level starting at 1.
func CalculateLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

type Progress struct {
	Current int     `json:"current"`
	Needed  int     `json:"needed"`
	Percent float64 `json:"progress"`
}

// LevelProgress is how far xp is into its current level.
func LevelProgress(xp int) Progress {
	if xp < 0 {
		xp = 0
	}
	cur := xp % XPPerLevel
	return Progress{
		Current: cur,
		Needed:  XPPerLevel,
		Percent: float64(cur) / float64(XPPerLevel) * 100,
	}
}

// RenderProgressBar draws ten cells for the current level, e.g. "[#####-----] 50/100 XP".
func RenderProgressBar(xp int) string {
	p := LevelProgress(xp)
	filled := p.Current * 10 / p.Needed
	return fmt.Sprintf("[%s%s] %d/%d XP",
		strings.Repeat("#", filled), strings.Repeat("-", 10-filled), p.Current, p.Needed)
}
