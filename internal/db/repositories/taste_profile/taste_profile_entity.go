package taste_profile

import (
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/services/tasteprofile"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TasteProfile struct {
	ID           string                   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID       string                   `gorm:"column:user_id;not null;index" json:"userId"`
	Persona      string                   `gorm:"column:persona;not null" json:"persona"`
	PersonaLabel string                   `gorm:"column:persona_label;not null" json:"personaLabel"`
	Vector       tasteprofile.TasteVector `gorm:"embedded" json:"vector"`

	Tags              db.StringList `gorm:"column:tags;type:jsonb" json:"tags"`
	TopFoodStyles     db.StringList `gorm:"column:top_food_styles;type:jsonb" json:"topFoodStyles"`
	FavoriteAmbiances db.StringList `gorm:"column:favorite_ambiances;type:jsonb" json:"favoriteAmbiances"`
	ActivityPrefs     db.StringList `gorm:"column:activity_prefs;type:jsonb" json:"activityPrefs"`
	Explanation       db.StringList `gorm:"column:explanation;type:jsonb" json:"explanation"`

	RefinedDescription      string `gorm:"column:refined_description;not null;default:''" json:"refinedDescription,omitempty"`
	SourceOnboardingVersion int    `gorm:"column:source_onboarding_version;not null" json:"sourceOnboardingVersion"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (TasteProfile) TableName() string {
	return "taste_profiles"
}

func (t *TasteProfile) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// FromComputed converts a computed profile into a row.
func FromComputed(p tasteprofile.TasteProfile) *TasteProfile {
	return &TasteProfile{
		UserID:                  p.UserID,
		Persona:                 string(p.Persona),
		PersonaLabel:            p.PersonaLabel,
		Vector:                  p.Vector,
		Tags:                    db.StringList(p.Tags),
		TopFoodStyles:           db.StringList(p.TopFoodStyles),
		FavoriteAmbiances:       toStrings(p.FavoriteAmbiances),
		ActivityPrefs:           toStrings(p.ActivityPrefs),
		Explanation:             db.StringList(p.Explanation),
		RefinedDescription:      p.RefinedDescription,
		SourceOnboardingVersion: p.SourceOnboardingVersion,
	}
}

// Computed converts the row back into the domain shape.
func (t *TasteProfile) Computed() tasteprofile.TasteProfile {
	return tasteprofile.TasteProfile{
		UserID:                  t.UserID,
		Persona:                 tasteprofile.PersonaType(t.Persona),
		PersonaLabel:            t.PersonaLabel,
		Vector:                  t.Vector,
		Tags:                    []string(nonNil(t.Tags)),
		TopFoodStyles:           []string(nonNil(t.TopFoodStyles)),
		FavoriteAmbiances:       fromStrings[tasteprofile.Ambiance](t.FavoriteAmbiances),
		ActivityPrefs:           fromStrings[tasteprofile.Activity](t.ActivityPrefs),
		SourceOnboardingVersion: t.SourceOnboardingVersion,
		Explanation:             []string(nonNil(t.Explanation)),
		RefinedDescription:      t.RefinedDescription,
	}
}

func toStrings[T ~string](in []T) db.StringList {
	out := make(db.StringList, 0, len(in))
	for _, v := range in {
		out = append(out, string(v))
	}
	return out
}

func fromStrings[T ~string](in db.StringList) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, T(v))
	}
	return out
}

func nonNil(l db.StringList) db.StringList {
	if l == nil {
		return db.StringList{}
	}
	return l
}
