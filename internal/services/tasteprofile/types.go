package tasteprofile

type HangoutEnergy string

const (
	EnergyChill    HangoutEnergy = "chill"
	EnergyBalanced HangoutEnergy = "balanced"
	EnergyLively   HangoutEnergy = "lively"
	EnergyElectric HangoutEnergy = "electric"
)

type GroupSize string

const (
	GroupSolo  GroupSize = "solo"
	GroupPair  GroupSize = "1-2"
	GroupSmall GroupSize = "3-5"
	GroupCrowd GroupSize = "crowd"
)

type DayPreference string

const (
	DayMorningRunner  DayPreference = "morning_runner"
	DayCoffeeHours    DayPreference = "coffee_hours"
	DaySunsetExplorer DayPreference = "sunset_explorer"
	DayNightOwl       DayPreference = "night_owl"
)

type Ambiance string

const (
	AmbianceRooftop          Ambiance = "rooftop"
	AmbianceCozyCafe         Ambiance = "cozy_cafe"
	AmbianceLofiStudy        Ambiance = "lofi_study"
	AmbianceLivelyPub        Ambiance = "lively_pub"
	AmbianceNatureSpot       Ambiance = "nature_spot"
	AmbianceAestheticMinimal Ambiance = "aesthetic_minimal"
)

type Activity string

const (
	ActivityEat         Activity = "eat"
	ActivityWalk        Activity = "walk"
	ActivityChill       Activity = "chill"
	ActivityParty       Activity = "party"
	ActivityExplore     Activity = "explore"
	ActivityShootPhotos Activity = "shoot_photos"
)

type BudgetTier string

const (
	BudgetCheap BudgetTier = "cheap"
	BudgetMid   BudgetTier = "mid"
	BudgetTreat BudgetTier = "treat"
)

type TravelMode string

const (
	TravelWalk            TravelMode = "walk"
	TravelBike            TravelMode = "bike"
	TravelCab             TravelMode = "cab"
	TravelPublicTransport TravelMode = "public_transport"
)

type WeekendType string

const (
	WeekendPlanAhead   WeekendType = "plan_ahead"
	WeekendSpontaneous WeekendType = "spontaneous"
	WeekendMix         WeekendType = "mix"
)

type PhotoPreference string

const (
	PhotoPost        PhotoPreference = "post_photos"
	PhotoKeepPrivate PhotoPreference = "keep_private"
)

// Energy is the first survey stage: energy and social preferences.
type Energy struct {
	HangoutEnergy  HangoutEnergy   `json:"hangoutEnergy"`
	SocialBattery  int             `json:"socialBattery"`
	GroupSize      []GroupSize     `json:"groupSize"`
	DayPreferences []DayPreference `json:"dayPreferences"`
}

// Tastes is the second survey stage: food, ambiance, activity and budget.
type Tastes struct {
	TopFoodStyles       []string   `json:"topFoodStyles"`
	FavoriteAmbiances   []Ambiance `json:"favoriteAmbiances"`
	ActivityPreferences []Activity `json:"activityPreferences"`
	BudgetTier          BudgetTier `json:"budgetTier"`
}

// Habits is the third survey stage: travel and discovery habits.
type Habits struct {
	TravelMode        []TravelMode    `json:"travelMode"`
	WeekendType       WeekendType     `json:"weekendType"`
	NewPlaceFrequency int             `json:"newPlaceFrequency"`
	PhotoPreference   PhotoPreference `json:"photoPreference"`
}

type Privacy struct {
	ShowPlacesToFriends bool `json:"showPlacesToFriends"`
	PublicProfile       bool `json:"publicProfile"`
	AnonymousMode       bool `json:"anonymousMode"`
}

// PersonaChoice is the fourth survey stage. An empty PersonaKeyword means
// the user did not pick a persona.
type PersonaChoice struct {
	PersonaKeyword PersonaType `json:"personaKeyword,omitempty"`
	FreeTags       []string    `json:"freeTags"`
	Privacy        Privacy     `json:"privacy"`
}

// OnboardingResponses is the full survey. It is never mutated after submission.
type OnboardingResponses struct {
	Energy  Energy        `json:"sheet1"`
	Tastes  Tastes        `json:"sheet2"`
	Habits  Habits        `json:"sheet3"`
	Persona PersonaChoice `json:"sheet4"`
}

// TasteVector holds six scores, each in [0,1].
type TasteVector struct {
	Foodie            float64 `json:"foodie" gorm:"column:foodie"`
	Explorer          float64 `json:"explorer" gorm:"column:explorer"`
	Aesthetic         float64 `json:"aesthetic" gorm:"column:aesthetic"`
	Introvert         float64 `json:"introvert" gorm:"column:introvert"`
	NightOwl          float64 `json:"nightOwl" gorm:"column:night_owl"`
	BudgetSensitivity float64 `json:"budgetSensitivity" gorm:"column:budget_sensitivity"`
}

// Clamp returns the vector with every component limited to [0,1].
func (v TasteVector) Clamp() TasteVector {
	return TasteVector{
		Foodie:            clamp01(v.Foodie),
		Explorer:          clamp01(v.Explorer),
		Aesthetic:         clamp01(v.Aesthetic),
		Introvert:         clamp01(v.Introvert),
		NightOwl:          clamp01(v.NightOwl),
		BudgetSensitivity: clamp01(v.BudgetSensitivity),
	}
}

const SourceOnboardingVersion = 1

// TasteProfile is the computed result persisted once per onboarding completion.
type TasteProfile struct {
	UserID                  string      `json:"userId"`
	Persona                 PersonaType `json:"persona"`
	PersonaLabel            string      `json:"personaLabel"`
	Vector                  TasteVector `json:"vector"`
	Tags                    []string    `json:"tags"`
	TopFoodStyles           []string    `json:"topFoodStyles"`
	FavoriteAmbiances       []Ambiance  `json:"favoriteAmbiances"`
	ActivityPrefs           []Activity  `json:"activityPrefs"`
	SourceOnboardingVersion int         `json:"sourceOnboardingVersion"`
	Explanation             []string    `json:"explanation"`
	RefinedDescription      string      `json:"refinedDescription,omitempty"`
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func contains[T comparable](list []T, want T) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func countIn[T comparable](list []T, set ...T) int {
	n := 0
	for _, v := range list {
		if contains(set, v) {
			n++
		}
	}
	return n
}
