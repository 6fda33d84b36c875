package tasteprofile

// Option is a selectable survey answer as presented to clients.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Emoji       string `json:"emoji,omitempty"`
	Description string `json:"description,omitempty"`
}

// Catalogue is every answer list the survey offers.
type Catalogue struct {
	FoodStyles     []string            `json:"foodStyles"`
	Ambiances      []Option            `json:"ambiances"`
	Activities     []Option            `json:"activities"`
	HangoutEnergy  []Option            `json:"hangoutEnergy"`
	GroupSizes     []Option            `json:"groupSizes"`
	DayPreferences []Option            `json:"dayPreferences"`
	TravelModes    []Option            `json:"travelModes"`
	WeekendTypes   []Option            `json:"weekendTypes"`
	BudgetTiers    []Option            `json:"budgetTiers"`
	Personas       []PersonaDefinition `json:"personas"`
}

var FoodStyles = []string{
	"Desi Delights",
	"Street Food",
	"Café Brunch",
	"Asian Fusion",
	"Bakeries & Desserts",
	"Fine Dining",
	"Fast Food",
	"Continental",
	"Seafood",
	"Vegetarian",
	"BBQ & Grills",
	"Italian",
	"Chinese",
	"South Indian",
	"North Indian",
	"Thai",
	"Japanese",
	"Mexican",
}

func GetCatalogue() Catalogue {
	return Catalogue{
		FoodStyles: FoodStyles,
		Ambiances: []Option{
			{Value: string(AmbianceRooftop), Label: "Rooftop", Emoji: "🏙️"},
			{Value: string(AmbianceCozyCafe), Label: "Cozy Café", Emoji: "☕"},
			{Value: string(AmbianceLofiStudy), Label: "Lofi Study Space", Emoji: "📚"},
			{Value: string(AmbianceLivelyPub), Label: "Lively Pub", Emoji: "🍺"},
			{Value: string(AmbianceNatureSpot), Label: "Nature Spot", Emoji: "🌳"},
			{Value: string(AmbianceAestheticMinimal), Label: "Aesthetic Minimal", Emoji: "✨"},
		},
		Activities: []Option{
			{Value: string(ActivityEat), Label: "Eat", Emoji: "🍽️"},
			{Value: string(ActivityWalk), Label: "Walk", Emoji: "🚶"},
			{Value: string(ActivityChill), Label: "Chill", Emoji: "😌"},
			{Value: string(ActivityParty), Label: "Party", Emoji: "🎉"},
			{Value: string(ActivityExplore), Label: "Explore", Emoji: "🗺️"},
			{Value: string(ActivityShootPhotos), Label: "Shoot Photos", Emoji: "📸"},
		},
		HangoutEnergy: []Option{
			{Value: string(EnergyChill), Label: "Chill", Emoji: "🌙"},
			{Value: string(EnergyBalanced), Label: "Balanced", Emoji: "⚖️"},
			{Value: string(EnergyLively), Label: "Lively", Emoji: "🔥"},
			{Value: string(EnergyElectric), Label: "Electric", Emoji: "⚡"},
		},
		GroupSizes: []Option{
			{Value: string(GroupSolo), Label: "Solo", Emoji: "🧘"},
			{Value: string(GroupPair), Label: "1-2 People", Emoji: "👥"},
			{Value: string(GroupSmall), Label: "3-5 People", Emoji: "👨‍👩‍👧"},
			{Value: string(GroupCrowd), Label: "Crowd", Emoji: "🎊"},
		},
		DayPreferences: []Option{
			{Value: string(DayMorningRunner), Label: "Morning Runner", Emoji: "🌅"},
			{Value: string(DayCoffeeHours), Label: "Coffee Hours", Emoji: "☕"},
			{Value: string(DaySunsetExplorer), Label: "Sunset Explorer", Emoji: "🌇"},
			{Value: string(DayNightOwl), Label: "Night Owl", Emoji: "🦉"},
		},
		TravelModes: []Option{
			{Value: string(TravelWalk), Label: "Walk", Emoji: "🚶"},
			{Value: string(TravelBike), Label: "Bike", Emoji: "🚴"},
			{Value: string(TravelCab), Label: "Cab", Emoji: "🚕"},
			{Value: string(TravelPublicTransport), Label: "Public Transport", Emoji: "🚌"},
		},
		WeekendTypes: []Option{
			{Value: string(WeekendPlanAhead), Label: "Plan Ahead", Emoji: "📅"},
			{Value: string(WeekendSpontaneous), Label: "Spontaneous", Emoji: "⚡"},
			{Value: string(WeekendMix), Label: "Mix of Both", Emoji: "🎲"},
		},
		BudgetTiers: []Option{
			{Value: string(BudgetCheap), Label: "₹ Budget", Description: "Under ₹500"},
			{Value: string(BudgetMid), Label: "₹₹ Mid-Range", Description: "₹500 - ₹1500"},
			{Value: string(BudgetTreat), Label: "₹₹₹ Treat Yourself", Description: "₹1500+"},
		},
		Personas: AllDefinitions(),
	}
}
