package tasteprofile

type PersonaType string

const (
	NeonNomad           PersonaType = "neon_nomad"
	BiscottiBotanist    PersonaType = "biscotti_botanist"
	BudgetRanger        PersonaType = "budget_ranger"
	SunriseCartographer PersonaType = "sunrise_cartographer"
	QuietCurator        PersonaType = "quiet_curator"
	SpontaneityEngine   PersonaType = "spontaneity_engine"
	TactileFoodsmith    PersonaType = "tactile_foodsmith"
	PhotoPilgrim        PersonaType = "photo_pilgrim"
)

// Personas lists every persona in classification order. The order decides ties.
var Personas = []PersonaType{
	NeonNomad,
	BiscottiBotanist,
	BudgetRanger,
	SunriseCartographer,
	QuietCurator,
	SpontaneityEngine,
	TactileFoodsmith,
	PhotoPilgrim,
}

type PersonaDefinition struct {
	Type        PersonaType `json:"type"`
	Label       string      `json:"label"`
	Emoji       string      `json:"emoji"`
	Description string      `json:"description"`
	Traits      []string    `json:"traits"`
}

var definitions = map[PersonaType]PersonaDefinition{
	NeonNomad: {
		Type:        NeonNomad,
		Label:       "Neon Nomad",
		Emoji:       "🌃",
		Description: "Late-night explorer, nightlife & street food",
		Traits:      []string{"Night owl", "Street food lover", "Urban explorer"},
	},
	BiscottiBotanist: {
		Type:        BiscottiBotanist,
		Label:       "Biscotti Botanist",
		Emoji:       "☕",
		Description: "Café-first, cozy aesthetics, photo lover",
		Traits:      []string{"Café enthusiast", "Aesthetic curator", "Photo lover"},
	},
	BudgetRanger: {
		Type:        BudgetRanger,
		Label:       "Budget Ranger",
		Emoji:       "💰",
		Description: "Finds cheap gems, high frequency, low spend",
		Traits:      []string{"Value seeker", "Frequent explorer", "Hidden gems finder"},
	},
	SunriseCartographer: {
		Type:        SunriseCartographer,
		Label:       "Sunrise Cartographer",
		Emoji:       "🌅",
		Description: "Morning explorer, parks & breakfasts",
		Traits:      []string{"Early bird", "Nature lover", "Breakfast specialist"},
	},
	QuietCurator: {
		Type:        QuietCurator,
		Label:       "Quiet Curator",
		Emoji:       "🎨",
		Description: "Introverted, niche places, gallery/craft shops",
		Traits:      []string{"Introvert", "Niche explorer", "Arts & crafts lover"},
	},
	SpontaneityEngine: {
		Type:        SpontaneityEngine,
		Label:       "Spontaneity Engine",
		Emoji:       "⚡",
		Description: "Loves sudden plans, flexible, group-friendly",
		Traits:      []string{"Spontaneous", "Group activities", "Adventure ready"},
	},
	TactileFoodsmith: {
		Type:        TactileFoodsmith,
		Label:       "Tactile Foodsmith",
		Emoji:       "🍽️",
		Description: "High foodie %, cares about sensations & plating",
		Traits:      []string{"Food connoisseur", "Plating aesthete", "Sensory explorer"},
	},
	PhotoPilgrim: {
		Type:        PhotoPilgrim,
		Label:       "Photo Pilgrim",
		Emoji:       "📸",
		Description: "Places for snaps, aesthetic-first, medium budget",
		Traits:      []string{"Instagram ready", "Visual curator", "Aesthetic hunter"},
	},
}

// Valid reports whether p is one of the eight personas.
func (p PersonaType) Valid() bool {
	_, ok := definitions[p]
	return ok
}

// Definition returns the static description of p.
func Definition(p PersonaType) (PersonaDefinition, bool) {
	def, ok := definitions[p]
	return def, ok
}

// AllDefinitions returns the persona table in classification order.
func AllDefinitions() []PersonaDefinition {
	out := make([]PersonaDefinition, 0, len(Personas))
	for _, p := range Personas {
		out = append(out, definitions[p])
	}
	return out
}
