package tasteprofile

// Score is one persona's score from a classification pass.
type Score struct {
	Persona PersonaType `json:"persona"`
	Score   float64     `json:"score"`
}

// Classify picks the persona for v. An explicit persona keyword in the
// responses is returned as-is without scoring.
func Classify(v TasteVector, r OnboardingResponses) PersonaType {
	if r.Persona.PersonaKeyword != "" {
		return r.Persona.PersonaKeyword
	}
	return best(Scores(v, r))
}

// Scores returns every persona's score in classification order.
func Scores(v TasteVector, r OnboardingResponses) []Score {
	e, t, h := r.Energy, r.Tastes, r.Habits

	postBonus := 0.0
	if h.PhotoPreference == PhotoPost {
		postBonus = 0.3
	}

	scores := map[PersonaType]float64{
		NeonNomad:           v.NightOwl*0.4 + v.Foodie*0.3 + v.Explorer*0.3,
		BiscottiBotanist:    v.Aesthetic*0.4 + (1-v.NightOwl)*0.3 + v.Foodie*0.3,
		BudgetRanger:        v.BudgetSensitivity*0.5 + v.Explorer*0.3 + v.Foodie*0.2,
		SunriseCartographer: (1-v.NightOwl)*0.5 + v.Explorer*0.3 + (1-v.Introvert)*0.2,
		QuietCurator:        v.Introvert*0.5 + v.Aesthetic*0.3 + (1-v.Foodie)*0.2,
		SpontaneityEngine:   v.Explorer*0.4 + (1-v.Introvert)*0.4 + (1-v.BudgetSensitivity)*0.2,
		TactileFoodsmith:    v.Foodie*0.6 + v.Aesthetic*0.3 + (1-v.BudgetSensitivity)*0.1,
		PhotoPilgrim:        v.Aesthetic*0.5 + postBonus + v.Explorer*0.2,
	}

	if contains(e.DayPreferences, DayNightOwl) {
		scores[NeonNomad] += 0.2
	}
	if contains(t.FavoriteAmbiances, AmbianceCozyCafe) {
		scores[BiscottiBotanist] += 0.15
	}
	if t.BudgetTier == BudgetCheap {
		scores[BudgetRanger] += 0.2
	}
	if contains(e.DayPreferences, DayMorningRunner) {
		scores[SunriseCartographer] += 0.2
	}
	if contains(e.GroupSize, GroupSolo) {
		scores[QuietCurator] += 0.15
	}
	if h.WeekendType == WeekendSpontaneous {
		scores[SpontaneityEngine] += 0.2
	}
	if len(t.TopFoodStyles) == 3 {
		scores[TactileFoodsmith] += 0.15
	}
	if contains(t.ActivityPreferences, ActivityShootPhotos) {
		scores[PhotoPilgrim] += 0.2
	}

	out := make([]Score, 0, len(Personas))
	for _, p := range Personas {
		out = append(out, Score{Persona: p, Score: scores[p]})
	}
	return out
}

// best is a strict argmax seeded with (NeonNomad, 0): the first maximum
// wins and nothing above zero means NeonNomad.
func best(scores []Score) PersonaType {
	winner := Score{Persona: NeonNomad, Score: 0}
	for _, s := range scores {
		if s.Score > winner.Score {
			winner = s
		}
	}
	return winner.Persona
}
