package tasteprofile

// CreateTasteProfile runs vector, classifier and explanation over the
// responses. It is deterministic and does no I/O.
func CreateTasteProfile(userID string, r OnboardingResponses) TasteProfile {
	vector := ComputeVector(r)
	persona := Classify(vector, r)
	explanation := Explain(persona, vector, r)

	return Assemble(userID, r, persona, vector, explanation)
}

// Assemble builds a profile from an already chosen persona and vector. The
// AI-assisted path uses it too so both paths persist the same shape.
func Assemble(userID string, r OnboardingResponses, persona PersonaType, vector TasteVector, explanation []string) TasteProfile {
	label := "Explorer"
	if def, ok := Definition(persona); ok {
		label = def.Label
	}

	return TasteProfile{
		UserID:                  userID,
		Persona:                 persona,
		PersonaLabel:            label,
		Vector:                  vector,
		Tags:                    nonNil(r.Persona.FreeTags),
		TopFoodStyles:           nonNil(r.Tastes.TopFoodStyles),
		FavoriteAmbiances:       nonNil(r.Tastes.FavoriteAmbiances),
		ActivityPrefs:           nonNil(r.Tastes.ActivityPreferences),
		SourceOnboardingVersion: SourceOnboardingVersion,
		Explanation:             explanation,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
