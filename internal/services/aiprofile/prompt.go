package aiprofile

import (
	"fmt"
	"strings"

	"github.com/MyelinBots/connectmap-go/internal/services/tasteprofile"
)

func join[T ~string](vals []T) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// BuildPrompt renders the survey into the analysis prompt.
func BuildPrompt(r tasteprofile.OnboardingResponses) string {
	var b strings.Builder
	b.WriteString("You are an expert taste profile analyzer for a location discovery app. ")
	b.WriteString("Analyze the following user survey responses and generate a detailed taste profile.\n\n")

	b.WriteString("Sheet 1 - Identity & Energy:\n")
	fmt.Fprintf(&b, "- Hangout Energy: %s\n", r.Energy.HangoutEnergy)
	fmt.Fprintf(&b, "- Social Battery: %d/100\n", r.Energy.SocialBattery)
	fmt.Fprintf(&b, "- Group Size Preferences: %s\n", join(r.Energy.GroupSize))
	fmt.Fprintf(&b, "- Day Preferences: %s\n\n", join(r.Energy.DayPreferences))

	b.WriteString("Sheet 2 - Taste Categories:\n")
	fmt.Fprintf(&b, "- Top Food Styles: %s\n", strings.Join(r.Tastes.TopFoodStyles, ", "))
	fmt.Fprintf(&b, "- Favorite Ambiances: %s\n", join(r.Tastes.FavoriteAmbiances))
	fmt.Fprintf(&b, "- Activity Preferences: %s\n", join(r.Tastes.ActivityPreferences))
	fmt.Fprintf(&b, "- Budget Tier: %s\n\n", r.Tastes.BudgetTier)

	b.WriteString("Sheet 3 - Behavior & Habits:\n")
	fmt.Fprintf(&b, "- Travel Mode: %s\n", join(r.Habits.TravelMode))
	fmt.Fprintf(&b, "- Weekend Type: %s\n", r.Habits.WeekendType)
	fmt.Fprintf(&b, "- New Place Frequency: %d/100 (0=rarely, 100=weekly)\n", r.Habits.NewPlaceFrequency)
	fmt.Fprintf(&b, "- Photo Preference: %s\n\n", r.Habits.PhotoPreference)

	b.WriteString("Sheet 4 - Personality:\n")
	fmt.Fprintf(&b, "- Persona Keyword: %s\n", orDefault(string(r.Persona.PersonaKeyword), "not selected"))
	fmt.Fprintf(&b, "- Free Tags: %s\n\n", orDefault(strings.Join(r.Persona.FreeTags, ", "), "none"))

	b.WriteString(`Respond ONLY with a JSON object of this shape, no markdown:
{
  "tasteVector": {"foodie": 0-1, "explorer": 0-1, "aesthetic": 0-1, "introvert": 0-1, "nightOwl": 0-1, "budgetSensitivity": 0-1},
  "persona": "<persona id>",
  "explanation": ["<strongest trait>", "<preferences>", "<habits>"],
  "refinedDescription": "<2-3 sentence description>"
}

Persona ids:
`)
	for _, def := range tasteprofile.AllDefinitions() {
		fmt.Fprintf(&b, "- %s: %s\n", def.Type, def.Description)
	}

	b.WriteString(`
Vector guidelines:
- foodie: food style variety and dining preference
- explorer: new place frequency, spontaneity, travel modes
- aesthetic: ambiance preferences and photo habits
- introvert: social battery (inverted) and group sizes
- nightOwl: day preferences
- budgetSensitivity: budget tier (cheap=1.0, mid=0.5, treat=0.0)
`)
	return b.String()
}
