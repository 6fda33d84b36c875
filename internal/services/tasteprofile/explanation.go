package tasteprofile

import (
	"fmt"
	"math"
)

const genericExplanation = "Your unique mix creates this profile"

// Explain returns the bullet points shown next to the persona.
func Explain(p PersonaType, v TasteVector, r OnboardingResponses) []string {
	switch p {
	case NeonNomad:
		return []string{
			fmt.Sprintf("Your night owl score (%s%%) shows you thrive after sunset", pct(v.NightOwl)),
			fmt.Sprintf("Love for %s energy and street food vibes", r.Energy.HangoutEnergy),
			"High explorer tendency means you're always hunting for the next spot",
		}
	case BiscottiBotanist:
		return []string{
			fmt.Sprintf("Strong aesthetic sense (%s%%) matches your café culture love", pct(v.Aesthetic)),
			"Your cozy ambiance preferences show refined taste",
			"Photo-friendly places are your jam",
		}
	case BudgetRanger:
		return []string{
			fmt.Sprintf("Budget-conscious (%s%%) but adventurous explorer", pct(v.BudgetSensitivity)),
			"High frequency of trying new places on a smart budget",
			"You find hidden gems that others miss",
		}
	case SunriseCartographer:
		return []string{
			fmt.Sprintf("Morning person vibes (%s%% early bird score)", pct(1-v.NightOwl)),
			"Love for parks, nature spots, and breakfast culture",
			"Your explorer score shows systematic place discovery",
		}
	case QuietCurator:
		return []string{
			fmt.Sprintf("Introvert score (%s%%) aligns with niche interests", pct(v.Introvert)),
			"Preference for solo or small group experiences",
			"Aesthetic spaces with cultural depth appeal to you",
		}
	case SpontaneityEngine:
		return []string{
			fmt.Sprintf("High explorer score (%s%%) with spontaneous weekend style", pct(v.Explorer)),
			"You're group-friendly and flexible with plans",
			"Your energy levels match quick decision-making",
		}
	case TactileFoodsmith:
		return []string{
			fmt.Sprintf("Food-first mindset (%s%% foodie score)", pct(v.Foodie)),
			fmt.Sprintf("You selected %d diverse food styles", len(r.Tastes.TopFoodStyles)),
			"Plating aesthetics and sensory experiences matter",
		}
	case PhotoPilgrim:
		return []string{
			fmt.Sprintf("Aesthetic score (%s%%) drives your place selection", pct(v.Aesthetic)),
			"Photography is part of your exploration process",
			"You seek Instagram-worthy spots with mid-range budgets",
		}
	default:
		return []string{genericExplanation}
	}
}

// pct formats a [0,1] score as a whole percentage, rounding halves up.
func pct(f float64) string {
	return fmt.Sprintf("%d", int(math.Round(f*100)))
}
