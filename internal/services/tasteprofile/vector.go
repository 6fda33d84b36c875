package tasteprofile

import "math"

// ComputeVector maps survey responses to a taste vector. Input is not
// validated; callers reject out-of-range answers before getting here.
func ComputeVector(r OnboardingResponses) TasteVector {
	e, t, h := r.Energy, r.Tastes, r.Habits

	foodie := math.Min(1,
		float64(len(t.TopFoodStyles))/3*0.4+
			indicator(contains(t.ActivityPreferences, ActivityEat), 0.3)+
			float64(countIn(t.FavoriteAmbiances, AmbianceCozyCafe, AmbianceRooftop))/6*0.3)

	explorer := math.Min(1,
		float64(h.NewPlaceFrequency)/100*0.6+
			weekendExplorerBonus(h.WeekendType))

	aesthetic := math.Min(1,
		photoAesthetic(h.PhotoPreference)+
			indicator(contains(t.ActivityPreferences, ActivityShootPhotos), 0.3)+
			float64(countIn(t.FavoriteAmbiances, AmbianceAestheticMinimal, AmbianceCozyCafe))/6*0.2)

	crowd := 0.1
	if contains(e.GroupSize, GroupCrowd) {
		crowd = -0.2
	}
	introvert := math.Min(1,
		(1-float64(e.SocialBattery)/100)*0.6+
			indicator(contains(e.GroupSize, GroupSolo), 0.3)+
			crowd)

	morning := 0.2
	if contains(e.DayPreferences, DayMorningRunner) {
		morning = -0.3
	}
	nightOwl := math.Min(1,
		indicator(contains(e.DayPreferences, DayNightOwl), 0.5)+
			energyNightBonus(e.HangoutEnergy)+
			morning)

	v := TasteVector{
		Foodie:            foodie,
		Explorer:          explorer,
		Aesthetic:         aesthetic,
		Introvert:         introvert,
		NightOwl:          nightOwl,
		BudgetSensitivity: budgetSensitivity(t.BudgetTier),
	}
	return v.Clamp()
}

func indicator(ok bool, weight float64) float64 {
	if ok {
		return weight
	}
	return 0
}

func weekendExplorerBonus(w WeekendType) float64 {
	switch w {
	case WeekendSpontaneous:
		return 0.4
	case WeekendMix:
		return 0.2
	default:
		return 0
	}
}

func photoAesthetic(p PhotoPreference) float64 {
	if p == PhotoPost {
		return 0.5
	}
	return 0.2
}

func energyNightBonus(e HangoutEnergy) float64 {
	switch e {
	case EnergyElectric:
		return 0.3
	case EnergyLively:
		return 0.2
	default:
		return 0
	}
}

func budgetSensitivity(b BudgetTier) float64 {
	switch b {
	case BudgetCheap:
		return 0.8
	case BudgetMid:
		return 0.5
	default:
		return 0.2
	}
}
