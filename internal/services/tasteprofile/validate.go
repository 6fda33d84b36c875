package tasteprofile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MyelinBots/connectmap-go/internal/errs"
)

const (
	MaxFoodStyles = 3
	MaxFreeTags   = 6
	maxTagLength  = 40
)

// Validate rejects answers the survey controls can never produce. The
// computation itself accepts anything, so this is the only guard.
func (r OnboardingResponses) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	e, t, h, p := r.Energy, r.Tastes, r.Habits, r.Persona

	if !oneOf(e.HangoutEnergy, EnergyChill, EnergyBalanced, EnergyLively, EnergyElectric) {
		add("sheet1.hangoutEnergy %q is not a known energy", e.HangoutEnergy)
	}
	if e.SocialBattery < 0 || e.SocialBattery > 100 {
		add("sheet1.socialBattery %d is outside 0-100", e.SocialBattery)
	}
	for _, g := range e.GroupSize {
		if !oneOf(g, GroupSolo, GroupPair, GroupSmall, GroupCrowd) {
			add("sheet1.groupSize %q is not a known group size", g)
		}
	}
	for _, d := range e.DayPreferences {
		if !oneOf(d, DayMorningRunner, DayCoffeeHours, DaySunsetExplorer, DayNightOwl) {
			add("sheet1.dayPreferences %q is not a known day preference", d)
		}
	}

	if len(t.TopFoodStyles) > MaxFoodStyles {
		add("sheet2.topFoodStyles has %d entries, at most %d allowed", len(t.TopFoodStyles), MaxFoodStyles)
	}
	for _, a := range t.FavoriteAmbiances {
		if !oneOf(a, AmbianceRooftop, AmbianceCozyCafe, AmbianceLofiStudy, AmbianceLivelyPub, AmbianceNatureSpot, AmbianceAestheticMinimal) {
			add("sheet2.favoriteAmbiances %q is not a known ambiance", a)
		}
	}
	for _, a := range t.ActivityPreferences {
		if !oneOf(a, ActivityEat, ActivityWalk, ActivityChill, ActivityParty, ActivityExplore, ActivityShootPhotos) {
			add("sheet2.activityPreferences %q is not a known activity", a)
		}
	}
	if !oneOf(t.BudgetTier, BudgetCheap, BudgetMid, BudgetTreat) {
		add("sheet2.budgetTier %q is not a known tier", t.BudgetTier)
	}

	for _, m := range h.TravelMode {
		if !oneOf(m, TravelWalk, TravelBike, TravelCab, TravelPublicTransport) {
			add("sheet3.travelMode %q is not a known travel mode", m)
		}
	}
	if !oneOf(h.WeekendType, WeekendPlanAhead, WeekendSpontaneous, WeekendMix) {
		add("sheet3.weekendType %q is not a known weekend type", h.WeekendType)
	}
	if h.NewPlaceFrequency < 0 || h.NewPlaceFrequency > 100 {
		add("sheet3.newPlaceFrequency %d is outside 0-100", h.NewPlaceFrequency)
	}
	if !oneOf(h.PhotoPreference, PhotoPost, PhotoKeepPrivate) {
		add("sheet3.photoPreference %q is not a known preference", h.PhotoPreference)
	}

	if p.PersonaKeyword != "" && !p.PersonaKeyword.Valid() {
		add("sheet4.personaKeyword %q is not a known persona", p.PersonaKeyword)
	}
	if len(p.FreeTags) > MaxFreeTags {
		add("sheet4.freeTags has %d entries, at most %d allowed", len(p.FreeTags), MaxFreeTags)
	}
	for _, tag := range p.FreeTags {
		if strings.TrimSpace(tag) == "" || len(tag) > maxTagLength {
			add("sheet4.freeTags entry %q must be 1-%d characters", tag, maxTagLength)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", errs.ErrInvalid, errors.Join(problems...))
}

func oneOf[T comparable](v T, allowed ...T) bool {
	return contains(allowed, v)
}
