package tasteprofile

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyelinBots/connectmap-go/internal/errs"
)

const eps = 1e-9

func nightOutResponses() OnboardingResponses {
	return OnboardingResponses{
		Energy: Energy{
			HangoutEnergy:  EnergyElectric,
			SocialBattery:  80,
			GroupSize:      []GroupSize{GroupSmall, GroupCrowd},
			DayPreferences: []DayPreference{DayNightOwl},
		},
		Tastes: Tastes{
			TopFoodStyles:       []string{"Street Food", "BBQ & Grills"},
			FavoriteAmbiances:   []Ambiance{AmbianceLivelyPub, AmbianceRooftop},
			ActivityPreferences: []Activity{ActivityEat, ActivityParty},
			BudgetTier:          BudgetMid,
		},
		Habits: Habits{
			TravelMode:        []TravelMode{TravelCab},
			WeekendType:       WeekendMix,
			NewPlaceFrequency: 90,
			PhotoPreference:   PhotoKeepPrivate,
		},
		Persona: PersonaChoice{
			FreeTags: []string{"late dinners"},
			Privacy:  Privacy{ShowPlacesToFriends: true},
		},
	}
}

func quietResponses() OnboardingResponses {
	return OnboardingResponses{
		Energy: Energy{
			HangoutEnergy:  EnergyChill,
			SocialBattery:  10,
			GroupSize:      []GroupSize{GroupSolo},
			DayPreferences: []DayPreference{DayCoffeeHours},
		},
		Tastes: Tastes{
			TopFoodStyles:       []string{"Café Brunch"},
			FavoriteAmbiances:   []Ambiance{AmbianceLofiStudy, AmbianceAestheticMinimal},
			ActivityPreferences: []Activity{ActivityChill},
			BudgetTier:          BudgetMid,
		},
		Habits: Habits{
			TravelMode:        []TravelMode{TravelWalk},
			WeekendType:       WeekendPlanAhead,
			NewPlaceFrequency: 20,
			PhotoPreference:   PhotoKeepPrivate,
		},
	}
}

func TestComputeVector_NightOut(t *testing.T) {
	v := ComputeVector(nightOutResponses())

	assert.InDelta(t, 2.0/3*0.4+0.3+1.0/6*0.3, v.Foodie, eps)
	assert.InDelta(t, 0.74, v.Explorer, eps)
	assert.InDelta(t, 0.2, v.Aesthetic, eps)
	assert.Equal(t, 0.0, v.Introvert, "crowd preference pushes introvert below zero before clamping")
	assert.InDelta(t, 1.0, v.NightOwl, eps)
	assert.Equal(t, 0.5, v.BudgetSensitivity)
}

func TestComputeVector_FoodieExample(t *testing.T) {
	r := nightOutResponses()
	r.Tastes.TopFoodStyles = []string{"Street Food", "Italian", "Thai"}
	r.Tastes.ActivityPreferences = []Activity{ActivityEat}
	r.Tastes.FavoriteAmbiances = []Ambiance{AmbianceCozyCafe, AmbianceRooftop}

	v := ComputeVector(r)

	assert.GreaterOrEqual(t, v.Foodie, 0.8-eps)
	assert.InDelta(t, 0.8, v.Foodie, eps)
}

func TestComputeVector_BudgetSensitivity(t *testing.T) {
	tests := []struct {
		tier     BudgetTier
		expected float64
	}{
		{BudgetCheap, 0.8},
		{BudgetMid, 0.5},
		{BudgetTreat, 0.2},
		{"", 0.2},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			r := quietResponses()
			r.Tastes.BudgetTier = tt.tier
			assert.Equal(t, tt.expected, ComputeVector(r).BudgetSensitivity)
		})
	}
}

func TestComputeVector_AlwaysInUnitRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	energies := []HangoutEnergy{EnergyChill, EnergyBalanced, EnergyLively, EnergyElectric, ""}
	weekends := []WeekendType{WeekendPlanAhead, WeekendSpontaneous, WeekendMix, ""}
	photos := []PhotoPreference{PhotoPost, PhotoKeepPrivate, ""}
	tiers := []BudgetTier{BudgetCheap, BudgetMid, BudgetTreat, ""}
	groups := []GroupSize{GroupSolo, GroupPair, GroupSmall, GroupCrowd}
	days := []DayPreference{DayMorningRunner, DayCoffeeHours, DaySunsetExplorer, DayNightOwl}
	ambiances := []Ambiance{AmbianceRooftop, AmbianceCozyCafe, AmbianceLofiStudy, AmbianceLivelyPub, AmbianceNatureSpot, AmbianceAestheticMinimal}
	activities := []Activity{ActivityEat, ActivityWalk, ActivityChill, ActivityParty, ActivityExplore, ActivityShootPhotos}

	for i := 0; i < 2000; i++ {
		r := OnboardingResponses{
			Energy: Energy{
				HangoutEnergy:  energies[rng.Intn(len(energies))],
				SocialBattery:  rng.Intn(401) - 150,
				GroupSize:      subset(rng, groups),
				DayPreferences: subset(rng, days),
			},
			Tastes: Tastes{
				TopFoodStyles:       FoodStyles[:rng.Intn(6)],
				FavoriteAmbiances:   subset(rng, ambiances),
				ActivityPreferences: subset(rng, activities),
				BudgetTier:          tiers[rng.Intn(len(tiers))],
			},
			Habits: Habits{
				WeekendType:       weekends[rng.Intn(len(weekends))],
				NewPlaceFrequency: rng.Intn(401) - 150,
				PhotoPreference:   photos[rng.Intn(len(photos))],
			},
		}

		v := ComputeVector(r)
		for name, f := range map[string]float64{
			"foodie": v.Foodie, "explorer": v.Explorer, "aesthetic": v.Aesthetic,
			"introvert": v.Introvert, "nightOwl": v.NightOwl, "budgetSensitivity": v.BudgetSensitivity,
		} {
			if f < 0 || f > 1 {
				t.Fatalf("iteration %d: %s = %v outside [0,1] for %+v", i, name, f, r)
			}
		}
	}
}

func subset[T any](rng *rand.Rand, all []T) []T {
	var out []T
	for _, v := range all {
		if rng.Intn(2) == 0 {
			out = append(out, v)
		}
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		responses OnboardingResponses
		expected  PersonaType
	}{
		{"night out", nightOutResponses(), NeonNomad},
		{"quiet", quietResponses(), QuietCurator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ComputeVector(tt.responses)
			assert.Equal(t, tt.expected, Classify(v, tt.responses))
		})
	}
}

func TestClassify_PersonaKeywordIsAuthoritative(t *testing.T) {
	for _, keyword := range Personas {
		t.Run(string(keyword), func(t *testing.T) {
			r := nightOutResponses()
			r.Persona.PersonaKeyword = keyword

			assert.Equal(t, keyword, Classify(ComputeVector(r), r))
			assert.Equal(t, keyword, Classify(TasteVector{NightOwl: 1, Foodie: 1, Explorer: 1}, r))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	r := quietResponses()
	first := CreateTasteProfile("u1", r)
	for i := 0; i < 50; i++ {
		if diff := cmp.Diff(first, CreateTasteProfile("u1", r)); diff != "" {
			t.Fatalf("profile changed between runs (-first +again):\n%s", diff)
		}
	}
}

func TestScores_Order(t *testing.T) {
	scores := Scores(ComputeVector(quietResponses()), quietResponses())
	require.Len(t, scores, len(Personas))
	for i, s := range scores {
		assert.Equal(t, Personas[i], s.Persona)
	}
}

func TestScores_AnswerBonuses(t *testing.T) {
	v := TasteVector{}
	base := Scores(v, OnboardingResponses{})

	r := OnboardingResponses{
		Energy: Energy{
			GroupSize:      []GroupSize{GroupSolo},
			DayPreferences: []DayPreference{DayNightOwl, DayMorningRunner},
		},
		Tastes: Tastes{
			TopFoodStyles:       []string{"a", "b", "c"},
			FavoriteAmbiances:   []Ambiance{AmbianceCozyCafe},
			ActivityPreferences: []Activity{ActivityShootPhotos},
			BudgetTier:          BudgetCheap,
		},
		Habits: Habits{WeekendType: WeekendSpontaneous},
	}
	boosted := Scores(v, r)

	expected := map[PersonaType]float64{
		NeonNomad:           0.2,
		BiscottiBotanist:    0.15,
		BudgetRanger:        0.2,
		SunriseCartographer: 0.2,
		QuietCurator:        0.15,
		SpontaneityEngine:   0.2,
		TactileFoodsmith:    0.15,
		PhotoPilgrim:        0.2,
	}
	for i := range boosted {
		assert.InDelta(t, expected[boosted[i].Persona], boosted[i].Score-base[i].Score, eps, string(boosted[i].Persona))
	}
}

func TestBest_TieBreak(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		expected PersonaType
	}{
		{"all zero falls back to first persona", []float64{0, 0, 0, 0, 0, 0, 0, 0}, NeonNomad},
		{"all negative falls back to first persona", []float64{-1, -0.5, -0.2, -0.1, -2, -3, -1, -1}, NeonNomad},
		{"equal maxima keep the first", []float64{0.1, 0.5, 0.5, 0, 0, 0, 0, 0.5}, BiscottiBotanist},
		{"later strict maximum wins", []float64{0.1, 0.5, 0.5, 0, 0, 0, 0, 0.51}, PhotoPilgrim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := make([]Score, len(Personas))
			for i, p := range Personas {
				scores[i] = Score{Persona: p, Score: tt.scores[i]}
			}
			assert.Equal(t, tt.expected, best(scores))
		})
	}
}

func TestExplain(t *testing.T) {
	r := nightOutResponses()
	v := ComputeVector(r)

	got := Explain(NeonNomad, v, r)
	assert.Equal(t, []string{
		"Your night owl score (100%) shows you thrive after sunset",
		"Love for electric energy and street food vibes",
		"High explorer tendency means you're always hunting for the next spot",
	}, got)

	q := quietResponses()
	assert.Equal(t, "Introvert score (94%) aligns with niche interests", Explain(QuietCurator, ComputeVector(q), q)[0])
	assert.Equal(t, "Morning person vibes (80% early bird score)", Explain(SunriseCartographer, TasteVector{NightOwl: 0.2}, q)[0])
	assert.Equal(t, "You selected 1 diverse food styles", Explain(TactileFoodsmith, v, q)[1])
	assert.Equal(t, "Aesthetic score (13%) drives your place selection", Explain(PhotoPilgrim, TasteVector{Aesthetic: 0.125}, q)[0])

	for _, p := range Personas {
		assert.Len(t, Explain(p, v, r), 3, string(p))
	}
	assert.Equal(t, []string{"Your unique mix creates this profile"}, Explain("mystery_guest", v, r))
}

func TestCreateTasteProfile(t *testing.T) {
	r := nightOutResponses()
	got := CreateTasteProfile("user-1", r)

	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, NeonNomad, got.Persona)
	assert.Equal(t, "Neon Nomad", got.PersonaLabel)
	assert.Equal(t, 1, got.SourceOnboardingVersion)
	assert.Equal(t, []string{"late dinners"}, got.Tags)
	assert.Equal(t, r.Tastes.TopFoodStyles, got.TopFoodStyles)
	assert.Equal(t, r.Tastes.FavoriteAmbiances, got.FavoriteAmbiances)
	assert.Equal(t, r.Tastes.ActivityPreferences, got.ActivityPrefs)
	assert.Len(t, got.Explanation, 3)

	empty := CreateTasteProfile("user-2", OnboardingResponses{})
	assert.NotNil(t, empty.Tags)
	assert.NotNil(t, empty.TopFoodStyles)
	assert.True(t, empty.Persona.Valid())
}

func TestPersonaTable(t *testing.T) {
	defs := AllDefinitions()
	require.Len(t, defs, 8)
	for i, def := range defs {
		assert.Equal(t, Personas[i], def.Type)
		assert.NotEmpty(t, def.Label)
		assert.NotEmpty(t, def.Emoji)
		assert.Len(t, def.Traits, 3)
		assert.True(t, def.Type.Valid())
	}
	assert.False(t, PersonaType("").Valid())
	assert.False(t, PersonaType("night_owl").Valid())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *OnboardingResponses)
		wantErr bool
	}{
		{"valid", func(r *OnboardingResponses) {}, false},
		{"valid with persona keyword", func(r *OnboardingResponses) { r.Persona.PersonaKeyword = PhotoPilgrim }, false},
		{"slider above range", func(r *OnboardingResponses) { r.Energy.SocialBattery = 101 }, true},
		{"slider below range", func(r *OnboardingResponses) { r.Habits.NewPlaceFrequency = -1 }, true},
		{"too many food styles", func(r *OnboardingResponses) { r.Tastes.TopFoodStyles = FoodStyles[:4] }, true},
		{"too many tags", func(r *OnboardingResponses) { r.Persona.FreeTags = []string{"a", "b", "c", "d", "e", "f", "g"} }, true},
		{"blank tag", func(r *OnboardingResponses) { r.Persona.FreeTags = []string{" "} }, true},
		{"unknown persona", func(r *OnboardingResponses) { r.Persona.PersonaKeyword = "night_walker" }, true},
		{"unknown ambiance", func(r *OnboardingResponses) { r.Tastes.FavoriteAmbiances = []Ambiance{"beach"} }, true},
		{"missing budget tier", func(r *OnboardingResponses) { r.Tastes.BudgetTier = "" }, true},
		{"unknown travel mode", func(r *OnboardingResponses) { r.Habits.TravelMode = []TravelMode{"teleport"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := nightOutResponses()
			tt.mutate(&r)
			err := r.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalid))
		})
	}
}

func TestGetCatalogue(t *testing.T) {
	c := GetCatalogue()
	assert.Len(t, c.FoodStyles, 18)
	assert.Len(t, c.Ambiances, 6)
	assert.Len(t, c.Activities, 6)
	assert.Len(t, c.BudgetTiers, 3)
	assert.Len(t, c.Personas, 8)
}
