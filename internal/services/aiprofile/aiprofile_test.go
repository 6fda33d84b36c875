package aiprofile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/MyelinBots/connectmap-go/internal/services/tasteprofile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const validJSON = `{
  "tasteVector": {"foodie": 0.8, "explorer": 1.4, "aesthetic": 0.5, "introvert": -0.2, "nightOwl": 0.9, "budgetSensitivity": 0.5},
  "persona": "photo_pilgrim",
  "explanation": ["one", "two", "three"],
  "refinedDescription": "Loves golden hour."
}`

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantPersona tasteprofile.PersonaType
		wantDesc    string
		wantErr     bool
	}{
		{name: "plain", text: validJSON, wantPersona: tasteprofile.PhotoPilgrim, wantDesc: "Loves golden hour."},
		{name: "fenced", text: "```json\n" + validJSON + "\n```", wantPersona: tasteprofile.PhotoPilgrim, wantDesc: "Loves golden hour."},
		{name: "trailing comma repaired", text: `{"persona": "quiet_curator", "explanation": ["a",],}`, wantPersona: tasteprofile.QuietCurator, wantDesc: defaultDescription},
		{name: "unknown persona", text: `{"persona": "space_cowboy"}`, wantPersona: tasteprofile.NeonNomad, wantDesc: defaultDescription},
		{name: "empty", text: "```json\n```", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPersona, got.Persona)
			assert.Equal(t, tt.wantDesc, got.RefinedDescription)
			assert.NotEmpty(t, got.Explanation)
		})
	}
}

func TestParseClampsVector(t *testing.T) {
	got, err := Parse(validJSON)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Vector.Explorer)
	assert.Equal(t, 0.0, got.Vector.Introvert)
	assert.Equal(t, 0.8, got.Vector.Foodie)
}

func TestParseDefaultsExplanation(t *testing.T) {
	got, err := Parse(`{"persona": "budget_ranger"}`)
	require.NoError(t, err)
	assert.Equal(t, defaultExplanation, got.Explanation)

	// callers may mutate the result without touching the defaults
	got.Explanation[0] = "changed"
	assert.NotEqual(t, "changed", defaultExplanation[0])
}

func TestBuildPrompt(t *testing.T) {
	r := tasteprofile.OnboardingResponses{
		Energy: tasteprofile.Energy{
			HangoutEnergy: tasteprofile.EnergyElectric,
			SocialBattery: 80,
			GroupSize:     []tasteprofile.GroupSize{tasteprofile.GroupCrowd, tasteprofile.GroupSmall},
		},
		Tastes: tasteprofile.Tastes{BudgetTier: tasteprofile.BudgetCheap},
	}
	p := BuildPrompt(r)
	assert.Contains(t, p, "Hangout Energy: electric")
	assert.Contains(t, p, "Social Battery: 80/100")
	assert.Contains(t, p, "Group Size Preferences: crowd, 3-5")
	assert.Contains(t, p, "Persona Keyword: not selected")
	assert.Contains(t, p, "Free Tags: none")
	for _, def := range tasteprofile.AllDefinitions() {
		assert.True(t, strings.Contains(p, string(def.Type)), def.Type)
	}
}

type fakeModels struct {
	text  string
	err   error
	model string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestGeminiGenerator(t *testing.T) {
	cfg := config.GeminiConfig{Model: "gemini-test"}

	fake := &fakeModels{text: validJSON}
	g := newGeminiGenerator(fake, cfg, zap.NewNop())
	res, err := g.Generate(context.Background(), tasteprofile.OnboardingResponses{})
	require.NoError(t, err)
	assert.Equal(t, tasteprofile.PhotoPilgrim, res.Persona)
	assert.Equal(t, "gemini-test", fake.model)

	boom := errors.New("quota")
	g = newGeminiGenerator(&fakeModels{err: boom}, cfg, zap.NewNop())
	_, err = g.Generate(context.Background(), tasteprofile.OnboardingResponses{})
	assert.ErrorIs(t, err, boom)

	g = newGeminiGenerator(&fakeModels{text: "not json at all {{{"}, cfg, zap.NewNop())
	_, err = g.Generate(context.Background(), tasteprofile.OnboardingResponses{})
	assert.Error(t, err)
}

func TestNewGeminiWithoutKey(t *testing.T) {
	g, err := NewGemini(context.Background(), config.GeminiConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, g)
}
