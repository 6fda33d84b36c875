package aiprofile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MyelinBots/connectmap-go/internal/services/tasteprofile"
	"github.com/kaptinlin/jsonrepair"
)

const defaultDescription = "A unique explorer with diverse tastes and an adventurous spirit."

var defaultExplanation = []string{
	"Your unique preferences create an exciting taste profile",
	"You have a balanced approach to exploring new places",
	"Your habits show a thoughtful approach to experiences",
}

// Result is a model generated profile after normalisation.
type Result struct {
	Vector             tasteprofile.TasteVector
	Persona            tasteprofile.PersonaType
	Explanation        []string
	RefinedDescription string
}

type rawResult struct {
	TasteVector        tasteprofile.TasteVector `json:"tasteVector"`
	Persona            string                   `json:"persona"`
	Explanation        []string                 `json:"explanation"`
	RefinedDescription string                   `json:"refinedDescription"`
}

var ErrEmptyResponse = errors.New("empty model response")

// stripFences removes markdown code fences around a JSON payload.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Parse decodes model output, repairing malformed JSON once before giving up.
func Parse(text string) (Result, error) {
	body := stripFences(text)
	if body == "" {
		return Result{}, ErrEmptyResponse
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(body)
		if repairErr != nil {
			return Result{}, fmt.Errorf("decode model response: %w", err)
		}
		raw = rawResult{}
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return Result{}, fmt.Errorf("decode repaired model response: %w", err)
		}
	}
	return normalise(raw), nil
}

func normalise(raw rawResult) Result {
	persona := tasteprofile.PersonaType(raw.Persona)
	if !persona.Valid() {
		persona = tasteprofile.NeonNomad
	}

	explanation := raw.Explanation
	if len(explanation) == 0 {
		explanation = append([]string{}, defaultExplanation...)
	}

	description := strings.TrimSpace(raw.RefinedDescription)
	if description == "" {
		description = defaultDescription
	}

	return Result{
		Vector:             raw.TasteVector.Clamp(),
		Persona:            persona,
		Explanation:        explanation,
		RefinedDescription: description,
	}
}
