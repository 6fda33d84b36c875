package onboarding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/onboarding_response"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/taste_profile"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/aiprofile"
	"github.com/MyelinBots/connectmap-go/internal/services/tasteprofile"
	"github.com/MyelinBots/connectmap-go/internal/services/users"
	"go.uber.org/zap"
)

// Identity is the public face chosen during onboarding.
type Identity struct {
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
	AvatarEmoji string `json:"avatarEmoji"`
}

type Outcome struct {
	ProfileID   string                    `json:"profileId"`
	ResponsesID string                    `json:"responsesId"`
	Profile     tasteprofile.TasteProfile `json:"profile"`
	AIGenerated bool                      `json:"aiGenerated"`
}

type ProfileView struct {
	ID         string                         `json:"id"`
	Profile    tasteprofile.TasteProfile      `json:"profile"`
	Definition tasteprofile.PersonaDefinition `json:"definition"`
	CreatedAt  time.Time                      `json:"createdAt"`
}

type Service interface {
	Submit(ctx context.Context, userID string, identity Identity, r tasteprofile.OnboardingResponses) (*Outcome, error)
	Status(ctx context.Context, userID string) (bool, error)
	GetTasteProfile(ctx context.Context, userID string) (*ProfileView, error)
	// Recompute previews the deterministic profile without persisting anything.
	Recompute(r tasteprofile.OnboardingResponses) tasteprofile.TasteProfile
	// ProcessPending finishes submissions whose profile was never written.
	ProcessPending(ctx context.Context, limit int) (int, error)
}

type Impl struct {
	db        *db.DB
	profiles  user_profile.UserProfileRepository
	tastes    taste_profile.TasteProfileRepository
	responses onboarding_response.OnboardingResponseRepository
	gen       aiprofile.Generator
	log       *zap.Logger
}

// New wires the service. gen may be nil.
func New(database *db.DB, gen aiprofile.Generator, log *zap.Logger) Service {
	return &Impl{
		db:        database,
		profiles:  user_profile.NewUserProfileRepository(database),
		tastes:    taste_profile.NewTasteProfileRepository(database),
		responses: onboarding_response.NewOnboardingResponseRepository(database),
		gen:       gen,
		log:       log,
	}
}

func (s *Impl) Submit(ctx context.Context, userID string, identity Identity, r tasteprofile.OnboardingResponses) (*Outcome, error) {
	if userID == "" {
		return nil, errs.ErrUnauthenticated
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	identity.DisplayName = strings.TrimSpace(identity.DisplayName)
	identity.Username = strings.ToLower(strings.TrimSpace(identity.Username))
	if identity.DisplayName == "" {
		return nil, fmt.Errorf("%w: display name is required", errs.ErrInvalid)
	}

	if identity.Username != "" {
		owner, err := s.profiles.GetByUsername(ctx, identity.Username)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.ID != userID {
			return nil, fmt.Errorf("%w: username %q is taken", errs.ErrConflict, identity.Username)
		}
	}

	// 1) Raw answers are kept even if the rest fails
	raw := &onboarding_response.OnboardingResponse{UserID: userID, Responses: r}
	if err := s.responses.Create(ctx, raw); err != nil {
		return nil, fmt.Errorf("store responses: %w", err)
	}

	// 2) Compute
	profile, ai := s.compute(ctx, userID, r)

	// 3) Persist profile, update user, mark processed
	profileID, err := s.finish(ctx, raw.ID, identity, profile, r.Persona.Privacy)
	if err != nil {
		return nil, err
	}

	s.log.Info("onboarding completed",
		zap.String("user", userID),
		zap.String("persona", string(profile.Persona)),
		zap.Bool("ai", ai))

	return &Outcome{ProfileID: profileID, ResponsesID: raw.ID, Profile: profile, AIGenerated: ai}, nil
}

// compute prefers the model and falls back to the deterministic path.
func (s *Impl) compute(ctx context.Context, userID string, r tasteprofile.OnboardingResponses) (tasteprofile.TasteProfile, bool) {
	if s.gen == nil {
		return tasteprofile.CreateTasteProfile(userID, r), false
	}

	res, err := s.gen.Generate(ctx, r)
	if err != nil {
		s.log.Warn("ai profile failed, using deterministic profile", zap.String("user", userID), zap.Error(err))
		return tasteprofile.CreateTasteProfile(userID, r), false
	}

	persona := res.Persona
	if r.Persona.PersonaKeyword.Valid() {
		persona = r.Persona.PersonaKeyword
	}
	profile := tasteprofile.Assemble(userID, r, persona, res.Vector, res.Explanation)
	profile.RefinedDescription = res.RefinedDescription
	return profile, true
}

func (s *Impl) finish(ctx context.Context, responsesID string, identity Identity, profile tasteprofile.TasteProfile, privacy tasteprofile.Privacy) (string, error) {
	var profileID string
	err := s.db.Transaction(ctx, func(tx *db.DB) error {
		profiles := user_profile.NewUserProfileRepository(tx)
		tastes := taste_profile.NewTasteProfileRepository(tx)
		responses := onboarding_response.NewOnboardingResponseRepository(tx)

		if err := profiles.CreateIfMissing(ctx, users.NewProfile(profile.UserID, "")); err != nil {
			return fmt.Errorf("ensure profile: %w", err)
		}

		row := taste_profile.FromComputed(profile)
		if err := tastes.Create(ctx, row); err != nil {
			return fmt.Errorf("store taste profile: %w", err)
		}
		profileID = row.ID

		if err := profiles.CompleteOnboarding(ctx, profile.UserID, user_profile.OnboardingUpdate{
			DisplayName:         identity.DisplayName,
			Username:            identity.Username,
			AvatarEmoji:         identity.AvatarEmoji,
			TasteProfileID:      row.ID,
			ShowPlacesToFriends: privacy.ShowPlacesToFriends,
			PublicProfile:       privacy.PublicProfile,
			AnonymousMode:       privacy.AnonymousMode,
		}); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}

		return responses.MarkProcessed(ctx, responsesID, row.ID)
	})
	return profileID, err
}

func (s *Impl) Status(ctx context.Context, userID string) (bool, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return p != nil && p.HasCompletedOnboarding, nil
}

func (s *Impl) GetTasteProfile(ctx context.Context, userID string) (*ProfileView, error) {
	row, err := s.tastes.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: no taste profile for %s", errs.ErrNotFound, userID)
	}

	computed := row.Computed()
	def, _ := tasteprofile.Definition(computed.Persona)
	return &ProfileView{ID: row.ID, Profile: computed, Definition: def, CreatedAt: row.CreatedAt}, nil
}

func (s *Impl) Recompute(r tasteprofile.OnboardingResponses) tasteprofile.TasteProfile {
	return tasteprofile.CreateTasteProfile("", r)
}

func (s *Impl) ProcessPending(ctx context.Context, limit int) (int, error) {
	pending, err := s.responses.ListUnprocessed(ctx, limit)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, row := range pending {
		p, err := s.profiles.GetByID(ctx, row.UserID)
		if err != nil {
			return done, err
		}
		identity := Identity{}
		if p != nil {
			identity = Identity{DisplayName: p.DisplayName, Username: p.Handle(), AvatarEmoji: p.AvatarEmoji}
		}

		profile := tasteprofile.CreateTasteProfile(row.UserID, row.Responses)
		if _, err := s.finish(ctx, row.ID, identity, profile, row.Responses.Persona.Privacy); err != nil {
			s.log.Error("reprocess failed", zap.String("responses", row.ID), zap.Error(err))
			continue
		}
		done++
	}
	return done, nil
}
