package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/dbtest"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/category"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/submission"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*db.DB, *Impl) {
	t.Helper()
	database := dbtest.New(t,
		&user_profile.UserProfile{},
		&submission.PlaceSubmission{},
		&place.Place{},
		&category.Category{},
	)
	repo := user_profile.NewUserProfileRepository(database)
	for id, role := range map[string]string{
		"admin": user_profile.RoleAdmin,
		"mod":   user_profile.RoleModerator,
		"user":  user_profile.RoleUser,
		"other": user_profile.RoleUser,
	} {
		p := users.NewProfile(id, "")
		p.Role = role
		p.IsAdmin = role == user_profile.RoleAdmin
		require.NoError(t, repo.CreateIfMissing(context.Background(), p))
	}
	svc := New(database, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return database, svc
}

func f64(v float64) *float64 { return &v }

func TestSubmitValidation(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   SubmissionInput
		err  error
	}{
		{"missing title", SubmissionInput{Title: "  ", Lat: f64(12.9), Lng: f64(77.6)}, errs.ErrInvalid},
		{"missing coordinates", SubmissionInput{Title: "Cafe"}, errs.ErrInvalid},
		{"lat out of range", SubmissionInput{Title: "Cafe", Lat: f64(95), Lng: f64(77.6)}, errs.ErrInvalid},
		{"unusable link", SubmissionInput{Title: "Cafe", MapsLink: "https://example.com"}, errs.ErrInvalid},
		{"coordinates", SubmissionInput{Title: "Cafe", Lat: f64(12.9), Lng: f64(77.6)}, nil},
		{"maps link", SubmissionInput{Title: "Cafe", MapsLink: "https://www.google.com/maps/place/Cafe/@12.9716,77.5946,17z"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := svc.Submit(ctx, "user", tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, submission.StatusPending, sub.Status)
			assert.Equal(t, "user", sub.SubmittedBy)
		})
	}

	_, err := svc.Submit(ctx, "", SubmissionInput{Title: "Cafe", Lat: f64(1), Lng: f64(1)})
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	mine, err := svc.MySubmissions(ctx, "user")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestApprove(t *testing.T) {
	database, svc := setup(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "user", SubmissionInput{
		Title:    " Third Wave ",
		Category: "Cafe",
		Tags:     []string{"coffee", " ", "wifi"},
		Lat:      f64(12.97),
		Lng:      f64(77.64),
	})
	require.NoError(t, err)

	_, err = svc.ListPending(ctx, "user")
	assert.ErrorIs(t, err, errs.ErrForbidden)
	_, err = svc.Approve(ctx, "user", sub.ID)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	pending, err := svc.ListPending(ctx, "mod")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	res, err := svc.Approve(ctx, "mod", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Third Wave", res.Place.Title)
	assert.Equal(t, "cafe", res.Place.Category)
	assert.Equal(t, "user", res.Place.CreatedBy)
	assert.Equal(t, place.StatusPublished, res.Place.Status)
	assert.Equal(t, []string{"coffee", "wifi"}, []string(res.Place.Tags))
	assert.Equal(t, 5, res.XP.NewLevel)

	stored, err := submission.NewSubmissionRepository(database).GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusApproved, stored.Status)
	assert.Equal(t, "mod", stored.ReviewedBy)
	assert.Equal(t, res.Place.ID, stored.PlaceID)
	require.NotNil(t, stored.ReviewedAt)
	assert.True(t, stored.ReviewedAt.Equal(fixedNow))

	p, err := user_profile.NewUserProfileRepository(database).GetByID(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, 1, p.PlacesCount)
	assert.Equal(t, 360, p.ExplorerXP)
	// 360 + first_place 100
	assert.Equal(t, 460, p.XP)
	assert.True(t, p.Achievements.Contains("first_place"))

	_, err = svc.Approve(ctx, "mod", sub.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)

	pending, err = svc.ListPending(ctx, "admin")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReject(t *testing.T) {
	database, svc := setup(t)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, "user", SubmissionInput{Title: "Closed Bar", Lat: f64(1), Lng: f64(1)})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, "admin", sub.ID, " permanently closed "))
	assert.ErrorIs(t, svc.Reject(ctx, "admin", sub.ID, ""), errs.ErrConflict)
	assert.ErrorIs(t, svc.Reject(ctx, "admin", "00000000-0000-0000-0000-000000000000", ""), errs.ErrNotFound)

	stored, err := submission.NewSubmissionRepository(database).GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusRejected, stored.Status)
	assert.Equal(t, "permanently closed", stored.Notes)
	assert.Empty(t, stored.PlaceID)
}

func TestAdminManagement(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	_, err := svc.ListAdmins(ctx, "mod")
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.ErrorIs(t, svc.GrantAdmin(ctx, "user", "other"), errs.ErrForbidden)

	require.NoError(t, svc.GrantAdmin(ctx, "admin", "other"))
	admins, err := svc.ListAdmins(ctx, "other")
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	assert.ErrorIs(t, svc.RevokeAdmin(ctx, "admin", "admin"), errs.ErrInvalid)
	assert.ErrorIs(t, svc.GrantAdmin(ctx, "admin", "ghost"), errs.ErrNotFound)

	require.NoError(t, svc.RevokeAdmin(ctx, "admin", "other"))
	_, err = svc.ListAdmins(ctx, "other")
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestCategories(t *testing.T) {
	database, svc := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.CreateCategory(ctx, "mod", &category.Category{ID: "cafe", Label: "Cafe", Emoji: "☕"}), errs.ErrForbidden)
	assert.ErrorIs(t, svc.CreateCategory(ctx, "admin", &category.Category{ID: "cafe", Label: "Cafe"}), errs.ErrInvalid)
	require.NoError(t, svc.CreateCategory(ctx, "admin", &category.Category{ID: "cafe", Label: "Cafe", Emoji: "☕"}))

	list, err := category.NewCategoryRepository(database).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteCategory(ctx, "admin", "cafe"))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, "admin", "cafe"), errs.ErrNotFound)
}
