package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/dbtest"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/attendance"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/category"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/friendship"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/onboarding_response"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place_save"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/review"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/submission"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/taste_profile"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/healthcheck"
	"github.com/MyelinBots/connectmap-go/internal/metrics"
	"github.com/MyelinBots/connectmap-go/internal/ratelimit"
	"github.com/MyelinBots/connectmap-go/internal/services/attendancestats"
	"github.com/MyelinBots/connectmap-go/internal/services/friends"
	"github.com/MyelinBots/connectmap-go/internal/services/moderation"
	"github.com/MyelinBots/connectmap-go/internal/services/onboarding"
	"github.com/MyelinBots/connectmap-go/internal/services/places"
	"github.com/MyelinBots/connectmap-go/internal/services/users"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	t      *testing.T
	db     *db.DB
	router http.Handler
}

func newTestServer(t *testing.T, limiter ratelimit.Limiter) *testServer {
	t.Helper()
	database := dbtest.New(t,
		&user_profile.UserProfile{},
		&taste_profile.TasteProfile{},
		&onboarding_response.OnboardingResponse{},
		&category.Category{},
		&place.Place{},
		&place_save.PlaceSave{},
		&attendance.Attendance{},
		&review.Review{},
		&friendship.FriendRequest{},
		&friendship.Friendship{},
		&submission.PlaceSubmission{},
	)
	log := zap.NewNop()

	var cfg config.Config
	cfg.AppConfig.Version = "test"
	cfg.HTTPConfig.AllowOrigins = []string{"*"}
	cfg.PlacesConfig = config.PlacesConfig{CacheSize: 32, CacheTTL: time.Minute}

	svc := Services{
		Users:      users.New(user_profile.NewUserProfileRepository(database), log),
		Onboarding: onboarding.New(database, nil, log),
		Friends:    friends.New(database, log),
		Places:     places.New(database, cfg.PlacesConfig, log),
		Stats:      attendancestats.New(attendance.NewAttendanceRepository(database), log),
		Moderation: moderation.New(database, log),
		Limiter:    limiter,
		Metrics:    metrics.New(),
		Ready:      map[string]healthcheck.Pinger{"database": database},
	}
	return &testServer{t: t, db: database, router: NewRouter(cfg, svc, log)}
}

func (s *testServer) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
		req.Header.Set(HeaderUserEmail, userID+"@example.com")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (s *testServer) makeAdmin(id string) {
	s.t.Helper()
	repo := user_profile.NewUserProfileRepository(s.db)
	ctx := context.Background()
	require.NoError(s.t, repo.CreateIfMissing(ctx, users.NewProfile(id, "")))
	require.NoError(s.t, repo.SetRole(ctx, id, user_profile.RoleAdmin, true))
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/readyz", "", nil).Code)

	w := s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "connectmap_http_requests_total")

	w = s.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestMeRequiresIdentityAndCreatesProfile(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/me", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[users.Summary](t, w)
	assert.Equal(t, "u1", summary.Profile.ID)
	assert.Equal(t, "u1@example.com", summary.Profile.Email)
	assert.Equal(t, 1, summary.Profile.Level)

	name := "Asha"
	w = s.do(http.MethodPatch, "/api/v1/me", "u1", users.Update{DisplayName: &name})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Asha", decode[user_profile.UserProfile](t, w).DisplayName)
}

func TestPrivateProfileVisibility(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(http.MethodGet, "/api/v1/me", "alice", nil)
	s.do(http.MethodGet, "/api/v1/me", "bob", nil)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/users/alice", "alice", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/users/alice", "bob", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/users/alice", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/users/ghost", "bob", nil).Code)

	w := s.do(http.MethodPost, "/api/v1/friends/requests", "bob", friendRequestBody{ToUserID: "alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	req := decode[friendship.FriendRequest](t, w)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/v1/friends/requests/"+req.ID+"/accept", "bob", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/friends/requests/"+req.ID+"/accept", "alice", nil).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/v1/friends/requests/"+req.ID+"/accept", "alice", nil).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/users/alice", "bob", nil).Code)

	w = s.do(http.MethodGet, "/api/v1/me/leaderboard", "bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	board := decode[struct {
		Leaderboard []users.Rank `json:"leaderboard"`
	}](t, w)
	assert.Len(t, board.Leaderboard, 2)
}

func TestProfilesNeverLeakPrivateFields(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()
	repo := user_profile.NewUserProfileRepository(s.db)
	hidden := users.NewProfile("secret1", "hidden@example.com")
	hidden.DisplayName = "Hidden Person"
	hidden.AnonymousMode = true
	require.NoError(t, repo.CreateIfMissing(ctx, hidden))
	visible := users.NewProfile("open1", "open@example.com")
	visible.DisplayName = "Hidden Gem"
	visible.PublicProfile = true
	require.NoError(t, repo.CreateIfMissing(ctx, visible))

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/users/search?q=Hidden", "", nil).Code)

	w := s.do(http.MethodGet, "/api/v1/users/search?q=Hidden", "viewer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[struct {
		Users []user_profile.Card `json:"users"`
	}](t, w)
	require.Len(t, found.Users, 1)
	assert.Equal(t, "open1", found.Users[0].ID)
	assert.NotContains(t, w.Body.String(), "@example.com")

	w = s.do(http.MethodGet, "/api/v1/users/open1", "viewer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "open@example.com")
	assert.NotContains(t, w.Body.String(), "anonymousMode")

	w = s.do(http.MethodGet, "/api/v1/users/open1", "open1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "open@example.com")

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/users/secret1", "viewer", nil).Code)
}

func TestPlaceFlow(t *testing.T) {
	s := newTestServer(t, nil)
	s.makeAdmin("admin")

	w := s.do(http.MethodPost, "/api/v1/admin/categories", "admin", category.Category{ID: "cafe", Label: "Cafe", Emoji: "☕"})
	require.Equal(t, http.StatusCreated, w.Code)

	lat, lng := 12.9719, 77.6412
	w = s.do(http.MethodPost, "/api/v1/submissions", "asha", moderation.SubmissionInput{
		Title: "Third Wave", Category: "cafe", Lat: &lat, Lng: &lng,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	sub := decode[submission.PlaceSubmission](t, w)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/admin/submissions", "asha", nil).Code)

	w = s.do(http.MethodPost, "/api/v1/admin/submissions/"+sub.ID+"/approve", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	approved := decode[moderation.ApproveResult](t, w)
	placeID := approved.Place.ID

	w = s.do(http.MethodGet, "/api/v1/places?category=cafe", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct {
		Places []place.Place `json:"places"`
	}](t, w).Places, 1)

	w = s.do(http.MethodGet, "/api/v1/places/nearby?lat=12.97&lng=77.64&radius=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[struct {
		Places []places.NearbyPlace `json:"places"`
	}](t, w).Places, 1)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/places/nearby?lat=abc&lng=1", "", nil).Code)

	w = s.do(http.MethodPost, "/api/v1/places/"+placeID+"/save", "bala", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[places.SaveResult](t, w).Saved)

	w = s.do(http.MethodPost, "/api/v1/places/"+placeID+"/going", "bala", places.GoingInput{
		Date: "2099-01-01", Time: "19:00", Visibility: "public",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/places/"+placeID+"/attendance", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[attendancestats.Stats](t, w)
	assert.Equal(t, 1, stats.TotalGoing)
	assert.Equal(t, 1, stats.PublicGoing)
	require.Len(t, stats.UpcomingEvents, 1)

	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/places/"+placeID+"/going", "bala", nil).Code)
	stats = decode[attendancestats.Stats](t, s.do(http.MethodGet, "/api/v1/places/"+placeID+"/attendance", "", nil))
	assert.Zero(t, stats.TotalGoing)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/places/"+placeID+"/reviews", "bala", places.ReviewInput{Rating: 0}).Code)
	w = s.do(http.MethodPost, "/api/v1/places/"+placeID+"/reviews", "bala", places.ReviewInput{Rating: 4, Text: "nice"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/api/v1/places/"+placeID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[place.Place](t, w)
	assert.Equal(t, 1, got.ReviewCount)
	assert.InDelta(t, 4.0, got.AvgRating, 1e-9)

	w = s.do(http.MethodGet, "/api/v1/places/"+placeID+"/directions?lat=12.9756&lng=77.6066", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "km")

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/places/00000000-0000-0000-0000-000000000000", "", nil).Code)
}

func TestOnboardingEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/onboarding/catalogue", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/onboarding/personas", "", nil).Code)

	w := s.do(http.MethodGet, "/api/v1/onboarding/status", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hasCompletedOnboarding":false}`, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/onboarding/preview", "", map[string]any{
		"sheet1": map[string]any{"hangoutEnergy": "loud", "socialBattery": 50},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/me/taste-profile", "u1", nil).Code)
}

func TestSearchIsRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := newTestServer(t, ratelimit.NewRedisLimiter(client, 2, time.Minute, zap.NewNop()))

	for i := 0; i < 2; i++ {
		w := s.do(http.MethodGet, "/api/v1/users/search?q=as", "u1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"users":[]}`, w.Body.String())
	}
	w := s.do(http.MethodGet, "/api/v1/users/search?q=as", "u1", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// limits are per caller
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/users/search?q=as", "u2", nil).Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
