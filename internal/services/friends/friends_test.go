package friends

import (
	"context"
	"testing"

	"github.com/MyelinBots/connectmap-go/internal/db"
	"github.com/MyelinBots/connectmap-go/internal/db/dbtest"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/friendship"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/place_save"
	"github.com/MyelinBots/connectmap-go/internal/db/repositories/user_profile"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/MyelinBots/connectmap-go/internal/services/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T, userIDs ...string) (*db.DB, Service) {
	t.Helper()
	database := dbtest.New(t,
		&user_profile.UserProfile{},
		&friendship.FriendRequest{},
		&friendship.Friendship{},
		&place.Place{},
		&place_save.PlaceSave{},
	)
	repo := user_profile.NewUserProfileRepository(database)
	for _, id := range userIDs {
		p := users.NewProfile(id, "")
		p.DisplayName = id
		require.NoError(t, repo.CreateIfMissing(context.Background(), p))
	}
	return database, New(database, zap.NewNop())
}

func profile(t *testing.T, database *db.DB, id string) *user_profile.UserProfile {
	t.Helper()
	p, err := user_profile.NewUserProfileRepository(database).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func befriend(t *testing.T, svc Service, a, b string) {
	t.Helper()
	req, err := svc.SendRequest(context.Background(), a, b)
	require.NoError(t, err)
	require.NoError(t, svc.Accept(context.Background(), b, req.ID))
}

func TestSendRequestRules(t *testing.T) {
	_, svc := setup(t, "alice", "bob", "carol")
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", "alice")
	assert.ErrorIs(t, err, errs.ErrInvalid)

	_, err = svc.SendRequest(ctx, "alice", "ghost")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.SendRequest(ctx, "", "bob")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, errs.ErrConflict)

	befriend(t, svc, "alice", "carol")
	_, err = svc.SendRequest(ctx, "carol", "alice")
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestAcceptCreatesFriendshipAndAwardsXP(t *testing.T) {
	database, svc := setup(t, "alice", "bob")
	ctx := context.Background()

	req, err := svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Accept(ctx, "alice", req.ID), errs.ErrForbidden)
	assert.ErrorIs(t, svc.Accept(ctx, "bob", "00000000-0000-0000-0000-000000000000"), errs.ErrNotFound)

	require.NoError(t, svc.Accept(ctx, "bob", req.ID))
	assert.ErrorIs(t, svc.Accept(ctx, "bob", req.ID), errs.ErrConflict)

	for _, id := range []string{"alice", "bob"} {
		p := profile(t, database, id)
		assert.Equal(t, 1, p.FriendCount, id)
		assert.Equal(t, 60, p.XP, id)
		assert.Equal(t, 60, p.SocialXP, id)
	}

	friends, err := svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].ID)

	ids, err := svc.FriendIDs(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, ids)
}

func TestFifthFriendUnlocksConnector(t *testing.T) {
	database, svc := setup(t, "hub", "f1", "f2", "f3", "f4", "f5")
	for _, f := range []string{"f1", "f2", "f3", "f4", "f5"} {
		befriend(t, svc, f, "hub")
	}

	p := profile(t, database, "hub")
	assert.Equal(t, 5, p.FriendCount)
	assert.True(t, p.Achievements.Contains("social_5"))
	// 5 * 60 + 300
	assert.Equal(t, 600, p.XP)
	assert.Equal(t, 7, p.Level)
}

func TestCrossedRequestsMakeOneFriendship(t *testing.T) {
	database, svc := setup(t, "alice", "bob")
	ctx := context.Background()

	ab, err := svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	ba, err := svc.SendRequest(ctx, "bob", "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Accept(ctx, "bob", ab.ID))

	// the crossed request was settled with the first accept
	err = svc.Accept(ctx, "alice", ba.ID)
	assert.ErrorIs(t, err, errs.ErrConflict)

	incoming, err := svc.Incoming(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, incoming)

	for _, id := range []string{"alice", "bob"} {
		p := profile(t, database, id)
		assert.Equal(t, 1, p.FriendCount, id)
		assert.Equal(t, 60, p.XP, id)
	}

	require.NoError(t, svc.Remove(ctx, "alice", "bob"))
	assert.Zero(t, profile(t, database, "alice").FriendCount)
	ids, err := svc.FriendIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAcceptTwiceConflicts(t *testing.T) {
	database, svc := setup(t, "alice", "bob")
	ctx := context.Background()

	req, err := svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(ctx, "bob", req.ID))
	assert.ErrorIs(t, svc.Accept(ctx, "bob", req.ID), errs.ErrConflict)
	assert.ErrorIs(t, svc.Reject(ctx, "bob", req.ID), errs.ErrConflict)
	assert.Equal(t, 1, profile(t, database, "bob").FriendCount)
}

func TestRejectAndPendingLists(t *testing.T) {
	_, svc := setup(t, "alice", "bob", "carol")
	ctx := context.Background()

	r1, err := svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, "carol", "bob")
	require.NoError(t, err)

	in, err := svc.Incoming(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, in, 2)
	for _, v := range in {
		require.NotNil(t, v.User)
		assert.Equal(t, v.Request.FromUserID, v.User.ID)
	}

	out, err := svc.Outgoing(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "bob", out[0].User.ID)

	assert.ErrorIs(t, svc.Reject(ctx, "carol", r1.ID), errs.ErrForbidden)
	require.NoError(t, svc.Reject(ctx, "bob", r1.ID))

	in, err = svc.Incoming(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, in, 1)

	// a rejected request can be sent again
	_, err = svc.SendRequest(ctx, "alice", "bob")
	assert.NoError(t, err)
}

func TestRemove(t *testing.T) {
	database, svc := setup(t, "alice", "bob")
	ctx := context.Background()
	befriend(t, svc, "alice", "bob")

	require.NoError(t, svc.Remove(ctx, "bob", "alice"))
	assert.Equal(t, 0, profile(t, database, "alice").FriendCount)
	assert.Equal(t, 0, profile(t, database, "bob").FriendCount)

	assert.ErrorIs(t, svc.Remove(ctx, "bob", "alice"), errs.ErrNotFound)

	friends, err := svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestMutualSaves(t *testing.T) {
	database, svc := setup(t, "me", "f1", "f2", "stranger")
	ctx := context.Background()
	befriend(t, svc, "me", "f1")
	befriend(t, svc, "f2", "me")

	places := place.NewPlaceRepository(database)
	saves := place_save.NewPlaceSaveRepository(database)

	cafe := &place.Place{Title: "Third Wave"}
	park := &place.Place{Title: "Lalbagh"}
	lonely := &place.Place{Title: "Only Me"}
	for _, p := range []*place.Place{cafe, park, lonely} {
		require.NoError(t, places.Create(ctx, p))
	}
	gone := "99999999-9999-9999-9999-999999999999"

	for _, s := range []struct{ user, place string }{
		{"me", cafe.ID}, {"me", park.ID}, {"me", lonely.ID}, {"me", gone},
		{"f1", cafe.ID}, {"f2", cafe.ID}, {"f2", park.ID}, {"f1", gone},
		{"stranger", lonely.ID},
	} {
		_, err := saves.Save(ctx, s.user, s.place)
		require.NoError(t, err)
	}

	got, err := svc.MutualSaves(ctx, "me")
	require.NoError(t, err)
	require.Len(t, got, 2)

	byPlace := map[string]MutualSave{}
	for _, m := range got {
		byPlace[m.PlaceID] = m
	}
	assert.Equal(t, "Third Wave", byPlace[cafe.ID].PlaceTitle)
	assert.Len(t, byPlace[cafe.ID].FriendsWhoSaved, 2)
	assert.Equal(t, "Lalbagh", byPlace[park.ID].PlaceTitle)
	require.Len(t, byPlace[park.ID].FriendsWhoSaved, 1)
	assert.Equal(t, "f2", byPlace[park.ID].FriendsWhoSaved[0].ID)

	none, err := svc.MutualSaves(ctx, "stranger")
	require.NoError(t, err)
	assert.Empty(t, none)
}
