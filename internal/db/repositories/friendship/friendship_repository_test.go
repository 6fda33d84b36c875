package friendship

import (
	"context"
	"testing"

	"github.com/MyelinBots/connectmap-go/internal/db/dbtest"
	"github.com/MyelinBots/connectmap-go/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) FriendshipRepository {
	t.Helper()
	return NewFriendshipRepository(dbtest.New(t, &FriendRequest{}, &Friendship{}))
}

func TestRequestLifecycle(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	req, err := repo.CreateRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	require.NotEmpty(t, req.ID)

	found, err := repo.FindPendingRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, req.ID, found.ID)

	reverse, err := repo.FindPendingRequest(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Nil(t, reverse)

	incoming, err := repo.ListIncoming(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, incoming, 1)

	outgoing, err := repo.ListOutgoing(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, outgoing, 1)

	ok, err := repo.SetRequestStatus(ctx, req.ID, RequestRejected)
	require.NoError(t, err)
	assert.True(t, ok)

	// already resolved
	ok, err = repo.SetRequestStatus(ctx, req.ID, RequestAccepted)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestRejected, got.Status)

	incoming, err = repo.ListIncoming(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, incoming)

	found, err = repo.FindPendingRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestFriendshipsEitherOrientation(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.CreateFriendship(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = repo.CreateFriendship(ctx, "carol", "alice")
	require.NoError(t, err)
	_, err = repo.CreateFriendship(ctx, "bob", "carol")
	require.NoError(t, err)

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}, {"alice", "carol"}} {
		ok, err := repo.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, ok, "%v", pair)
	}
	ok, err := repo.AreFriends(ctx, "alice", "dave")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := repo.ListFriendIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, ids)

	n, err := repo.DeleteFriendship(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ids, err = repo.ListFriendIDs(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, ids)

	// bob and carol are untouched
	ok, err = repo.AreFriends(ctx, "carol", "bob")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOther(t *testing.T) {
	f := &Friendship{User1ID: "a", User2ID: "b"}
	assert.Equal(t, "b", f.Other("a"))
	assert.Equal(t, "a", f.Other("b"))
}

func TestOnePendingRequestPerDirection(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first, err := repo.CreateRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = repo.CreateRequest(ctx, "alice", "bob")
	assert.ErrorIs(t, err, errs.ErrConflict)

	// the other direction is a separate request
	_, err = repo.CreateRequest(ctx, "bob", "alice")
	require.NoError(t, err)

	// once resolved, a new request may be sent
	_, err = repo.SetRequestStatus(ctx, first.ID, RequestRejected)
	require.NoError(t, err)
	_, err = repo.CreateRequest(ctx, "alice", "bob")
	require.NoError(t, err)
}

func TestFriendshipUniquePerPair(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.CreateFriendship(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = repo.CreateFriendship(ctx, "bob", "alice")
	assert.ErrorIs(t, err, errs.ErrConflict)
	_, err = repo.CreateFriendship(ctx, "alice", "bob")
	assert.ErrorIs(t, err, errs.ErrConflict)

	assert.Equal(t, PairKey("alice", "bob"), PairKey("bob", "alice"))
}
