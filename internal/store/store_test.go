package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vyvoxa/internal/models"
	"vyvoxa/internal/storage"

	"github.com/stretchr/testify/require"
)

// testClock is a controllable wall clock for deterministic timestamps.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// sequentialIDs returns a deterministic id generator.
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type testEnv struct {
	store *Store
	kv    *storage.MemoryStore
	clock *testClock
}

func newTestStore(t *testing.T) *testEnv {
	t.Helper()
	kv := storage.NewMemoryStore()
	clock := newTestClock()
	s, err := Open(context.Background(), kv,
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs("id")),
	)
	require.NoError(t, err)
	return &testEnv{store: s, kv: kv, clock: clock}
}

// signup registers a user with valid defaults and returns the profile.
func (e *testEnv) signup(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, err := e.store.CreateUser(context.Background(), SignupInput{
		Email:    email,
		Password: "Sup3r$ecretPass!",
		Name:     name,
	})
	require.NoError(t, err)
	return u
}

// befriend establishes a mutual friendship between the two users.
func (e *testEnv) befriend(t *testing.T, senderID, receiverID string) {
	t.Helper()
	req, err := e.store.SendRequest(context.Background(), senderID, receiverID)
	require.NoError(t, err)
	require.NoError(t, e.store.AcceptRequest(context.Background(), req.ID))
}

func TestOpenLoadsExistingCollections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")
	post, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "hello #world"})
	require.NoError(t, err)

	// reopen over the same backend
	reopened, err := Open(ctx, env.kv)
	require.NoError(t, err)

	gotUser, err := reopened.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice Adams", gotUser.Name)

	gotPost, err := reopened.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, post.Text, gotPost.Text)
	require.Equal(t, post.Hashtags, gotPost.Hashtags)
	require.True(t, post.CreatedAt.Equal(gotPost.CreatedAt))
}

func TestOpenEmptyBackend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := Open(ctx, storage.NewMemoryStore())
	require.NoError(t, err)
	require.Empty(t, s.GetAllUsers(ctx))
	require.Empty(t, s.GetAllPosts(ctx))
}

func TestRoundTripPreservesPostGraph(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")
	bob := env.signup(t, "Bob Brown", "bob@example.com")

	post, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "launch day #go"})
	require.NoError(t, err)
	_, err = env.store.ToggleReaction(ctx, post.ID, bob.ID, models.ReactionLove)
	require.NoError(t, err)
	comment, err := env.store.AddComment(ctx, post.ID, bob.ID, "congrats!", "")
	require.NoError(t, err)
	_, err = env.store.AddReply(ctx, post.ID, comment.ID, alice.ID, "thanks")
	require.NoError(t, err)
	_, err = env.store.SharePost(ctx, post.ID, bob.ID, "look at this")
	require.NoError(t, err)

	before, err := env.store.GetPost(ctx, post.ID)
	require.NoError(t, err)

	reopened, err := Open(ctx, env.kv)
	require.NoError(t, err)
	after, err := reopened.GetPost(ctx, post.ID)
	require.NoError(t, err)

	require.Equal(t, before.Reactions, after.Reactions)
	require.Equal(t, before.Likes, after.Likes)
	require.Len(t, after.Comments, 1)
	require.Len(t, after.Comments[0].Replies, 1)
	require.Len(t, after.Shares, 1)
	require.Equal(t, before.Shares[0].ShareID, after.Shares[0].ShareID)
}

func TestFlushFailureKeepsMemoryStateAndSkipsPublish(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")

	published := 0
	env.store.Subscribe(func(*Snapshot) { published++ })

	env.kv.FailSaves = fmt.Errorf("disk gone")
	_, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "doomed"})
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, models.CodePersistence, appErr.Code)

	// the post stays visible in memory despite the failed flush
	require.Len(t, env.store.GetAllPosts(ctx), 1)
	require.Zero(t, published)
}
