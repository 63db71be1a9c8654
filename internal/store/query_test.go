package store

import (
	"context"
	"testing"
	"time"

	"vyvoxa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendingHashtags(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")

	// this post ages out of the window before the ranking is read
	_, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "stale #alpha"})
	require.NoError(t, err)

	env.clock.Advance(8 * 24 * time.Hour)
	for _, text := range []string{"one #alpha", "two #alpha", "three #beta"} {
		_, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: text})
		require.NoError(t, err)
	}
	env.clock.Advance(time.Hour)

	ranking := env.store.TrendingHashtags(ctx, 0)
	require.Len(t, ranking, 2)
	assert.Equal(t, HashtagCount{Tag: "alpha", Count: 2}, ranking[0])
	assert.Equal(t, HashtagCount{Tag: "beta", Count: 1}, ranking[1])

	top := env.store.TrendingHashtags(ctx, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "alpha", top[0].Tag)
}

func TestTrendingHashtagsTieBreak(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")

	_, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "#zebra #apple"})
	require.NoError(t, err)

	ranking := env.store.TrendingHashtags(ctx, 0)
	require.Len(t, ranking, 2)
	// equal counts order lexicographically
	assert.Equal(t, "apple", ranking[0].Tag)
	assert.Equal(t, "zebra", ranking[1].Tag)
}

func TestVisiblePosts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")
	bob := env.signup(t, "Bob Brown", "bob@example.com")
	carol := env.signup(t, "Carol Clark", "carol@example.com")
	env.befriend(t, alice.ID, bob.ID)

	pub, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "public", Privacy: models.PrivacyPublic})
	require.NoError(t, err)
	friendsOnly, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "friends", Privacy: models.PrivacyFriends})
	require.NoError(t, err)
	private, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "private", Privacy: models.PrivacyPrivate})
	require.NoError(t, err)

	ids := func(posts []*models.Post) []string {
		out := make([]string, len(posts))
		for i, p := range posts {
			out[i] = p.ID
		}
		return out
	}

	// the author sees everything
	aliceView := env.store.VisiblePosts(ctx, alice.ID, nil)
	assert.ElementsMatch(t, []string{pub.ID, friendsOnly.ID, private.ID}, ids(aliceView))

	// a friend sees public and friends-only
	bobView := env.store.VisiblePosts(ctx, bob.ID, []string{alice.ID})
	assert.ElementsMatch(t, []string{pub.ID, friendsOnly.ID}, ids(bobView))

	// a stranger sees only public
	carolView := env.store.VisiblePosts(ctx, carol.ID, nil)
	assert.ElementsMatch(t, []string{pub.ID}, ids(carolView))
}

func TestSearchPosts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")
	bob := env.signup(t, "Bob Brown", "bob@example.com")

	_, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "Launching the new thing #BigLaunch"})
	require.NoError(t, err)
	_, err = env.store.CreatePost(ctx, alice.ID, PostInput{Text: "props to @bobbrown"})
	require.NoError(t, err)
	hidden, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: "secret launch plans", Privacy: models.PrivacyPrivate})
	require.NoError(t, err)

	t.Run("matches text case-insensitively", func(t *testing.T) {
		got := env.store.SearchPosts(ctx, "LAUNCHING", bob.ID, nil)
		require.Len(t, got, 1)
	})

	t.Run("matches hashtags and mentions", func(t *testing.T) {
		assert.Len(t, env.store.SearchPosts(ctx, "biglaunch", bob.ID, nil), 1)
		assert.Len(t, env.store.SearchPosts(ctx, "bobbrown", bob.ID, nil), 1)
	})

	t.Run("respects visibility", func(t *testing.T) {
		got := env.store.SearchPosts(ctx, "launch", bob.ID, nil)
		for _, p := range got {
			assert.NotEqual(t, hidden.ID, p.ID)
		}
		// the author finds their own private post
		got = env.store.SearchPosts(ctx, "secret", alice.ID, nil)
		require.Len(t, got, 1)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, env.store.SearchPosts(ctx, "nonexistent", bob.ID, nil))
	})
}

func TestPostsByUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")
	bob := env.signup(t, "Bob Brown", "bob@example.com")

	for _, text := range []string{"one", "two", "three"} {
		_, err := env.store.CreatePost(ctx, alice.ID, PostInput{Text: text})
		require.NoError(t, err)
	}
	_, err := env.store.CreatePost(ctx, bob.ID, PostInput{Text: "not alice"})
	require.NoError(t, err)

	got := env.store.PostsByUser(ctx, alice.ID, 0)
	require.Len(t, got, 3)
	assert.Equal(t, "three", got[0].Text)
	assert.Equal(t, "one", got[2].Text)

	limited := env.store.PostsByUser(ctx, alice.ID, 2)
	require.Len(t, limited, 2)
	assert.Equal(t, "three", limited[0].Text)
}

func TestFilterByFollowing(t *testing.T) {
	t.Parallel()

	posts := []*models.Post{
		{ID: "1", AuthorID: "a"},
		{ID: "2", AuthorID: "b"},
		{ID: "3", AuthorID: "a"},
		{ID: "4", AuthorID: "c"},
	}

	got := FilterByFollowing(posts, []string{"a", "c"})
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Equal(t, "4", got[2].ID)

	assert.Empty(t, FilterByFollowing(posts, nil))
}
