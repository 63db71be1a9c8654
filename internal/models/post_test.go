package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivacyValid(t *testing.T) {
	t.Parallel()

	assert.True(t, PrivacyPublic.Valid())
	assert.True(t, PrivacyFriends.Valid())
	assert.True(t, PrivacyPrivate.Valid())
	assert.False(t, Privacy("everyone").Valid())
	assert.False(t, Privacy("").Valid())
}

func TestReactionKindValid(t *testing.T) {
	t.Parallel()

	for _, k := range ReactionKinds {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, ReactionKind("meh").Valid())
}

func TestNewReactionSet(t *testing.T) {
	t.Parallel()

	set := NewReactionSet()
	require.Len(t, set, len(ReactionKinds))
	for _, k := range ReactionKinds {
		require.NotNil(t, set[k])
		assert.Empty(t, set[k])
	}
}

func TestReactionOf(t *testing.T) {
	t.Parallel()

	p := &Post{Reactions: NewReactionSet()}
	p.Reactions[ReactionLove] = []string{"u1"}

	kind, ok := p.ReactionOf("u1")
	assert.True(t, ok)
	assert.Equal(t, ReactionLove, kind)

	_, ok = p.ReactionOf("u2")
	assert.False(t, ok)
}

func TestPostClone(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	original := &Post{
		ID:        "p1",
		Text:      "hello #tag",
		Likes:     []string{"u1"},
		Reactions: NewReactionSet(),
		Hashtags:  []string{"tag"},
		Mentions:  []string{},
		Shares:    []ShareRecord{{UserID: "u2", ShareID: "p2", SharedAt: now}},
		Comments: []*Comment{{
			ID:    "c1",
			Text:  "first",
			Likes: []string{"u3"},
			Replies: []*Reply{
				{ID: "r1", Text: "reply", Likes: []string{}},
			},
		}},
		CreatedAt: now,
	}
	original.Reactions[ReactionLike] = []string{"u1"}

	clone := original.Clone()

	// every nested structure is detached
	clone.Likes[0] = "x"
	clone.Reactions[ReactionLike][0] = "x"
	clone.Hashtags[0] = "x"
	clone.Comments[0].Likes[0] = "x"
	clone.Comments[0].Replies[0].Text = "x"
	clone.Shares[0].UserID = "x"

	assert.Equal(t, "u1", original.Likes[0])
	assert.Equal(t, "u1", original.Reactions[ReactionLike][0])
	assert.Equal(t, "tag", original.Hashtags[0])
	assert.Equal(t, "u3", original.Comments[0].Likes[0])
	assert.Equal(t, "reply", original.Comments[0].Replies[0].Text)
	assert.Equal(t, "u2", original.Shares[0].UserID)
}

func TestPostCloneWithOriginalPost(t *testing.T) {
	t.Parallel()

	inner := &Post{ID: "orig", Text: "origin", Reactions: NewReactionSet()}
	share := &Post{ID: "share", IsShare: true, OriginalPostID: "orig", OriginalPost: inner, Reactions: NewReactionSet()}

	clone := share.Clone()
	clone.OriginalPost.Text = "tampered"
	assert.Equal(t, "origin", inner.Text)
}

func TestFindComment(t *testing.T) {
	t.Parallel()

	p := &Post{Comments: []*Comment{{ID: "c1"}, {ID: "c2"}}}
	require.NotNil(t, p.FindComment("c2"))
	assert.Nil(t, p.FindComment("c3"))
}
