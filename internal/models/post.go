package models

import "time"

// Privacy controls who may see a post.
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyFriends Privacy = "friends"
	PrivacyPrivate Privacy = "private"
)

// Valid reports whether p is one of the known privacy levels.
func (p Privacy) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyFriends, PrivacyPrivate:
		return true
	}
	return false
}

// ReactionKind is one of the fixed emotional responses a user may attach
// to a post. A user holds at most one kind per post at any time.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionLaugh ReactionKind = "laugh"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
	ReactionAngry ReactionKind = "angry"
)

// ReactionKinds lists every kind in a stable order.
var ReactionKinds = []ReactionKind{
	ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad, ReactionAngry,
}

// Valid reports whether k is a known reaction kind.
func (k ReactionKind) Valid() bool {
	for _, known := range ReactionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Post represents a feed post in the Vyvoxa data core.
type Post struct {
	ID       string  `json:"id"`
	AuthorID string  `json:"userId"`
	Text     string  `json:"text"`
	Image    string  `json:"image,omitempty"`
	Video    string  `json:"video,omitempty"`
	Location string  `json:"location,omitempty"`
	Feeling  string  `json:"feeling,omitempty"`
	Privacy  Privacy `json:"privacy"`

	// Likes mirrors the like reaction set for older readers of the
	// persisted layout; it is rewritten on every reaction change.
	Likes     []string                  `json:"likes"`
	Reactions map[ReactionKind][]string `json:"reactions"`
	Comments  []*Comment                `json:"comments"`
	Shares    []ShareRecord             `json:"shares"`

	// Mentions and Hashtags are derived from Text on create/update and
	// are never stale relative to the current text.
	Mentions []string `json:"mentions"`
	Hashtags []string `json:"hashtags"`

	IsShare        bool   `json:"isShare,omitempty"`
	OriginalPostID string `json:"originalPostId,omitempty"`
	// OriginalPost is a snapshot of the shared post taken at share time.
	OriginalPost *Post `json:"originalPost,omitempty"`

	IsEdited  bool      `json:"isEdited"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is owned by a Post. Comments are kept newest-first.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"userId"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	Mentions  []string  `json:"mentions"`
	Likes     []string  `json:"likes"`
	Replies   []*Reply  `json:"replies"`
	IsEdited  bool      `json:"isEdited"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Reply is owned by a Comment. Replies are kept oldest-first.
type Reply struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"userId"`
	Text      string    `json:"text"`
	Mentions  []string  `json:"mentions"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShareRecord is the back-reference a share leaves on the original post.
// ShareID names the standalone share post.
type ShareRecord struct {
	UserID   string    `json:"userId"`
	ShareID  string    `json:"shareId"`
	SharedAt time.Time `json:"sharedAt"`
}

// NewReactionSet returns a reaction map with every kind zero-initialized,
// matching the persisted layout where all six keys are always present.
func NewReactionSet() map[ReactionKind][]string {
	m := make(map[ReactionKind][]string, len(ReactionKinds))
	for _, k := range ReactionKinds {
		m[k] = []string{}
	}
	return m
}

// ReactionOf returns the kind the user currently holds on the post, if any.
func (p *Post) ReactionOf(userID string) (ReactionKind, bool) {
	for _, kind := range ReactionKinds {
		if contains(p.Reactions[kind], userID) {
			return kind, true
		}
	}
	return "", false
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID string) *Comment {
	for _, c := range p.Comments {
		if c.ID == commentID {
			return c
		}
	}
	return nil
}

// Clone returns a deep copy of the post. Snapshots handed to subscribers
// and query results are clones so callers cannot mutate store state.
func (p *Post) Clone() *Post {
	out := *p
	// copies stay non-nil so the serialized layout keeps its empty arrays
	out.Likes = append([]string{}, p.Likes...)
	out.Mentions = append([]string{}, p.Mentions...)
	out.Hashtags = append([]string{}, p.Hashtags...)
	out.Reactions = make(map[ReactionKind][]string, len(p.Reactions))
	for kind, users := range p.Reactions {
		out.Reactions[kind] = append([]string{}, users...)
	}
	out.Comments = make([]*Comment, len(p.Comments))
	for i, c := range p.Comments {
		out.Comments[i] = c.Clone()
	}
	out.Shares = append([]ShareRecord{}, p.Shares...)
	if p.OriginalPost != nil {
		out.OriginalPost = p.OriginalPost.Clone()
	}
	return &out
}

// Clone returns a deep copy of the comment.
func (c *Comment) Clone() *Comment {
	out := *c
	out.Mentions = append([]string{}, c.Mentions...)
	out.Likes = append([]string{}, c.Likes...)
	out.Replies = make([]*Reply, len(c.Replies))
	for i, r := range c.Replies {
		cp := *r
		cp.Mentions = append([]string{}, r.Mentions...)
		cp.Likes = append([]string{}, r.Likes...)
		out.Replies[i] = &cp
	}
	return &out
}
