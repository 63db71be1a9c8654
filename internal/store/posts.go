package store

import (
	"context"
	"regexp"

	"vyvoxa/internal/models"
	"vyvoxa/internal/observability"
)

// PostInput carries the author-supplied fields of a new post. Everything
// except Privacy may be empty; an empty Privacy defaults to public.
type PostInput struct {
	Text     string
	Image    string
	Video    string
	Location string
	Feeling  string
	Privacy  models.Privacy
}

// PostPatch is a partial post update. Nil fields are left untouched.
type PostPatch struct {
	Text     *string
	Image    *string
	Video    *string
	Location *string
	Feeling  *string
	Privacy  *models.Privacy
}

var (
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
)

// extractMentions returns the @token captures in order of appearance.
// Duplicates are kept; the result is never nil.
func extractMentions(text string) []string {
	return extractTokens(mentionPattern, text)
}

// extractHashtags returns the #token captures in order of appearance.
func extractHashtags(text string) []string {
	return extractTokens(hashtagPattern, text)
}

func extractTokens(pattern *regexp.Regexp, text string) []string {
	out := []string{}
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		out = append(out, match[1])
	}
	return out
}

// CreatePost appends a new post at the head of the feed, derives its
// mentions and hashtags, and increments the author's post count. An empty
// text with no media is permitted; callers may reject it client-side.
func (s *Store) CreatePost(ctx context.Context, authorID string, in PostInput) (*models.Post, error) {
	privacy := in.Privacy
	if privacy == "" {
		privacy = models.PrivacyPublic
	}
	if !privacy.Valid() {
		return nil, models.NewValidationError("invalid privacy level")
	}

	s.mu.Lock()

	author := s.findUser(authorID)
	if author == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("user", authorID)
	}

	now := s.now()
	post := &models.Post{
		ID:        s.newID(),
		AuthorID:  authorID,
		Text:      in.Text,
		Image:     in.Image,
		Video:     in.Video,
		Location:  in.Location,
		Feeling:   in.Feeling,
		Privacy:   privacy,
		Likes:     []string{},
		Reactions: models.NewReactionSet(),
		Comments:  []*models.Comment{},
		Shares:    []models.ShareRecord{},
		Mentions:  extractMentions(in.Text),
		Hashtags:  extractHashtags(in.Text),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.posts = append([]*models.Post{post}, s.posts...)
	author.PostsCount++

	s.notifyMentionsLocked(post.Mentions, author, post.ID)

	if err := s.flushPosts(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.flushUsers(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("post", "create").Inc()

	out := post.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return out, nil
}

// UpdatePost applies a partial update. Only the owning author may edit;
// mentions and hashtags are re-derived whenever the text changes.
func (s *Store) UpdatePost(ctx context.Context, postID, authorID string, patch PostPatch) (*models.Post, error) {
	if patch.Privacy != nil && !patch.Privacy.Valid() {
		return nil, models.NewValidationError("invalid privacy level")
	}

	s.mu.Lock()

	post := s.findPost(postID)
	if post == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("post", postID)
	}
	if post.AuthorID != authorID {
		s.mu.Unlock()
		return nil, models.NewNotAuthorizedError("you can only update your own posts")
	}

	if patch.Text != nil {
		post.Text = *patch.Text
		post.Mentions = extractMentions(post.Text)
		post.Hashtags = extractHashtags(post.Text)
	}
	if patch.Image != nil {
		post.Image = *patch.Image
	}
	if patch.Video != nil {
		post.Video = *patch.Video
	}
	if patch.Location != nil {
		post.Location = *patch.Location
	}
	if patch.Feeling != nil {
		post.Feeling = *patch.Feeling
	}
	if patch.Privacy != nil {
		post.Privacy = *patch.Privacy
	}
	post.IsEdited = true
	post.UpdatedAt = s.now()

	if err := s.flushPosts(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("post", "update").Inc()

	out := post.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return out, nil
}

// DeletePost removes the post and decrements the author's post count.
// Only the owning author may delete.
func (s *Store) DeletePost(ctx context.Context, postID, authorID string) error {
	s.mu.Lock()

	idx := -1
	for i, p := range s.posts {
		if p.ID == postID {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return models.NewNotFoundError("post", postID)
	}
	if s.posts[idx].AuthorID != authorID {
		s.mu.Unlock()
		return models.NewNotAuthorizedError("you can only delete your own posts")
	}

	s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	if author := s.findUser(authorID); author != nil {
		author.PostsCount--
	}

	if err := s.flushPosts(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.flushUsers(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	observability.StoreMutations.WithLabelValues("post", "delete").Inc()

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return nil
}

// ToggleReaction sets the user's reaction on the post to kind. The user
// is first cleared from every kind, so a user holds at most one reaction
// per post; repeating the same kind leaves it selected rather than
// removing it. The legacy likes field mirrors the like set.
func (s *Store) ToggleReaction(ctx context.Context, postID, userID string, kind models.ReactionKind) (*models.Post, error) {
	if !kind.Valid() {
		return nil, models.NewValidationError("unknown reaction kind")
	}

	s.mu.Lock()

	post := s.findPost(postID)
	if post == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("post", postID)
	}
	user := s.findUser(userID)
	if user == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("user", userID)
	}

	hadReaction := false
	for _, k := range models.ReactionKinds {
		filtered := post.Reactions[k][:0]
		for _, id := range post.Reactions[k] {
			if id == userID {
				hadReaction = true
				continue
			}
			filtered = append(filtered, id)
		}
		post.Reactions[k] = filtered
	}
	post.Reactions[kind] = append(post.Reactions[kind], userID)
	post.Likes = append([]string{}, post.Reactions[models.ReactionLike]...)

	// First reaction on a post notifies its owner; switching kinds does not.
	if !hadReaction {
		s.appendNotificationLocked(models.NotificationLike, post.AuthorID, user, post.ID)
	}

	if err := s.flushPosts(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("post", "react").Inc()

	out := post.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return out, nil
}

// AddComment prepends a comment to the post, keeping newest-first order.
func (s *Store) AddComment(ctx context.Context, postID, authorID, text, image string) (*models.Comment, error) {
	s.mu.Lock()

	post := s.findPost(postID)
	if post == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("post", postID)
	}
	author := s.findUser(authorID)
	if author == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("user", authorID)
	}

	now := s.now()
	comment := &models.Comment{
		ID:        s.newID(),
		AuthorID:  authorID,
		Text:      text,
		Image:     image,
		Mentions:  extractMentions(text),
		Likes:     []string{},
		Replies:   []*models.Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	post.Comments = append([]*models.Comment{comment}, post.Comments...)

	s.appendNotificationLocked(models.NotificationComment, post.AuthorID, author, post.ID)
	s.notifyMentionsLocked(comment.Mentions, author, post.ID)

	if err := s.flushPosts(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("comment", "create").Inc()

	out := comment.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return out, nil
}

// AddReply appends a reply to a comment, keeping oldest-first order.
func (s *Store) AddReply(ctx context.Context, postID, commentID, authorID, text string) (*models.Reply, error) {
	s.mu.Lock()

	post := s.findPost(postID)
	if post == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("post", postID)
	}
	comment := post.FindComment(commentID)
	if comment == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("comment", commentID)
	}
	author := s.findUser(authorID)
	if author == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("user", authorID)
	}

	reply := &models.Reply{
		ID:        s.newID(),
		AuthorID:  authorID,
		Text:      text,
		Mentions:  extractMentions(text),
		Likes:     []string{},
		CreatedAt: s.now(),
	}
	comment.Replies = append(comment.Replies, reply)

	s.notifyMentionsLocked(reply.Mentions, author, post.ID)

	if err := s.flushPosts(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("reply", "create").Inc()

	out := *reply
	out.Mentions = append([]string{}, reply.Mentions...)
	out.Likes = append([]string{}, reply.Likes...)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return &out, nil
}

// ToggleCommentLike flips the user's like on a comment: present removes,
// absent adds. Comment likes are plain likes, not multi-kind reactions.
func (s *Store) ToggleCommentLike(ctx context.Context, postID, commentID, userID string) (*models.Comment, error) {
	s.mu.Lock()

	post := s.findPost(postID)
	if post == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("post", postID)
	}
	comment := post.FindComment(commentID)
	if comment == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("comment", commentID)
	}

	removed := false
	for i, id := range comment.Likes {
		if id == userID {
			comment.Likes = append(comment.Likes[:i], comment.Likes[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		comment.Likes = append(comment.Likes, userID)
	}

	if err := s.flushPosts(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("comment", "like").Inc()

	out := comment.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return out, nil
}

// SharePost creates a new share post referencing the original and appends
// a share record to the original's shares. Both posts persist in the same
// flush. The share itself is always public.
func (s *Store) SharePost(ctx context.Context, postID, authorID, shareText string) (*models.Post, error) {
	s.mu.Lock()

	original := s.findPost(postID)
	if original == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("post", postID)
	}
	author := s.findUser(authorID)
	if author == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("user", authorID)
	}

	now := s.now()
	share := &models.Post{
		ID:             s.newID(),
		AuthorID:       authorID,
		Text:           shareText,
		Privacy:        models.PrivacyPublic,
		IsShare:        true,
		OriginalPostID: original.ID,
		OriginalPost:   original.Clone(),
		Likes:          []string{},
		Reactions:      models.NewReactionSet(),
		Comments:       []*models.Comment{},
		Shares:         []models.ShareRecord{},
		Mentions:       extractMentions(shareText),
		Hashtags:       extractHashtags(shareText),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	original.Shares = append(original.Shares, models.ShareRecord{
		UserID:   authorID,
		ShareID:  share.ID,
		SharedAt: now,
	})
	s.posts = append([]*models.Post{share}, s.posts...)
	author.PostsCount++

	s.appendNotificationLocked(models.NotificationPostShare, original.AuthorID, author, original.ID)

	if err := s.flushPosts(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.flushUsers(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("post", "share").Inc()

	out := share.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return out, nil
}

// GetPost returns a deep copy of the post.
func (s *Store) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post := s.findPost(postID)
	if post == nil {
		return nil, models.NewNotFoundError("post", postID)
	}
	return post.Clone(), nil
}

// GetAllPosts returns deep copies of every post, newest-first.
func (s *Store) GetAllPosts(ctx context.Context) []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}
	return out
}
