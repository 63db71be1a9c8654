package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"vyvoxa/internal/models"
)

// trendingWindow is the trailing period a post must fall in to count
// toward trending hashtags.
const trendingWindow = 7 * 24 * time.Hour

// HashtagCount is one row of the trending ranking.
type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TrendingHashtags counts hashtag occurrences across posts created within
// the trailing seven-day window and returns the top entries, descending
// by count. Ties break lexicographically by tag so the ranking is stable.
func (s *Store) TrendingHashtags(ctx context.Context, limit int) []HashtagCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-trendingWindow)
	counts := map[string]int{}
	for _, p := range s.posts {
		if !p.CreatedAt.After(cutoff) {
			continue
		}
		for _, tag := range p.Hashtags {
			counts[tag]++
		}
	}

	ranking := make([]HashtagCount, 0, len(counts))
	for tag, count := range counts {
		ranking = append(ranking, HashtagCount{Tag: tag, Count: count})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Tag < ranking[j].Tag
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// VisiblePosts returns the posts the viewer may see: public posts, the
// viewer's own private posts, and friends-only posts from the viewer or
// the viewer's friends. Order is preserved (newest-first).
func (s *Store) VisiblePosts(ctx context.Context, viewerID string, friendIDs []string) []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Post
	for _, p := range s.posts {
		if postVisible(p, viewerID, friendIDs) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func postVisible(p *models.Post, viewerID string, friendIDs []string) bool {
	switch p.Privacy {
	case models.PrivacyPublic:
		return true
	case models.PrivacyPrivate:
		return p.AuthorID == viewerID
	case models.PrivacyFriends:
		if p.AuthorID == viewerID {
			return true
		}
		for _, id := range friendIDs {
			if id == p.AuthorID {
				return true
			}
		}
	}
	return false
}

// SearchPosts matches the query case-insensitively against the posts
// visible to the viewer: as a substring of the post text, or as an exact
// token among its hashtags and mentions.
func (s *Store) SearchPosts(ctx context.Context, query, viewerID string, friendIDs []string) []*models.Post {
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Post
	for _, p := range s.posts {
		if !postVisible(p, viewerID, friendIDs) {
			continue
		}
		if postMatches(p, needle) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func postMatches(p *models.Post, needle string) bool {
	if strings.Contains(strings.ToLower(p.Text), needle) {
		return true
	}
	for _, tag := range p.Hashtags {
		if strings.ToLower(tag) == needle {
			return true
		}
	}
	for _, mention := range p.Mentions {
		if strings.ToLower(mention) == needle {
			return true
		}
	}
	return false
}

// PostsByUser returns the user's posts, newest-first, truncated to limit
// (0 means no cap).
func (s *Store) PostsByUser(ctx context.Context, userID string, limit int) []*models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Post
	for _, p := range s.posts {
		if p.AuthorID != userID {
			continue
		}
		out = append(out, p.Clone())
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// FilterByFollowing returns the subsequence of posts whose author is in
// friendIDs. It is a pure function over the given slice, usable on any
// snapshot.
func FilterByFollowing(posts []*models.Post, friendIDs []string) []*models.Post {
	allowed := make(map[string]struct{}, len(friendIDs))
	for _, id := range friendIDs {
		allowed[id] = struct{}{}
	}
	var out []*models.Post
	for _, p := range posts {
		if _, ok := allowed[p.AuthorID]; ok {
			out = append(out, p)
		}
	}
	return out
}
