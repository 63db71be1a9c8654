package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vyvoxa/internal/models"
	"vyvoxa/internal/observability"
)

// notificationTTL is how long a ledger entry stays readable before the
// lazy pruning drops it.
const notificationTTL = 30 * 24 * time.Hour

// appendNotificationLocked records a ledger entry addressed to recipient.
// Self-addressed entries for like/comment/share events are suppressed;
// nobody needs to hear about their own actions. Callers hold the write
// lock and are responsible for flushing the notifications collection.
func (s *Store) appendNotificationLocked(typ models.NotificationType, recipientID string, sender *models.User, postID string) {
	senderID := ""
	senderName := "Someone"
	if sender != nil {
		senderID = sender.ID
		senderName = sender.Name
	}
	switch typ {
	case models.NotificationLike, models.NotificationComment, models.NotificationPostShare:
		if senderID == recipientID {
			return
		}
	}

	now := s.now()
	s.notifications = append([]*models.Notification{{
		ID:          s.newID(),
		Type:        typ,
		RecipientID: recipientID,
		SenderID:    senderID,
		Title:       typ.DefaultTitle(),
		Message:     notificationMessage(typ, senderName),
		PostID:      postID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(notificationTTL),
	}}, s.notifications...)
}

func notificationMessage(typ models.NotificationType, senderName string) string {
	switch typ {
	case models.NotificationFriendRequest:
		return fmt.Sprintf("%s sent you a friend request", senderName)
	case models.NotificationFriendAccept:
		return fmt.Sprintf("%s accepted your friend request", senderName)
	case models.NotificationLike:
		return fmt.Sprintf("%s liked your post", senderName)
	case models.NotificationComment:
		return fmt.Sprintf("%s commented on your post", senderName)
	case models.NotificationMention:
		return fmt.Sprintf("%s mentioned you in a post", senderName)
	case models.NotificationPostShare:
		return fmt.Sprintf("%s shared your post", senderName)
	default:
		return "You have a new notification"
	}
}

// notifyMentionsLocked resolves mention tokens against known accounts and
// records a mention notification for each hit. Unresolvable tokens are
// ignored.
func (s *Store) notifyMentionsLocked(mentions []string, sender *models.User, postID string) {
	seen := map[string]struct{}{}
	for _, token := range mentions {
		mentioned := s.resolveMentionLocked(token)
		if mentioned == nil {
			continue
		}
		if _, dup := seen[mentioned.ID]; dup {
			continue
		}
		seen[mentioned.ID] = struct{}{}
		s.appendNotificationLocked(models.NotificationMention, mentioned.ID, sender, postID)
	}
}

// resolveMentionLocked matches a mention token case-insensitively against
// each account's display name with spaces removed, then against the email
// local part.
func (s *Store) resolveMentionLocked(token string) *models.User {
	needle := strings.ToLower(token)
	for _, u := range s.users {
		compact := strings.ToLower(strings.ReplaceAll(u.Name, " ", ""))
		if compact == needle {
			return u
		}
		if local, _, ok := strings.Cut(u.Email, "@"); ok && strings.ToLower(local) == needle {
			return u
		}
	}
	return nil
}

// ListNotifications returns unexpired entries addressed to userID,
// newest-first, truncated to limit (0 means no cap).
func (s *Store) ListNotifications(ctx context.Context, userID string, limit int) []*models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.RecipientID != userID || n.Expired(now) {
			continue
		}
		cp := *n
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// UnreadCount returns the number of unread, unexpired entries for userID.
func (s *Store) UnreadCount(ctx context.Context, userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	count := 0
	for _, n := range s.notifications {
		if n.RecipientID == userID && !n.Read && !n.Expired(now) {
			count++
		}
	}
	return count
}

// MarkRead flags the given entries as read. Unknown ids are ignored.
func (s *Store) MarkRead(ctx context.Context, ids []string) error {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	s.mu.Lock()
	for _, n := range s.notifications {
		if _, ok := idSet[n.ID]; ok {
			n.Read = true
		}
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	observability.StoreMutations.WithLabelValues("notification", "mark_read").Inc()

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return nil
}

// MarkAllRead flags every entry addressed to userID as read.
func (s *Store) MarkAllRead(ctx context.Context, userID string) error {
	s.mu.Lock()
	for _, n := range s.notifications {
		if n.RecipientID == userID {
			n.Read = true
		}
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	observability.StoreMutations.WithLabelValues("notification", "mark_all_read").Inc()

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return nil
}

// DeleteNotification removes one entry from the ledger.
func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	s.mu.Lock()

	idx := -1
	for i, n := range s.notifications {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return models.NewNotFoundError("notification", id)
	}
	s.notifications = append(s.notifications[:idx], s.notifications[idx+1:]...)

	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	observability.StoreMutations.WithLabelValues("notification", "delete").Inc()

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return nil
}

// PruneExpired drops expired entries. A no-op prune does not flush or
// publish.
func (s *Store) PruneExpired(ctx context.Context) error {
	s.mu.Lock()

	now := s.now()
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	pruned := len(s.notifications) - len(kept)
	s.notifications = kept
	if pruned == 0 {
		s.mu.Unlock()
		return nil
	}

	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	observability.StoreMutations.WithLabelValues("notification", "prune").Inc()

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return nil
}
