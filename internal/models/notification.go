package models

import "time"

// NotificationType identifies the event a notification describes.
type NotificationType string

const (
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationFriendAccept  NotificationType = "friend_accept"
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationMention       NotificationType = "mention"
	NotificationPostShare     NotificationType = "post_share"
	NotificationBirthday      NotificationType = "birthday"
	NotificationMemory        NotificationType = "memory"
	NotificationSystem        NotificationType = "system"
)

// Notification is a ledger entry addressed to one recipient. Entries expire
// thirty days after creation and are pruned lazily.
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	RecipientID string           `json:"recipientId"`
	SenderID    string           `json:"senderId,omitempty"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	PostID      string           `json:"postId,omitempty"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"createdAt"`
	ExpiresAt   time.Time        `json:"expiresAt"`
}

// Expired reports whether the notification has passed its expiry at now.
func (n *Notification) Expired(now time.Time) bool {
	return !n.ExpiresAt.After(now)
}

// DefaultTitle returns the display title for a notification type.
func (t NotificationType) DefaultTitle() string {
	switch t {
	case NotificationFriendRequest:
		return "New Friend Request"
	case NotificationFriendAccept:
		return "Friend Request Accepted"
	case NotificationLike:
		return "New Like"
	case NotificationComment:
		return "New Comment"
	case NotificationMention:
		return "You were mentioned"
	case NotificationPostShare:
		return "Post Shared"
	case NotificationBirthday:
		return "It's someone's birthday!"
	case NotificationMemory:
		return "Memory from this day"
	default:
		return "Notification"
	}
}
