package models

import "time"

// FriendRequestStatus represents the status of a friend request.
type FriendRequestStatus string

const (
	// FriendRequestPending indicates a request awaiting a decision.
	FriendRequestPending FriendRequestStatus = "pending"
	// FriendRequestAccepted indicates the receiver accepted the request.
	FriendRequestAccepted FriendRequestStatus = "accepted"
	// FriendRequestRejected indicates the receiver declined the request.
	FriendRequestRejected FriendRequestStatus = "rejected"
	// FriendRequestCancelled indicates the sender withdrew the request.
	FriendRequestCancelled FriendRequestStatus = "cancelled"
)

// FriendRequest is a relationship request between two identities. At most
// one pending request may exist per ordered (sender, receiver) pair; the
// reverse direction is tracked independently.
type FriendRequest struct {
	ID         string              `json:"id"`
	SenderID   string              `json:"senderId"`
	ReceiverID string              `json:"receiverId"`
	Status     FriendRequestStatus `json:"status"`
	SentAt     time.Time           `json:"sentAt"`

	// Sender carries the sender's public profile when the request is
	// returned from ListPendingFor. Not persisted.
	Sender *User `json:"sender,omitempty"`
}
