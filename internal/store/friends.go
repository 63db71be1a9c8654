package store

import (
	"context"

	"vyvoxa/internal/models"
	"vyvoxa/internal/observability"
)

// SendRequest records a pending friend request from sender to receiver.
// At most one pending request may exist per ordered pair; a pending
// request in the opposite direction does not block and is not
// auto-resolved into a friendship.
func (s *Store) SendRequest(ctx context.Context, senderID, receiverID string) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, models.NewValidationError("cannot send a friend request to yourself")
	}

	s.mu.Lock()

	sender := s.findUser(senderID)
	if sender == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("user", senderID)
	}
	receiver := s.findUser(receiverID)
	if receiver == nil {
		s.mu.Unlock()
		return nil, models.NewNotFoundError("user", receiverID)
	}
	if sender.IsFriendOf(receiverID) {
		s.mu.Unlock()
		return nil, models.NewValidationError("you are already friends")
	}
	for _, r := range s.requests {
		if r.Status == models.FriendRequestPending && r.SenderID == senderID && r.ReceiverID == receiverID {
			s.mu.Unlock()
			return nil, models.NewDuplicateRequestError(senderID, receiverID)
		}
	}

	req := &models.FriendRequest{
		ID:         s.newID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendRequestPending,
		SentAt:     s.now(),
	}
	s.requests = append(s.requests, req)
	s.appendNotificationLocked(models.NotificationFriendRequest, receiverID, sender, "")

	if err := s.flushRequests(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("friend_request", "send").Inc()

	out := *req
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return &out, nil
}

// AcceptRequest turns a pending request into a bidirectional friendship:
// both users' following and followers sets gain the other's id, and the
// request leaves the ledger. The dual mutation happens under one write
// lock, so no reader observes a half-applied state.
func (s *Store) AcceptRequest(ctx context.Context, requestID string) error {
	s.mu.Lock()

	req := s.removePendingRequestLocked(requestID)
	if req == nil {
		s.mu.Unlock()
		return models.NewNotFoundError("friend request", requestID)
	}

	sender := s.findUser(req.SenderID)
	receiver := s.findUser(req.ReceiverID)
	if sender == nil || receiver == nil {
		s.mu.Unlock()
		return models.NewNotFoundError("user", req.SenderID)
	}

	sender.AddFollowing(receiver.ID)
	sender.AddFollower(receiver.ID)
	receiver.AddFollowing(sender.ID)
	receiver.AddFollower(sender.ID)
	req.Status = models.FriendRequestAccepted

	s.appendNotificationLocked(models.NotificationFriendAccept, sender.ID, receiver, "")

	if err := s.flushUsers(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.flushRequests(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.flushNotifications(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	observability.StoreMutations.WithLabelValues("friend_request", "accept").Inc()

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return nil
}

// RejectRequest removes a pending request without touching either graph.
func (s *Store) RejectRequest(ctx context.Context, requestID string) error {
	return s.discardRequest(ctx, requestID, models.FriendRequestRejected)
}

// CancelRequest withdraws a pending request the sender regrets.
func (s *Store) CancelRequest(ctx context.Context, requestID string) error {
	return s.discardRequest(ctx, requestID, models.FriendRequestCancelled)
}

func (s *Store) discardRequest(ctx context.Context, requestID string, status models.FriendRequestStatus) error {
	s.mu.Lock()

	req := s.removePendingRequestLocked(requestID)
	if req == nil {
		s.mu.Unlock()
		return models.NewNotFoundError("friend request", requestID)
	}
	req.Status = status

	if err := s.flushRequests(ctx); err != nil {
		s.mu.Unlock()
		return err
	}
	observability.StoreMutations.WithLabelValues("friend_request", string(status)).Inc()

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(snap)
	return nil
}

// removePendingRequestLocked unlinks and returns the pending request with
// the given id, or nil. Callers hold the write lock.
func (s *Store) removePendingRequestLocked(requestID string) *models.FriendRequest {
	for i, r := range s.requests {
		if r.ID == requestID && r.Status == models.FriendRequestPending {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			return r
		}
	}
	return nil
}

// ListPendingFor returns all pending requests addressed to userID, each
// annotated with the sender's public profile.
func (s *Store) ListPendingFor(ctx context.Context, userID string) []*models.FriendRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.FriendRequest
	for _, r := range s.requests {
		if r.Status != models.FriendRequestPending || r.ReceiverID != userID {
			continue
		}
		cp := *r
		if sender := s.findUser(r.SenderID); sender != nil {
			cp.Sender = sender.PublicProfile()
		}
		out = append(out, &cp)
	}
	return out
}
