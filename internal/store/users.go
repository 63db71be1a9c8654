package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"vyvoxa/internal/models"
	"vyvoxa/internal/observability"
	"vyvoxa/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// SignupInput carries the fields accepted at account creation.
type SignupInput struct {
	Email     string
	Password  string
	Name      string
	Bio       string
	AvatarURL string
}

// CreateUser registers a new account. The password is bcrypt-hashed before
// storage; plaintext is never persisted. Fails with DUPLICATE_EMAIL if the
// address is already registered.
func (s *Store) CreateUser(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDisplayName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, in.Email) {
			return nil, models.NewDuplicateEmailError(in.Email)
		}
	}

	now := s.now()
	avatar := in.AvatarURL
	if avatar == "" {
		avatar = defaultAvatarURL(in.Name)
	}
	user := &models.User{
		ID:        s.newID(),
		Email:     in.Email,
		Name:      strings.TrimSpace(in.Name),
		Password:  string(hash),
		AvatarURL: avatar,
		Bio:       in.Bio,
		Followers: []string{},
		Following: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users = append(s.users, user)

	if err := s.flushUsers(ctx); err != nil {
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("user", "create").Inc()
	return user.PublicProfile(), nil
}

// Authenticate verifies credentials and returns the account's public
// profile. Fails with NOT_FOUND when no account matches the email and
// INVALID_CREDENTIAL on a hash mismatch.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user *models.User
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			user = u
			break
		}
	}
	if user == nil {
		return nil, models.NewNotFoundError("account", email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialError()
	}
	return user.PublicProfile(), nil
}

// UpdateProfile applies a partial update of the mutable profile fields.
func (s *Store) UpdateProfile(ctx context.Context, userID string, patch models.UserPatch) (*models.User, error) {
	if patch.Name != nil {
		if err := validation.ValidateDisplayName(*patch.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(userID)
	if user == nil {
		return nil, models.NewNotFoundError("user", userID)
	}

	if patch.Name != nil {
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	user.UpdatedAt = s.now()

	if err := s.flushUsers(ctx); err != nil {
		return nil, err
	}
	observability.StoreMutations.WithLabelValues("user", "update").Inc()
	return user.PublicProfile(), nil
}

// GetUser returns the public profile for id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user := s.findUser(id)
	if user == nil {
		return nil, models.NewNotFoundError("user", id)
	}
	return user.PublicProfile(), nil
}

// GetAllUsers returns every account's public profile in signup order.
func (s *Store) GetAllUsers(ctx context.Context) []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.PublicProfile()
	}
	return out
}

// GetFriends returns the public profiles of the user's mutual relations.
func (s *Store) GetFriends(ctx context.Context, userID string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user := s.findUser(userID)
	if user == nil {
		return nil, models.NewNotFoundError("user", userID)
	}
	var friends []*models.User
	for _, id := range user.FriendIDs() {
		if friend := s.findUser(id); friend != nil {
			friends = append(friends, friend.PublicProfile())
		}
	}
	return friends, nil
}

// defaultAvatarURL mirrors the generated-avatar fallback applied at signup.
func defaultAvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
}
