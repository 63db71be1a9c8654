// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account in the Vyvoxa data core. The JSON tags define
// the persisted layout of the "users" collection; the password hash is part
// of the persisted record but is stripped from everything the read APIs
// return (see PublicProfile).
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Password   string    `json:"password,omitempty"`
	AvatarURL  string    `json:"avatar,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Followers  []string  `json:"followers"`
	Following  []string  `json:"following"`
	PostsCount int       `json:"postsCount"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PublicProfile returns a copy of the user safe to hand to callers:
// the password hash is cleared and the graph slices are copied so the
// caller cannot mutate store state through them.
func (u *User) PublicProfile() *User {
	out := *u
	out.Password = ""
	out.Followers = append([]string{}, u.Followers...)
	out.Following = append([]string{}, u.Following...)
	return &out
}

// IsFriendOf reports whether other is a mutual (bidirectional) relation:
// present in both this user's following and followers sets.
func (u *User) IsFriendOf(otherID string) bool {
	return contains(u.Following, otherID) && contains(u.Followers, otherID)
}

// FriendIDs returns the ids that appear in both the following and
// followers sets. Friendship is established only via request acceptance,
// which writes both directions, so the intersection is the friend list.
func (u *User) FriendIDs() []string {
	var friends []string
	for _, id := range u.Following {
		if contains(u.Followers, id) {
			friends = append(friends, id)
		}
	}
	return friends
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// AddFollowing records that this user follows id. No-op if already present.
func (u *User) AddFollowing(id string) { u.Following, _ = addToSet(u.Following, id) }

// AddFollower records that id follows this user. No-op if already present.
func (u *User) AddFollower(id string) { u.Followers, _ = addToSet(u.Followers, id) }

// RemoveFollowing removes id from the following set.
func (u *User) RemoveFollowing(id string) { u.Following, _ = removeFromSet(u.Following, id) }

// RemoveFollower removes id from the followers set.
func (u *User) RemoveFollower(id string) { u.Followers, _ = removeFromSet(u.Followers, id) }

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}

// addToSet appends id if absent and reports whether the set changed.
func addToSet(set []string, id string) ([]string, bool) {
	if contains(set, id) {
		return set, false
	}
	return append(set, id), true
}

// removeFromSet removes id if present and reports whether the set changed.
func removeFromSet(set []string, id string) ([]string, bool) {
	for i, v := range set {
		if v == id {
			return append(set[:i], set[i+1:]...), true
		}
	}
	return set, false
}
