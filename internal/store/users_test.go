package store

import (
	"context"
	"strings"
	"testing"

	"vyvoxa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)

	u, err := env.store.CreateUser(ctx, SignupInput{
		Email:    "alice@example.com",
		Password: "Sup3r$ecretPass!",
		Name:     "  Alice Adams  ",
		Bio:      "hi there",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Adams", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Empty(t, u.Password, "profile must not expose the hash")
	assert.Contains(t, u.AvatarURL, "ui-avatars.com")
	assert.NotNil(t, u.Followers)
	assert.NotNil(t, u.Following)
	assert.Zero(t, u.PostsCount)
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)

	cases := []struct {
		name  string
		input SignupInput
	}{
		{"bad email", SignupInput{Email: "not-an-email", Password: "Sup3r$ecretPass!", Name: "A"}},
		{"empty name", SignupInput{Email: "a@example.com", Password: "Sup3r$ecretPass!", Name: "   "}},
		{"long name", SignupInput{Email: "a@example.com", Password: "Sup3r$ecretPass!", Name: strings.Repeat("x", 81)}},
		{"short password", SignupInput{Email: "a@example.com", Password: "Shor7!", Name: "A"}},
		{"no special char", SignupInput{Email: "a@example.com", Password: "NoSpecial1234", Name: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.store.CreateUser(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, models.CodeValidation, models.CodeOf(err))
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	env.signup(t, "Alice Adams", "alice@example.com")

	_, err := env.store.CreateUser(ctx, SignupInput{
		Email:    "ALICE@Example.COM",
		Password: "Sup3r$ecretPass!",
		Name:     "Imposter",
	})
	require.Error(t, err)
	assert.Equal(t, models.CodeDuplicateEmail, models.CodeOf(err))
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		got, err := env.store.Authenticate(ctx, "alice@example.com", "Sup3r$ecretPass!")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		assert.Empty(t, got.Password)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.store.Authenticate(ctx, "alice@example.com", "WrongPassword#1")
		require.Error(t, err)
		assert.Equal(t, models.CodeInvalidCredential, models.CodeOf(err))
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := env.store.Authenticate(ctx, "nobody@example.com", "Sup3r$ecretPass!")
		require.Error(t, err)
		assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")

	newName := "Alice A."
	newBio := "updated"
	got, err := env.store.UpdateProfile(ctx, alice.ID, models.UserPatch{
		Name: &newName,
		Bio:  &newBio,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", got.Name)
	assert.Equal(t, "updated", got.Bio)
	// untouched fields survive
	assert.Equal(t, alice.AvatarURL, got.AvatarURL)

	_, err = env.store.UpdateProfile(ctx, "missing", models.UserPatch{Bio: &newBio})
	assert.Equal(t, models.CodeNotFound, models.CodeOf(err))
}

func TestGetFriends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	env := newTestStore(t)
	alice := env.signup(t, "Alice Adams", "alice@example.com")
	bob := env.signup(t, "Bob Brown", "bob@example.com")
	carol := env.signup(t, "Carol Clark", "carol@example.com")

	env.befriend(t, alice.ID, bob.ID)
	env.befriend(t, carol.ID, alice.ID)

	friends, err := env.store.GetFriends(ctx, alice.ID)
	require.NoError(t, err)
	ids := make([]string, len(friends))
	for i, f := range friends {
		ids[i] = f.ID
	}
	assert.ElementsMatch(t, []string{bob.ID, carol.ID}, ids)

	friends, err = env.store.GetFriends(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, alice.ID, friends[0].ID)
}
