// Package seed populates a store with demo data for development. All
// entities are created through the regular store operations, so the
// seeded state is exactly what the application itself would produce.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"vyvoxa/internal/logging"
	"vyvoxa/internal/models"
	"vyvoxa/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

// Options configures the seeder.
type Options struct {
	NumUsers int
	NumPosts int
	Seed     int64
}

// demoPassword satisfies the signup password rules and is shared by all
// seeded accounts so any of them can be logged into.
const demoPassword = "DemoPassword#2026"

var hashtagPool = []string{
	"coffee", "coding", "golang", "music", "travel", "food", "fitness",
	"photography", "gaming", "books", "movies", "art", "nature", "weekend",
	"launch", "startup", "design", "hiking",
}

var feelings = []string{
	"happy", "excited", "grateful", "thoughtful", "relaxed", "motivated",
}

// Run seeds demo users, friendships, posts, reactions, and comments.
// Two fixed accounts (demo@vyvoxa.local / test@vyvoxa.local) are always
// created first so they can be used for manual login.
func Run(ctx context.Context, st *store.Store, opts Options) error {
	if opts.NumUsers < 2 {
		opts.NumUsers = 2
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = opts.NumUsers * 3
	}
	gofakeit.Seed(opts.Seed)
	r := rand.New(rand.NewSource(opts.Seed))

	users, err := createUsers(ctx, st, opts.NumUsers)
	if err != nil {
		return err
	}
	logging.Logger.Info("seeded users", slog.Int("count", len(users)))

	if err := createFriendships(ctx, st, users, r); err != nil {
		return err
	}

	posts, err := createPosts(ctx, st, users, opts.NumPosts, r)
	if err != nil {
		return err
	}
	logging.Logger.Info("seeded posts", slog.Int("count", len(posts)))

	if err := createEngagement(ctx, st, users, posts, r); err != nil {
		return err
	}
	return nil
}

func createUsers(ctx context.Context, st *store.Store, n int) ([]*models.User, error) {
	fixed := []store.SignupInput{
		{
			Email:    "demo@vyvoxa.local",
			Password: demoPassword,
			Name:     "Demo User",
			Bio:      "Just here looking around.",
		},
		{
			Email:    "test@vyvoxa.local",
			Password: demoPassword,
			Name:     "Test User",
			Bio:      "Second demo account.",
		},
	}

	users := make([]*models.User, 0, n)
	for _, in := range fixed {
		u, err := st.CreateUser(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("seed fixed user %s: %w", in.Email, err)
		}
		users = append(users, u)
	}

	for i := len(users); i < n; i++ {
		name := gofakeit.Name()
		u, err := st.CreateUser(ctx, store.SignupInput{
			Email:    gofakeit.Email(),
			Password: demoPassword,
			Name:     name,
			Bio:      gofakeit.Sentence(8),
		})
		if err != nil {
			// duplicate fake email, just skip it
			if models.CodeOf(err) == models.CodeDuplicateEmail {
				continue
			}
			return nil, fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// createFriendships sends and accepts requests so the demo account has a
// populated friends list and the mesh has some random edges.
func createFriendships(ctx context.Context, st *store.Store, users []*models.User, r *rand.Rand) error {
	befriend := func(a, b *models.User) error {
		req, err := st.SendRequest(ctx, a.ID, b.ID)
		if err != nil {
			return err
		}
		return st.AcceptRequest(ctx, req.ID)
	}

	// demo and test users are always friends
	if err := befriend(users[0], users[1]); err != nil {
		return fmt.Errorf("seed friendship: %w", err)
	}

	for _, u := range users[2:] {
		// roughly half the fake users befriend the demo account
		if r.Intn(2) == 0 {
			if err := befriend(u, users[0]); err != nil {
				return fmt.Errorf("seed friendship: %w", err)
			}
		}
		// one random edge into the rest of the mesh
		other := users[r.Intn(len(users))]
		if other.ID == u.ID || u.IsFriendOf(other.ID) {
			continue
		}
		if err := befriend(u, other); err != nil {
			if models.CodeOf(err) == models.CodeDuplicateRequest ||
				models.CodeOf(err) == models.CodeValidation {
				continue
			}
			return fmt.Errorf("seed friendship: %w", err)
		}
	}

	// leave a couple of pending requests toward the demo account
	for i := 0; i < 2 && i+2 < len(users); i++ {
		if _, err := st.SendRequest(ctx, users[i+2].ID, users[0].ID); err != nil {
			// already friends or already requested, either is fine
			if models.CodeOf(err) == models.CodeDuplicateRequest ||
				models.CodeOf(err) == models.CodeValidation {
				continue
			}
			return fmt.Errorf("seed pending request: %w", err)
		}
	}
	return nil
}

func createPosts(ctx context.Context, st *store.Store, users []*models.User, n int, r *rand.Rand) ([]*models.Post, error) {
	privacies := []models.Privacy{
		models.PrivacyPublic, models.PrivacyPublic, models.PrivacyPublic,
		models.PrivacyFriends, models.PrivacyPrivate,
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[r.Intn(len(users))]
		text := gofakeit.Sentence(r.Intn(12) + 4)
		for j := 0; j < r.Intn(3); j++ {
			text += " #" + hashtagPool[r.Intn(len(hashtagPool))]
		}
		in := store.PostInput{
			Text:    text,
			Privacy: privacies[r.Intn(len(privacies))],
		}
		if r.Intn(3) == 0 {
			in.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
		}
		if r.Intn(4) == 0 {
			in.Feeling = feelings[r.Intn(len(feelings))]
		}
		if r.Intn(5) == 0 {
			in.Location = gofakeit.City()
		}
		p, err := st.CreatePost(ctx, author.ID, in)
		if err != nil {
			return nil, fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func createEngagement(ctx context.Context, st *store.Store, users []*models.User, posts []*models.Post, r *rand.Rand) error {
	for _, p := range posts {
		for _, u := range users {
			if r.Intn(3) != 0 {
				continue
			}
			kind := models.ReactionKinds[r.Intn(len(models.ReactionKinds))]
			if _, err := st.ToggleReaction(ctx, p.ID, u.ID, kind); err != nil {
				return fmt.Errorf("seed reaction: %w", err)
			}
		}
		for i := 0; i < r.Intn(3); i++ {
			author := users[r.Intn(len(users))]
			c, err := st.AddComment(ctx, p.ID, author.ID, gofakeit.Sentence(r.Intn(8)+3), "")
			if err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			if r.Intn(3) == 0 {
				replier := users[r.Intn(len(users))]
				if _, err := st.AddReply(ctx, p.ID, c.ID, replier.ID, gofakeit.Sentence(5)); err != nil {
					return fmt.Errorf("seed reply: %w", err)
				}
			}
		}
	}

	// a few shares to round out the demo feed
	for i := 0; i < len(posts)/10+1; i++ {
		p := posts[r.Intn(len(posts))]
		if p.Privacy != models.PrivacyPublic {
			continue
		}
		sharer := users[r.Intn(len(users))]
		if sharer.ID == p.AuthorID {
			continue
		}
		if _, err := st.SharePost(ctx, p.ID, sharer.ID, gofakeit.Sentence(4)); err != nil {
			return fmt.Errorf("seed share: %w", err)
		}
	}
	return nil
}
