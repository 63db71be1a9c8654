// Command seed populates a local store with demo data.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"vyvoxa/internal/config"
	"vyvoxa/internal/seed"
	"vyvoxa/internal/storage"
	"vyvoxa/internal/store"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 80, "Number of posts to create")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var kv storage.Store
	switch cfg.StoreBackend {
	case "redis":
		kv, err = storage.OpenRedis(ctx, cfg.RedisURL)
	default:
		kv, err = storage.OpenSQLite(cfg.StorePath)
	}
	if err != nil {
		log.Fatalf("failed to open storage backend: %v", err)
	}
	defer kv.Close()

	st, err := store.Open(ctx, kv)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	if err := seed.Run(ctx, st, seed.Options{
		NumUsers: *numUsers,
		NumPosts: *numPosts,
		Seed:     *randSeed,
	}); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Printf("seeded %d users and %d posts into %s backend", *numUsers, *numPosts, cfg.StoreBackend)
}
