// Command seed fills the database with demo postcards, custom points and friends.
package main

import (
	"context"
	"flag"
	"log"

	"studyglobe/internal/config"
	"studyglobe/internal/database"
	"studyglobe/internal/repository"
	"studyglobe/internal/seed"
	"studyglobe/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	postcards := flag.Int("postcards", 24, "Number of postcards to create")
	points := flag.Int("points", 8, "Number of custom points to create")
	friends := flag.Int("friends", 6, "Number of friends to create")
	maxDays := flag.Int("days", 90, "Spread creation dates over this many past days")
	clean := flag.Bool("clean", false, "Delete existing rows before seeding")
	dryRun := flag.Bool("dry-run", false, "Build the data without writing it")
	seedValue := flag.Int64("seed", 0, "Random seed (0 picks one)")
	samples := flag.Bool("samples", true, "Also add the sample friends when the table is empty")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	res, err := seed.Run(ctx, db, seed.Options{
		Postcards:    *postcards,
		CustomPoints: *points,
		Friends:      *friends,
		MaxDays:      *maxDays,
		Clean:        *clean,
		DryRun:       *dryRun,
		Seed:         *seedValue,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if *samples && !*dryRun {
		friendsSvc := service.NewFriendService(repository.NewFriendRepository(db), nil)
		added, err := friendsSvc.EnsureSamples(ctx, seed.SampleFriends())
		if err != nil {
			log.Fatalf("Sample friends: %v", err)
		}
		res.Friends += added
	}

	log.Printf("Seeded %d postcards, %d custom points, %d friends (dry-run=%v)",
		res.Postcards, res.CustomPoints, res.Friends, *dryRun)
}
