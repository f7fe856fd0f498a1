// Package seed creates sample and demo data. It is meant for development,
// demos and tests.
package seed

import (
	"context"
	"fmt"
	"time"

	"studyglobe/internal/models"
	"studyglobe/internal/stamp"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// SampleFriends are inserted at startup when the friends table is empty.
func SampleFriends() []models.Friend {
	return []models.Friend{
		{
			Name:      "Emma Johnson",
			Status:    "Loving the café culture in Paris! ☕",
			AvatarURL: "https://images.unsplash.com/photo-1494790108755-2616b612b3fd?w=150&h=150&fit=crop&crop=face",
			Country:   "France",
			City:      "Paris",
			Lat:       48.8566,
			Lng:       2.3522,
		},
		{
			Name:      "Marco Silva",
			Status:    "Study sessions at the library 📚",
			AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
			Country:   "Japan",
			City:      "Tokyo",
			Lat:       35.6762,
			Lng:       139.6503,
		},
		{
			Name:      "Sarah Chen",
			Status:    "Exploring ancient history 🏛️",
			AvatarURL: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
			Country:   "Italy",
			City:      "Rome",
			Lat:       41.9028,
			Lng:       12.4964,
		},
	}
}

// city is a demo location with a stamp-known country.
type city struct {
	name    string
	country string
	lat     float64
	lng     float64
}

var cities = []city{
	{"Paris", "France", 48.8566, 2.3522},
	{"Tokyo", "Japan", 35.6762, 139.6503},
	{"Rome", "Italy", 41.9028, 12.4964},
	{"Barcelona", "Spain", 41.3874, 2.1686},
	{"Zurich", "Switzerland", 47.3769, 8.5417},
	{"Athens", "Greece", 37.9838, 23.7275},
	{"London", "UK", 51.5074, -0.1278},
	{"New York", "USA", 40.7128, -74.006},
	{"Sydney", "Australia", -33.8688, 151.2093},
	{"Reykjavik", "Iceland", 64.1466, -21.9426},
	{"Toronto", "Canada", 43.6532, -79.3832},
	{"Mexico City", "Mexico", 19.4326, -99.1332},
}

// Options controls a demo seed run.
type Options struct {
	Postcards    int
	CustomPoints int
	Friends      int
	MaxDays      int
	Clean        bool
	DryRun       bool
	Seed         int64
}

// Factory builds demo entities.
type Factory struct {
	faker *gofakeit.Faker
	opts  Options
	now   func() time.Time
}

// NewFactory returns a factory; a zero Seed picks a random one.
func NewFactory(opts Options) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	return &Factory{faker: gofakeit.New(seed), opts: opts, now: time.Now}
}

func (f *Factory) city() city {
	return cities[f.faker.IntRange(0, len(cities)-1)]
}

// near offsets a coordinate by up to ~5km.
func (f *Factory) near(v float64) float64 {
	return v + f.faker.Float64Range(-0.05, 0.05)
}

func (f *Factory) createdAt() time.Time {
	back := time.Duration(f.faker.IntRange(0, f.opts.MaxDays*24*60)) * time.Minute
	return f.now().Add(-back)
}

// Postcard builds an unsaved postcard with a remote placeholder image.
func (f *Factory) Postcard(overrides ...func(*models.Postcard)) models.Postcard {
	c := f.city()
	created := f.createdAt()
	p := models.Postcard{
		UserName:        f.faker.FirstName() + " " + f.faker.LastName(),
		UserAvatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
		Location:        c.name,
		Country:         c.country,
		ImageURL:        fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.faker.UUID()),
		Caption:         f.faker.Sentence(6),
		PersonalMessage: f.faker.Paragraph(1, 2, 12, " "),
		DateStamp:       stamp.DateStamp(created),
		Lat:             f.near(c.lat),
		Lng:             f.near(c.lng),
		Likes:           f.faker.IntRange(0, 40),
		Comments:        f.faker.IntRange(0, 10),
		CreatedAt:       created,
	}
	for _, o := range overrides {
		o(&p)
	}
	return p
}

// CustomPoint builds an unsaved point of interest.
func (f *Factory) CustomPoint() models.CustomPoint {
	c := f.city()
	return models.CustomPoint{
		Name:        f.faker.Company(),
		Description: f.faker.Sentence(10),
		Lat:         f.near(c.lat),
		Lng:         f.near(c.lng),
	}
}

// Friend builds an unsaved friend.
func (f *Factory) Friend() models.Friend {
	c := f.city()
	return models.Friend{
		Name:      f.faker.Name(),
		Status:    f.faker.Sentence(5),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
		Country:   c.country,
		City:      c.name,
		Lat:       f.near(c.lat),
		Lng:       f.near(c.lng),
	}
}

// Result counts what a run created.
type Result struct {
	Postcards    int
	CustomPoints int
	Friends      int
}

// Run seeds db with demo data. DryRun builds the entities without writing.
func Run(ctx context.Context, db *gorm.DB, opts Options) (Result, error) {
	f := NewFactory(opts)

	postcards := make([]models.Postcard, opts.Postcards)
	for i := range postcards {
		postcards[i] = f.Postcard()
	}
	points := make([]models.CustomPoint, opts.CustomPoints)
	for i := range points {
		points[i] = f.CustomPoint()
	}
	friends := make([]models.Friend, opts.Friends)
	for i := range friends {
		friends[i] = f.Friend()
	}
	res := Result{Postcards: len(postcards), CustomPoints: len(points), Friends: len(friends)}
	if opts.DryRun {
		return res, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Clean {
			for _, m := range []interface{}{&models.Postcard{}, &models.CustomPoint{}, &models.Friend{}} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
					return fmt.Errorf("clean: %w", err)
				}
			}
		}
		if len(postcards) > 0 {
			if err := tx.CreateInBatches(postcards, 100).Error; err != nil {
				return fmt.Errorf("postcards: %w", err)
			}
		}
		if len(points) > 0 {
			if err := tx.CreateInBatches(points, 100).Error; err != nil {
				return fmt.Errorf("custom points: %w", err)
			}
		}
		if len(friends) > 0 {
			if err := tx.CreateInBatches(friends, 100).Error; err != nil {
				return fmt.Errorf("friends: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
