package data

import (
	"context"
	"time"

	"flix/internal/data/entity"
	"flix/internal/data/repository"
	"flix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type seedMovie struct {
	Title    string
	Genre    string
	Poster   string
	Year     int
	Duration string
	Synopsis string
}

var sampleMovies = []seedMovie{
	{
		Title:    "Interstellar",
		Genre:    "Sci-Fi",
		Poster:   "https://placehold.co/300x450?text=Interstellar",
		Year:     2014,
		Duration: "2h 49m",
		Synopsis: "A team of explorers travels through a wormhole in space in an attempt to ensure humanity's survival.",
	},
	{
		Title:    "Dune: Part One",
		Genre:    "Sci-Fi",
		Poster:   "https://placehold.co/300x450?text=Dune",
		Year:     2021,
		Duration: "2h 35m",
		Synopsis: "Paul Atreides leads nomadic tribes in a battle to control the desert planet Arrakis and its valuable spice.",
	},
	{
		Title:    "Harry Potter and the Sorcerer's Stone",
		Genre:    "Fantasy",
		Poster:   "https://placehold.co/300x450?text=Harry+Potter",
		Year:     2001,
		Duration: "2h 32m",
		Synopsis: "An orphaned boy discovers he is a wizard and attends a magical school where he faces his destiny.",
	},
	{
		Title:    "3 Idiots",
		Genre:    "Comedy",
		Poster:   "https://placehold.co/300x450?text=3+Idiots",
		Year:     2009,
		Duration: "2h 50m",
		Synopsis: "Three engineering students navigate life, friendship, and education with a brilliant yet unconventional classmate.",
	},
	{
		Title:    "Life of Pi",
		Genre:    "Adventure",
		Poster:   "https://placehold.co/300x450?text=Life+of+Pi",
		Year:     2012,
		Duration: "2h 7m",
		Synopsis: "After a shipwreck, a young man survives on a lifeboat with a Bengal tiger, discovering spirituality and survival.",
	},
	{
		Title:    "Rio",
		Genre:    "Animation",
		Poster:   "https://placehold.co/300x450?text=Rio",
		Year:     2011,
		Duration: "1h 36m",
		Synopsis: "A domesticated blue macaw travels to Rio de Janeiro, where he learns to fly and embrace adventure.",
	},
	{
		Title:    "Inception",
		Genre:    "Sci-Fi",
		Poster:   "https://placehold.co/300x450?text=Inception",
		Year:     2010,
		Duration: "2h 28m",
		Synopsis: "A thief who steals corporate secrets through dream-sharing technology is tasked with planting an idea into a CEO's mind.",
	},
	{
		Title:    "Avatar",
		Genre:    "Fantasy",
		Poster:   "https://placehold.co/300x450?text=Avatar",
		Year:     2009,
		Duration: "2h 42m",
		Synopsis: "A paraplegic Marine is sent to the moon Pandora, where he becomes torn between following orders and protecting its world.",
	},
	{
		Title:    "The Dark Knight",
		Genre:    "Action",
		Poster:   "https://placehold.co/300x450?text=The+Dark+Knight",
		Year:     2008,
		Duration: "2h 32m",
		Synopsis: "Batman faces his greatest psychological and physical test yet as he battles the Joker's chaos in Gotham.",
	},
	{
		Title:    "Frozen",
		Genre:    "Animation",
		Poster:   "https://placehold.co/300x450?text=Frozen",
		Year:     2013,
		Duration: "1h 42m",
		Synopsis: "When Queen Elsa's icy powers trap her kingdom in eternal winter, her sister Anna sets out to save her.",
	},
}

// Seed populates the default admin account and sample catalog when the
// database is empty. Every step is idempotent, so running it on each
// startup is safe.
func Seed(ctx context.Context, repo *repository.Repository, log *zap.Logger) error {
	now := time.Now()

	admin, err := repo.User.FindByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if admin == nil {
		hash, err := utils.HashPassword("password123")
		if err != nil {
			return err
		}

		admin = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username:     "admin",
			Email:        "admin@flix.com",
			PasswordHash: hash,
			Role:         entity.RoleAdmin,
		}

		if err := repo.User.Create(ctx, admin); err != nil {
			return err
		}
		log.Info("Seeded default admin user", zap.String("username", "admin"))
	}

	count, err := repo.Movie.CountAll(ctx)
	if err != nil {
		return err
	}
	if count >= int64(len(sampleMovies)) {
		return nil
	}

	for _, m := range sampleMovies {
		existing, err := repo.Movie.FindByTitle(ctx, m.Title)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		movie := &entity.Movie{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Title:    m.Title,
			Synopsis: m.Synopsis,
			Poster:   m.Poster,
			Year:     m.Year,
			Genre:    m.Genre,
			Duration: m.Duration,
		}

		if err := repo.Movie.Create(ctx, movie); err != nil {
			return err
		}
	}

	// One sample review so the detail page has content out of the box
	dune, err := repo.Movie.FindByTitle(ctx, "Dune: Part One")
	if err != nil {
		return err
	}
	if dune != nil {
		existing, err := repo.Review.FindByUserAndMovie(ctx, admin.ID, dune.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			review := &entity.Review{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				UserID:  admin.ID,
				MovieID: dune.ID,
				Rating:  5,
				Text:    "A visually stunning and faithful adaptation. The sound design is incredible.",
			}
			if err := repo.Review.Create(ctx, review); err != nil {
				return err
			}
		}
	}

	log.Info("Seeded sample catalog", zap.Int("movies", len(sampleMovies)))
	return nil
}
