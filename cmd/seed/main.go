// Command seed populates the database with a few demo accounts, videos and
// comments for local development. It is destructive only in the sense that
// rerunning it adds another copy of everything that is not unique.
package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"vidora/internal/config"
	"vidora/internal/database"
	"vidora/internal/model"
	"vidora/internal/repository"
)

type seedUser struct {
	username string
	email    string
	password string
}

type seedVideo struct {
	owner      string
	title      string
	desc       string
	url        string
	categories []string
	duration   string
}

var users = []seedUser{
	{"alice", "alice@example.com", "password1"},
	{"bob", "bob@example.com", "password2"},
	{"carol", "carol@example.com", "password3"},
}

var videos = []seedVideo{
	{"alice", "Sunrise timelapse", "A week of sunrises in ninety seconds.", "https://cdn.example.com/v/sunrise.mp4", []string{"nature"}, "1:30"},
	{"alice", "City walk", "Downtown on a rainy evening.", "https://cdn.example.com/v/citywalk.mp4", []string{"travel", "city"}, "12:04"},
	{"bob", "Sourdough basics", "Starter, folding, baking.", "https://cdn.example.com/v/sourdough.mp4", []string{"cooking"}, "18:22"},
	{"carol", "First climb", "Top rope at the local gym.", "https://cdn.example.com/v/climb.mp4", []string{"sport"}, "6:47"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(cfg); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	created := map[string]*model.User{}

	for _, su := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Seed failed: %v", err)
		}

		user := &model.User{
			Username:       su.username,
			Email:          su.email,
			PasswordHashed: string(hash),
		}
		channel := &model.Channel{
			Name:        su.username,
			Description: fmt.Sprintf("%s's channel", su.username),
		}

		if err := userRepo.CreateWithChannel(ctx, user, channel); err != nil {
			log.Fatalf("Seed failed creating user %s: %v", su.username, err)
		}
		created[su.username] = user
		log.Printf("Seeded user %s (id=%d, channel=%d)", user.Username, user.ID, channel.ID)
	}

	for _, sv := range videos {
		owner := created[sv.owner]
		video := &model.Video{
			Title:       sv.title,
			Description: sv.desc,
			VideoURL:    sv.url,
			UserID:      owner.ID,
			ChannelID:   *owner.ChannelID,
			Categories:  sv.categories,
			Duration:    &sv.duration,
		}

		if err := videoRepo.Create(ctx, video); err != nil {
			log.Fatalf("Seed failed creating video %q: %v", sv.title, err)
		}
		log.Printf("Seeded video %q (id=%d)", video.Title, video.ID)

		// A first comment from another seeded account keeps listings from
		// looking empty.
		for _, su := range users {
			if su.username == sv.owner {
				continue
			}
			commenter := created[su.username]
			comment := &model.Comment{
				VideoID:   video.ID,
				UserID:    commenter.ID,
				Username:  commenter.Username,
				AvatarURL: commenter.AvatarURL,
				Text:      "Nice one!",
			}
			if err := commentRepo.Create(ctx, comment); err != nil {
				log.Fatalf("Seed failed creating comment: %v", err)
			}
			break
		}
	}

	log.Println("Seed complete")
}
