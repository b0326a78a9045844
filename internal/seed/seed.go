package seed

import (
	"context"
	"fmt"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/internal/repository"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Load inserts demo users, connections and posts when the database is empty.
// It replaces the hardcoded fixtures the old frontend carried around.
func Load(ctx context.Context, users *repository.UserRepository, connections *repository.ConnectionRepository, posts *repository.PostRepository) error {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check users collection: %v", err)
	}
	if count > 0 {
		return nil
	}

	logrus.Info("Seeding demo data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %v", err)
	}

	demo := []*models.User{
		{Username: "john_doe", Email: "john@example.com", FullName: "John Doe", Bio: "Coffee enthusiast", Role: "user"},
		{Username: "jane_smith", Email: "jane@example.com", FullName: "Jane Smith", Bio: "Photographer", Role: "user"},
		{Username: "mike_jones", Email: "mike@example.com", FullName: "Mike Jones", Bio: "Runner and reader", Role: "user"},
		{Username: "admin", Email: "admin@example.com", FullName: "Site Admin", Role: "admin"},
	}

	for _, user := range demo {
		user.HashedPassword = string(hash)
		if _, err := users.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %v", user.Username, err)
		}
	}

	// John and Jane are already connected; Mike has a request out to John.
	accepted := &models.ConnectionRequest{RequesterID: demo[0].ID, ReceiverID: demo[1].ID}
	if _, err := connections.CreateRequest(ctx, accepted); err != nil {
		return fmt.Errorf("failed to seed connection: %v", err)
	}
	if err := connections.UpdateRequestStatus(ctx, accepted.ID, models.ConnectionAccepted); err != nil {
		return err
	}
	if err := users.AddFriend(ctx, demo[0].ID, demo[1].ID); err != nil {
		return err
	}
	if err := users.AddFriend(ctx, demo[1].ID, demo[0].ID); err != nil {
		return err
	}

	pending := &models.ConnectionRequest{RequesterID: demo[2].ID, ReceiverID: demo[0].ID}
	if _, err := connections.CreateRequest(ctx, pending); err != nil {
		return fmt.Errorf("failed to seed pending request: %v", err)
	}

	feed := []*models.Post{
		{AuthorID: demo[0].ID, Content: "Just tried the new coffee place downtown. Highly recommend!", MediaType: models.MediaTypeText},
		{AuthorID: demo[1].ID, Content: "Golden hour by the lake.", MediaType: models.MediaTypeImage, MediaURL: "/uploads/demo-lake.jpg"},
		{AuthorID: demo[2].ID, Content: "Sometimes you just need to put it all out there.", MediaType: models.MediaTypeText, IsAnonymous: true},
	}
	for _, post := range feed {
		if _, err := posts.CreatePost(ctx, post); err != nil {
			return fmt.Errorf("failed to seed post: %v", err)
		}
		if err := users.IncrementPostsCount(ctx, post.AuthorID, 1); err != nil {
			return err
		}
	}

	logrus.Infof("Seeded %d demo users and %d posts", len(demo), len(feed))
	return nil
}
