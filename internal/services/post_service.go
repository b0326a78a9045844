package services

import (
	"context"
	"strings"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostRepository is the storage surface the post service needs.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPosts(ctx context.Context, limit int64) ([]models.Post, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	LikePost(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
}

// PostCounter keeps the denormalized per-user post counter in sync.
type PostCounter interface {
	IncrementPostsCount(ctx context.Context, userID primitive.ObjectID, delta int) error
}

// PostService handles the public feed.
type PostService struct {
	repo    PostRepository
	counter PostCounter
}

func NewPostService(repo PostRepository, counter PostCounter) *PostService {
	return &PostService{
		repo:    repo,
		counter: counter,
	}
}

// CreatePost validates and stores a new post for the author.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if strings.TrimSpace(post.Content) == "" && post.MediaURL == "" {
		return nil, apperrors.ErrEmptyContent
	}

	switch post.MediaType {
	case models.MediaTypeText, models.MediaTypeImage, models.MediaTypeVideo:
	case "":
		post.MediaType = models.MediaTypeText
	default:
		return nil, apperrors.ErrInvalidInput
	}

	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := s.counter.IncrementPostsCount(ctx, post.AuthorID, 1); err != nil {
		logrus.WithError(err).Warn("Failed to bump posts count")
	}

	return created, nil
}

// GetFeed returns the newest posts first.
func (s *PostService) GetFeed(ctx context.Context, limit int64) ([]models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.GetPosts(ctx, limit)
}

// GetPost fetches one post.
func (s *PostService) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.ErrNotFound
	}
	return post, nil
}

// DeletePost removes a post. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID primitive.ObjectID) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperrors.ErrNotFound
	}
	if post.AuthorID != actorID {
		return apperrors.ErrNotAuthorized
	}

	if err := s.repo.DeletePost(ctx, postID); err != nil {
		return err
	}

	if err := s.counter.IncrementPostsCount(ctx, post.AuthorID, -1); err != nil {
		logrus.WithError(err).Warn("Failed to decrement posts count")
	}
	return nil
}

// LikePost records one like per user per post. Liking a post twice is a
// no-op rather than an error.
func (s *PostService) LikePost(ctx context.Context, actorID, postID primitive.ObjectID) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return apperrors.ErrNotFound
	}

	_, err = s.repo.LikePost(ctx, postID, actorID)
	return err
}
