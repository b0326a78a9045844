package services

import (
	"context"
	"testing"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	args := m.Called(ctx, post)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPosts(ctx context.Context, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) LikePost(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

// MockPostCounter is a mock implementation of PostCounter
type MockPostCounter struct {
	mock.Mock
}

func (m *MockPostCounter) IncrementPostsCount(ctx context.Context, userID primitive.ObjectID, delta int) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

func newPostService() (*PostService, *MockPostRepository, *MockPostCounter) {
	repo := new(MockPostRepository)
	counter := new(MockPostCounter)
	return NewPostService(repo, counter), repo, counter
}

func TestCreatePost_BumpsAuthorCounter(t *testing.T) {
	service, repo, counter := newPostService()
	ctx := context.Background()

	author := primitive.NewObjectID()
	post := &models.Post{AuthorID: author, Content: "hello world"}

	repo.On("CreatePost", ctx, post).Return(&models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  author,
		Content:   "hello world",
		MediaType: models.MediaTypeText,
	}, nil)
	counter.On("IncrementPostsCount", ctx, author, 1).Return(nil)

	created, err := service.CreatePost(ctx, post)

	assert.NoError(t, err)
	assert.Equal(t, models.MediaTypeText, created.MediaType)
	counter.AssertCalled(t, "IncrementPostsCount", ctx, author, 1)
}

func TestCreatePost_RejectsEmptyContent(t *testing.T) {
	service, repo, _ := newPostService()

	_, err := service.CreatePost(context.Background(), &models.Post{
		AuthorID: primitive.NewObjectID(),
		Content:  "  ",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	repo.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestCreatePost_RejectsUnknownMediaType(t *testing.T) {
	service, _, _ := newPostService()

	_, err := service.CreatePost(context.Background(), &models.Post{
		AuthorID:  primitive.NewObjectID(),
		Content:   "clip",
		MediaType: "audio",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestGetFeed_ClampsLimit(t *testing.T) {
	service, repo, _ := newPostService()
	ctx := context.Background()

	repo.On("GetPosts", ctx, int64(50)).Return([]models.Post{}, nil)

	_, err := service.GetFeed(ctx, 500)

	assert.NoError(t, err)
	repo.AssertCalled(t, "GetPosts", ctx, int64(50))
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	service, repo, _ := newPostService()
	ctx := context.Background()

	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	repo.On("GetPostByID", ctx, postID).Return(&models.Post{
		ID:       postID,
		AuthorID: author,
	}, nil)

	err := service.DeletePost(ctx, stranger, postID)

	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	repo.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
}

func TestDeletePost_ByAuthor(t *testing.T) {
	service, repo, counter := newPostService()
	ctx := context.Background()

	author := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	repo.On("GetPostByID", ctx, postID).Return(&models.Post{
		ID:       postID,
		AuthorID: author,
	}, nil)
	repo.On("DeletePost", ctx, postID).Return(nil)
	counter.On("IncrementPostsCount", ctx, author, -1).Return(nil)

	err := service.DeletePost(ctx, author, postID)

	assert.NoError(t, err)
	counter.AssertCalled(t, "IncrementPostsCount", ctx, author, -1)
}

func TestDeletePost_NotFound(t *testing.T) {
	service, repo, _ := newPostService()
	ctx := context.Background()
	postID := primitive.NewObjectID()

	repo.On("GetPostByID", ctx, postID).Return(nil, nil)

	err := service.DeletePost(ctx, primitive.NewObjectID(), postID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLikePost_SecondLikeIsNoop(t *testing.T) {
	service, repo, _ := newPostService()
	ctx := context.Background()

	liker := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	repo.On("GetPostByID", ctx, postID).Return(&models.Post{ID: postID}, nil)
	// First like lands, second one is filtered out by the repository.
	repo.On("LikePost", ctx, postID, liker).Return(true, nil).Once()
	repo.On("LikePost", ctx, postID, liker).Return(false, nil).Once()

	assert.NoError(t, service.LikePost(ctx, liker, postID))
	assert.NoError(t, service.LikePost(ctx, liker, postID))
	repo.AssertNumberOfCalls(t, "LikePost", 2)
}

func TestLikePost_NotFound(t *testing.T) {
	service, repo, _ := newPostService()
	ctx := context.Background()
	postID := primitive.NewObjectID()

	repo.On("GetPostByID", ctx, postID).Return(nil, nil)

	err := service.LikePost(ctx, primitive.NewObjectID(), postID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "LikePost", mock.Anything, mock.Anything, mock.Anything)
}
