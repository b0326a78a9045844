package services

import (
	"context"
	"testing"
	"time"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) InsertMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) GetConversation(ctx context.Context, userID, otherID primitive.ObjectID) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) GetMessageByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockMessageRepository) SetReadAt(ctx context.Context, id primitive.ObjectID, readAt time.Time) error {
	args := m.Called(ctx, id, readAt)
	return args.Error(0)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, receiverID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

// MockConnectionChecker is a mock implementation of ConnectionChecker
type MockConnectionChecker struct {
	mock.Mock
}

func (m *MockConnectionChecker) IsConnected(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func newMessageService() (*MessageService, *MockMessageRepository, *MockConnectionChecker) {
	repo := new(MockMessageRepository)
	checker := new(MockConnectionChecker)
	return NewMessageService(repo, checker), repo, checker
}

func TestSendMessage_DeliversToConnectedUser(t *testing.T) {
	service, repo, checker := newMessageService()
	ctx := context.Background()

	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	checker.On("IsConnected", ctx, sender, receiver).Return(true, nil)
	repo.On("InsertMessage", ctx, mock.AnythingOfType("*models.Message")).
		Return(&models.Message{
			ID:         primitive.NewObjectID(),
			SenderID:   sender,
			ReceiverID: receiver,
			Content:    "hello",
			CreatedAt:  time.Now(),
		}, nil)

	msg, err := service.SendMessage(ctx, sender, receiver, "hello")

	assert.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.Nil(t, msg.ReadAt)
}

func TestSendMessage_RequiresConnection(t *testing.T) {
	service, repo, checker := newMessageService()
	ctx := context.Background()

	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	checker.On("IsConnected", ctx, sender, receiver).Return(false, nil)

	_, err := service.SendMessage(ctx, sender, receiver, "hello")

	assert.ErrorIs(t, err, apperrors.ErrNotConnected)
	repo.AssertNotCalled(t, "InsertMessage", mock.Anything, mock.Anything)
}

func TestSendMessage_RejectsBlankContent(t *testing.T) {
	service, _, checker := newMessageService()

	_, err := service.SendMessage(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "   ")

	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	checker.AssertNotCalled(t, "IsConnected", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkAsRead_StampsOnce(t *testing.T) {
	service, repo, _ := newMessageService()
	ctx := context.Background()

	receiver := primitive.NewObjectID()
	messageID := primitive.NewObjectID()

	repo.On("GetMessageByID", ctx, messageID).Return(&models.Message{
		ID:         messageID,
		ReceiverID: receiver,
	}, nil)
	repo.On("SetReadAt", ctx, messageID, mock.AnythingOfType("time.Time")).Return(nil)

	err := service.MarkAsRead(ctx, receiver, messageID)

	assert.NoError(t, err)
	repo.AssertNumberOfCalls(t, "SetReadAt", 1)
}

func TestMarkAsRead_IsIdempotent(t *testing.T) {
	service, repo, _ := newMessageService()
	ctx := context.Background()

	receiver := primitive.NewObjectID()
	messageID := primitive.NewObjectID()
	readAt := time.Now().Add(-time.Hour)

	repo.On("GetMessageByID", ctx, messageID).Return(&models.Message{
		ID:         messageID,
		ReceiverID: receiver,
		ReadAt:     &readAt,
	}, nil)

	// Second read of an already-read message succeeds without touching the stamp.
	err := service.MarkAsRead(ctx, receiver, messageID)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "SetReadAt", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkAsRead_ReceiverOnly(t *testing.T) {
	service, repo, _ := newMessageService()
	ctx := context.Background()

	sender := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	messageID := primitive.NewObjectID()

	repo.On("GetMessageByID", ctx, messageID).Return(&models.Message{
		ID:         messageID,
		SenderID:   sender,
		ReceiverID: receiver,
	}, nil)

	err := service.MarkAsRead(ctx, sender, messageID)

	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestMarkAsRead_NotFound(t *testing.T) {
	service, repo, _ := newMessageService()
	ctx := context.Background()
	messageID := primitive.NewObjectID()

	repo.On("GetMessageByID", ctx, messageID).Return(nil, nil)

	err := service.MarkAsRead(ctx, primitive.NewObjectID(), messageID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetConversation_SameThreadFromBothSides(t *testing.T) {
	service, repo, _ := newMessageService()
	ctx := context.Background()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	thread := []models.Message{
		{SenderID: a, ReceiverID: b, Content: "hey", CreatedAt: time.Now().Add(-2 * time.Minute)},
		{SenderID: b, ReceiverID: a, Content: "hi!", CreatedAt: time.Now().Add(-time.Minute)},
	}
	repo.On("GetConversation", ctx, a, b).Return(thread, nil)
	repo.On("GetConversation", ctx, b, a).Return(thread, nil)

	fromA, err := service.GetConversation(ctx, a, b)
	assert.NoError(t, err)
	fromB, err := service.GetConversation(ctx, b, a)
	assert.NoError(t, err)

	assert.Equal(t, fromA, fromB)
	assert.True(t, fromA[0].CreatedAt.Before(fromA[1].CreatedAt))
}

func TestUnreadCount(t *testing.T) {
	service, repo, _ := newMessageService()
	ctx := context.Background()

	userID := primitive.NewObjectID()
	repo.On("CountUnread", ctx, userID).Return(int64(3), nil)

	count, err := service.UnreadCount(ctx, userID)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
