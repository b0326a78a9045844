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

// MockConnectionRepository is a mock implementation of ConnectionRepository
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) CreateRequest(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRepository) GetActiveRequestBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRepository) GetPendingByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionRequest), args.Error(1)
}

func (m *MockConnectionRepository) UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockConnectionRepository) DeleteRequest(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConnectionRepository) DeleteAcceptedBetween(ctx context.Context, a, b primitive.ObjectID) error {
	args := m.Called(ctx, a, b)
	return args.Error(0)
}

func (m *MockConnectionRepository) GetConnectedIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

// MockUserStore is a mock implementation of ConnectionUserRepository
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserStore) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

func (m *MockUserStore) RemoveFriend(ctx context.Context, userID1, userID2 primitive.ObjectID) error {
	args := m.Called(ctx, userID1, userID2)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	args := m.Called(ctx, userID, notifType, title, message, targetID)
	return args.Error(0)
}

func newConnectionService() (*ConnectionService, *MockConnectionRepository, *MockUserStore, *MockNotifier) {
	repo := new(MockConnectionRepository)
	users := new(MockUserStore)
	notifier := new(MockNotifier)
	return NewConnectionService(repo, users, notifier, nil), repo, users, notifier
}

func TestSendRequest_CreatesPending(t *testing.T) {
	service, repo, users, notifier := newConnectionService()
	ctx := context.Background()

	requester := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	users.On("GetUserByID", ctx, receiver).Return(&models.User{ID: receiver, Email: "jane@example.com"}, nil)
	repo.On("GetActiveRequestBetween", ctx, requester, receiver).Return(nil, nil)
	repo.On("CreateRequest", ctx, mock.AnythingOfType("*models.ConnectionRequest")).
		Return(&models.ConnectionRequest{
			ID:          primitive.NewObjectID(),
			RequesterID: requester,
			ReceiverID:  receiver,
			Status:      models.ConnectionPending,
		}, nil)
	notifier.On("CreateNotification", ctx, receiver, "connection_request", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	request, err := service.SendRequest(ctx, requester, receiver)

	assert.NoError(t, err)
	assert.Equal(t, models.ConnectionPending, request.Status)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSendRequest_RejectsSelf(t *testing.T) {
	service, _, _, _ := newConnectionService()
	userID := primitive.NewObjectID()

	_, err := service.SendRequest(context.Background(), userID, userID)

	assert.ErrorIs(t, err, apperrors.ErrSelfRequest)
}

func TestSendRequest_RejectsDuplicate(t *testing.T) {
	service, repo, users, _ := newConnectionService()
	ctx := context.Background()

	requester := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	users.On("GetUserByID", ctx, receiver).Return(&models.User{ID: receiver}, nil)
	repo.On("GetActiveRequestBetween", ctx, requester, receiver).
		Return(&models.ConnectionRequest{Status: models.ConnectionPending}, nil)

	_, err := service.SendRequest(ctx, requester, receiver)

	assert.ErrorIs(t, err, apperrors.ErrDuplicateRequest)
	repo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
}

func TestSendRequest_RejectsDuplicateReverseDirection(t *testing.T) {
	service, repo, users, _ := newConnectionService()
	ctx := context.Background()

	requester := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	users.On("GetUserByID", ctx, receiver).Return(&models.User{ID: receiver}, nil)
	// The earlier request went the other way, from receiver to requester.
	repo.On("GetActiveRequestBetween", ctx, requester, receiver).
		Return(&models.ConnectionRequest{
			RequesterID: receiver,
			ReceiverID:  requester,
			Status:      models.ConnectionAccepted,
		}, nil)

	_, err := service.SendRequest(ctx, requester, receiver)

	assert.ErrorIs(t, err, apperrors.ErrDuplicateRequest)
}

func TestAcceptRequest_TransitionsAndLinksFriends(t *testing.T) {
	service, repo, users, notifier := newConnectionService()
	ctx := context.Background()

	requester := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	requestID := primitive.NewObjectID()

	repo.On("GetRequestByID", ctx, requestID).Return(&models.ConnectionRequest{
		ID:          requestID,
		RequesterID: requester,
		ReceiverID:  receiver,
		Status:      models.ConnectionPending,
	}, nil)
	repo.On("UpdateRequestStatus", ctx, requestID, models.ConnectionAccepted).Return(nil)
	users.On("AddFriend", ctx, requester, receiver).Return(nil)
	users.On("AddFriend", ctx, receiver, requester).Return(nil)
	notifier.On("CreateNotification", ctx, requester, "connection_accepted", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := service.AcceptRequest(ctx, receiver, requestID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestAcceptRequest_OnlyReceiverMayAccept(t *testing.T) {
	service, repo, _, _ := newConnectionService()
	ctx := context.Background()

	requester := primitive.NewObjectID()
	receiver := primitive.NewObjectID()
	requestID := primitive.NewObjectID()

	repo.On("GetRequestByID", ctx, requestID).Return(&models.ConnectionRequest{
		ID:          requestID,
		RequesterID: requester,
		ReceiverID:  receiver,
		Status:      models.ConnectionPending,
	}, nil)

	// The requester trying to accept their own request is forbidden.
	err := service.AcceptRequest(ctx, requester, requestID)

	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	repo.AssertNotCalled(t, "UpdateRequestStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptRequest_NonPendingIsInvalid(t *testing.T) {
	service, repo, _, _ := newConnectionService()
	ctx := context.Background()

	receiver := primitive.NewObjectID()
	requestID := primitive.NewObjectID()

	repo.On("GetRequestByID", ctx, requestID).Return(&models.ConnectionRequest{
		ID:         requestID,
		ReceiverID: receiver,
		Status:     models.ConnectionAccepted,
	}, nil)

	err := service.AcceptRequest(ctx, receiver, requestID)

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestAcceptRequest_NotFound(t *testing.T) {
	service, repo, _, _ := newConnectionService()
	ctx := context.Background()
	requestID := primitive.NewObjectID()

	repo.On("GetRequestByID", ctx, requestID).Return(nil, nil)

	err := service.AcceptRequest(ctx, primitive.NewObjectID(), requestID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRejectRequest_DeletesOutright(t *testing.T) {
	service, repo, _, _ := newConnectionService()
	ctx := context.Background()

	receiver := primitive.NewObjectID()
	requestID := primitive.NewObjectID()

	repo.On("GetRequestByID", ctx, requestID).Return(&models.ConnectionRequest{
		ID:         requestID,
		ReceiverID: receiver,
		Status:     models.ConnectionPending,
	}, nil)
	repo.On("DeleteRequest", ctx, requestID).Return(nil)

	err := service.RejectRequest(ctx, receiver, requestID)

	assert.NoError(t, err)
	repo.AssertCalled(t, "DeleteRequest", ctx, requestID)
}

func TestResendAfterReject(t *testing.T) {
	service, repo, users, notifier := newConnectionService()
	ctx := context.Background()

	requester := primitive.NewObjectID()
	receiver := primitive.NewObjectID()

	// After a rejection no record survives, so the pair looks clean again.
	users.On("GetUserByID", ctx, receiver).Return(&models.User{ID: receiver}, nil)
	repo.On("GetActiveRequestBetween", ctx, requester, receiver).Return(nil, nil)
	repo.On("CreateRequest", ctx, mock.AnythingOfType("*models.ConnectionRequest")).
		Return(&models.ConnectionRequest{Status: models.ConnectionPending}, nil)
	notifier.On("CreateNotification", ctx, receiver, "connection_request", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := service.SendRequest(ctx, requester, receiver)

	assert.NoError(t, err)
}

func TestIsConnected_BothDirections(t *testing.T) {
	service, repo, _, _ := newConnectionService()
	ctx := context.Background()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	accepted := &models.ConnectionRequest{
		RequesterID: a,
		ReceiverID:  b,
		Status:      models.ConnectionAccepted,
	}
	repo.On("GetActiveRequestBetween", ctx, a, b).Return(accepted, nil)
	repo.On("GetActiveRequestBetween", ctx, b, a).Return(accepted, nil)

	fromA, err := service.IsConnected(ctx, a, b)
	assert.NoError(t, err)
	fromB, err := service.IsConnected(ctx, b, a)
	assert.NoError(t, err)

	assert.True(t, fromA)
	assert.True(t, fromB)
}

func TestIsPending_DoesNotCountAccepted(t *testing.T) {
	service, repo, _, _ := newConnectionService()
	ctx := context.Background()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	repo.On("GetActiveRequestBetween", ctx, a, b).
		Return(&models.ConnectionRequest{Status: models.ConnectionAccepted}, nil)

	pending, err := service.IsPending(ctx, a, b)

	assert.NoError(t, err)
	assert.False(t, pending)
}

func TestGetConnectedUsers_ReturnsPublicProfiles(t *testing.T) {
	service, repo, users, _ := newConnectionService()
	ctx := context.Background()

	userID := primitive.NewObjectID()
	friendID := primitive.NewObjectID()

	repo.On("GetConnectedIDs", ctx, userID).Return([]primitive.ObjectID{friendID}, nil)
	users.On("GetUsersByIDs", ctx, []primitive.ObjectID{friendID}).Return([]models.User{
		{ID: friendID, Username: "jane_smith", FullName: "Jane Smith", Email: "jane@example.com"},
	}, nil)

	connected, err := service.GetConnectedUsers(ctx, userID)

	assert.NoError(t, err)
	assert.Len(t, connected, 1)
	assert.Equal(t, "jane_smith", connected[0].Username)
}

func TestDisconnect_RequiresConnection(t *testing.T) {
	service, repo, _, _ := newConnectionService()
	ctx := context.Background()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	repo.On("GetActiveRequestBetween", ctx, a, b).Return(nil, nil)

	err := service.Disconnect(ctx, a, b)

	assert.ErrorIs(t, err, apperrors.ErrNotConnected)
}
