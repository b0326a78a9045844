package services

import (
	"context"
	"fmt"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionRepository is the storage surface the connection service needs.
type ConnectionRepository interface {
	CreateRequest(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error)
	GetActiveRequestBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error)
	GetPendingByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]models.ConnectionRequest, error)
	UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteRequest(ctx context.Context, id primitive.ObjectID) error
	DeleteAcceptedBetween(ctx context.Context, a, b primitive.ObjectID) error
	GetConnectedIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// ConnectionUserRepository is the slice of the user store the service touches.
type ConnectionUserRepository interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveFriend(ctx context.Context, userID1, userID2 primitive.ObjectID) error
}

// Notifier records an in-app notification for a user.
type Notifier interface {
	CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error
}

// Mailer sends an email. May be nil to disable outgoing mail.
type Mailer interface {
	Send(to, subject, body string) error
}

// ConnectionService owns the connection-request state machine:
// pending → accepted, or pending → deleted on rejection. An accepted
// request is permanent until the pair disconnects.
type ConnectionService struct {
	repo     ConnectionRepository
	userRepo ConnectionUserRepository
	notifier Notifier
	mailer   Mailer
}

// NewConnectionService creates a new ConnectionService.
func NewConnectionService(repo ConnectionRepository, userRepo ConnectionUserRepository, notifier Notifier, mailer Mailer) *ConnectionService {
	return &ConnectionService{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
		mailer:   mailer,
	}
}

// SendRequest creates a new pending request. At most one active request may
// exist per user pair, in either direction.
func (s *ConnectionService) SendRequest(ctx context.Context, requesterID, receiverID primitive.ObjectID) (*models.ConnectionRequest, error) {
	if requesterID == receiverID {
		return nil, apperrors.ErrSelfRequest
	}

	receiver, err := s.userRepo.GetUserByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("receiver lookup failed: %w", apperrors.ErrNotFound)
	}

	existing, err := s.repo.GetActiveRequestBetween(ctx, requesterID, receiverID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateRequest
	}

	request := &models.ConnectionRequest{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
	}

	created, err := s.repo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	if err := s.notifier.CreateNotification(ctx, receiverID, "connection_request",
		"New connection request",
		"Someone wants to connect with you.",
		&created.ID,
	); err != nil {
		logrus.WithError(err).Warn("Failed to create connection request notification")
	}

	if s.mailer != nil {
		if err := s.mailer.Send(receiver.Email, "New connection request on LinkUp",
			"You have a new connection request waiting. Log in to respond."); err != nil {
			logrus.WithError(err).Warn("Failed to send connection request email")
		}
	}

	return created, nil
}

// AcceptRequest transitions a pending request to accepted. Only the receiver
// may accept, and only while the request is still pending.
func (s *ConnectionService) AcceptRequest(ctx context.Context, actorID, requestID primitive.ObjectID) error {
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return apperrors.ErrNotFound
	}
	if request.ReceiverID != actorID {
		return apperrors.ErrNotAuthorized
	}
	if request.Status != models.ConnectionPending {
		return apperrors.ErrInvalidTransition
	}

	if err := s.repo.UpdateRequestStatus(ctx, requestID, models.ConnectionAccepted); err != nil {
		return err
	}

	// Cross-link both users' friend lists
	if err := s.userRepo.AddFriend(ctx, request.RequesterID, request.ReceiverID); err != nil {
		return fmt.Errorf("failed to add friend to requester: %v", err)
	}
	if err := s.userRepo.AddFriend(ctx, request.ReceiverID, request.RequesterID); err != nil {
		return fmt.Errorf("failed to add friend to receiver: %v", err)
	}

	if err := s.notifier.CreateNotification(ctx, request.RequesterID, "connection_accepted",
		"Connection accepted",
		"Your connection request was accepted.",
		&request.ID,
	); err != nil {
		logrus.WithError(err).Warn("Failed to create acceptance notification")
	}

	return nil
}

// RejectRequest deletes a pending request outright. No tombstone survives,
// so the requester may send a fresh request afterwards.
func (s *ConnectionService) RejectRequest(ctx context.Context, actorID, requestID primitive.ObjectID) error {
	request, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request == nil {
		return apperrors.ErrNotFound
	}
	if request.ReceiverID != actorID {
		return apperrors.ErrNotAuthorized
	}
	if request.Status != models.ConnectionPending {
		return apperrors.ErrInvalidTransition
	}

	return s.repo.DeleteRequest(ctx, requestID)
}

// IsConnected reports whether an accepted request links the two users.
func (s *ConnectionService) IsConnected(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	request, err := s.repo.GetActiveRequestBetween(ctx, a, b)
	if err != nil {
		return false, err
	}
	return request != nil && request.Status == models.ConnectionAccepted, nil
}

// IsPending reports whether a pending request exists between the two users.
func (s *ConnectionService) IsPending(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	request, err := s.repo.GetActiveRequestBetween(ctx, a, b)
	if err != nil {
		return false, err
	}
	return request != nil && request.Status == models.ConnectionPending, nil
}

// GetPendingRequests fetches all incoming pending requests for the receiver.
func (s *ConnectionService) GetPendingRequests(ctx context.Context, receiverID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	return s.repo.GetPendingByReceiver(ctx, receiverID)
}

// GetConnectedUsers returns the public profiles on the other side of every
// accepted request.
func (s *ConnectionService) GetConnectedUsers(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	ids, err := s.repo.GetConnectedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection IDs: %v", err)
	}

	if len(ids) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}

	connected := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		connected = append(connected, user.Public())
	}

	return connected, nil
}

// Disconnect severs an accepted connection between two users.
func (s *ConnectionService) Disconnect(ctx context.Context, userID, otherID primitive.ObjectID) error {
	connected, err := s.IsConnected(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if !connected {
		return apperrors.ErrNotConnected
	}

	if err := s.repo.DeleteAcceptedBetween(ctx, userID, otherID); err != nil {
		return err
	}
	return s.userRepo.RemoveFriend(ctx, userID, otherID)
}
