package services

import (
	"context"
	"strings"
	"time"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageRepository is the storage surface the message service needs.
type MessageRepository interface {
	InsertMessage(ctx context.Context, msg *models.Message) (*models.Message, error)
	GetConversation(ctx context.Context, userID, otherID primitive.ObjectID) ([]models.Message, error)
	GetMessageByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	SetReadAt(ctx context.Context, id primitive.ObjectID, readAt time.Time) error
	CountUnread(ctx context.Context, receiverID primitive.ObjectID) (int64, error)
}

// ConnectionChecker answers whether two users are connected.
type ConnectionChecker interface {
	IsConnected(ctx context.Context, a, b primitive.ObjectID) (bool, error)
}

// MessageService handles direct messages between connected users.
type MessageService struct {
	repo        MessageRepository
	connections ConnectionChecker
}

func NewMessageService(repo MessageRepository, connections ConnectionChecker) *MessageService {
	return &MessageService{
		repo:        repo,
		connections: connections,
	}
}

// SendMessage appends a new unread message. Sender and receiver must be
// connected; blank content is rejected.
func (s *MessageService) SendMessage(ctx context.Context, senderID, receiverID primitive.ObjectID, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrEmptyContent
	}

	connected, err := s.connections.IsConnected(ctx, senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, apperrors.ErrNotConnected
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	return s.repo.InsertMessage(ctx, msg)
}

// GetConversation returns the thread between the caller and another user,
// ascending by creation time.
func (s *MessageService) GetConversation(ctx context.Context, userID, otherID primitive.ObjectID) ([]models.Message, error) {
	return s.repo.GetConversation(ctx, userID, otherID)
}

// MarkAsRead stamps read_at on a message. Only the receiver may mark a
// message read; repeat calls leave the original timestamp untouched.
func (s *MessageService) MarkAsRead(ctx context.Context, actorID, messageID primitive.ObjectID) error {
	msg, err := s.repo.GetMessageByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg == nil {
		return apperrors.ErrNotFound
	}
	if msg.ReceiverID != actorID {
		return apperrors.ErrNotAuthorized
	}
	if msg.ReadAt != nil {
		// Already read; the transition is one-way.
		return nil
	}

	return s.repo.SetReadAt(ctx, messageID, time.Now())
}

// UnreadCount counts messages addressed to the user that are still unread.
func (s *MessageService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
