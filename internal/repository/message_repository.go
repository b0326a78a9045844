package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/askarbek-a/linkup/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository stores direct messages.
type MessageRepository struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{collection: db.Collection("messages")}
}

// InsertMessage appends a new message with the current timestamp.
func (r *MessageRepository) InsertMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %v", err)
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return msg, nil
}

// GetConversation returns all messages between two users, oldest first.
func (r *MessageRepository) GetConversation(ctx context.Context, userID, otherID primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"sender_id": userID, "receiver_id": otherID},
			{"sender_id": otherID, "receiver_id": userID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	for cursor.Next(ctx) {
		var msg models.Message
		if err := cursor.Decode(&msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// GetMessageByID fetches a single message, nil if it does not exist.
func (r *MessageRepository) GetMessageByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var msg models.Message
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find message: %v", err)
	}
	return &msg, nil
}

// SetReadAt stamps read_at only if it is still unset, keeping the
// transition one-way.
func (r *MessageRepository) SetReadAt(ctx context.Context, id primitive.ObjectID, readAt time.Time) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "read_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"read_at": readAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark message as read: %v", err)
	}
	return nil
}

// CountUnread counts unread messages addressed to a user.
func (r *MessageRepository) CountUnread(ctx context.Context, receiverID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"receiver_id": receiverID,
		"read_at":     bson.M{"$exists": false},
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %v", err)
	}
	return count, nil
}

// GetUnreadOlderThan returns unread messages created before the cutoff.
// Used by the unread-digest job.
func (r *MessageRepository) GetUnreadOlderThan(ctx context.Context, cutoff time.Time) ([]models.Message, error) {
	filter := bson.M{
		"read_at":    bson.M{"$exists": false},
		"created_at": bson.M{"$lt": cutoff},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unread messages: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %v", err)
	}
	return messages, nil
}
