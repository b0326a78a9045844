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
)

// ConnectionRepository stores connection requests between user pairs.
type ConnectionRepository struct {
	collection *mongo.Collection
}

func NewConnectionRepository(db *mongo.Database) *ConnectionRepository {
	return &ConnectionRepository{
		collection: db.Collection("connection_requests"),
	}
}

// CreateRequest inserts a new pending request.
func (r *ConnectionRepository) CreateRequest(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionRequest, error) {
	req.CreatedAt = time.Now()
	req.Status = models.ConnectionPending

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// GetRequestByID fetches a single request, nil if it does not exist.
func (r *ConnectionRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find connection request: %v", err)
	}
	return &request, nil
}

// GetActiveRequestBetween returns the pending or accepted request between two
// users in either direction, or nil when the pair has no active request.
func (r *ConnectionRepository) GetActiveRequestBetween(ctx context.Context, a, b primitive.ObjectID) (*models.ConnectionRequest, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"requester_id": a, "receiver_id": b},
			{"requester_id": b, "receiver_id": a},
		},
	}

	var request models.ConnectionRequest
	err := r.collection.FindOne(ctx, filter).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active request: %v", err)
	}
	return &request, nil
}

// GetPendingByReceiver fetches all incoming pending requests for a user.
func (r *ConnectionRepository) GetPendingByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]models.ConnectionRequest, error) {
	filter := bson.M{"receiver_id": receiverID, "status": models.ConnectionPending}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find connection requests: %v", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ConnectionRequest
	for cursor.Next(ctx) {
		var req models.ConnectionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// UpdateRequestStatus sets the status of a request.
func (r *ConnectionRepository) UpdateRequestStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	return nil
}

// DeleteRequest removes a request document outright. Rejections leave no
// trace, so the pair can start over.
func (r *ConnectionRepository) DeleteRequest(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete connection request: %v", err)
	}
	return nil
}

// DeleteAcceptedBetween removes the accepted request linking two users.
func (r *ConnectionRepository) DeleteAcceptedBetween(ctx context.Context, a, b primitive.ObjectID) error {
	filter := bson.M{
		"status": models.ConnectionAccepted,
		"$or": []bson.M{
			{"requester_id": a, "receiver_id": b},
			{"requester_id": b, "receiver_id": a},
		},
	}
	_, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete accepted request: %v", err)
	}
	return nil
}

// GetConnectedIDs returns every user on the other side of an accepted request.
func (r *ConnectionRepository) GetConnectedIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{
		"status": models.ConnectionAccepted,
		"$or": []bson.M{
			{"requester_id": userID},
			{"receiver_id": userID},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve connections: %v", err)
	}
	defer cursor.Close(ctx)

	var ids []primitive.ObjectID
	for cursor.Next(ctx) {
		var req models.ConnectionRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}

		if req.RequesterID == userID {
			ids = append(ids, req.ReceiverID)
		} else {
			ids = append(ids, req.RequesterID)
		}
	}

	return ids, nil
}
