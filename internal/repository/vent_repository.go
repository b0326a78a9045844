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

// VentRepository stores private journal entries.
type VentRepository struct {
	collection *mongo.Collection
}

func NewVentRepository(db *mongo.Database) *VentRepository {
	return &VentRepository{collection: db.Collection("vents")}
}

func (r *VentRepository) CreateVent(ctx context.Context, vent *models.Vent) (*models.Vent, error) {
	vent.CreatedAt = time.Now()
	vent.UpdatedAt = vent.CreatedAt

	result, err := r.collection.InsertOne(ctx, vent)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vent: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	vent.ID = insertedID

	return vent, nil
}

// GetVentsByOwner returns a user's vents, newest first.
func (r *VentRepository) GetVentsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Vent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vents: %v", err)
	}
	defer cursor.Close(ctx)

	var vents []models.Vent
	if err := cursor.All(ctx, &vents); err != nil {
		return nil, fmt.Errorf("failed to decode vents: %v", err)
	}
	return vents, nil
}

func (r *VentRepository) GetVentByID(ctx context.Context, id primitive.ObjectID) (*models.Vent, error) {
	var vent models.Vent
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vent)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vent: %v", err)
	}
	return &vent, nil
}

// UpdateVent applies a partial update and bumps updated_at.
func (r *VentRepository) UpdateVent(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	update["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update vent: %v", err)
	}
	return nil
}

func (r *VentRepository) DeleteVent(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vent: %v", err)
	}
	return nil
}
