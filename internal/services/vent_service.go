package services

import (
	"context"
	"strings"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VentRepository is the storage surface the vent service needs.
type VentRepository interface {
	CreateVent(ctx context.Context, vent *models.Vent) (*models.Vent, error)
	GetVentsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Vent, error)
	GetVentByID(ctx context.Context, id primitive.ObjectID) (*models.Vent, error)
	UpdateVent(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteVent(ctx context.Context, id primitive.ObjectID) error
}

// VentService handles private journal entries. Every operation is scoped to
// the owner; vents are never visible to other users.
type VentService struct {
	repo VentRepository
}

func NewVentService(repo VentRepository) *VentService {
	return &VentService{repo: repo}
}

func (s *VentService) CreateVent(ctx context.Context, ownerID primitive.ObjectID, content string, isPrivate bool) (*models.Vent, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrEmptyContent
	}

	vent := &models.Vent{
		OwnerID:   ownerID,
		Content:   content,
		IsPrivate: isPrivate,
	}
	return s.repo.CreateVent(ctx, vent)
}

func (s *VentService) ListVents(ctx context.Context, ownerID primitive.ObjectID) ([]models.Vent, error) {
	return s.repo.GetVentsByOwner(ctx, ownerID)
}

// UpdateVent edits the content or privacy of an owned vent.
func (s *VentService) UpdateVent(ctx context.Context, ownerID, ventID primitive.ObjectID, content string, isPrivate bool) error {
	vent, err := s.ownedVent(ctx, ownerID, ventID)
	if err != nil {
		return err
	}

	if strings.TrimSpace(content) == "" {
		return apperrors.ErrEmptyContent
	}

	return s.repo.UpdateVent(ctx, vent.ID, bson.M{
		"content":    content,
		"is_private": isPrivate,
	})
}

func (s *VentService) DeleteVent(ctx context.Context, ownerID, ventID primitive.ObjectID) error {
	vent, err := s.ownedVent(ctx, ownerID, ventID)
	if err != nil {
		return err
	}
	return s.repo.DeleteVent(ctx, vent.ID)
}

// AttachVoice links an uploaded voice note to an owned vent.
func (s *VentService) AttachVoice(ctx context.Context, ownerID, ventID primitive.ObjectID, voiceURL string, durationSecs int) error {
	vent, err := s.ownedVent(ctx, ownerID, ventID)
	if err != nil {
		return err
	}

	return s.repo.UpdateVent(ctx, vent.ID, bson.M{
		"voice_url":           voiceURL,
		"voice_duration_secs": durationSecs,
	})
}

func (s *VentService) ownedVent(ctx context.Context, ownerID, ventID primitive.ObjectID) (*models.Vent, error) {
	vent, err := s.repo.GetVentByID(ctx, ventID)
	if err != nil {
		return nil, err
	}
	if vent == nil {
		return nil, apperrors.ErrNotFound
	}
	if vent.OwnerID != ownerID {
		return nil, apperrors.ErrNotAuthorized
	}
	return vent, nil
}
