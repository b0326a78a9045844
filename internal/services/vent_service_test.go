package services

import (
	"context"
	"testing"

	"github.com/askarbek-a/linkup/internal/models"
	"github.com/askarbek-a/linkup/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockVentRepository is a mock implementation of VentRepository
type MockVentRepository struct {
	mock.Mock
}

func (m *MockVentRepository) CreateVent(ctx context.Context, vent *models.Vent) (*models.Vent, error) {
	args := m.Called(ctx, vent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vent), args.Error(1)
}

func (m *MockVentRepository) GetVentsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Vent, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vent), args.Error(1)
}

func (m *MockVentRepository) GetVentByID(ctx context.Context, id primitive.ObjectID) (*models.Vent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vent), args.Error(1)
}

func (m *MockVentRepository) UpdateVent(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockVentRepository) DeleteVent(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newVentService() (*VentService, *MockVentRepository) {
	repo := new(MockVentRepository)
	return NewVentService(repo), repo
}

func TestCreateVent_RejectsBlankContent(t *testing.T) {
	service, repo := newVentService()

	_, err := service.CreateVent(context.Background(), primitive.NewObjectID(), "\n\t ", true)

	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	repo.AssertNotCalled(t, "CreateVent", mock.Anything, mock.Anything)
}

func TestCreateVent_DefaultsToOwner(t *testing.T) {
	service, repo := newVentService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	repo.On("CreateVent", ctx, mock.AnythingOfType("*models.Vent")).
		Return(&models.Vent{ID: primitive.NewObjectID(), OwnerID: owner, Content: "rough day"}, nil)

	vent, err := service.CreateVent(ctx, owner, "rough day", true)

	assert.NoError(t, err)
	assert.Equal(t, owner, vent.OwnerID)

	stored := repo.Calls[0].Arguments.Get(1).(*models.Vent)
	assert.True(t, stored.IsPrivate)
}

func TestUpdateVent_OwnerOnly(t *testing.T) {
	service, repo := newVentService()
	ctx := context.Background()

	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	ventID := primitive.NewObjectID()

	repo.On("GetVentByID", ctx, ventID).Return(&models.Vent{
		ID:      ventID,
		OwnerID: owner,
	}, nil)

	err := service.UpdateVent(ctx, intruder, ventID, "edited", false)

	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	repo.AssertNotCalled(t, "UpdateVent", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateVent_NotFound(t *testing.T) {
	service, repo := newVentService()
	ctx := context.Background()
	ventID := primitive.NewObjectID()

	repo.On("GetVentByID", ctx, ventID).Return(nil, nil)

	err := service.UpdateVent(ctx, primitive.NewObjectID(), ventID, "edited", false)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteVent_ByOwner(t *testing.T) {
	service, repo := newVentService()
	ctx := context.Background()

	owner := primitive.NewObjectID()
	ventID := primitive.NewObjectID()

	repo.On("GetVentByID", ctx, ventID).Return(&models.Vent{ID: ventID, OwnerID: owner}, nil)
	repo.On("DeleteVent", ctx, ventID).Return(nil)

	assert.NoError(t, service.DeleteVent(ctx, owner, ventID))
	repo.AssertCalled(t, "DeleteVent", ctx, ventID)
}

func TestAttachVoice_SetsURLAndDuration(t *testing.T) {
	service, repo := newVentService()
	ctx := context.Background()

	owner := primitive.NewObjectID()
	ventID := primitive.NewObjectID()

	repo.On("GetVentByID", ctx, ventID).Return(&models.Vent{ID: ventID, OwnerID: owner}, nil)
	repo.On("UpdateVent", ctx, ventID, bson.M{
		"voice_url":           "/uploads/abc.webm",
		"voice_duration_secs": 42,
	}).Return(nil)

	err := service.AttachVoice(ctx, owner, ventID, "/uploads/abc.webm", 42)

	assert.NoError(t, err)
}

func TestListVents_ScopedToOwner(t *testing.T) {
	service, repo := newVentService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	repo.On("GetVentsByOwner", ctx, owner).Return([]models.Vent{
		{OwnerID: owner, Content: "first"},
	}, nil)

	vents, err := service.ListVents(ctx, owner)

	assert.NoError(t, err)
	assert.Len(t, vents, 1)
	repo.AssertCalled(t, "GetVentsByOwner", ctx, owner)
}
