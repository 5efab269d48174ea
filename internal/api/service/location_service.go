package service

import (
	"context"

	"github.com/google/uuid"

	"weatherapp/server/internal/api/apperror"
	"weatherapp/server/internal/api/models"
	"weatherapp/server/internal/api/repository"
)

// LocationService defines the interface for saved-location and
// search-history business logic.
type LocationService interface {
	Append(ctx context.Context, userID string, req *models.LocationRequest, kind string) (*models.Location, error)
	List(ctx context.Context, userID, kind string) ([]models.Location, error)
	DeleteSaved(ctx context.Context, userID string, q models.LocationQuery) error
	IsSaved(ctx context.Context, userID string, q models.LocationQuery) (*models.Location, error)
}

type locationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService creates a new LocationService.
func NewLocationService(locationRepo repository.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

// Append stores a new record of the given kind for the user, assigning a
// fresh id. The creation timestamp is assigned by the store.
func (s *locationService) Append(ctx context.Context, userID string, req *models.LocationRequest, kind string) (*models.Location, error) {
	if kind != models.KindSavedLocation && kind != models.KindSearchHistory {
		return nil, apperror.NewValidation("unknown location kind")
	}

	loc := &models.Location{
		ID:        uuid.New().String(),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Name:      req.Name,
		Country:   req.Country,
		Timezone:  req.Timezone,
		UserID:    userID,
		Type:      kind,
	}
	if err := s.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// List returns the user's records of one kind.
func (s *locationService) List(ctx context.Context, userID, kind string) ([]models.Location, error) {
	return s.locationRepo.ListByKind(ctx, userID, kind)
}

// DeleteSaved removes the saved location matching the query exactly. A miss
// is NotFound: nothing matched the full field tuple.
func (s *locationService) DeleteSaved(ctx context.Context, userID string, q models.LocationQuery) error {
	deleted, err := s.locationRepo.DeleteSaved(ctx, userID, q)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound("location not found")
	}
	return nil
}

// IsSaved reports whether the user has a saved location matching the query
// exactly. A nil record means no match without being an error.
func (s *locationService) IsSaved(ctx context.Context, userID string, q models.LocationQuery) (*models.Location, error) {
	return s.locationRepo.FindSaved(ctx, userID, q)
}
