package services

import (
	"context"

	"advertBack/internal/models"
)

type FavoriteService struct {
	Favorites FavoriteStore
	Ads       AdvertisementStore
}

// Toggle flips whether adID is in userID's favorites and returns the new state.
func (s *FavoriteService) Toggle(ctx context.Context, userID, adID int) (models.ToggleFavoriteResult, error) {
	status, err := s.Favorites.Toggle(ctx, userID, adID)
	if err != nil {
		return models.ToggleFavoriteResult{}, err
	}
	return models.ToggleFavoriteResult{Success: true, Status: status}, nil
}

func (s *FavoriteService) List(ctx context.Context, userID int) ([]models.Advertisement, error) {
	return s.Ads.ListFavorites(ctx, userID)
}
