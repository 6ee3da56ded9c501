package services

import (
	"context"
	"strings"

	"advertBack/internal/models"
)

type RegionService struct {
	Regions RegionStore
}

// List orders by region name, the admin view.
func (s *RegionService) List(ctx context.Context) ([]models.Region, error) {
	return s.Regions.List(ctx, false)
}

func (s *RegionService) Get(ctx context.Context, id int) (models.Region, error) {
	return s.Regions.GetByID(ctx, id)
}

func validateRegion(r *models.Region) error {
	verr := models.NewValidationError()
	r.Name = strings.TrimSpace(r.Name)
	r.CityName = strings.TrimSpace(r.CityName)
	if r.Name == "" {
		verr.Add("name", "name is required")
	}
	if r.CityName == "" {
		verr.Add("city_name", "city name is required")
	}
	return verr.OrNil()
}

func (s *RegionService) Create(ctx context.Context, r models.Region) (models.Region, error) {
	if err := validateRegion(&r); err != nil {
		return models.Region{}, err
	}
	return s.Regions.Create(ctx, r)
}

func (s *RegionService) Update(ctx context.Context, r models.Region) error {
	if err := validateRegion(&r); err != nil {
		return err
	}
	return s.Regions.Update(ctx, r)
}

func (s *RegionService) Delete(ctx context.Context, id int) error {
	return s.Regions.Delete(ctx, id)
}
