package services

import (
	"context"
	"errors"
	"strings"

	"advertBack/internal/models"
)

type CategoryService struct {
	Categories CategoryStore
	Ads        AdvertisementStore
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CategoryService) ListWithAdCounts(ctx context.Context) ([]models.Category, error) {
	return s.Categories.ListWithAdCounts(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int) (models.Category, error) {
	return s.Categories.GetByID(ctx, id)
}

func (s *CategoryService) Details(ctx context.Context, id int) (models.CategoryDetails, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		return models.CategoryDetails{}, err
	}
	ads, err := s.Ads.ListByCategory(ctx, id)
	if err != nil {
		return models.CategoryDetails{}, err
	}
	return models.CategoryDetails{Category: c, Advertisements: ads}, nil
}

// APIList is the id/name projection used by API clients.
func (s *CategoryService) APIList(ctx context.Context) ([]models.APICategory, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.APICategory, 0, len(categories))
	for _, c := range categories {
		out = append(out, models.APICategory{CategoryID: c.ID, CategoryName: c.Name})
	}
	return out, nil
}

func validateCategory(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		verr := models.NewValidationError()
		verr.Add("name", "name is required")
		return verr
	}
	return nil
}

// checkParent walks up from parentID and fails if it reaches id, which would
// close a loop. An unknown parent is ErrNoRecord.
func (s *CategoryService) checkParent(ctx context.Context, id int, parentID *int) error {
	if parentID == nil {
		return nil
	}
	if id != 0 && *parentID == id {
		return models.ErrCategoryCycle
	}

	seen := map[int]bool{}
	current := *parentID
	for {
		if seen[current] {
			return models.ErrCategoryCycle
		}
		seen[current] = true

		parent, err := s.Categories.GetByID(ctx, current)
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if id != 0 && *parent.ParentID == id {
			return models.ErrCategoryCycle
		}
		current = *parent.ParentID
	}
}

func (s *CategoryService) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if err := validateCategory(&c); err != nil {
		return models.Category{}, err
	}
	if err := s.checkParent(ctx, 0, c.ParentID); err != nil {
		return models.Category{}, err
	}
	created, err := s.Categories.Create(ctx, c)
	if errors.Is(err, models.ErrInvalidReference) {
		return models.Category{}, models.ErrNoRecord
	}
	return created, err
}

func (s *CategoryService) Update(ctx context.Context, c models.Category) error {
	if err := validateCategory(&c); err != nil {
		return err
	}
	if _, err := s.Categories.GetByID(ctx, c.ID); err != nil {
		return err
	}
	if err := s.checkParent(ctx, c.ID, c.ParentID); err != nil {
		return err
	}
	return s.Categories.Update(ctx, c)
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	return s.Categories.Delete(ctx, id)
}
