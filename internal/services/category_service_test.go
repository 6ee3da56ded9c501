package services

import (
	"context"
	"errors"
	"testing"

	"advertBack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService() *CategoryService {
	return &CategoryService{
		Categories: newFakeCategories(
			models.Category{ID: 1, Name: "Транспорт"},
			models.Category{ID: 2, Name: "Автомобили", ParentID: intPtr(1)},
			models.Category{ID: 3, Name: "Запчасти", ParentID: intPtr(2)},
		),
		Ads: newFakeAds(models.Advertisement{ID: 9, CategoryID: 2}),
	}
}

func TestCategoryServiceRejectsCycles(t *testing.T) {
	svc := newCategoryService()
	ctx := context.Background()

	err := svc.Update(ctx, models.Category{ID: 1, Name: "Транспорт", ParentID: intPtr(3)})
	require.ErrorIs(t, err, models.ErrCategoryCycle)

	err = svc.Update(ctx, models.Category{ID: 2, Name: "Автомобили", ParentID: intPtr(2)})
	require.ErrorIs(t, err, models.ErrCategoryCycle)

	err = svc.Update(ctx, models.Category{ID: 3, Name: "Запчасти", ParentID: intPtr(1)})
	require.NoError(t, err)
}

func TestCategoryServiceCreate(t *testing.T) {
	svc := newCategoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, models.Category{Name: "Шины", ParentID: intPtr(404)})
	require.ErrorIs(t, err, models.ErrNoRecord)

	_, err = svc.Create(ctx, models.Category{Name: "  "})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))

	c, err := svc.Create(ctx, models.Category{Name: "Шины", ParentID: intPtr(3)})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
}

func TestCategoryServiceDetailsAndAPI(t *testing.T) {
	svc := newCategoryService()
	ctx := context.Background()

	d, err := svc.Details(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Автомобили", d.Category.Name)
	assert.Len(t, d.Advertisements, 1)

	list, err := svc.APIList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, models.APICategory{CategoryID: 2, CategoryName: "Автомобили"}, list[0])
}
