package seed

import (
	"context"
	"strings"
	"testing"
	"time"

	"advertBack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type memStore struct {
	regions     []models.Region
	categories  []models.Category
	users       []models.User
	ads         []models.Advertisement
	userBatches []int
	adBatches   []int
	extraAds    int
}

type memRegions struct{ *memStore }

func (m memRegions) Count(context.Context) (int, error) { return len(m.regions), nil }

func (m memRegions) Create(_ context.Context, r models.Region) (models.Region, error) {
	r.ID = len(m.regions) + 1
	m.regions = append(m.regions, r)
	return r, nil
}

func (m memRegions) IDs(context.Context) ([]int, error) {
	ids := make([]int, 0, len(m.regions))
	for _, r := range m.regions {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

type memCategories struct{ *memStore }

func (m memCategories) Count(context.Context) (int, error) { return len(m.categories), nil }

func (m memCategories) Create(_ context.Context, c models.Category) (models.Category, error) {
	c.ID = len(m.categories) + 1
	m.categories = append(m.categories, c)
	return c, nil
}

func (m memCategories) ListLeaves(context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range m.categories {
		if c.ParentID != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

type memUsers struct{ *memStore }

func (m memUsers) Count(context.Context) (int, error) { return len(m.users), nil }

func (m memUsers) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m memUsers) CreateUser(_ context.Context, u models.User) (models.User, error) {
	u.ID = len(m.users) + 1
	m.users = append(m.users, u)
	return u, nil
}

func (m memUsers) IDs(context.Context) ([]int, error) {
	ids := make([]int, 0, len(m.users))
	for _, u := range m.users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (m memUsers) InsertBatch(_ context.Context, users []models.User) error {
	m.userBatches = append(m.userBatches, len(users))
	for _, u := range users {
		u.ID = len(m.users) + 1
		m.users = append(m.users, u)
	}
	return nil
}

type memAds struct{ *memStore }

func (m memAds) Count(context.Context) (int, error) { return len(m.ads) + m.extraAds, nil }

func (m memAds) InsertBatch(_ context.Context, ads []models.Advertisement) error {
	m.adBatches = append(m.adBatches, len(ads))
	m.ads = append(m.ads, ads...)
	return nil
}

func newTestSeeder(store *memStore) *Seeder {
	return &Seeder{
		Regions:    memRegions{store},
		Categories: memCategories{store},
		Users:      memUsers{store},
		Ads:        memAds{store},
		Gen:        NewGenerator(42, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)),
		Logger:     zap.NewNop(),
		HashCost:   bcrypt.MinCost,
	}
}

func TestReferenceIsIdempotent(t *testing.T) {
	store := &memStore{}
	s := newTestSeeder(store)
	ctx := context.Background()

	require.NoError(t, s.Reference(ctx))
	require.NoError(t, s.Reference(ctx))

	assert.Len(t, store.regions, 19)
	assert.Len(t, store.categories, 7+29)
	require.Len(t, store.users, 2)

	admin := store.users[0]
	assert.Equal(t, "admin@test.ru", admin.Email)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("Admin123!")))
	assert.Equal(t, 4.0, store.users[1].Rating)

	var cars models.Category
	for _, c := range store.categories {
		if c.Name == "Автомобили" {
			cars = c
		}
	}
	require.NotNil(t, cars.ParentID)
	assert.Equal(t, "Транспорт", store.categories[*cars.ParentID-1].Name)
}

func TestLoadBatchesUsersAndAds(t *testing.T) {
	store := &memStore{}
	s := newTestSeeder(store)
	ctx := context.Background()
	require.NoError(t, s.Reference(ctx))

	require.NoError(t, s.Load(ctx, 2502))

	assert.Len(t, store.users, 2502)
	assert.Equal(t, []int{1000, 1000, 500}, store.userBatches)

	perUser := map[int]int{}
	for _, ad := range store.ads {
		perUser[ad.UserID]++
		assert.Equal(t, models.StatusActive, ad.Status)
		require.Len(t, ad.Photos, 1)
		assert.True(t, ad.Photos[0].IsMain)
		assert.True(t, strings.HasPrefix(ad.Photos[0].PhotoURL, "https://placehold.co/400x300?text="))
	}
	assert.Len(t, perUser, 2502)
	for _, n := range perUser {
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 8)
	}
	for _, n := range store.adBatches[:len(store.adBatches)-1] {
		assert.GreaterOrEqual(t, n, AdBatchSize)
	}

	users := len(store.users)
	require.NoError(t, s.Load(ctx, 100))
	assert.Len(t, store.users, users)
}

func TestLoadSkipsAdsWhenPlentyExist(t *testing.T) {
	store := &memStore{extraAds: MaxExistingAds + 1}
	s := newTestSeeder(store)
	ctx := context.Background()
	require.NoError(t, s.Reference(ctx))

	require.NoError(t, s.Load(ctx, 10))
	assert.Len(t, store.users, 10)
	assert.Empty(t, store.ads)
}

func TestLoadRequiresRegions(t *testing.T) {
	s := newTestSeeder(&memStore{})
	require.Error(t, s.Load(context.Background(), 10))
}

func TestGeneratorAdvertisement(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	g := NewGenerator(7, now)
	flats := models.Category{ID: 12, Name: "Квартиры"}
	cars := models.Category{ID: 2, Name: "Автомобили"}
	birds := models.Category{ID: 30, Name: "Птицы"}

	for i := 0; i < 200; i++ {
		flat := g.Advertisement(1, flats, []int{4})
		assert.GreaterOrEqual(t, flat.Price, 2_000_000.0)
		assert.Less(t, flat.Price, 15_000_000.0)
		assert.Equal(t, 4, flat.RegionID)

		car := g.Advertisement(1, cars, []int{4})
		assert.GreaterOrEqual(t, car.Price, 300_000.0)
		assert.Less(t, car.Price, 4_000_000.0)

		bird := g.Advertisement(1, birds, []int{4})
		assert.GreaterOrEqual(t, bird.Price, 500.0)
		assert.Less(t, bird.Price, 100_000.0)
		assert.True(t, strings.HasPrefix(bird.Title, "Птицы "))

		age := now.Sub(bird.CreatedAt)
		assert.GreaterOrEqual(t, age, 24*time.Hour)
		assert.LessOrEqual(t, age, 119*24*time.Hour)
	}
}

func TestPlaceholderPhoto(t *testing.T) {
	assert.Equal(t, "https://placehold.co/400x300?text=Kia%20Rio", placeholderPhoto("Kia Rio"))
	assert.Equal(t, "https://placehold.co/400x300?text=Stels%20Navi", placeholderPhoto("Stels Navigator"+" X"))
}

func TestGeneratorUser(t *testing.T) {
	g := NewGenerator(1, time.Now())
	for i := 0; i < 100; i++ {
		u := g.User("hash", []int{3, 5})
		assert.True(t, strings.HasPrefix(u.Email, "bot_"))
		assert.True(t, strings.HasSuffix(u.Email, "@example.com"))
		assert.GreaterOrEqual(t, u.Rating, 3.5)
		assert.LessOrEqual(t, u.Rating, 5.0)
		require.NotNil(t, u.RegionID)
		assert.Contains(t, []int{3, 5}, *u.RegionID)
		require.NotNil(t, u.Phone)
		assert.Regexp(t, `^\+7 \(9\d{2}\) \d{3}-\d{2}-\d{2}$`, *u.Phone)
	}
}
