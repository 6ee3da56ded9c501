package seed

import (
	"context"
	"fmt"
	"time"

	"advertBack/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultUsers   = 5000
	UserBatchSize  = 1000
	AdBatchSize    = 2500
	MaxExistingAds = 10000
	Timeout        = 600 * time.Second
)

type RegionStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, r models.Region) (models.Region, error)
	IDs(ctx context.Context) ([]int, error)
}

type CategoryStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, c models.Category) (models.Category, error)
	ListLeaves(ctx context.Context) ([]models.Category, error)
}

type UserStore interface {
	Count(ctx context.Context) (int, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	IDs(ctx context.Context) ([]int, error)
	InsertBatch(ctx context.Context, users []models.User) error
}

type AdvertisementStore interface {
	Count(ctx context.Context) (int, error)
	InsertBatch(ctx context.Context, ads []models.Advertisement) error
}

type Seeder struct {
	Regions    RegionStore
	Categories CategoryStore
	Users      UserStore
	Ads        AdvertisementStore
	Gen        *Generator
	Logger     *zap.Logger
	// HashCost lets tests use bcrypt.MinCost.
	HashCost int
}

func New(regions RegionStore, categories CategoryStore, users UserStore, ads AdvertisementStore, logger *zap.Logger) *Seeder {
	now := time.Now()
	return &Seeder{
		Regions:    regions,
		Categories: categories,
		Users:      users,
		Ads:        ads,
		Gen:        NewGenerator(uint64(now.UnixNano()), now),
		Logger:     logger,
		HashCost:   bcrypt.DefaultCost,
	}
}

func (s *Seeder) hash(password string) (string, error) {
	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// Reference inserts regions, the category taxonomy and the two demo accounts.
// Each part runs only when its precondition holds, so repeated runs are no-ops.
func (s *Seeder) Reference(ctx context.Context) error {
	if err := s.seedRegions(ctx); err != nil {
		return fmt.Errorf("seed regions: %w", err)
	}
	if err := s.seedCategories(ctx); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := s.seedAccounts(ctx); err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	return nil
}

func (s *Seeder) seedRegions(ctx context.Context) error {
	n, err := s.Regions.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, r := range regions {
		if _, err := s.Regions.Create(ctx, r); err != nil {
			return err
		}
	}
	s.Logger.Info("regions seeded", zap.Int("count", len(regions)))
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	n, err := s.Categories.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, entry := range taxonomy {
		parent, err := s.Categories.Create(ctx, models.Category{Name: entry.Name})
		if err != nil {
			return err
		}
		for _, sub := range entry.Subs {
			parentID := parent.ID
			if _, err := s.Categories.Create(ctx, models.Category{Name: sub, ParentID: &parentID}); err != nil {
				return err
			}
		}
	}
	s.Logger.Info("categories seeded", zap.Int("top_level", len(taxonomy)))
	return nil
}

func (s *Seeder) seedAccounts(ctx context.Context) error {
	for _, a := range accounts {
		exists, err := s.Users.EmailExists(ctx, a.Email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		hash, err := s.hash(a.Password)
		if err != nil {
			return err
		}
		if _, err := s.Users.CreateUser(ctx, models.User{
			Email:        a.Email,
			Name:         a.Name,
			PasswordHash: hash,
			Role:         a.Role,
			Rating:       a.Rating,
			CreatedAt:    time.Now(),
		}); err != nil {
			return err
		}
		s.Logger.Info("account created", zap.String("email", a.Email), zap.String("role", a.Role))
	}
	return nil
}

// Load tops the user table up to targetUsers bot accounts and then gives every
// user 3 to 8 advertisements, unless the store already holds more than
// MaxExistingAds. A failure part way leaves the batches already committed.
func (s *Seeder) Load(ctx context.Context, targetUsers int) error {
	regionIDs, err := s.Regions.IDs(ctx)
	if err != nil {
		return err
	}
	if len(regionIDs) == 0 {
		return fmt.Errorf("seed: no regions, run reference seeding first")
	}

	if err := s.loadUsers(ctx, targetUsers, regionIDs); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.loadAds(ctx, regionIDs); err != nil {
		return fmt.Errorf("seed advertisements: %w", err)
	}
	return nil
}

func (s *Seeder) loadUsers(ctx context.Context, target int, regionIDs []int) error {
	current, err := s.Users.Count(ctx)
	if err != nil {
		return err
	}
	missing := target - current
	if missing <= 0 {
		return nil
	}
	s.Logger.Info("generating users", zap.Int("count", missing))

	hash, err := s.hash(botPassword)
	if err != nil {
		return err
	}
	batch := make([]models.User, 0, UserBatchSize)
	for i := 0; i < missing; i++ {
		batch = append(batch, s.Gen.User(hash, regionIDs))
		if len(batch) == UserBatchSize || i == missing-1 {
			if err := s.Users.InsertBatch(ctx, batch); err != nil {
				return err
			}
			s.Logger.Info("users inserted", zap.Int("done", i+1))
			batch = batch[:0]
		}
	}
	return nil
}

func (s *Seeder) loadAds(ctx context.Context, regionIDs []int) error {
	existing, err := s.Ads.Count(ctx)
	if err != nil {
		return err
	}
	if existing > MaxExistingAds {
		s.Logger.Info("advertisements already seeded", zap.Int("count", existing))
		return nil
	}

	userIDs, err := s.Users.IDs(ctx)
	if err != nil {
		return err
	}
	leaves, err := s.Categories.ListLeaves(ctx)
	if err != nil {
		return err
	}
	if len(leaves) == 0 {
		return fmt.Errorf("no subcategories to place advertisements in")
	}

	total := 0
	batch := make([]models.Advertisement, 0, AdBatchSize)
	for _, userID := range userIDs {
		for j, n := 0, s.Gen.AdsPerUser(); j < n; j++ {
			batch = append(batch, s.Gen.Advertisement(userID, pick(s.Gen, leaves), regionIDs))
			total++
		}
		if len(batch) >= AdBatchSize {
			if err := s.Ads.InsertBatch(ctx, batch); err != nil {
				return err
			}
			s.Logger.Info("advertisements inserted", zap.Int("done", total))
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := s.Ads.InsertBatch(ctx, batch); err != nil {
			return err
		}
	}
	s.Logger.Info("advertisement generation finished", zap.Int("total", total))
	return nil
}
