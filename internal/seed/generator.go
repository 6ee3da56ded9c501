package seed

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"advertBack/internal/models"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Generator builds random but plausible users and advertisements.
type Generator struct {
	rnd *rand.Rand
	now time.Time
}

func NewGenerator(seed uint64, now time.Time) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), now: now}
}

// between returns a value in [lo, hi).
func (g *Generator) between(lo, hi int) int {
	return lo + g.rnd.Intn(hi-lo)
}

func pick[T any](g *Generator, items []T) T {
	return items[g.rnd.Intn(len(items))]
}

func (g *Generator) phone() string {
	return fmt.Sprintf("+7 (9%d) %d-%d-%d", g.between(10, 99), g.between(100, 999), g.between(10, 99), g.between(10, 99))
}

// User returns a bot account sharing passwordHash.
func (g *Generator) User(passwordHash string, regionIDs []int) models.User {
	email := fmt.Sprintf("bot_%s@example.com", uuid.NewString()[:8])
	phone := g.phone()
	regionID := pick(g, regionIDs)
	return models.User{
		Email:        email,
		Name:         pick(g, firstNames) + " " + pick(g, lastNames),
		Phone:        &phone,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		Rating:       float64(g.between(35, 51)) / 10,
		RegionID:     &regionID,
		CreatedAt:    g.now,
	}
}

// AdsPerUser is between 3 and 8.
func (g *Generator) AdsPerUser() int {
	return g.between(3, 9)
}

func (g *Generator) price(category string) float64 {
	switch {
	case strings.Contains(category, "Квартиры"):
		return float64(g.between(2000, 15000)) * 1000
	case strings.Contains(category, "Авто"):
		return float64(g.between(300, 4000)) * 1000
	default:
		return float64(g.between(5, 1000)) * 100
	}
}

// placeholderPhoto labels the stock image with the item name, cut to ten
// runes when longer than fifteen.
func placeholderPhoto(item string) string {
	label := []rune(item)
	if len(label) > 15 {
		label = label[:10]
	}
	return "https://placehold.co/400x300?text=" + url.PathEscape(string(label))
}

// Advertisement builds an active ad in category c for userID.
func (g *Generator) Advertisement(userID int, c models.Category, regionIDs []int) models.Advertisement {
	item := c.Name
	if opts, ok := titles[c.Name]; ok {
		item = pick(g, opts)
	}
	return models.Advertisement{
		Title:       item + " " + pick(g, titleVariations),
		Price:       g.price(c.Name),
		Description: fmt.Sprintf(descriptionTemplate, item),
		Status:      models.StatusActive,
		CreatedAt:   g.now.AddDate(0, 0, -g.between(1, 120)),
		UserID:      userID,
		CategoryID:  c.ID,
		RegionID:    pick(g, regionIDs),
		Photos:      []models.AdvertisementPhoto{{PhotoURL: placeholderPhoto(item), IsMain: true}},
	}
}
