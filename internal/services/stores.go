package services

import (
	"context"

	"advertBack/internal/models"
)

type AdvertisementStore interface {
	List(ctx context.Context, f models.ListingFilter, limit, offset int) ([]models.Advertisement, int, error)
	ListPage(ctx context.Context, limit, offset int) ([]models.Advertisement, int, error)
	ListByUser(ctx context.Context, userID int) ([]models.Advertisement, error)
	ListByCategory(ctx context.Context, categoryID int) ([]models.Advertisement, error)
	ListFavorites(ctx context.Context, userID int) ([]models.Advertisement, error)
	GetByID(ctx context.Context, id int) (models.Advertisement, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, ad models.Advertisement) (models.Advertisement, error)
	Update(ctx context.Context, ad models.Advertisement, newMain *models.AdvertisementPhoto) ([]models.AdvertisementPhoto, error)
	UpdateCore(ctx context.Context, ad models.Advertisement) error
	UpdateStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
	DeleteOwned(ctx context.Context, id, userID int) (bool, error)
	SellerPhone(ctx context.Context, adID int) (*string, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	ListWithAdCounts(ctx context.Context) ([]models.Category, error)
	SearchByName(ctx context.Context, term string, limit int) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (models.Category, error)
	Create(ctx context.Context, c models.Category) (models.Category, error)
	Update(ctx context.Context, c models.Category) error
	Delete(ctx context.Context, id int) error
}

type RegionStore interface {
	List(ctx context.Context, byCity bool) ([]models.Region, error)
	GetByID(ctx context.Context, id int) (models.Region, error)
	Create(ctx context.Context, r models.Region) (models.Region, error)
	Update(ctx context.Context, r models.Region) error
	Delete(ctx context.Context, id int) error
}

type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int, upd models.UserUpdate) error
	DeleteUser(ctx context.Context, id int) error
	FirstUser(ctx context.Context) (models.FirstUser, error)
}

type MessageStore interface {
	ListForUser(ctx context.Context, userID int) ([]models.Message, error)
	Conversation(ctx context.Context, userID, otherID int) ([]models.Message, error)
	Create(ctx context.Context, m models.Message) (models.Message, error)
	MarkRead(ctx context.Context, fromID, toID int) (int, error)
}

type FavoriteStore interface {
	Toggle(ctx context.Context, userID, adID int) (string, error)
}

type DeviceTokenStore interface {
	Save(ctx context.Context, userID int, token string) error
	ListForUser(ctx context.Context, userID int) ([]string, error)
}

// ListingCache holds the unfiltered first listing page.
type ListingCache interface {
	GetIndex(ctx context.Context) (*models.ListingPage, error)
	SetIndex(ctx context.Context, page *models.ListingPage) error
	Invalidate(ctx context.Context) error
}

// MessagePusher delivers a stored message to the recipient's live connection.
type MessagePusher interface {
	PushMessage(userID int, msg models.Message)
}
