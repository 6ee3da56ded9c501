package handlers

import (
	"context"

	"advertBack/internal/models"
)

type AdvertisementService interface {
	List(ctx context.Context, f models.ListingFilter) (models.ListingPage, error)
	SearchSuggestions(ctx context.Context, term string) ([]models.SearchSuggestion, error)
	Get(ctx context.Context, id int) (models.Advertisement, error)
	FormOptions(ctx context.Context) (models.FormOptions, error)
	Create(ctx context.Context, userID int, in models.AdvertisementInput) (models.Advertisement, error)
	EditForm(ctx context.Context, actor models.Actor, id int) (models.Advertisement, models.FormOptions, error)
	Edit(ctx context.Context, actor models.Actor, id int, in models.AdvertisementInput) (models.Advertisement, error)
	Manage(ctx context.Context, actor models.Actor, id int) (models.ManageView, error)
	ChangeStatus(ctx context.Context, actor models.Actor, id int, status string) error
	SellerPhone(ctx context.Context, adID int) (*string, error)
	Delete(ctx context.Context, id int) error
	DeleteOwned(ctx context.Context, userID, id int) (bool, error)
	ListByUser(ctx context.Context, userID int) ([]models.Advertisement, error)
	AdminPage(ctx context.Context, page int) (models.AdminAdvertisementPage, error)
	APIList(ctx context.Context, page, pageSize int) (models.APIAdvertisementList, error)
	APIGet(ctx context.Context, id int) (models.APIAdvertisement, error)
	APICreate(ctx context.Context, actor models.Actor, w models.APIAdvertisementWrite) (models.APIAdvertisement, error)
	APIUpdate(ctx context.Context, actor models.Actor, id int, w models.APIAdvertisementWrite) error
	APIDelete(ctx context.Context, actor models.Actor, id int) error
}

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	ListWithAdCounts(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int) (models.Category, error)
	Details(ctx context.Context, id int) (models.CategoryDetails, error)
	APIList(ctx context.Context) ([]models.APICategory, error)
	Create(ctx context.Context, c models.Category) (models.Category, error)
	Update(ctx context.Context, c models.Category) error
	Delete(ctx context.Context, id int) error
}

type RegionService interface {
	List(ctx context.Context) ([]models.Region, error)
	Get(ctx context.Context, id int) (models.Region, error)
	Create(ctx context.Context, r models.Region) (models.Region, error)
	Update(ctx context.Context, r models.Region) error
	Delete(ctx context.Context, id int) error
}

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Tokens, error)
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int) (models.User, error)
	Details(ctx context.Context, id int) (models.UserDetails, error)
	Update(ctx context.Context, id int, upd models.UserUpdate) error
	Delete(ctx context.Context, id int) error
	FirstUser(ctx context.Context) (models.FirstUser, error)
}

type ChatService interface {
	Conversations(ctx context.Context, userID int) ([]models.ChatSummary, error)
	Conversation(ctx context.Context, userID, otherID int, adID *int) (models.ConversationView, error)
	Send(ctx context.Context, fromID, toID int, text string, adID *int) (*models.Message, error)
	RegisterDeviceToken(ctx context.Context, userID int, token string) error
}

type FavoriteService interface {
	Toggle(ctx context.Context, userID, adID int) (models.ToggleFavoriteResult, error)
	List(ctx context.Context, userID int) ([]models.Advertisement, error)
}
