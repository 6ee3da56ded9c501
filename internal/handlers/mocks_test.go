package handlers

import (
	"context"

	"advertBack/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockAds struct {
	mock.Mock
}

func (m *mockAds) List(ctx context.Context, f models.ListingFilter) (models.ListingPage, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(models.ListingPage), args.Error(1)
}

func (m *mockAds) SearchSuggestions(ctx context.Context, term string) ([]models.SearchSuggestion, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]models.SearchSuggestion), args.Error(1)
}

func (m *mockAds) Get(ctx context.Context, id int) (models.Advertisement, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Advertisement), args.Error(1)
}

func (m *mockAds) FormOptions(ctx context.Context) (models.FormOptions, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.FormOptions), args.Error(1)
}

func (m *mockAds) Create(ctx context.Context, userID int, in models.AdvertisementInput) (models.Advertisement, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(models.Advertisement), args.Error(1)
}

func (m *mockAds) EditForm(ctx context.Context, actor models.Actor, id int) (models.Advertisement, models.FormOptions, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(models.Advertisement), args.Get(1).(models.FormOptions), args.Error(2)
}

func (m *mockAds) Edit(ctx context.Context, actor models.Actor, id int, in models.AdvertisementInput) (models.Advertisement, error) {
	args := m.Called(ctx, actor, id, in)
	return args.Get(0).(models.Advertisement), args.Error(1)
}

func (m *mockAds) Manage(ctx context.Context, actor models.Actor, id int) (models.ManageView, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(models.ManageView), args.Error(1)
}

func (m *mockAds) ChangeStatus(ctx context.Context, actor models.Actor, id int, status string) error {
	return m.Called(ctx, actor, id, status).Error(0)
}

func (m *mockAds) SellerPhone(ctx context.Context, adID int) (*string, error) {
	args := m.Called(ctx, adID)
	phone, _ := args.Get(0).(*string)
	return phone, args.Error(1)
}

func (m *mockAds) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAds) DeleteOwned(ctx context.Context, userID, id int) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockAds) ListByUser(ctx context.Context, userID int) ([]models.Advertisement, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Advertisement), args.Error(1)
}

func (m *mockAds) AdminPage(ctx context.Context, page int) (models.AdminAdvertisementPage, error) {
	args := m.Called(ctx, page)
	return args.Get(0).(models.AdminAdvertisementPage), args.Error(1)
}

func (m *mockAds) APIList(ctx context.Context, page, pageSize int) (models.APIAdvertisementList, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).(models.APIAdvertisementList), args.Error(1)
}

func (m *mockAds) APIGet(ctx context.Context, id int) (models.APIAdvertisement, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.APIAdvertisement), args.Error(1)
}

func (m *mockAds) APICreate(ctx context.Context, actor models.Actor, w models.APIAdvertisementWrite) (models.APIAdvertisement, error) {
	args := m.Called(ctx, actor, w)
	return args.Get(0).(models.APIAdvertisement), args.Error(1)
}

func (m *mockAds) APIUpdate(ctx context.Context, actor models.Actor, id int, w models.APIAdvertisementWrite) error {
	return m.Called(ctx, actor, id, w).Error(0)
}

func (m *mockAds) APIDelete(ctx context.Context, actor models.Actor, id int) error {
	return m.Called(ctx, actor, id).Error(0)
}

type mockChat struct {
	mock.Mock
}

func (m *mockChat) Conversations(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ChatSummary), args.Error(1)
}

func (m *mockChat) Conversation(ctx context.Context, userID, otherID int, adID *int) (models.ConversationView, error) {
	args := m.Called(ctx, userID, otherID, adID)
	return args.Get(0).(models.ConversationView), args.Error(1)
}

func (m *mockChat) Send(ctx context.Context, fromID, toID int, text string, adID *int) (*models.Message, error) {
	args := m.Called(ctx, fromID, toID, text, adID)
	msg, _ := args.Get(0).(*models.Message)
	return msg, args.Error(1)
}

func (m *mockChat) RegisterDeviceToken(ctx context.Context, userID int, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

type mockFavorites struct {
	mock.Mock
}

func (m *mockFavorites) Toggle(ctx context.Context, userID, adID int) (models.ToggleFavoriteResult, error) {
	args := m.Called(ctx, userID, adID)
	return args.Get(0).(models.ToggleFavoriteResult), args.Error(1)
}

func (m *mockFavorites) List(ctx context.Context, userID int) ([]models.Advertisement, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Advertisement), args.Error(1)
}

type mockCategories struct {
	mock.Mock
}

func (m *mockCategories) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategories) ListWithAdCounts(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategories) Get(ctx context.Context, id int) (models.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *mockCategories) Details(ctx context.Context, id int) (models.CategoryDetails, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.CategoryDetails), args.Error(1)
}

func (m *mockCategories) APIList(ctx context.Context) ([]models.APICategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.APICategory), args.Error(1)
}

func (m *mockCategories) Create(ctx context.Context, c models.Category) (models.Category, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *mockCategories) Update(ctx context.Context, c models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategories) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockRegions struct {
	mock.Mock
}

func (m *mockRegions) List(ctx context.Context) ([]models.Region, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Region), args.Error(1)
}

func (m *mockRegions) Get(ctx context.Context, id int) (models.Region, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Region), args.Error(1)
}

func (m *mockRegions) Create(ctx context.Context, r models.Region) (models.Region, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(models.Region), args.Error(1)
}

func (m *mockRegions) Update(ctx context.Context, r models.Region) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRegions) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUsers) Login(ctx context.Context, req models.LoginRequest) (models.Tokens, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Tokens), args.Error(1)
}

func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUsers) Get(ctx context.Context, id int) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUsers) Details(ctx context.Context, id int) (models.UserDetails, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.UserDetails), args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, id int, upd models.UserUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockUsers) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUsers) FirstUser(ctx context.Context) (models.FirstUser, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.FirstUser), args.Error(1)
}
