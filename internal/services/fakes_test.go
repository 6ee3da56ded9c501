package services

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"advertBack/internal/models"

	"github.com/stretchr/testify/mock"
)

type fakeAds struct {
	mu      sync.Mutex
	ads     map[int]models.Advertisement
	nextID  int
	favs    map[int][]int
	listed  []models.ListingFilter
	offsets []int
	total   int
	page    []models.Advertisement
}

func newFakeAds(ads ...models.Advertisement) *fakeAds {
	f := &fakeAds{ads: map[int]models.Advertisement{}, nextID: 100, favs: map[int][]int{}}
	for _, a := range ads {
		f.ads[a.ID] = a
	}
	return f
}

func (f *fakeAds) List(_ context.Context, filter models.ListingFilter, limit, offset int) ([]models.Advertisement, int, error) {
	f.listed = append(f.listed, filter)
	f.offsets = append(f.offsets, offset)
	if f.page == nil {
		return []models.Advertisement{}, f.total, nil
	}
	return f.page, f.total, nil
}

func (f *fakeAds) sorted() []models.Advertisement {
	out := make([]models.Advertisement, 0, len(f.ads))
	for _, a := range f.ads {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeAds) ListPage(_ context.Context, limit, offset int) ([]models.Advertisement, int, error) {
	all := f.sorted()
	if offset >= len(all) {
		return []models.Advertisement{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (f *fakeAds) ListByUser(_ context.Context, userID int) ([]models.Advertisement, error) {
	var out []models.Advertisement
	for _, a := range f.sorted() {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAds) ListByCategory(_ context.Context, categoryID int) ([]models.Advertisement, error) {
	var out []models.Advertisement
	for _, a := range f.sorted() {
		if a.CategoryID == categoryID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAds) ListFavorites(_ context.Context, userID int) ([]models.Advertisement, error) {
	var out []models.Advertisement
	for _, id := range f.favs[userID] {
		out = append(out, f.ads[id])
	}
	return out, nil
}

func (f *fakeAds) GetByID(_ context.Context, id int) (models.Advertisement, error) {
	a, ok := f.ads[id]
	if !ok {
		return models.Advertisement{}, models.ErrNoRecord
	}
	return a, nil
}

func (f *fakeAds) Exists(_ context.Context, id int) (bool, error) {
	_, ok := f.ads[id]
	return ok, nil
}

func (f *fakeAds) Create(_ context.Context, ad models.Advertisement) (models.Advertisement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ad.ID = f.nextID
	for i := range ad.Photos {
		ad.Photos[i].AdvertisementID = ad.ID
	}
	f.ads[ad.ID] = ad
	return ad, nil
}

func (f *fakeAds) Update(_ context.Context, ad models.Advertisement, newMain *models.AdvertisementPhoto) ([]models.AdvertisementPhoto, error) {
	cur, ok := f.ads[ad.ID]
	if !ok {
		return nil, models.ErrNoRecord
	}
	var replaced []models.AdvertisementPhoto
	photos := cur.Photos
	if newMain != nil {
		photos = nil
		for _, p := range cur.Photos {
			if p.IsMain {
				replaced = append(replaced, p)
				continue
			}
			photos = append(photos, p)
		}
		photos = append(photos, *newMain)
	}
	ad.Photos = photos
	f.ads[ad.ID] = ad
	return replaced, nil
}

func (f *fakeAds) UpdateCore(_ context.Context, ad models.Advertisement) error {
	cur, ok := f.ads[ad.ID]
	if !ok {
		return models.ErrNoRecord
	}
	cur.Title, cur.Price, cur.CategoryID, cur.UserID, cur.RegionID = ad.Title, ad.Price, ad.CategoryID, ad.UserID, ad.RegionID
	f.ads[ad.ID] = cur
	return nil
}

func (f *fakeAds) UpdateStatus(_ context.Context, id int, status string) error {
	cur, ok := f.ads[id]
	if !ok {
		return models.ErrNoRecord
	}
	cur.Status = status
	f.ads[id] = cur
	return nil
}

func (f *fakeAds) Delete(_ context.Context, id int) error {
	if _, ok := f.ads[id]; !ok {
		return models.ErrNoRecord
	}
	delete(f.ads, id)
	return nil
}

func (f *fakeAds) DeleteOwned(_ context.Context, id, userID int) (bool, error) {
	a, ok := f.ads[id]
	if !ok || a.UserID != userID {
		return false, nil
	}
	delete(f.ads, id)
	return true, nil
}

func (f *fakeAds) SellerPhone(_ context.Context, adID int) (*string, error) {
	a, ok := f.ads[adID]
	if !ok {
		return nil, models.ErrNoRecord
	}
	if a.User == nil {
		return nil, nil
	}
	return a.User.Phone, nil
}

type fakeCategories struct {
	byID map[int]models.Category
}

func newFakeCategories(cs ...models.Category) *fakeCategories {
	f := &fakeCategories{byID: map[int]models.Category{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCategories) all() []models.Category {
	out := make([]models.Category, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (f *fakeCategories) List(context.Context) ([]models.Category, error) { return f.all(), nil }

func (f *fakeCategories) ListWithAdCounts(context.Context) ([]models.Category, error) {
	return f.all(), nil
}

func (f *fakeCategories) SearchByName(_ context.Context, term string, limit int) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.all() {
		if len(out) == limit {
			break
		}
		if containsFold(c.Name, term) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategories) GetByID(_ context.Context, id int) (models.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return models.Category{}, models.ErrNoRecord
	}
	return c, nil
}

func (f *fakeCategories) Create(_ context.Context, c models.Category) (models.Category, error) {
	c.ID = len(f.byID) + 1000
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCategories) Update(_ context.Context, c models.Category) error {
	if _, ok := f.byID[c.ID]; !ok {
		return models.ErrNoRecord
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, id int) error {
	delete(f.byID, id)
	return nil
}

type fakeRegions struct {
	byID map[int]models.Region
}

func newFakeRegions(rs ...models.Region) *fakeRegions {
	f := &fakeRegions{byID: map[int]models.Region{}}
	for _, r := range rs {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRegions) List(context.Context, bool) ([]models.Region, error) {
	out := make([]models.Region, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRegions) GetByID(_ context.Context, id int) (models.Region, error) {
	r, ok := f.byID[id]
	if !ok {
		return models.Region{}, models.ErrNoRecord
	}
	return r, nil
}

func (f *fakeRegions) Create(_ context.Context, r models.Region) (models.Region, error) {
	r.ID = len(f.byID) + 1
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRegions) Update(_ context.Context, r models.Region) error {
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRegions) Delete(_ context.Context, id int) error {
	delete(f.byID, id)
	return nil
}

type fakeUsers struct {
	byID map[int]models.User
}

func newFakeUsers(us ...models.User) *fakeUsers {
	f := &fakeUsers{byID: map[int]models.User{}}
	for _, u := range us {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, u models.User) (models.User, error) {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return models.User{}, models.ErrDuplicateEmail
		}
	}
	u.ID = len(f.byID) + 1
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, models.ErrNoRecord
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNoRecord
}

func (f *fakeUsers) ListUsers(context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) UpdateUser(_ context.Context, id int, upd models.UserUpdate) error {
	u, ok := f.byID[id]
	if !ok {
		return models.ErrNoRecord
	}
	u.Email, u.Name = upd.Email, upd.Name
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) DeleteUser(_ context.Context, id int) error {
	if _, ok := f.byID[id]; !ok {
		return models.ErrNoRecord
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) FirstUser(context.Context) (models.FirstUser, error) {
	return models.FirstUser{}, models.ErrNoRecord
}

type fakePhotos struct {
	saved   []string
	deleted []string
}

func (f *fakePhotos) Save(_ context.Context, fileName, _ string, body io.Reader) (string, error) {
	_, _ = io.ReadAll(body)
	url := "/images/uuid_" + fileName
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakePhotos) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetIndex(ctx context.Context) (*models.ListingPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingPage), args.Error(1)
}

func (m *mockCache) SetIndex(ctx context.Context, page *models.ListingPage) error {
	return m.Called(ctx, page).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockMessages struct {
	mock.Mock
}

func (m *mockMessages) ListForUser(ctx context.Context, userID int) ([]models.Message, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockMessages) Conversation(ctx context.Context, userID, otherID int) ([]models.Message, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockMessages) Create(ctx context.Context, msg models.Message) (models.Message, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(models.Message), args.Error(1)
}

func (m *mockMessages) MarkRead(ctx context.Context, fromID, toID int) (int, error) {
	args := m.Called(ctx, fromID, toID)
	return args.Int(0), args.Error(1)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
