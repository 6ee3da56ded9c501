package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"advertBack/internal/events"
	"advertBack/internal/models"
	"advertBack/utils"

	"go.uber.org/zap"
)

const (
	AdminPageSize       = 20
	DefaultAPIPageSize  = 10
	MaxAPIPageSize      = 100
	maxTitleLength      = 200
	searchSuggestionMax = 5
)

type AdvertisementService struct {
	Ads        AdvertisementStore
	Categories CategoryStore
	Regions    RegionStore
	Photos     utils.PhotoStore
	Cache      ListingCache
	Events     events.Publisher
	Now        func() time.Time
}

func (s *AdvertisementService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AdvertisementService) publish(ctx context.Context, subject string, ad models.Advertisement) {
	if s.Events == nil {
		return
	}
	ev := events.AdvertisementEvent{ID: ad.ID, UserID: ad.UserID, Title: ad.Title, Status: ad.Status}
	if err := s.Events.Publish(ctx, subject, ev); err != nil {
		zap.S().Warnw("publish advertisement event", "subject", subject, "id", ad.ID, "error", err)
	}
}

func (s *AdvertisementService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		zap.S().Warnw("invalidate listing cache", "error", err)
	}
}

// List returns one page of the public listing. Only the unfiltered first
// page goes through the cache.
func (s *AdvertisementService) List(ctx context.Context, f models.ListingFilter) (models.ListingPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}

	cacheable := s.Cache != nil && f.Cacheable()
	if cacheable {
		page, err := s.Cache.GetIndex(ctx)
		if err != nil {
			zap.S().Warnw("read listing cache", "error", err)
		} else if page != nil {
			return *page, nil
		}
	}

	offset := models.PageOffset(f.Page, models.ListingPageSize)
	ads, total, err := s.Ads.List(ctx, f, models.ListingPageSize, offset)
	if err != nil {
		return models.ListingPage{}, err
	}
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return models.ListingPage{}, err
	}
	regions, err := s.Regions.List(ctx, true)
	if err != nil {
		return models.ListingPage{}, err
	}

	page := models.ListingPage{
		Filter:         f,
		Advertisements: ads,
		Categories:     categories,
		Regions:        regions,
		TotalCount:     total,
		TotalPages:     models.TotalPagesFor(total, models.ListingPageSize),
	}
	if cacheable {
		if err := s.Cache.SetIndex(ctx, &page); err != nil {
			zap.S().Warnw("write listing cache", "error", err)
		}
	}
	return page, nil
}

// SearchSuggestions returns categories whose name contains term.
func (s *AdvertisementService) SearchSuggestions(ctx context.Context, term string) ([]models.SearchSuggestion, error) {
	suggestions := []models.SearchSuggestion{}
	if strings.TrimSpace(term) == "" {
		return suggestions, nil
	}
	categories, err := s.Categories.SearchByName(ctx, term, searchSuggestionMax)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		suggestions = append(suggestions, models.SearchSuggestion{Label: c.Name, Val: c.ID})
	}
	return suggestions, nil
}

func (s *AdvertisementService) Get(ctx context.Context, id int) (models.Advertisement, error) {
	return s.Ads.GetByID(ctx, id)
}

func (s *AdvertisementService) FormOptions(ctx context.Context) (models.FormOptions, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return models.FormOptions{}, err
	}
	regions, err := s.Regions.List(ctx, true)
	if err != nil {
		return models.FormOptions{}, err
	}
	return models.FormOptions{Categories: categories, Regions: regions}, nil
}

func (s *AdvertisementService) validate(ctx context.Context, in *models.AdvertisementInput) error {
	verr := models.NewValidationError()

	in.Title = strings.TrimSpace(in.Title)
	switch {
	case in.Title == "":
		verr.Add("title", "title is required")
	case utf8.RuneCountInString(in.Title) > maxTitleLength:
		verr.Add("title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if in.Price < 0 {
		verr.Add("price", "price must not be negative")
	}

	if err := s.checkReference(ctx, verr, "categoryId", in.CategoryID, func(ctx context.Context, id int) error {
		_, err := s.Categories.GetByID(ctx, id)
		return err
	}); err != nil {
		return err
	}
	if err := s.checkReference(ctx, verr, "regionId", in.RegionID, func(ctx context.Context, id int) error {
		_, err := s.Regions.GetByID(ctx, id)
		return err
	}); err != nil {
		return err
	}
	return verr.OrNil()
}

func (s *AdvertisementService) checkReference(ctx context.Context, verr *models.ValidationError, field string, id int,
	lookup func(context.Context, int) error) error {
	if id <= 0 {
		verr.Add(field, field+" is required")
		return nil
	}
	err := lookup(ctx, id)
	if errors.Is(err, models.ErrNoRecord) {
		verr.Add(field, field+" does not exist")
		return nil
	}
	return err
}

func (s *AdvertisementService) savePhoto(ctx context.Context, p *models.PhotoUpload) (string, error) {
	url, err := s.Photos.Save(ctx, p.FileName, p.ContentType, p.Body)
	if err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}
	return url, nil
}

func (s *AdvertisementService) discardPhoto(ctx context.Context, url string) {
	if err := s.Photos.Delete(ctx, url); err != nil {
		zap.S().Warnw("delete photo", "url", url, "error", err)
	}
}

// Create publishes a new active advertisement owned by userID. Every
// advertisement gets exactly one main photo: the upload or a placeholder.
func (s *AdvertisementService) Create(ctx context.Context, userID int, in models.AdvertisementInput) (models.Advertisement, error) {
	if err := s.validate(ctx, &in); err != nil {
		return models.Advertisement{}, err
	}

	photoURL := models.PlaceholderPhotoURL
	uploaded := false
	if in.Photo != nil {
		url, err := s.savePhoto(ctx, in.Photo)
		if err != nil {
			return models.Advertisement{}, err
		}
		photoURL, uploaded = url, true
	}

	ad, err := s.Ads.Create(ctx, models.Advertisement{
		Title:       in.Title,
		Price:       in.Price,
		Description: strings.TrimSpace(in.Description),
		Status:      models.StatusActive,
		CreatedAt:   s.now(),
		UserID:      userID,
		CategoryID:  in.CategoryID,
		RegionID:    in.RegionID,
		Photos:      []models.AdvertisementPhoto{{PhotoURL: photoURL, IsMain: true}},
	})
	if err != nil {
		if uploaded {
			s.discardPhoto(ctx, photoURL)
		}
		return models.Advertisement{}, err
	}

	s.invalidate(ctx)
	s.publish(ctx, events.SubjectAdvertisementCreated, ad)
	return ad, nil
}

// loadManaged fetches an advertisement the actor is allowed to change.
func (s *AdvertisementService) loadManaged(ctx context.Context, actor models.Actor, id int) (models.Advertisement, error) {
	ad, err := s.Ads.GetByID(ctx, id)
	if err != nil {
		return models.Advertisement{}, err
	}
	if !actor.CanManage(ad.UserID) {
		return models.Advertisement{}, models.ErrForbidden
	}
	return ad, nil
}

// EditForm returns the advertisement and form options for the owner or an admin.
func (s *AdvertisementService) EditForm(ctx context.Context, actor models.Actor, id int) (models.Advertisement, models.FormOptions, error) {
	ad, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return models.Advertisement{}, models.FormOptions{}, err
	}
	opts, err := s.FormOptions(ctx)
	if err != nil {
		return models.Advertisement{}, models.FormOptions{}, err
	}
	return ad, opts, nil
}

// Edit updates the advertisement. A new photo replaces the main photo in the
// same transaction; the old file is removed only after the commit.
func (s *AdvertisementService) Edit(ctx context.Context, actor models.Actor, id int, in models.AdvertisementInput) (models.Advertisement, error) {
	current, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return models.Advertisement{}, err
	}
	if err := s.validate(ctx, &in); err != nil {
		return models.Advertisement{}, err
	}

	var newMain *models.AdvertisementPhoto
	if in.Photo != nil {
		url, err := s.savePhoto(ctx, in.Photo)
		if err != nil {
			return models.Advertisement{}, err
		}
		newMain = &models.AdvertisementPhoto{PhotoURL: url, IsMain: true}
	}

	current.Title = in.Title
	current.Price = in.Price
	current.Description = strings.TrimSpace(in.Description)
	current.CategoryID = in.CategoryID
	current.RegionID = in.RegionID

	replaced, err := s.Ads.Update(ctx, current, newMain)
	if err != nil {
		if newMain != nil {
			s.discardPhoto(ctx, newMain.PhotoURL)
		}
		return models.Advertisement{}, err
	}
	for _, p := range replaced {
		if !utils.IsRemoteURL(p.PhotoURL) {
			s.discardPhoto(ctx, p.PhotoURL)
		}
	}

	s.invalidate(ctx)
	s.publish(ctx, events.SubjectAdvertisementUpdated, current)
	return s.Ads.GetByID(ctx, id)
}

func (s *AdvertisementService) Manage(ctx context.Context, actor models.Actor, id int) (models.ManageView, error) {
	ad, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return models.ManageView{}, err
	}
	return models.ManageView{Advertisement: ad, Statuses: models.AdvertisementStatuses}, nil
}

func (s *AdvertisementService) ChangeStatus(ctx context.Context, actor models.Actor, id int, status string) error {
	ad, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return err
	}
	if !models.IsValidStatus(status) {
		return models.ErrInvalidStatus
	}
	if err := s.Ads.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	ad.Status = status
	s.invalidate(ctx)
	s.publish(ctx, events.SubjectAdvertisementUpdated, ad)
	return nil
}

func (s *AdvertisementService) SellerPhone(ctx context.Context, adID int) (*string, error) {
	return s.Ads.SellerPhone(ctx, adID)
}

// Delete removes any advertisement without an ownership check. The admin
// panel uses it; APIDelete is the checked variant.
func (s *AdvertisementService) Delete(ctx context.Context, id int) error {
	if err := s.Ads.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.SubjectAdvertisementDeleted, models.Advertisement{ID: id})
	return nil
}

// DeleteOwned removes the advertisement only when userID owns it and reports
// whether anything was deleted.
func (s *AdvertisementService) DeleteOwned(ctx context.Context, userID, id int) (bool, error) {
	deleted, err := s.Ads.DeleteOwned(ctx, id, userID)
	if err != nil || !deleted {
		return deleted, err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.SubjectAdvertisementDeleted, models.Advertisement{ID: id, UserID: userID})
	return true, nil
}

func (s *AdvertisementService) ListByUser(ctx context.Context, userID int) ([]models.Advertisement, error) {
	return s.Ads.ListByUser(ctx, userID)
}

func (s *AdvertisementService) AdminPage(ctx context.Context, page int) (models.AdminAdvertisementPage, error) {
	if page < 1 {
		page = 1
	}
	ads, total, err := s.Ads.ListPage(ctx, AdminPageSize, models.PageOffset(page, AdminPageSize))
	if err != nil {
		return models.AdminAdvertisementPage{}, err
	}
	return models.AdminAdvertisementPage{
		Advertisements: ads,
		Page:           page,
		TotalPages:     models.TotalPagesFor(total, AdminPageSize),
		TotalCount:     total,
	}, nil
}

func toAPI(a models.Advertisement) models.APIAdvertisement {
	item := models.APIAdvertisement{
		ID:           a.ID,
		Title:        a.Title,
		Price:        a.Price,
		Description:  a.Description,
		Status:       a.Status,
		CategoryID:   a.CategoryID,
		UserID:       a.UserID,
		RegionID:     a.RegionID,
		CategoryName: "Нет",
		UserName:     "Аноним",
	}
	if a.Category != nil && a.Category.Name != "" {
		item.CategoryName = a.Category.Name
	}
	if a.User != nil && a.User.Name != "" {
		item.UserName = a.User.Name
	}
	return item
}

func (s *AdvertisementService) APIList(ctx context.Context, page, pageSize int) (models.APIAdvertisementList, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultAPIPageSize
	}
	if pageSize > MaxAPIPageSize {
		pageSize = MaxAPIPageSize
	}
	ads, total, err := s.Ads.ListPage(ctx, pageSize, models.PageOffset(page, pageSize))
	if err != nil {
		return models.APIAdvertisementList{}, err
	}
	items := make([]models.APIAdvertisement, 0, len(ads))
	for _, a := range ads {
		items = append(items, toAPI(a))
	}
	return models.APIAdvertisementList{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *AdvertisementService) APIGet(ctx context.Context, id int) (models.APIAdvertisement, error) {
	ad, err := s.Ads.GetByID(ctx, id)
	if err != nil {
		return models.APIAdvertisement{}, err
	}
	return toAPI(ad), nil
}

func validateAPIWrite(w *models.APIAdvertisementWrite) error {
	verr := models.NewValidationError()
	w.Title = strings.TrimSpace(w.Title)
	if w.Title == "" {
		verr.Add("title", "title is required")
	} else if utf8.RuneCountInString(w.Title) > maxTitleLength {
		verr.Add("title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if w.Price < 0 {
		verr.Add("price", "price must not be negative")
	}
	return verr.OrNil()
}

// APICreate ignores any client id, status or date: new advertisements are
// always active and stamped now. Only admins may post on behalf of another
// user; everyone else owns what they create.
func (s *AdvertisementService) APICreate(ctx context.Context, actor models.Actor, w models.APIAdvertisementWrite) (models.APIAdvertisement, error) {
	if err := validateAPIWrite(&w); err != nil {
		return models.APIAdvertisement{}, err
	}
	if !actor.IsAdmin() || w.UserID <= 0 {
		w.UserID = actor.UserID
	}
	ad, err := s.Ads.Create(ctx, models.Advertisement{
		Title:       w.Title,
		Price:       w.Price,
		Description: strings.TrimSpace(w.Description),
		Status:      models.StatusActive,
		CreatedAt:   s.now(),
		UserID:      w.UserID,
		CategoryID:  w.CategoryID,
		RegionID:    w.RegionID,
		Photos:      []models.AdvertisementPhoto{{PhotoURL: models.PlaceholderPhotoURL, IsMain: true}},
	})
	if err != nil {
		return models.APIAdvertisement{}, err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.SubjectAdvertisementCreated, ad)
	return toAPI(ad), nil
}

// APIUpdate overwrites the core fields of an advertisement the actor may
// manage. Ownership moves only when an admin asks for it.
func (s *AdvertisementService) APIUpdate(ctx context.Context, actor models.Actor, id int, w models.APIAdvertisementWrite) error {
	if w.ID != id {
		return models.ErrIDMismatch
	}
	if err := validateAPIWrite(&w); err != nil {
		return err
	}
	current, err := s.loadManaged(ctx, actor, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() || w.UserID <= 0 {
		w.UserID = current.UserID
	}
	ad := models.Advertisement{
		ID:         id,
		Title:      w.Title,
		Price:      w.Price,
		CategoryID: w.CategoryID,
		UserID:     w.UserID,
		RegionID:   w.RegionID,
	}
	if err := s.Ads.UpdateCore(ctx, ad); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.SubjectAdvertisementUpdated, ad)
	return nil
}

// APIDelete removes an advertisement the actor owns, or any advertisement
// for an admin.
func (s *AdvertisementService) APIDelete(ctx context.Context, actor models.Actor, id int) error {
	if _, err := s.loadManaged(ctx, actor, id); err != nil {
		return err
	}
	return s.Delete(ctx, id)
}
