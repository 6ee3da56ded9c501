package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"advertBack/internal/models"
)

const (
	maxUploadSize = 10 << 20

	cacheControlListing = "public, max-age=290"
	cacheControlNoStore = "no-store,no-cache"

	phoneNotSpecified = "Телефон не указан"
)

type AdvertisementHandler struct {
	Service AdvertisementService
}

func listingFilter(r *http.Request) models.ListingFilter {
	return models.ListingFilter{
		SearchString: strings.TrimSpace(getParam(r, "SearchString")),
		CategoryID:   optionalInt(r, "CategoryId"),
		RegionID:     optionalInt(r, "RegionId"),
		MinPrice:     optionalFloat(r, "MinPrice"),
		MaxPrice:     optionalFloat(r, "MaxPrice"),
		Page:         pageParam(r, "Page"),
	}
}

// Index serves the public listing. The unfiltered first page may be cached
// by clients and proxies; anything else must not be.
func (h *AdvertisementHandler) Index(w http.ResponseWriter, r *http.Request) {
	f := listingFilter(r)
	page, err := h.Service.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if f.Cacheable() {
		w.Header().Set("Cache-Control", cacheControlListing)
	} else {
		w.Header().Set("Cache-Control", cacheControlNoStore)
	}
	page.Advertisements = models.PublicAdvertisements(page.Advertisements)
	writeJSON(w, http.StatusOK, page)
}

func (h *AdvertisementHandler) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.Service.SearchSuggestions(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *AdvertisementHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	ad, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ad.WithPublicOwner())
}

func (h *AdvertisementHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	opts, err := h.Service.FormOptions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// advertisementInput reads the multipart (or urlencoded) advertisement form.
// The returned closer must be called once the upload has been consumed.
func advertisementInput(r *http.Request) (models.AdvertisementInput, func(), error) {
	noop := func() {}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return models.AdvertisementInput{}, noop, err
	}

	in := models.AdvertisementInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	verr := models.NewValidationError()
	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
		if err != nil {
			verr.Add("price", "price must be a number")
		}
		in.Price = price
	}
	in.CategoryID, _ = strconv.Atoi(r.FormValue("categoryId"))
	in.RegionID, _ = strconv.Atoi(r.FormValue("regionId"))
	if err := verr.OrNil(); err != nil {
		return models.AdvertisementInput{}, noop, err
	}

	file, header, err := r.FormFile("uploadedFile")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, noop, nil
	case err != nil:
		return models.AdvertisementInput{}, noop, err
	}
	if header.Size == 0 {
		file.Close()
		return in, noop, nil
	}
	in.Photo = &models.PhotoUpload{
		FileName:    filepath.Base(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return in, func() { file.Close() }, nil
}

func (h *AdvertisementHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)

	in, closeUpload, err := advertisementInput(r)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			writeError(w, r, err)
			return
		}
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	defer closeUpload()

	ad, err := h.Service.Create(r.Context(), actor.UserID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ad)
}

type editFormResponse struct {
	Advertisement models.Advertisement `json:"advertisement"`
	models.FormOptions
}

func (h *AdvertisementHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	ad, opts, err := h.Service.EditForm(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, editFormResponse{Advertisement: ad, FormOptions: opts})
}

func (h *AdvertisementHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)

	in, closeUpload, err := advertisementInput(r)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			writeError(w, r, err)
			return
		}
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	defer closeUpload()

	ad, err := h.Service.Edit(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

func (h *AdvertisementHandler) Manage(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	view, err := h.Service.Manage(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *AdvertisementHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFrom(r)
	id, ok := intParam(r, "id")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	if err := h.Service.ChangeStatus(r.Context(), actor, id, getParam(r, "newStatus")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdvertisementHandler) GetSellerPhone(w http.ResponseWriter, r *http.Request) {
	adID, ok := intParam(r, "adId")
	if !ok {
		http.Error(w, "Invalid advertisement ID", http.StatusBadRequest)
		return
	}
	phone, err := h.Service.SellerPhone(r.Context(), adID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := map[string]string{"phone": phoneNotSpecified}
	if phone != nil && *phone != "" {
		resp["phone"] = *phone
	}
	writeJSON(w, http.StatusOK, resp)
}
