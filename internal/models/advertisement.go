package models

import (
	"io"
	"time"
)

const (
	StatusActive   = "Active"
	StatusSold     = "Sold"
	StatusArchived = "Archived"
)

var AdvertisementStatuses = []string{StatusActive, StatusSold, StatusArchived}

func IsValidStatus(status string) bool {
	for _, s := range AdvertisementStatuses {
		if s == status {
			return true
		}
	}
	return false
}

const PlaceholderPhotoURL = "https://placehold.co/400x300?text=No+Photo"

type Advertisement struct {
	ID           int                  `json:"id"`
	Title        string               `json:"title"`
	Price        float64              `json:"price"`
	Description  string               `json:"description,omitempty"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UserID       int                  `json:"user_id"`
	CategoryID   int                  `json:"category_id"`
	RegionID     int                  `json:"region_id"`
	User         *User                `json:"user,omitempty"`
	Category     *Category            `json:"category,omitempty"`
	Region       *Region              `json:"region,omitempty"`
	Photos       []AdvertisementPhoto `json:"photos,omitempty"`
	MessageCount int                  `json:"message_count,omitempty"`
}

// MainPhotoURL returns the URL of the main photo, falling back to the first one.
func (a Advertisement) MainPhotoURL() string {
	for _, p := range a.Photos {
		if p.IsMain {
			return p.PhotoURL
		}
	}
	if len(a.Photos) > 0 {
		return a.Photos[0].PhotoURL
	}
	return ""
}

// WithPublicOwner returns a copy whose owner carries only the public fields.
func (a Advertisement) WithPublicOwner() Advertisement {
	if a.User != nil {
		u := a.User.Public()
		a.User = &u
	}
	return a
}

func PublicAdvertisements(ads []Advertisement) []Advertisement {
	if ads == nil {
		return nil
	}
	out := make([]Advertisement, len(ads))
	for i, a := range ads {
		out[i] = a.WithPublicOwner()
	}
	return out
}

type AdvertisementPhoto struct {
	ID              int    `json:"id"`
	AdvertisementID int    `json:"advertisement_id"`
	PhotoURL        string `json:"photo_url"`
	IsMain          bool   `json:"is_main"`
}

// AdvertisementInput is what the create and edit forms submit.
type AdvertisementInput struct {
	Title       string
	Price       float64
	Description string
	CategoryID  int
	RegionID    int
	Photo       *PhotoUpload
}

// PhotoUpload is an uploaded file not yet written to the photo store.
type PhotoUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type FormOptions struct {
	Categories []Category `json:"categories"`
	Regions    []Region   `json:"regions"`
}

type ManageView struct {
	Advertisement Advertisement `json:"advertisement"`
	Statuses      []string      `json:"statuses"`
}

type AdminAdvertisementPage struct {
	Advertisements []Advertisement `json:"advertisements"`
	Page           int             `json:"page"`
	TotalPages     int             `json:"total_pages"`
	TotalCount     int             `json:"total_count"`
}

// APIAdvertisement is the flat item of the public JSON API.
type APIAdvertisement struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Description  string  `json:"description,omitempty"`
	Status       string  `json:"status,omitempty"`
	CategoryID   int     `json:"categoryId"`
	UserID       int     `json:"userId"`
	RegionID     int     `json:"regionId"`
	CategoryName string  `json:"categoryName"`
	UserName     string  `json:"userName"`
}

type APIAdvertisementList struct {
	Items    []APIAdvertisement `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// APIAdvertisementWrite is the body accepted by POST and PUT.
type APIAdvertisementWrite struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	CategoryID  int     `json:"categoryId"`
	UserID      int     `json:"userId"`
	RegionID    int     `json:"regionId"`
}

type FirstUser struct {
	UserID   int `json:"userId"`
	RegionID int `json:"regionId"`
}
