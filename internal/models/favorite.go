package models

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)

type Favorite struct {
	UserID          int `json:"user_id"`
	AdvertisementID int `json:"advertisement_id"`
}

type ToggleFavoriteResult struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}
