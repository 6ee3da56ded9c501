package models

type Region struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}
