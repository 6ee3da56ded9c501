package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const DefaultUserRating = 5.0

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role,omitempty"`
	Rating       float64   `json:"rating"`
	RegionID     *int      `json:"region_id,omitempty"`
	Region       *Region   `json:"region,omitempty"`
	AdCount      int       `json:"ad_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public drops the contact details and role from a user shown to other people.
// The seller's phone is only served through the dedicated phone endpoint.
func (u User) Public() User {
	u.Email = ""
	u.Phone = nil
	u.Role = ""
	return u
}

type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	RegionID *int   `json:"region_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Tokens struct {
	AccessToken string `json:"access_token"`
}

// UserUpdate is the admin edit form: only email and name are editable.
type UserUpdate struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type UserDetails struct {
	User           User            `json:"user"`
	Advertisements []Advertisement `json:"advertisements"`
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID int
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor may change something owned by ownerID.
func (a Actor) CanManage(ownerID int) bool {
	return a.IsAdmin() || (a.UserID != 0 && a.UserID == ownerID)
}
