package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"advertBack/internal/models"
	"advertBack/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 4

type UserService struct {
	Users    UserStore
	Ads      AdvertisementStore
	Regions  RegionStore
	JWT      *utils.Manager
	TokenTTL time.Duration
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	verr := models.NewValidationError()
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if !validEmail(req.Email) {
		verr.Add("email", "a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		verr.Add("password", "password must be at least 4 characters")
	}
	if req.Name == "" {
		verr.Add("name", "name is required")
	}
	if req.RegionID != nil {
		if _, err := s.Regions.GetByID(ctx, *req.RegionID); errors.Is(err, models.ErrNoRecord) {
			verr.Add("region_id", "region does not exist")
		} else if err != nil {
			return models.User{}, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return models.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		Rating:       models.DefaultUserRating,
		RegionID:     req.RegionID,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		user.Phone = &phone
	}
	return s.Users.CreateUser(ctx, user)
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (models.Tokens, error) {
	user, err := s.Users.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if errors.Is(err, models.ErrNoRecord) {
		return models.Tokens{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.Tokens{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		zap.S().Infow("failed login", "user_id", user.ID)
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	token, err := s.JWT.NewJWT(user.ID, user.Role, s.TokenTTL)
	if err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: token}, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Users.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id int) (models.User, error) {
	return s.Users.GetUserByID(ctx, id)
}

func (s *UserService) Details(ctx context.Context, id int) (models.UserDetails, error) {
	u, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		return models.UserDetails{}, err
	}
	ads, err := s.Ads.ListByUser(ctx, id)
	if err != nil {
		return models.UserDetails{}, err
	}
	return models.UserDetails{User: u, Advertisements: ads}, nil
}

// Update changes only email and name.
func (s *UserService) Update(ctx context.Context, id int, upd models.UserUpdate) error {
	verr := models.NewValidationError()
	upd.Email = strings.TrimSpace(strings.ToLower(upd.Email))
	upd.Name = strings.TrimSpace(upd.Name)
	if !validEmail(upd.Email) {
		verr.Add("email", "a valid email is required")
	}
	if upd.Name == "" {
		verr.Add("name", "name is required")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	return s.Users.UpdateUser(ctx, id, upd)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.Users.DeleteUser(ctx, id)
}

func (s *UserService) FirstUser(ctx context.Context) (models.FirstUser, error) {
	return s.Users.FirstUser(ctx)
}
