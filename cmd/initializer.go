package main

import (
	"database/sql"
	"time"

	"advertBack/internal/config"
	"advertBack/internal/events"
	"advertBack/internal/handlers"
	"advertBack/internal/notify"
	"advertBack/internal/repositories"
	"advertBack/internal/services"
	"advertBack/utils"

	"go.uber.org/zap"
)

type application struct {
	cfg     config.Config
	logger  *zap.Logger
	db      *sql.DB
	tokens  *utils.Manager
	metrics *metrics

	wsManager   *WebSocketManager
	chatService *services.ChatService

	advertisementHandler    *handlers.AdvertisementHandler
	advertisementAPIHandler *handlers.AdvertisementAPIHandler
	chatHandler             *handlers.ChatHandler
	cabinetHandler          *handlers.CabinetHandler
	categoryHandler         *handlers.CategoryHandler
	userHandler             *handlers.UserHandler
	adminHandler            *handlers.AdminHandler
}

// components holds the optional backends built in main. A nil field leaves
// the feature off.
type components struct {
	photos   utils.PhotoStore
	cache    services.ListingCache
	events   events.Publisher
	notifier notify.Notifier
}

func initializeApp(cfg config.Config, db *sql.DB, tokens *utils.Manager, comps components, logger *zap.Logger) *application {
	dialect := repositories.DialectFor(cfg.Database.Driver)

	// Repositories
	adRepo := &repositories.AdvertisementRepository{DB: db, Dialect: dialect}
	categoryRepo := &repositories.CategoryRepository{DB: db, Dialect: dialect}
	regionRepo := &repositories.RegionRepository{DB: db, Dialect: dialect}
	userRepo := &repositories.UserRepository{DB: db, Dialect: dialect}
	messageRepo := &repositories.MessageRepository{DB: db, Dialect: dialect}
	favoriteRepo := &repositories.FavoriteRepository{DB: db, Dialect: dialect}
	deviceTokenRepo := &repositories.DeviceTokenRepository{DB: db, Dialect: dialect}

	publisher := comps.events
	if publisher == nil {
		publisher = events.Noop{}
	}

	m := newMetrics()
	wsManager := NewWebSocketManager(logger, m)

	// Services
	adService := &services.AdvertisementService{
		Ads:        adRepo,
		Categories: categoryRepo,
		Regions:    regionRepo,
		Photos:     comps.photos,
		Events:     publisher,
		Now:        time.Now,
	}
	if comps.cache != nil {
		adService.Cache = comps.cache
	}
	chatService := &services.ChatService{
		Messages:     messageRepo,
		Users:        userRepo,
		Ads:          adRepo,
		DeviceTokens: deviceTokenRepo,
		Push:         wsManager,
		Events:       publisher,
		Now:          time.Now,
	}
	if comps.notifier != nil {
		chatService.Notifier = comps.notifier
	}
	favoriteService := &services.FavoriteService{Favorites: favoriteRepo, Ads: adRepo}
	categoryService := &services.CategoryService{Categories: categoryRepo, Ads: adRepo}
	regionService := &services.RegionService{Regions: regionRepo}
	userService := &services.UserService{
		Users:    userRepo,
		Ads:      adRepo,
		Regions:  regionRepo,
		JWT:      tokens,
		TokenTTL: cfg.Auth.TokenTTL,
	}

	return &application{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		tokens:      tokens,
		metrics:     m,
		wsManager:   wsManager,
		chatService: chatService,

		advertisementHandler: &handlers.AdvertisementHandler{Service: adService},
		advertisementAPIHandler: &handlers.AdvertisementAPIHandler{
			Ads:         adService,
			CategorySvc: categoryService,
			Users:       userService,
		},
		chatHandler:     &handlers.ChatHandler{Service: chatService},
		cabinetHandler:  &handlers.CabinetHandler{Ads: adService, FavoriteSvc: favoriteService},
		categoryHandler: &handlers.CategoryHandler{Service: categoryService},
		userHandler:     &handlers.UserHandler{Service: userService},
		adminHandler: &handlers.AdminHandler{
			Ads:         adService,
			CategorySvc: categoryService,
			RegionSvc:   regionService,
			UserSvc:     userService,
		},
	}
}
