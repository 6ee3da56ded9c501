package main

import (
	"net/http"
	"path/filepath"

	"advertBack/internal/models"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

// handle wraps a chain with request metrics labelled by route.
func (app *application) handle(route string, chain alice.Chain, fn http.HandlerFunc) http.Handler {
	return app.metrics.instrument(route, chain.ThenFunc(fn))
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.requireRole(models.RoleUser))
	adminAuthMiddleware := standardMiddleware.Append(app.requireRole(models.RoleAdmin))
	wsMiddleware := alice.New(app.recoverPanic, app.logRequest, app.requireRole(models.RoleUser))

	mux := pat.New()
	ads := app.advertisementHandler

	// Advertisements
	mux.Get("/Advertisements", app.handle("/Advertisements", standardMiddleware, ads.Index))
	mux.Get("/Advertisements/Index", app.handle("/Advertisements/Index", standardMiddleware, ads.Index))
	mux.Get("/Advertisements/SearchSuggestions", app.handle("/Advertisements/SearchSuggestions", standardMiddleware, ads.SearchSuggestions))
	mux.Get("/Advertisements/Details/:id", app.handle("/Advertisements/Details/:id", standardMiddleware, ads.Details))
	mux.Get("/Advertisements/Create", app.handle("/Advertisements/Create", authMiddleware, ads.CreateForm))
	mux.Post("/Advertisements/Create", app.handle("/Advertisements/Create", authMiddleware, ads.Create))
	mux.Get("/Advertisements/Edit/:id", app.handle("/Advertisements/Edit/:id", authMiddleware, ads.EditForm))
	mux.Post("/Advertisements/Edit/:id", app.handle("/Advertisements/Edit/:id", authMiddleware, ads.Edit))
	mux.Get("/Advertisements/Manage/:id", app.handle("/Advertisements/Manage/:id", authMiddleware, ads.Manage))
	mux.Post("/Advertisements/ChangeStatus", app.handle("/Advertisements/ChangeStatus", authMiddleware, ads.ChangeStatus))
	mux.Get("/Advertisements/GetSellerPhone", app.handle("/Advertisements/GetSellerPhone", authMiddleware, ads.GetSellerPhone))

	// JSON API. Reads are public, writes need a signed-in user.
	api := app.advertisementAPIHandler
	mux.Get("/api/Advertisements", app.handle("/api/Advertisements", standardMiddleware, api.List))
	mux.Post("/api/Advertisements", app.handle("/api/Advertisements", authMiddleware, api.Create))
	mux.Get("/api/Advertisements/categories", app.handle("/api/Advertisements/categories", standardMiddleware, api.Categories))
	mux.Get("/api/Advertisements/first-user", app.handle("/api/Advertisements/first-user", standardMiddleware, api.FirstUser))
	mux.Get("/api/Advertisements/:id", app.handle("/api/Advertisements/:id", standardMiddleware, api.Get))
	mux.Put("/api/Advertisements/:id", app.handle("/api/Advertisements/:id", authMiddleware, api.Update))
	mux.Del("/api/Advertisements/:id", app.handle("/api/Advertisements/:id", authMiddleware, api.Delete))

	// Chat
	mux.Get("/Chat/Index", app.handle("/Chat/Index", authMiddleware, app.chatHandler.Index))
	mux.Get("/Chat/Conversation", app.handle("/Chat/Conversation", authMiddleware, app.chatHandler.Conversation))
	mux.Post("/Chat/SendMessage", app.handle("/Chat/SendMessage", authMiddleware, app.chatHandler.SendMessage))
	mux.Post("/api/device-tokens", app.handle("/api/device-tokens", authMiddleware, app.chatHandler.RegisterDeviceToken))
	mux.Get("/ws", wsMiddleware.ThenFunc(app.WebSocketHandler))

	// Cabinet
	mux.Get("/Cabinet/Index", app.handle("/Cabinet/Index", authMiddleware, app.cabinetHandler.Index))
	mux.Post("/Cabinet/DeleteMyAd", app.handle("/Cabinet/DeleteMyAd", authMiddleware, app.cabinetHandler.DeleteMyAd))
	mux.Post("/Cabinet/ToggleFavorite", app.handle("/Cabinet/ToggleFavorite", authMiddleware, app.cabinetHandler.ToggleFavorite))
	mux.Get("/Cabinet/Favorites", app.handle("/Cabinet/Favorites", authMiddleware, app.cabinetHandler.Favorites))

	// Catalogue
	mux.Get("/Categories/Index", app.handle("/Categories/Index", standardMiddleware, app.categoryHandler.Index))
	mux.Get("/Categories/Details/:id", app.handle("/Categories/Details/:id", standardMiddleware, app.categoryHandler.Details))
	mux.Get("/Users/Index", app.handle("/Users/Index", standardMiddleware, app.userHandler.Index))
	mux.Get("/Users/Details/:id", app.handle("/Users/Details/:id", standardMiddleware, app.userHandler.Details))

	// Account
	mux.Post("/Account/Register", app.handle("/Account/Register", standardMiddleware, app.userHandler.Register))
	mux.Post("/Account/Login", app.handle("/Account/Login", standardMiddleware, app.userHandler.Login))

	// Admin
	admin := app.adminHandler
	mux.Get("/Admin/Advertisements", app.handle("/Admin/Advertisements", adminAuthMiddleware, admin.Advertisements))
	mux.Del("/Admin/Advertisements/:id", app.handle("/Admin/Advertisements/:id", adminAuthMiddleware, admin.DeleteAdvertisement))
	mux.Get("/Admin/Categories", app.handle("/Admin/Categories", adminAuthMiddleware, admin.Categories))
	mux.Post("/Admin/Categories", app.handle("/Admin/Categories", adminAuthMiddleware, admin.CreateCategory))
	mux.Put("/Admin/Categories/:id", app.handle("/Admin/Categories/:id", adminAuthMiddleware, admin.UpdateCategory))
	mux.Del("/Admin/Categories/:id", app.handle("/Admin/Categories/:id", adminAuthMiddleware, admin.DeleteCategory))
	mux.Get("/Admin/Regions", app.handle("/Admin/Regions", adminAuthMiddleware, admin.Regions))
	mux.Post("/Admin/Regions", app.handle("/Admin/Regions", adminAuthMiddleware, admin.CreateRegion))
	mux.Put("/Admin/Regions/:id", app.handle("/Admin/Regions/:id", adminAuthMiddleware, admin.UpdateRegion))
	mux.Del("/Admin/Regions/:id", app.handle("/Admin/Regions/:id", adminAuthMiddleware, admin.DeleteRegion))
	mux.Get("/Admin/Users", app.handle("/Admin/Users", adminAuthMiddleware, admin.Users))
	mux.Get("/Admin/Users/:id", app.handle("/Admin/Users/:id", adminAuthMiddleware, admin.User))
	mux.Put("/Admin/Users/:id", app.handle("/Admin/Users/:id", adminAuthMiddleware, admin.UpdateUser))
	mux.Del("/Admin/Users/:id", app.handle("/Admin/Users/:id", adminAuthMiddleware, admin.DeleteUser))

	mux.Get("/metrics", app.metrics.handler())

	if app.cfg.Storage.Driver != "s3" {
		images := filepath.Join(app.cfg.Storage.WebRoot, "images")
		mux.Get("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(images))))
	}

	// pat treats a trailing slash as a prefix match, so the root goes last.
	mux.Get("/", app.handle("/", standardMiddleware, ads.Index))

	return mux
}
