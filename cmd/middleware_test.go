package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"advertBack/internal/config"
	"advertBack/internal/handlers"
	"advertBack/internal/models"
	"advertBack/utils"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *application {
	t.Helper()
	tokens, err := utils.NewManager("test-secret")
	require.NoError(t, err)

	var cfg config.Config
	cfg.Server.Env = "production"
	cfg.Storage.WebRoot = t.TempDir()
	cfg.Auth.TokenTTL = time.Hour

	comps := components{photos: &utils.LocalPhotoStore{Root: cfg.Storage.WebRoot}}
	return initializeApp(cfg, nil, tokens, comps, zap.NewNop())
}

func bearer(t *testing.T, app *application, userID int, role string) string {
	t.Helper()
	tok, err := app.tokens.NewJWT(userID, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRequireRole(t *testing.T) {
	app := newTestApp(t)

	var gotID int
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = handlers.UserIDFromContext(r.Context())
		gotRole = handlers.RoleFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name   string
		role   string
		header string
		query  string
		want   int
	}{
		{name: "missing token", role: models.RoleUser, want: http.StatusUnauthorized},
		{name: "garbage token", role: models.RoleUser, header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "user on user route", role: models.RoleUser, header: bearer(t, app, 7, models.RoleUser), want: http.StatusTeapot},
		{name: "user on admin route", role: models.RoleAdmin, header: bearer(t, app, 7, models.RoleUser), want: http.StatusForbidden},
		{name: "admin on admin route", role: models.RoleAdmin, header: bearer(t, app, 1, models.RoleAdmin), want: http.StatusTeapot},
		{name: "admin on user route", role: models.RoleUser, header: bearer(t, app, 1, models.RoleAdmin), want: http.StatusTeapot},
		{name: "token in query", role: models.RoleUser, query: strings.TrimPrefix(bearer(t, app, 9, models.RoleUser), "Bearer "), want: http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotRole = 0, ""
			target := "/x"
			if tt.query != "" {
				target += "?access_token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			app.requireRole(tt.role)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusTeapot {
				assert.NotZero(t, gotID)
				assert.NotEmpty(t, gotRole)
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApp(t)
	h := app.recoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	secureHeaders(makeResponseJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "deny", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestInstrumentCountsByRoute(t *testing.T) {
	m := newMetrics()
	h := m.instrument("/Advertisements/Details/:id", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	for _, path := range []string{"/Advertisements/Details/1", "/Advertisements/Details/2"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/Advertisements/Details/:id", "404"))
	assert.Equal(t, float64(2), got)
}

func TestRoutesGuard(t *testing.T) {
	app := newTestApp(t)
	srv := app.routes()

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{name: "cabinet anonymous", method: http.MethodGet, path: "/Cabinet/Index", want: http.StatusUnauthorized},
		{name: "chat anonymous", method: http.MethodGet, path: "/Chat/Index", want: http.StatusUnauthorized},
		{name: "create anonymous", method: http.MethodPost, path: "/Advertisements/Create", want: http.StatusUnauthorized},
		{name: "api write anonymous", method: http.MethodDelete, path: "/api/Advertisements/3", want: http.StatusUnauthorized},
		{name: "admin as user", method: http.MethodGet, path: "/Admin/Users", auth: bearer(t, app, 5, models.RoleUser), want: http.StatusForbidden},
		{name: "ws anonymous", method: http.MethodGet, path: "/ws", want: http.StatusUnauthorized},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestWebSocketManagerDelivers(t *testing.T) {
	ws := NewWebSocketManager(zap.NewNop(), newMetrics())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ws.Run(ctx)

	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	ws.register <- Client{ID: 7, Socket: <-serverConns}
	ws.PushMessage(7, models.Message{ID: 11, Text: "Здравствуйте", FromUserID: 3, ToUserID: 7})
	ws.PushMessage(8, models.Message{ID: 12, Text: "nobody home"})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got models.Message
	require.NoError(t, client.ReadJSON(&got))
	assert.Equal(t, 11, got.ID)
	assert.Equal(t, "Здравствуйте", got.Text)

	cancel()
	done := make(chan struct{})
	go func() {
		ws.PushMessage(7, models.Message{ID: 13})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PushMessage blocked after shutdown")
	}
}
