package handlers

import (
	"context"
	"net/http"

	"advertBack/internal/models"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
)

// ContextWithUser stores the authenticated user id and role on ctx.
func ContextWithUser(ctx context.Context, userID int, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// UserIDFromContext returns the authenticated user id, or false for anonymous requests.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func actorFrom(r *http.Request) (models.Actor, bool) {
	id, ok := UserIDFromContext(r.Context())
	if !ok {
		return models.Actor{}, false
	}
	return models.Actor{UserID: id, Role: RoleFromContext(r.Context())}, true
}
