package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/huseyinozgul/docvault/internal/logging"
	"github.com/huseyinozgul/docvault/internal/server/models"
)

// Handler serves the JSON API on top of the service layer.
type Handler struct {
	users   UserService
	folders FolderService
	files   FileService
	db      Pinger
	logger  logging.Logger
}

func NewHandler(us UserService, fs FolderService, fis FileService, db Pinger, l logging.Logger) *Handler {
	return &Handler{
		users:   us,
		folders: fs,
		files:   fis,
		db:      db,
		logger:  l.With("module", "rest"),
	}
}

type ctxKey string

const userKey ctxKey = "user"

func withUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// currentUser returns the user put in place by the authentication
// middleware. Routes mounted behind it always have one.
func currentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}

// pathID parses a numeric path parameter. ok is false when the value is not
// a positive integer.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
