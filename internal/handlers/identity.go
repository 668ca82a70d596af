package handlers

import (
	"net/http"

	"github.com/ZakariaBatty/fleetdesk/auth"
	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

// Identity resolves the caller from the session on every request. The
// session carries only the user id; the role is read from the current
// user row so a demotion or deactivation bites on the very next call.
type Identity struct {
	Users *repo.UserRepo
}

func NewIdentity(users *repo.UserRepo) *Identity {
	return &Identity{Users: users}
}

func (i *Identity) Caller(r *http.Request) (services.Caller, error) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return services.Caller{}, apperr.Unauthenticated("not authenticated")
	}
	user, err := i.Users.ByID(uid)
	if err != nil {
		return services.Caller{}, apperr.Storage(err)
	}
	if user == nil || user.Status != models.UserActive {
		return services.Caller{}, apperr.Unauthenticated("not authenticated")
	}
	return services.Caller{UserID: user.ID, Role: user.Role}, nil
}
