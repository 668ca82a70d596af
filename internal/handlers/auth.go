package handlers

import (
	"net/http"

	"github.com/ZakariaBatty/fleetdesk/auth"
	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Identity *Identity
}

func NewAuthHandler(svc *services.AuthService, identity *Identity) *AuthHandler {
	return &AuthHandler{Auth: svc, Identity: identity}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	user, err := h.Auth.Register(in)
	if err != nil {
		fail(w, err)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.Created(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	user, err := h.Auth.Login(in.Email, in.Password)
	if err != nil {
		fail(w, err)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.OK(w, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.OK(w, nil)
}

// Me returns the authenticated user's account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	user, err := h.Auth.Users.ByID(caller.UserID)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, user)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.ChangePasswordInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	if err := h.Auth.ChangePassword(caller, in); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in struct {
		UserID      uint   `json:"user_id"`
		NewPassword string `json:"new_password"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	if err := h.Auth.ResetPassword(caller, in.UserID, in.NewPassword); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}
