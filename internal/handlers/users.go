package handlers

import (
	"net/http"

	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

type UserHandler struct {
	Users    *services.UserService
	Identity *Identity
}

func NewUserHandler(svc *services.UserService, identity *Identity) *UserHandler {
	return &UserHandler{Users: svc, Identity: identity}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	users, err := h.Users.List(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		fail(w, err)
		return
	}
	user, err := h.Users.Get(id, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, user)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.UserCreateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	user, err := h.Users.Create(caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.Created(w, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.UserUpdateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	user, err := h.Users.Update(id, caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		fail(w, err)
		return
	}
	if err := h.Users.Delete(id, caller); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}

// AssignableRoles reports which roles the caller may grant.
func (h *UserHandler) AssignableRoles(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, h.Users.AssignableRoles(caller))
}
