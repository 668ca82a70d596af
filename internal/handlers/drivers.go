package handlers

import (
	"net/http"
	"strconv"

	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

type DriverHandler struct {
	Drivers  *services.DriverService
	Identity *Identity
}

func NewDriverHandler(svc *services.DriverService, identity *Identity) *DriverHandler {
	return &DriverHandler{Drivers: svc, Identity: identity}
}

func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	drivers, err := h.Drivers.List(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, drivers)
}

func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	driver, err := h.Drivers.Get(id, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, driver)
}

func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.DriverCreateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	driver, err := h.Drivers.Create(caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.Created(w, driver)
}

func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var in services.DriverUpdateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	driver, err := h.Drivers.Update(id, caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, driver)
}

func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Drivers.Delete(id, caller); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *DriverHandler) ExpiringLicenses(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	drivers, err := h.Drivers.ExpiringLicenses(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, drivers)
}

func (h *DriverHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	drivers, err := h.Drivers.TopRated(caller, limit)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, drivers)
}
