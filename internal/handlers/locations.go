package handlers

import (
	"net/http"

	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

// LocationHandler serves agencies and hotels.
type LocationHandler struct {
	Locations *services.LocationService
	Identity  *Identity
}

func NewLocationHandler(svc *services.LocationService, identity *Identity) *LocationHandler {
	return &LocationHandler{Locations: svc, Identity: identity}
}

func (h *LocationHandler) ListAgencies(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	agencies, err := h.Locations.ListAgencies(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, agencies)
}

func (h *LocationHandler) GetAgency(w http.ResponseWriter, r *http.Request) {
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
	agency, err := h.Locations.GetAgency(id, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, agency)
}

func (h *LocationHandler) CreateAgency(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.AgencyInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	agency, err := h.Locations.CreateAgency(caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.Created(w, agency)
}

func (h *LocationHandler) UpdateAgency(w http.ResponseWriter, r *http.Request) {
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
	var in services.AgencyInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	agency, err := h.Locations.UpdateAgency(id, caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, agency)
}

func (h *LocationHandler) DeleteAgency(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Locations.DeleteAgency(id, caller); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *LocationHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	hotels, err := h.Locations.ListHotels(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, hotels)
}

func (h *LocationHandler) GetHotel(w http.ResponseWriter, r *http.Request) {
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
	hotel, err := h.Locations.GetHotel(id, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, hotel)
}

func (h *LocationHandler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.HotelInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	hotel, err := h.Locations.CreateHotel(caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.Created(w, hotel)
}

func (h *LocationHandler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
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
	var in services.HotelInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	hotel, err := h.Locations.UpdateHotel(id, caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, hotel)
}

func (h *LocationHandler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Locations.DeleteHotel(id, caller); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}
