package handlers

import (
	"net/http"
	"time"

	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

type TripHandler struct {
	Trips    *services.TripService
	Identity *Identity
}

func NewTripHandler(svc *services.TripService, identity *Identity) *TripHandler {
	return &TripHandler{Trips: svc, Identity: identity}
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	trips, err := h.Trips.List(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, trips)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	trip, err := h.Trips.Get(id, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, trip)
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.TripCreateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	trip, err := h.Trips.Create(caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.Created(w, trip)
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var in services.TripUpdateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	trip, err := h.Trips.Update(id, caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, trip)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Trips.Delete(id, caller); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *TripHandler) Stats(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	stats, err := h.Trips.Stats(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, stats)
}

func (h *TripHandler) TotalPassengers(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	total, err := h.Trips.TotalPassengers(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, map[string]int64{"total_passengers": total})
}

// Upcoming serves the day's trips for the dashboard schedule. An
// optional date query (YYYY-MM-DD) overrides today.
func (h *TripHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fail(w, apperr.Invalid("date", "must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}
	trips, err := h.Trips.Upcoming(caller, day)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, trips)
}

// ReferenceData serves the lookup lists the trip form needs.
func (h *TripHandler) ReferenceData(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	data, err := h.Trips.ReferenceData(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, data)
}
