package handlers

import (
	"net/http"

	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

type VehicleHandler struct {
	Vehicles *services.VehicleService
	Identity *Identity
}

func NewVehicleHandler(svc *services.VehicleService, identity *Identity) *VehicleHandler {
	return &VehicleHandler{Vehicles: svc, Identity: identity}
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	vehicles, err := h.Vehicles.List(caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	vehicle, err := h.Vehicles.Get(id, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, vehicle)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.VehicleCreateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	vehicle, err := h.Vehicles.Create(caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.Created(w, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var in services.VehicleUpdateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	vehicle, err := h.Vehicles.Update(id, caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, vehicle)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Vehicles.Delete(id, caller); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}

// Assign swaps the vehicle's active driver assignment.
func (h *VehicleHandler) Assign(w http.ResponseWriter, r *http.Request) {
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
	var in struct {
		DriverID uint `json:"driver_id"`
	}
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	assignment, err := h.Vehicles.AssignDriver(id, in.DriverID, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.Created(w, assignment)
}

func (h *VehicleHandler) Unassign(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Vehicles.UnassignDriver(id, caller); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *VehicleHandler) Assignments(w http.ResponseWriter, r *http.Request) {
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
	assignments, err := h.Vehicles.Assignments(id, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, assignments)
}
