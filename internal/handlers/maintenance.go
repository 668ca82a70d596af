package handlers

import (
	"net/http"

	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

type MaintenanceHandler struct {
	Records  *services.MaintenanceService
	Identity *Identity
}

func NewMaintenanceHandler(svc *services.MaintenanceService, identity *Identity) *MaintenanceHandler {
	return &MaintenanceHandler{Records: svc, Identity: identity}
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	vehicleID, err := queryUint(r, "vehicle_id")
	if err != nil {
		fail(w, err)
		return
	}
	records, err := h.Records.List(caller, vehicleID)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, records)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	record, err := h.Records.Get(id, caller)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, record)
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := h.Identity.Caller(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in services.MaintenanceCreateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	record, err := h.Records.Create(caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.Created(w, record)
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var in services.MaintenanceUpdateInput
	if err := decode(r, &in); err != nil {
		fail(w, err)
		return
	}
	record, err := h.Records.Update(id, caller, in)
	if err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, record)
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Records.Delete(id, caller); err != nil {
		fail(w, err)
		return
	}
	httpx.OK(w, nil)
}
