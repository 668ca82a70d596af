// Package handlers is the HTTP boundary. It decodes payloads, resolves
// the caller identity from the session, invokes services and flattens
// their structured errors into the response envelope. No authorization
// decision is made here.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
)

// fail maps a service error onto a status code and envelope message.
// Authorization denials carry the "Unauthorized: " prefix the API
// contract promises; storage failures are logged and masked.
func fail(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Printf("unclassified error: %v", err)
		httpx.Fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	switch e.Kind {
	case apperr.KindUnauthenticated:
		httpx.Fail(w, http.StatusUnauthorized, "Unauthorized: Not authenticated")
	case apperr.KindUnauthorized:
		httpx.Fail(w, http.StatusForbidden, "Unauthorized: "+e.Msg)
	case apperr.KindNotFound:
		httpx.Fail(w, http.StatusNotFound, e.Msg)
	case apperr.KindInvalid:
		httpx.Fail(w, http.StatusBadRequest, e.Error())
	case apperr.KindConflict:
		httpx.Fail(w, http.StatusConflict, e.Msg)
	default:
		log.Printf("storage error: %v", e.Unwrap())
		httpx.Fail(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decode reads a JSON body into dst, rejecting unknown garbage early.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Invalid("body", "invalid JSON payload")
	}
	return nil
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uint, error) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, apperr.Invalid("id", "invalid id")
	}
	return uint(id64), nil
}

// queryUint parses an optional numeric query parameter; absent means 0.
func queryUint(r *http.Request, name string) (uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.Invalid(name, "invalid value")
	}
	return uint(id64), nil
}
