package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/draftloop/draft-backend/internal/auth"
	"github.com/draftloop/draft-backend/internal/store"
)

// maxBoxItems caps one box; drafts only ever need a fraction of this.
const maxBoxItems = 500

type handlers struct {
	store *store.Store
	log   *zap.Logger
}

type boxRequest struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func (h *handlers) listBoxes(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	boxes, err := h.store.ListBoxes(user.ID)
	if err != nil {
		h.serverError(w, "list boxes", err)
		return
	}
	writeJSON(w, http.StatusOK, boxes)
}

func (h *handlers) getBox(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	boxID, ok := boxIDParam(w, r)
	if !ok {
		return
	}
	box, err := h.store.GetBox(user.ID, boxID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "box not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, "get box", err)
		return
	}
	writeJSON(w, http.StatusOK, box)
}

func (h *handlers) createBox(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	req, ok := readBoxRequest(w, r)
	if !ok {
		return
	}
	box, err := h.store.CreateBox(user.ID, req.Name, req.Items)
	if err != nil {
		h.serverError(w, "create box", err)
		return
	}
	writeJSON(w, http.StatusCreated, box)
}

func (h *handlers) updateBox(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	boxID, ok := boxIDParam(w, r)
	if !ok {
		return
	}
	req, ok := readBoxRequest(w, r)
	if !ok {
		return
	}
	box, err := h.store.UpdateBox(user.ID, boxID, req.Name, req.Items)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "box not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, "update box", err)
		return
	}
	writeJSON(w, http.StatusOK, box)
}

func (h *handlers) deleteBox(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	boxID, ok := boxIDParam(w, r)
	if !ok {
		return
	}
	err := h.store.DeleteBox(user.ID, boxID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "box not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, "delete box", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) serverError(w http.ResponseWriter, op string, err error) {
	h.log.Error(op, zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func readBoxRequest(w http.ResponseWriter, r *http.Request) (boxRequest, bool) {
	var req boxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return boxRequest{}, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "box name required", http.StatusBadRequest)
		return boxRequest{}, false
	}
	req.Items = store.NormalizeItems(req.Items)
	if len(req.Items) > maxBoxItems {
		http.Error(w, "too many items", http.StatusBadRequest)
		return boxRequest{}, false
	}
	return req, true
}

func boxIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "boxID"), 10, 64)
	if err != nil {
		http.Error(w, "bad box id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
