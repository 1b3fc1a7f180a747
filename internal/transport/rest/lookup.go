package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
	"github.com/heartmarshall/mediacard-backend/internal/pagination"
	"github.com/heartmarshall/mediacard-backend/internal/service/lookup"
)

// lookupService defines the minimal interface needed by LookupHandler.
type lookupService interface {
	Kind() domain.LookupKind
	Create(ctx context.Context, input lookup.CreateInput) (*domain.Lookup, error)
	Get(ctx context.Context, id int64) (*domain.Lookup, error)
	FindPage(ctx context.Context, filter domain.LookupFilter, q pagination.Query) (pagination.Page[domain.Lookup], error)
	Update(ctx context.Context, input lookup.UpdateInput) (*domain.Lookup, error)
	Delete(ctx context.Context, id int64) error
	RecordCounts(ctx context.Context) ([]domain.LookupCount, error)
}

// LookupHandler serves REST endpoints for one lookup kind. Six instances are
// mounted, one per collection.
type LookupHandler struct {
	svc lookupService
	log *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, log: logger.With("handler", string(svc.Kind()))}
}

type lookupRequest struct {
	Name   string  `json:"name"`
	Link   *string `json:"link"`
	Manual *bool   `json:"manual"`
}

type lookupResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Link   string `json:"link"`
	Manual bool   `json:"manual"`
}

type lookupCountResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// List handles GET /{kind}. Supports name/link substring filters and
// limit/offset pagination.
func (h *LookupHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.LookupFilter{
		ID:   queryInt64(r, "id"),
		Name: queryString(r, "name"),
		Link: queryString(r, "link"),
	}

	page, err := h.svc.FindPage(r.Context(), filter, pageQuery(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	results := make([]lookupResponse, 0, len(page.Results))
	for _, l := range page.Results {
		results = append(results, toLookupResponse(&l))
	}

	writeJSON(w, http.StatusOK, pagination.Page[lookupResponse]{
		Count:    page.Count,
		Next:     page.Next,
		Previous: page.Previous,
		Results:  results,
	})
}

// Get handles GET /{kind}/{id}.
func (h *LookupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLookupResponse(l))
}

// Create handles POST /{kind}. An existing entity with the same natural key
// is returned instead of a duplicate, with 200 rather than 201.
func (h *LookupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), lookup.CreateInput{
		Name:   req.Name,
		Link:   req.Link,
		Manual: req.Manual,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toLookupResponse(created))
}

// Update handles PUT /{kind}/{id}. The response may carry a different id than
// the path when the edit collided with an existing natural key.
func (h *LookupHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Name   *string `json:"name"`
		Link   *string `json:"link"`
		Manual *bool   `json:"manual"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), lookup.UpdateInput{
		ID:     id,
		Name:   req.Name,
		Link:   req.Link,
		Manual: req.Manual,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toLookupResponse(updated))
}

// Delete handles DELETE /{kind}/{id}.
func (h *LookupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /{kind}/stats: usage counts, most referenced first.
func (h *LookupHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.RecordCounts(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result := make([]lookupCountResponse, 0, len(counts))
	for _, c := range counts {
		result = append(result, lookupCountResponse(c))
	}

	writeJSON(w, http.StatusOK, result)
}

func toLookupResponse(l *domain.Lookup) lookupResponse {
	return lookupResponse{ID: l.ID, Name: l.Name, Link: l.Link, Manual: l.Manual}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
