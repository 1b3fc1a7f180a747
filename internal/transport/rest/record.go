package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/mediacard-backend/internal/domain"
	"github.com/heartmarshall/mediacard-backend/internal/pagination"
	"github.com/heartmarshall/mediacard-backend/internal/service/record"
)

// recordService defines the minimal interface needed by RecordHandler.
type recordService interface {
	Get(ctx context.Context, id string) (*domain.RecordAggregate, error)
	FindPage(ctx context.Context, filter domain.RecordFilter, q pagination.Query) (pagination.Page[domain.RecordAggregate], error)
	Create(ctx context.Context, input record.CreateInput) (*domain.RecordAggregate, error)
	Update(ctx context.Context, input record.UpdateInput) (*domain.RecordAggregate, error)
	Delete(ctx context.Context, id string) error
}

// RecordHandler serves record REST endpoints.
type RecordHandler struct {
	svc recordService
	log *slog.Logger
}

// NewRecordHandler creates a RecordHandler.
func NewRecordHandler(svc recordService, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{svc: svc, log: logger.With("handler", "record")}
}

type candidateRequest struct {
	Name   string  `json:"name"`
	Link   *string `json:"link"`
	Manual *bool   `json:"manual"`
}

type linkRequest struct {
	Name string           `json:"name"`
	Size *decimal.Decimal `json:"size"`
	Date *time.Time       `json:"date"`
	Link *string          `json:"link"`
	Star *bool            `json:"star"`
}

type createRecordRequest struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Date          time.Time          `json:"date"`
	Duration      int32              `json:"duration"`
	Director      *candidateRequest  `json:"director"`
	Studio        *candidateRequest  `json:"studio"`
	Label         *candidateRequest  `json:"label"`
	Series        *candidateRequest  `json:"series"`
	Genres        []candidateRequest `json:"genres"`
	Idols         []candidateRequest `json:"idols"`
	Links         []linkRequest      `json:"links"`
	HasLinks      bool               `json:"has_links"`
	Permission    int32              `json:"permission"`
	LocalImgCount int32              `json:"local_img_count"`
	Creator       string             `json:"creator"`
	ModifiedBy    string             `json:"modified_by"`
}

type updateRecordRequest struct {
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	Duration      int32     `json:"duration"`
	DirectorID    int64     `json:"director_id"`
	StudioID      int64     `json:"studio_id"`
	LabelID       int64     `json:"label_id"`
	SeriesID      int64     `json:"series_id"`
	HasLinks      bool      `json:"has_links"`
	Permission    int32     `json:"permission"`
	LocalImgCount int32     `json:"local_img_count"`
	ModifiedBy    string    `json:"modified_by"`
}

type genreTagResponse struct {
	Genre  lookupResponse `json:"genre"`
	Manual bool           `json:"manual"`
}

type idolCreditResponse struct {
	Idol   lookupResponse `json:"idol"`
	Manual bool           `json:"manual"`
}

type linkResponse struct {
	ID   int64           `json:"id"`
	Name string          `json:"name"`
	Size decimal.Decimal `json:"size"`
	Date time.Time       `json:"date"`
	Link string          `json:"link"`
	Star bool            `json:"star"`
}

type recordResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Date          time.Time            `json:"date"`
	Duration      int32                `json:"duration"`
	Director      lookupResponse       `json:"director"`
	Studio        lookupResponse       `json:"studio"`
	Label         lookupResponse       `json:"label"`
	Series        lookupResponse       `json:"series"`
	Genres        []genreTagResponse   `json:"genres"`
	Idols         []idolCreditResponse `json:"idols"`
	Links         []linkResponse       `json:"links"`
	HasLinks      bool                 `json:"has_links"`
	Permission    int32                `json:"permission"`
	LocalImgCount int32                `json:"local_img_count"`
	CreateTime    time.Time            `json:"create_time"`
	UpdateTime    time.Time            `json:"update_time"`
	Creator       string               `json:"creator"`
	ModifiedBy    string               `json:"modified_by"`
}

// List handles GET /records. Supports id/title substring filters, foreign-key
// filters, and limit/offset pagination.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.RecordFilter{
		ID:         queryString(r, "id"),
		Title:      queryString(r, "title"),
		DirectorID: queryInt64(r, "director_id"),
		StudioID:   queryInt64(r, "studio_id"),
		LabelID:    queryInt64(r, "label_id"),
		SeriesID:   queryInt64(r, "series_id"),
	}

	page, err := h.svc.FindPage(r.Context(), filter, pageQuery(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	results := make([]recordResponse, 0, len(page.Results))
	for i := range page.Results {
		results = append(results, toRecordResponse(&page.Results[i]))
	}

	writeJSON(w, http.StatusOK, pagination.Page[recordResponse]{
		Count:    page.Count,
		Next:     page.Next,
		Previous: page.Previous,
		Results:  results,
	})
}

// Get handles GET /records/{id}.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	agg, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(agg))
}

// Create handles POST /records. Posting an id that already exists returns
// the existing record with 200 instead of creating anything.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), toCreateInput(req))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(created))
}

// Update handles PUT /records/{id}.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.Update(r.Context(), record.UpdateInput{
		ID:            r.PathValue("id"),
		Title:         req.Title,
		Date:          req.Date,
		Duration:      req.Duration,
		DirectorID:    req.DirectorID,
		StudioID:      req.StudioID,
		LabelID:       req.LabelID,
		SeriesID:      req.SeriesID,
		HasLinks:      req.HasLinks,
		Permission:    req.Permission,
		LocalImgCount: req.LocalImgCount,
		ModifiedBy:    req.ModifiedBy,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(updated))
}

// Delete handles DELETE /records/{id}.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCreateInput(req createRecordRequest) record.CreateInput {
	input := record.CreateInput{
		ID:            req.ID,
		Title:         req.Title,
		Date:          req.Date,
		Duration:      req.Duration,
		HasLinks:      req.HasLinks,
		Permission:    req.Permission,
		LocalImgCount: req.LocalImgCount,
		Creator:       req.Creator,
		ModifiedBy:    req.ModifiedBy,
	}

	input.Director = toCandidateInput(req.Director)
	input.Studio = toCandidateInput(req.Studio)
	input.Label = toCandidateInput(req.Label)
	input.Series = toCandidateInput(req.Series)

	for _, c := range req.Genres {
		input.Genres = append(input.Genres, record.CandidateInput(c))
	}
	for _, c := range req.Idols {
		input.Idols = append(input.Idols, record.CandidateInput(c))
	}
	for _, l := range req.Links {
		input.Links = append(input.Links, record.LinkInput(l))
	}

	return input
}

func toCandidateInput(req *candidateRequest) *record.CandidateInput {
	if req == nil {
		return nil
	}
	c := record.CandidateInput(*req)
	return &c
}

func toRecordResponse(agg *domain.RecordAggregate) recordResponse {
	resp := recordResponse{
		ID:            agg.ID,
		Title:         agg.Title,
		Date:          agg.Date,
		Duration:      agg.Duration,
		Director:      toLookupResponse(&agg.Director),
		Studio:        toLookupResponse(&agg.Studio),
		Label:         toLookupResponse(&agg.Label),
		Series:        toLookupResponse(&agg.Series),
		Genres:        []genreTagResponse{},
		Idols:         []idolCreditResponse{},
		Links:         []linkResponse{},
		HasLinks:      agg.HasLinks,
		Permission:    agg.Permission,
		LocalImgCount: agg.LocalImgCount,
		CreateTime:    agg.CreateTime,
		UpdateTime:    agg.UpdateTime,
		Creator:       agg.Creator,
		ModifiedBy:    agg.ModifiedBy,
	}

	for _, g := range agg.Genres {
		resp.Genres = append(resp.Genres, genreTagResponse{Genre: toLookupResponse(&g.Genre), Manual: g.Manual})
	}
	for _, i := range agg.Idols {
		resp.Idols = append(resp.Idols, idolCreditResponse{Idol: toLookupResponse(&i.Idol), Manual: i.Manual})
	}
	for _, l := range agg.Links {
		resp.Links = append(resp.Links, linkResponse{
			ID: l.ID, Name: l.Name, Size: l.Size, Date: l.Date, Link: l.Link, Star: l.Star,
		})
	}

	return resp
}
