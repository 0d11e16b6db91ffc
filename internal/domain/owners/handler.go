package owners

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vet-practice/internal/domain/dogs"
	"vet-practice/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type RouteOptions struct {
	ImageURLPrefix string
	Logger         logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts RouteOptions) {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	r.Route("/Owner", func(or chi.Router) {
		or.Get("/", listOwnersHandler(svc, opts))
		or.Post("/", createOwnerHandler(svc, opts))
		or.Get("/{id}", getOwnerHandler(svc, opts))
		or.Put("/{id}", updateOwnerHandler(svc, opts))
		or.Delete("/{id}", deleteOwnerHandler(svc, opts))
	})
}

// ownerRequest es el cuerpo JSON de create/update.
type ownerRequest struct {
	ID               int    `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AlternativePhone string `json:"alternativePhone"`
	Address          string `json:"address"`
	Address2         string `json:"address2"`
	City             string `json:"city"`
	PostalCode       string `json:"postalCode"`
	Country          string `json:"country"`
	LastVisit        string `json:"lastVisit"` // RFC3339 o YYYY-MM-DD, opcional
}

type ownerResponse struct {
	ID               int             `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	AlternativePhone string          `json:"alternativePhone,omitempty"`
	Address          string          `json:"address"`
	Address2         string          `json:"address2,omitempty"`
	City             string          `json:"city"`
	PostalCode       string          `json:"postalCode"`
	Country          string          `json:"country"`
	LastVisit        *time.Time      `json:"lastVisit"`
	Dogs             []dogs.Response `json:"dogs"`
}

// listOwnersHandler godoc
// @Summary Listar dueños con sus perros
// @Tags owners
// @Produce json
// @Success 200 {array} ownerResponse
// @Router /Owner [get]
func listOwnersHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOwnerResponse(o, opts.ImageURLPrefix))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getOwnerHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(o, opts.ImageURLPrefix))
	}
}

// createOwnerHandler godoc
// @Summary Crear dueño
// @Tags owners
// @Accept json
// @Produce json
// @Param payload body ownerRequest true "Datos del dueño"
// @Success 201 {object} ownerResponse
// @Failure 400 {string} string "invalid json / campo requerido"
// @Router /Owner [post]
func createOwnerHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := decodeOwner(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := svc.Create(r.Context(), o)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/Owner/%d", created.ID))
		writeJSON(w, http.StatusCreated, toOwnerResponse(created, opts.ImageURLPrefix))
	}
}

func updateOwnerHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		o, err := decodeOwner(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), id, o)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(updated, opts.ImageURLPrefix))
	}
}

func deleteOwnerHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		o, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(o, opts.ImageURLPrefix))
	}
}

func decodeOwner(r *http.Request) (Owner, error) {
	var req ownerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Owner{}, errors.New("invalid json")
	}

	lastVisit, err := parseLastVisit(req.LastVisit)
	if err != nil {
		return Owner{}, err
	}

	return Owner{
		ID:               req.ID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		AlternativePhone: req.AlternativePhone,
		Address:          req.Address,
		Address2:         req.Address2,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		LastVisit:        lastVisit,
	}, nil
}

var lastVisitLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseLastVisit(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range lastVisitLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("lastVisit must be RFC3339 or YYYY-MM-DD")
}

func toOwnerResponse(o Owner, imageURLPrefix string) ownerResponse {
	ds := make([]dogs.Response, 0, len(o.Dogs))
	for _, d := range o.Dogs {
		ds = append(ds, dogs.ToResponse(d, imageURLPrefix))
	}
	return ownerResponse{
		ID:               o.ID,
		FirstName:        o.FirstName,
		LastName:         o.LastName,
		Email:            o.Email,
		Phone:            o.Phone,
		AlternativePhone: o.AlternativePhone,
		Address:          o.Address,
		Address2:         o.Address2,
		City:             o.City,
		PostalCode:       o.PostalCode,
		Country:          o.Country,
		LastVisit:        o.LastVisit,
		Dogs:             ds,
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "owner not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "owner not found", http.StatusNotFound)
	case errors.Is(err, ErrIDMismatch), errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("owner request failed", map[string]any{
			"error":      err,
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": chimw.GetReqID(r.Context()),
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
