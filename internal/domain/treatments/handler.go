package treatments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vet-practice/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}

	r.Route("/Treatment", func(tr chi.Router) {
		tr.Get("/", listTreatmentsHandler(svc, log))
		tr.Post("/", createTreatmentHandler(svc, log))
		tr.Get("/{id}", getTreatmentHandler(svc, log))
		tr.Put("/{id}", updateTreatmentHandler(svc, log))
		tr.Patch("/{id}", patchTreatmentHandler(svc, log))
		tr.Delete("/{id}", deleteTreatmentHandler(svc, log))
	})
}

// treatmentRequest es el cuerpo de POST y PUT.
type treatmentRequest struct {
	Description string  `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Time        string  `json:"time"` // HH:MM[:SS], opcional
	Cost        float64 `json:"cost"`
	DogID       int     `json:"dogID"`
}

type Response struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Cost        float64 `json:"cost"`
	DogID       int     `json:"dogID"`
}

func ToResponse(t Treatment) Response {
	return Response{
		ID:          t.ID,
		Description: t.Description,
		Date:        t.Date.String(),
		Time:        t.Time.String(),
		Cost:        t.Cost,
		DogID:       t.DogID,
	}
}

// listTreatmentsHandler godoc
// @Summary Listar tratamientos
// @Tags treatments
// @Produce json
// @Param dogID query int false "Solo los del perro indicado"
// @Param from query string false "Desde (YYYY-MM-DD, inclusive)"
// @Param to query string false "Hasta (YYYY-MM-DD, inclusive)"
// @Success 200 {array} Response
// @Failure 400 {string} string "filtro inválido"
// @Router /Treatment [get]
func listTreatmentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]Response, 0, len(items))
		for _, t := range items {
			out = append(out, ToResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTreatmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		t, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(t))
	}
}

// createTreatmentHandler godoc
// @Summary Crear tratamiento
// @Description El dogID debe existir; si no, 400.
// @Tags treatments
// @Accept json
// @Produce json
// @Param payload body treatmentRequest true "Tratamiento"
// @Success 201 {object} Response
// @Failure 400 {string} string "invalid json / dogID inexistente / fecha inválida"
// @Router /Treatment [post]
func createTreatmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/Treatment/%d", t.ID))
		writeJSON(w, http.StatusCreated, ToResponse(t))
	}
}

func updateTreatmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		in, err := decodeInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		t, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(t))
	}
}

// patchTreatmentHandler godoc
// @Summary Update parcial de tratamiento
// @Description Campos ausentes, vacíos o en cero no cambian. `null` limpia description y cost; en date, time y dogID es 400.
// @Tags treatments
// @Accept json
// @Produce json
// @Param id path int true "ID del tratamiento"
// @Param payload body treatmentRequest false "Campos a modificar"
// @Success 200 {object} Response
// @Failure 400 {string} string "invalid json / null no permitido"
// @Failure 404 {string} string "treatment not found"
// @Router /Treatment/{id} [patch]
func patchTreatmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		// Decodificamos a map para detectar presencia y null por campo.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := decodePatch(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		t, err := svc.Patch(r.Context(), id, p)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(t))
	}
}

func deleteTreatmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		t, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(t))
	}
}

func decodeInput(r *http.Request) (Input, error) {
	var req treatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Input{}, errors.New("invalid json")
	}

	in := Input{
		Description: req.Description,
		Cost:        req.Cost,
		DogID:       req.DogID,
	}

	if strings.TrimSpace(req.Date) != "" {
		d, err := ParseDate(req.Date)
		if err != nil {
			return Input{}, err
		}
		in.Date = d
	}
	if strings.TrimSpace(req.Time) != "" {
		c, err := ParseClock(req.Time)
		if err != nil {
			return Input{}, err
		}
		in.Time = c
	}
	return in, nil
}

func decodePatch(raw map[string]json.RawMessage) (Patch, error) {
	var p Patch
	var err error

	if p.Description, err = optionalField(raw, "description", func(s string) (string, error) { return s, nil }); err != nil {
		return Patch{}, err
	}
	if p.Date, err = optionalField(raw, "date", func(s string) (Date, error) {
		if strings.TrimSpace(s) == "" {
			return Date{}, nil
		}
		return ParseDate(s)
	}); err != nil {
		return Patch{}, err
	}
	if p.Time, err = optionalField(raw, "time", func(s string) (Clock, error) {
		if strings.TrimSpace(s) == "" {
			return Clock{}, nil
		}
		return ParseClock(s)
	}); err != nil {
		return Patch{}, err
	}
	if p.Cost, err = optionalNumber[float64](raw, "cost"); err != nil {
		return Patch{}, err
	}
	if p.DogID, err = optionalNumber[int](raw, "dogID"); err != nil {
		return Patch{}, err
	}
	return p, nil
}

// lookup busca la key sin distinguir mayúsculas (los clientes mandan "DogID" o "dogId").
func lookup(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	if v, ok := raw[key]; ok {
		return v, true
	}
	for k, v := range raw {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func optionalField[T any](raw map[string]json.RawMessage, key string, parse func(string) (T, error)) (Optional[T], error) {
	v, ok := lookup(raw, key)
	if !ok {
		return Optional[T]{}, nil
	}
	if string(v) == "null" {
		return Null[T](), nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return Optional[T]{}, fmt.Errorf("%s must be a string or null", key)
	}
	val, err := parse(s)
	if err != nil {
		return Optional[T]{}, err
	}
	return Some(val), nil
}

func optionalNumber[T int | float64](raw map[string]json.RawMessage, key string) (Optional[T], error) {
	v, ok := lookup(raw, key)
	if !ok {
		return Optional[T]{}, nil
	}
	if string(v) == "null" {
		return Null[T](), nil
	}
	var n T
	if err := json.Unmarshal(v, &n); err != nil {
		return Optional[T]{}, fmt.Errorf("%s must be a number or null", key)
	}
	return Some(n), nil
}

func parseFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	var f ListFilter

	if v := strings.TrimSpace(q.Get("dogID")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ListFilter{}, errors.New("dogID must be an integer")
		}
		f.DogID = n
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			return ListFilter{}, err
		}
		f.From = &d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			return ListFilter{}, err
		}
		f.To = &d
	}
	return f, nil
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "treatment not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "treatment not found", http.StatusNotFound)
	case errors.Is(err, ErrDogNotFound), errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error("treatment request failed", map[string]any{
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
