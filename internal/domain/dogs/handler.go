package dogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vet-practice/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// UploadTimeout acota procesamiento de imagen + persistencia en create/update.
const UploadTimeout = 5 * time.Minute

// formOverhead es el margen de body para los campos no-archivo del multipart.
const formOverhead = 1 << 20

type RouteOptions struct {
	// ImageURLPrefix es donde se sirven los archivos estáticos (ej. "/images/").
	ImageURLPrefix string
	Logger         logger.Logger
	// UploadTimeout <= 0 usa UploadTimeout.
	UploadTimeout time.Duration
}

func RegisterRoutes(r chi.Router, svc *Service, opts RouteOptions) {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = UploadTimeout
	}

	r.Route("/Dog", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc, opts))
		dr.Post("/", createDogHandler(svc, opts))

		dr.Get("/image/{id}", getDogImageHandler(svc, opts))

		dr.Get("/{id}", getDogHandler(svc, opts))
		dr.Put("/{id}", updateDogHandler(svc, opts))
		dr.Put("/{id}/description", updateDescriptionHandler(svc, opts))
		dr.Delete("/{id}", deleteDogHandler(svc, opts))
	})
}

// dogRequest es el cuerpo JSON aceptado en create/update (sin imagen).
type dogRequest struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Race        string  `json:"race"`
	Weight      float64 `json:"weight"`
	OwnerID     int     `json:"ownerID"`
	Description string  `json:"description"`
}

type descriptionRequest struct {
	Description string `json:"description"`
}

// Response es la representación JSON de un perro. Exportada porque owners
// la embebe en su respuesta.
type Response struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Age              int     `json:"age"`
	Race             string  `json:"race"`
	Weight           float64 `json:"weight"`
	OwnerID          int     `json:"ownerID"`
	Description      string  `json:"description"`
	ImagePath        string  `json:"imagePath,omitempty"`
	ImageContentType string  `json:"imageContentType,omitempty"`
	ImageURL         string  `json:"imageUrl,omitempty"`
}

func ToResponse(d Dog, imageURLPrefix string) Response {
	out := Response{
		ID:               d.ID,
		Name:             d.Name,
		Age:              d.Age,
		Race:             d.Race,
		Weight:           d.Weight,
		OwnerID:          d.OwnerID,
		Description:      d.Description,
		ImagePath:        d.ImagePath,
		ImageContentType: d.ImageContentType,
	}
	if d.HasImage() {
		out.ImageURL = imageURLPrefix + d.ImagePath
	}
	return out
}

// listDogsHandler godoc
// @Summary Listar perros
// @Tags dogs
// @Produce json
// @Success 200 {array} Response
// @Router /Dog [get]
func listDogsHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}

		out := make([]Response, 0, len(items))
		for _, d := range items {
			out = append(out, ToResponse(d, opts.ImageURLPrefix))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getDogHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		d, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(d, opts.ImageURLPrefix))
	}
}

// createDogHandler godoc
// @Summary Crear perro
// @Description Acepta multipart/form-data (name, age, race, weight, ownerID, description, image) o JSON sin imagen. Imagen: jpeg/png/gif, máximo configurable (5MB por defecto).
// @Tags dogs
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param name formData string true "Nombre"
// @Param race formData string true "Raza"
// @Param age formData int false "Edad en años"
// @Param weight formData number false "Peso en kg"
// @Param ownerID formData int false "ID del dueño"
// @Param image formData file false "Imagen del perro"
// @Success 201 {object} Response
// @Failure 400 {string} string "validación / imagen inválida"
// @Failure 408 {string} string "timeout procesando la imagen"
// @Router /Dog [post]
func createDogHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, svc.MaxImageBytes()+formOverhead)

		in, _, err := decodeDogInput(r, svc.MaxImageBytes())
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.UploadTimeout)
		defer cancel()

		d, err := svc.Create(ctx, in)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/Dog/%d", d.ID))
		writeJSON(w, http.StatusCreated, ToResponse(d, opts.ImageURLPrefix))
	}
}

func updateDogHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, svc.MaxImageBytes()+formOverhead)

		in, bodyID, err := decodeDogInput(r, svc.MaxImageBytes())
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		if bodyID != 0 && bodyID != id {
			writeError(w, r, opts.Logger, ErrIDMismatch)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), opts.UploadTimeout)
		defer cancel()

		d, err := svc.Update(ctx, id, in)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(d, opts.ImageURLPrefix))
	}
}

func updateDescriptionHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req descriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.UpdateDescription(r.Context(), id, req.Description)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(d, opts.ImageURLPrefix))
	}
}

func deleteDogHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		d, err := svc.Delete(r.Context(), id)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(d, opts.ImageURLPrefix))
	}
}

// getDogImageHandler godoc
// @Summary Imagen del perro
// @Tags dogs
// @Produce image/jpeg
// @Produce image/png
// @Produce image/gif
// @Param id path int true "ID del perro"
// @Success 200 {file} file
// @Failure 404 {string} string "dog or image not found"
// @Router /Dog/image/{id} [get]
func getDogImageHandler(svc *Service, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		rc, contentType, err := svc.Image(r.Context(), id)
		if err != nil {
			writeError(w, r, opts.Logger, err)
			return
		}
		defer rc.Close()

		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
	}
}

// decodeDogInput lee JSON, multipart o urlencoded. Devuelve también el id
// que venga en el body (0 si no vino) para el chequeo de mismatch.
func decodeDogInput(r *http.Request, maxImageBytes int64) (Input, int, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		var req dogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return Input{}, 0, bodyError(err)
		}
		return Input{
			Name:        req.Name,
			Age:         req.Age,
			Race:        req.Race,
			Weight:      req.Weight,
			OwnerID:     req.OwnerID,
			Description: req.Description,
		}, req.ID, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return Input{}, 0, bodyError(err)
		}
		in, bodyID, err := inputFromForm(r.MultipartForm.Value)
		if err != nil {
			return Input{}, 0, err
		}
		img, err := imageFromForm(r.MultipartForm, maxImageBytes)
		if err != nil {
			return Input{}, 0, err
		}
		in.Image = img
		return in, bodyID, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return Input{}, 0, bodyError(err)
		}
		return inputFromForm(r.PostForm)

	default:
		return Input{}, 0, fmt.Errorf("%w: unsupported content type %q", ErrInvalidInput, mediaType)
	}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: request body exceeds %d bytes", ErrImageTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: malformed body", ErrInvalidInput)
}

func inputFromForm(form url.Values) (Input, int, error) {
	var (
		in  Input
		err error
	)
	in.Name = formValue(form, "name")
	in.Race = formValue(form, "race")
	in.Description = formValue(form, "description")

	if in.Age, err = formInt(form, "age"); err != nil {
		return Input{}, 0, err
	}
	if in.OwnerID, err = formInt(form, "ownerID"); err != nil {
		return Input{}, 0, err
	}
	if v := formValue(form, "weight"); v != "" {
		// Aceptamos coma decimal (el frontend original es de-DE).
		in.Weight, err = strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
		if err != nil {
			return Input{}, 0, fmt.Errorf("%w: weight must be a number", ErrInvalidInput)
		}
	}

	bodyID, err := formInt(form, "id")
	if err != nil {
		return Input{}, 0, err
	}
	return in, bodyID, nil
}

func imageFromForm(form *multipart.Form, maxImageBytes int64) (*ImageUpload, error) {
	var hdr *multipart.FileHeader
	for k, files := range form.File {
		if strings.EqualFold(k, "image") && len(files) > 0 {
			hdr = files[0]
			break
		}
	}
	if hdr == nil {
		return nil, nil
	}

	// Rechazo temprano sin leer el archivo.
	if hdr.Size > maxImageBytes {
		return nil, imageTooLarge(maxImageBytes)
	}

	f, err := hdr.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read image", ErrInvalidInput)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read image", ErrInvalidInput)
	}

	return &ImageUpload{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// formValue busca la key sin distinguir mayúsculas (el SPA manda "Name", "OwnerID", ...).
func formValue(form url.Values, key string) string {
	if v, ok := form[key]; ok && len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	for k, v := range form {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
	}
	return ""
}

func formInt(form url.Values, key string) (int, error) {
	v := formValue(form, key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidInput, key)
	}
	return n, nil
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "dog not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "dog not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrIDMismatch),
		errors.Is(err, ErrImageType),
		errors.Is(err, ErrImageTooLarge):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "image processing timed out", http.StatusRequestTimeout)
	default:
		log.Error("dog request failed", map[string]any{
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
