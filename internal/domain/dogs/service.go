package dogs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"vet-practice/internal/platform/logger"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("dog not found")
	ErrIDMismatch    = errors.New("dog id mismatch")
	ErrImageType     = errors.New("unsupported image type")
	ErrImageTooLarge = errors.New("image too large")
)

type Service struct {
	repo          Repository
	images        ImageStore
	maxImageBytes int64
	log           logger.Logger
}

type Options struct {
	// MaxImageBytes <= 0 usa DefaultMaxImageBytes.
	MaxImageBytes int64
	Logger        logger.Logger
}

func NewService(repo Repository, images ImageStore, opts Options) *Service {
	limit := opts.MaxImageBytes
	if limit <= 0 {
		limit = DefaultMaxImageBytes
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:          repo,
		images:        images,
		maxImageBytes: limit,
		log:           log,
	}
}

// MaxImageBytes expone el límite configurado (el handler lo usa para
// acotar el body).
func (s *Service) MaxImageBytes() int64 {
	return s.maxImageBytes
}

// Input son los campos editables de un perro (create y update completo).
type Input struct {
	Name        string
	Age         int
	Race        string
	Weight      float64
	OwnerID     int
	Description string

	// Image es opcional. En update, nil conserva la imagen actual.
	Image *ImageUpload
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Race) == "" {
		return fmt.Errorf("%w: race is required", ErrInvalidInput)
	}
	if in.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidInput)
	}
	if in.Weight < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrInvalidInput)
	}
	return nil
}

func (in Input) apply(d *Dog) {
	d.Name = strings.TrimSpace(in.Name)
	d.Age = in.Age
	d.Race = strings.TrimSpace(in.Race)
	d.Weight = in.Weight
	d.OwnerID = in.OwnerID
	d.Description = strings.TrimSpace(in.Description)
}

func (s *Service) List(ctx context.Context) ([]Dog, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int) ([]Dog, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) GetByID(ctx context.Context, id int) (Dog, error) {
	if id <= 0 {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Exists se usa desde treatments para validar dogID.
func (s *Service) Exists(ctx context.Context, id int) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create valida todo antes de escribir. Si falla el insert, la imagen
// ya guardada se borra.
func (s *Service) Create(ctx context.Context, in Input) (Dog, error) {
	if err := in.validate(); err != nil {
		return Dog{}, err
	}

	var contentType string
	if in.Image != nil {
		ct, err := ValidateImage(*in.Image, s.maxImageBytes)
		if err != nil {
			return Dog{}, err
		}
		contentType = ct
	}

	var d Dog
	in.apply(&d)

	if in.Image != nil {
		name, err := s.images.Save(ctx, contentType, in.Image.Data)
		if err != nil {
			return Dog{}, fmt.Errorf("save image: %w", err)
		}
		d.ImagePath = name
		d.ImageContentType = contentType
	}

	if err := ctx.Err(); err != nil {
		s.discardImage(d.ImagePath)
		return Dog{}, err
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		s.discardImage(d.ImagePath)
		return Dog{}, err
	}
	return created, nil
}

// Update reemplaza todos los campos. Con imagen nueva, el archivo anterior
// se borra una vez persistida la fila.
func (s *Service) Update(ctx context.Context, id int, in Input) (Dog, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}
	if err := in.validate(); err != nil {
		return Dog{}, err
	}

	var contentType string
	if in.Image != nil {
		ct, err := ValidateImage(*in.Image, s.maxImageBytes)
		if err != nil {
			return Dog{}, err
		}
		contentType = ct
	}

	updated := current
	in.apply(&updated)

	oldImage := current.ImagePath
	if in.Image != nil {
		name, err := s.images.Save(ctx, contentType, in.Image.Data)
		if err != nil {
			return Dog{}, fmt.Errorf("save image: %w", err)
		}
		updated.ImagePath = name
		updated.ImageContentType = contentType
	}

	if err := ctx.Err(); err != nil {
		if in.Image != nil {
			s.discardImage(updated.ImagePath)
		}
		return Dog{}, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		if in.Image != nil {
			s.discardImage(updated.ImagePath)
		}
		return Dog{}, err
	}

	if in.Image != nil && oldImage != "" {
		s.removeOrphan(ctx, id, oldImage)
	}
	return updated, nil
}

func (s *Service) UpdateDescription(ctx context.Context, id int, description string) (Dog, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}
	d.Description = strings.TrimSpace(description)
	if err := s.repo.Update(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

// Delete borra la fila y, si existe, el archivo de imagen. Un fallo al
// borrar el archivo no deshace el delete: queda logueado.
func (s *Service) Delete(ctx context.Context, id int) (Dog, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Dog{}, err
	}
	if d.HasImage() {
		s.removeOrphan(ctx, id, d.ImagePath)
	}
	return d, nil
}

// Image devuelve el contenido de la imagen y su content type.
// ErrNotFound si el perro no existe o no tiene imagen.
func (s *Service) Image(ctx context.Context, id int) (io.ReadCloser, string, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !d.HasImage() {
		return nil, "", ErrNotFound
	}
	rc, err := s.images.Open(ctx, d.ImagePath)
	if err != nil {
		return nil, "", err
	}
	return rc, d.ImageContentType, nil
}

// removeOrphan borra un archivo que ya no referencia ninguna fila.
func (s *Service) removeOrphan(ctx context.Context, dogID int, name string) {
	if err := s.images.Delete(ctx, name); err != nil {
		s.log.Warn("orphan image not removed", map[string]any{
			"dog_id": dogID,
			"image":  name,
			"error":  err,
		})
	}
}

// discardImage hace rollback best-effort de un archivo recién escrito.
func (s *Service) discardImage(name string) {
	if name == "" {
		return
	}
	_ = s.images.Delete(context.Background(), name)
}
