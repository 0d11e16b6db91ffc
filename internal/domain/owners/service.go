package owners

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vet-practice/internal/domain/dogs"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("owner not found")
	ErrIDMismatch   = errors.New("owner id mismatch")
)

// DogSource resuelve los perros de cada dueño. Lo implementa dogs.Service.
type DogSource interface {
	List(ctx context.Context) ([]dogs.Dog, error)
	ListByOwner(ctx context.Context, ownerID int) ([]dogs.Dog, error)
}

type Service struct {
	repo Repository
	dogs DogSource
}

func NewService(repo Repository, dogSrc DogSource) *Service {
	return &Service{
		repo: repo,
		dogs: dogSrc,
	}
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	// Una sola lectura de perros en vez de una por dueño.
	all, err := s.dogs.List(ctx)
	if err != nil {
		return nil, err
	}
	byOwner := make(map[int][]dogs.Dog, len(items))
	for _, d := range all {
		byOwner[d.OwnerID] = append(byOwner[d.OwnerID], d)
	}

	for i := range items {
		items[i].Dogs = byOwner[items[i].ID]
		if items[i].Dogs == nil {
			items[i].Dogs = []dogs.Dog{}
		}
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (Owner, error) {
	if id <= 0 {
		return Owner{}, ErrNotFound
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}
	return s.withDogs(ctx, o)
}

func (s *Service) Create(ctx context.Context, o Owner) (Owner, error) {
	o = normalize(o)
	if err := validate(o); err != nil {
		return Owner{}, err
	}

	o.ID = 0
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return Owner{}, err
	}
	return s.withDogs(ctx, created)
}

// Update exige que el id del path coincida con el del body.
func (s *Service) Update(ctx context.Context, id int, o Owner) (Owner, error) {
	if id != o.ID {
		return Owner{}, ErrIDMismatch
	}
	o = normalize(o)
	if err := validate(o); err != nil {
		return Owner{}, err
	}

	// Si la fila desapareció entre lectura y escritura, el repo devuelve ErrNotFound.
	if err := s.repo.Update(ctx, o); err != nil {
		return Owner{}, err
	}
	return s.withDogs(ctx, o)
}

// Delete no borra en cascada: los perros quedan con un ownerID colgante.
func (s *Service) Delete(ctx context.Context, id int) (Owner, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) withDogs(ctx context.Context, o Owner) (Owner, error) {
	ds, err := s.dogs.ListByOwner(ctx, o.ID)
	if err != nil {
		return Owner{}, fmt.Errorf("load dogs for owner %d: %w", o.ID, err)
	}
	if ds == nil {
		ds = []dogs.Dog{}
	}
	o.Dogs = ds
	return o, nil
}

func normalize(o Owner) Owner {
	o.FirstName = strings.TrimSpace(o.FirstName)
	o.LastName = strings.TrimSpace(o.LastName)
	o.Email = strings.TrimSpace(o.Email)
	o.Phone = strings.TrimSpace(o.Phone)
	o.AlternativePhone = strings.TrimSpace(o.AlternativePhone)
	o.Address = strings.TrimSpace(o.Address)
	o.Address2 = strings.TrimSpace(o.Address2)
	o.City = strings.TrimSpace(o.City)
	o.PostalCode = strings.TrimSpace(o.PostalCode)
	o.Country = strings.TrimSpace(o.Country)
	return o
}

func validate(o Owner) error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", o.FirstName},
		{"lastName", o.LastName},
		{"email", o.Email},
		{"phone", o.Phone},
		{"address", o.Address},
		{"city", o.City},
		{"postalCode", o.PostalCode},
		{"country", o.Country},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
	}
	return nil
}
