package treatments

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("treatment not found")
	ErrDogNotFound  = errors.New("invalid dogID: the specified dog does not exist")
)

// DogChecker valida que un dogID exista. Lo implementa dogs.Service.
type DogChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type Service struct {
	repo Repository
	dogs DogChecker
}

func NewService(repo Repository, dogs DogChecker) *Service {
	return &Service{
		repo: repo,
		dogs: dogs,
	}
}

type Input struct {
	Description string
	Date        Date
	Time        Clock
	Cost        float64
	DogID       int
}

func (in Input) validate() error {
	if in.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if in.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
	}
	return nil
}

// Optional distingue "no enviado" de "enviado como null" y de un valor.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// Some construye un Optional presente con valor.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

// Null construye un Optional presente como null.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

// Patch es un update parcial:
//   - campo ausente: no se toca
//   - valor vacío/cero ("", 0, fecha/hora cero): no se toca (compatibilidad con clientes existentes)
//   - null: limpia description (""), cost (0); en date, time y dogID es inválido
type Patch struct {
	Description Optional[string]
	Date        Optional[Date]
	Time        Optional[Clock]
	Cost        Optional[float64]
	DogID       Optional[int]
}

func (p Patch) apply(t *Treatment) error {
	if p.Date.Null {
		return fmt.Errorf("%w: date cannot be null", ErrInvalidInput)
	}
	if p.Time.Null {
		return fmt.Errorf("%w: time cannot be null", ErrInvalidInput)
	}
	if p.DogID.Null {
		return fmt.Errorf("%w: dogID cannot be null", ErrInvalidInput)
	}

	switch {
	case p.Description.Null:
		t.Description = ""
	case p.Description.Present && strings.TrimSpace(p.Description.Value) != "":
		t.Description = strings.TrimSpace(p.Description.Value)
	}

	if p.Date.Present && !p.Date.Value.IsZero() {
		t.Date = p.Date.Value
	}
	if p.Time.Present && !p.Time.Value.IsZero() {
		t.Time = p.Time.Value
	}

	switch {
	case p.Cost.Null:
		t.Cost = 0
	case p.Cost.Present && p.Cost.Value > 0:
		t.Cost = p.Cost.Value
	}

	if p.DogID.Present && p.DogID.Value > 0 {
		t.DogID = p.DogID.Value
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Treatment, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id int) (Treatment, error) {
	if id <= 0 {
		return Treatment{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Create es la única operación que valida que el perro exista.
func (s *Service) Create(ctx context.Context, in Input) (Treatment, error) {
	if err := in.validate(); err != nil {
		return Treatment{}, err
	}

	ok, err := s.dogs.Exists(ctx, in.DogID)
	if err != nil {
		return Treatment{}, fmt.Errorf("check dog %d: %w", in.DogID, err)
	}
	if !ok {
		return Treatment{}, ErrDogNotFound
	}

	return s.repo.Create(ctx, Treatment{
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		Time:        in.Time,
		Cost:        in.Cost,
		DogID:       in.DogID,
	})
}

// Update reemplaza todos los campos. No revalida dogID.
func (s *Service) Update(ctx context.Context, id int, in Input) (Treatment, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}
	if err := in.validate(); err != nil {
		return Treatment{}, err
	}

	t.Description = strings.TrimSpace(in.Description)
	t.Date = in.Date
	t.Time = in.Time
	t.Cost = in.Cost
	t.DogID = in.DogID

	if err := s.repo.Update(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) Patch(ctx context.Context, id int, p Patch) (Treatment, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}
	if err := p.apply(&t); err != nil {
		return Treatment{}, err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id int) (Treatment, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Treatment{}, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return Treatment{}, err
	}
	return t, nil
}
