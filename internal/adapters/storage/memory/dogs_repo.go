package memory

import (
	"context"
	"sort"
	"sync"

	"vet-practice/internal/domain/dogs"
)

type dogRepo struct {
	mu     sync.RWMutex
	nextID int
	byID   map[int]dogs.Dog
}

func NewDogRepo() dogs.Repository {
	return &dogRepo{
		byID: make(map[int]dogs.Dog),
	}
}

func (r *dogRepo) Create(ctx context.Context, d dogs.Dog) (dogs.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	d.ID = r.nextID
	r.byID[d.ID] = d
	return d, nil
}

func (r *dogRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; !exists {
		return dogs.ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *dogRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return dogs.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *dogRepo) GetByID(ctx context.Context, id int) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

func (r *dogRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	return r.filter(func(dogs.Dog) bool { return true }), nil
}

func (r *dogRepo) ListByOwner(ctx context.Context, ownerID int) ([]dogs.Dog, error) {
	return r.filter(func(d dogs.Dog) bool { return d.OwnerID == ownerID }), nil
}

// filter devuelve en orden de inserción (IDs crecientes).
func (r *dogRepo) filter(keep func(dogs.Dog) bool) []dogs.Dog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.byID))
	for _, d := range r.byID {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
