package memory

import (
	"context"
	"sort"
	"sync"

	"vet-practice/internal/domain/treatments"
)

type treatmentRepo struct {
	mu     sync.RWMutex
	nextID int
	byID   map[int]treatments.Treatment
}

func NewTreatmentRepo() treatments.Repository {
	return &treatmentRepo{
		byID: make(map[int]treatments.Treatment),
	}
}

func (r *treatmentRepo) Create(ctx context.Context, t treatments.Treatment) (treatments.Treatment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	t.ID = r.nextID
	r.byID[t.ID] = t
	return t, nil
}

func (r *treatmentRepo) Update(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return treatments.ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *treatmentRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return treatments.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *treatmentRepo) GetByID(ctx context.Context, id int) (treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return treatments.Treatment{}, treatments.ErrNotFound
	}
	return t, nil
}

func (r *treatmentRepo) List(ctx context.Context, filter treatments.ListFilter) ([]treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]treatments.Treatment, 0)
	for _, t := range r.byID {
		if filter.Match(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
