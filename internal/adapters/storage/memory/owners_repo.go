package memory

import (
	"context"
	"sort"
	"sync"

	"vet-practice/internal/domain/owners"
)

type ownerRepo struct {
	mu     sync.RWMutex
	nextID int
	byID   map[int]owners.Owner
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byID: make(map[int]owners.Owner),
	}
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	o.ID = r.nextID
	o.Dogs = nil
	r.byID[o.ID] = o
	return o, nil
}

func (r *ownerRepo) Update(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[o.ID]; !exists {
		return owners.ErrNotFound
	}
	o.Dogs = nil
	r.byID[o.ID] = o
	return nil
}

func (r *ownerRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return owners.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id int) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) List(ctx context.Context) ([]owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]owners.Owner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
