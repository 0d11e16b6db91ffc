package dogs

import "context"

type Repository interface {
	List(ctx context.Context) ([]Dog, error)
	ListByOwner(ctx context.Context, ownerID int) ([]Dog, error)
	GetByID(ctx context.Context, id int) (Dog, error)
	// Create asigna el ID y devuelve el registro guardado.
	Create(ctx context.Context, d Dog) (Dog, error)
	Update(ctx context.Context, d Dog) error
	Delete(ctx context.Context, id int) error
}
