package owners

import "context"

// Repository persiste solo la fila del dueño; los perros los resuelve el Service.
type Repository interface {
	List(ctx context.Context) ([]Owner, error)
	GetByID(ctx context.Context, id int) (Owner, error)
	Create(ctx context.Context, o Owner) (Owner, error)
	// Update devuelve ErrNotFound si la fila ya no existe.
	Update(ctx context.Context, o Owner) error
	Delete(ctx context.Context, id int) error
}
