package treatments

import "context"

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Treatment, error)
	GetByID(ctx context.Context, id int) (Treatment, error)
	Create(ctx context.Context, t Treatment) (Treatment, error)
	Update(ctx context.Context, t Treatment) error
	Delete(ctx context.Context, id int) error
}
