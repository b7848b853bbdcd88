package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context) ([]Animal, error)
	Count(ctx context.Context) (int, error)

	// Delete es idempotente: borrar un id inexistente no es error.
	Delete(ctx context.Context, id string) error
}
