package cycles

import "context"

type Repository interface {
	Create(ctx context.Context, c Cycle) error
	Update(ctx context.Context, c Cycle) error
	GetByID(ctx context.Context, id string) (Cycle, error)

	// ListByAnimal devuelve los ciclos del animal ordenados por StartDate
	// descendente. Slice nuevo en cada llamada, no un cursor vivo.
	ListByAnimal(ctx context.Context, animalID string) ([]Cycle, error)

	// Delete es idempotente.
	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) error
}
