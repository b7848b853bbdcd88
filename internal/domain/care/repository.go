package care

import "context"

type Repository interface {
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)

	// ListByAnimal devuelve los registros del animal ordenados por Date
	// descendente. kind vacío = todos los tipos.
	ListByAnimal(ctx context.Context, animalID string, kind Kind) ([]Record, error)

	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) error
}
