package health

import "context"

type Repository interface {
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)

	// ListByAnimal ordena por Date descendente.
	ListByAnimal(ctx context.Context, animalID string) ([]Record, error)

	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) error
}

type WeightRepository interface {
	Create(ctx context.Context, rec WeightRecord) error
	Update(ctx context.Context, rec WeightRecord) error
	GetByID(ctx context.Context, id string) (WeightRecord, error)
	ListByAnimal(ctx context.Context, animalID string) ([]WeightRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteByAnimal(ctx context.Context, animalID string) error
}
