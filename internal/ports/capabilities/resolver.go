package capabilities

import "context"

// Capabilities que el core consulta. El catálogo completo vive en el
// servicio de planes; acá solo se nombran las que usamos.
const (
	CapabilityUnlimitedAnimals = "animals.unlimited"
)

type Resolver interface {
	Has(ctx context.Context, capability string) (bool, error)
}
