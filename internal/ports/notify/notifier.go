package notify

import (
	"context"
	"time"
)

// Request es un pedido de notificación local. El ID es opaco para el
// servicio; agendar dos veces el mismo ID es un overwrite, no un duplicado.
type Request struct {
	ID       string
	FireAt   time.Time
	Title    string
	Body     string
	Category string
	Metadata map[string]string
}

// Notifier es el contrato con el servicio de notificaciones de la
// plataforma. El coordinador de recordatorios es el único caller.
type Notifier interface {
	Schedule(ctx context.Context, req Request) error
	Cancel(ctx context.Context, id string) error
	CancelAll(ctx context.Context) error
}
