// Package memory implementa notify.Notifier en memoria. Es el notifier
// por defecto: guarda los pedidos pendientes y permite simular entregas
// en dev y en tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"animal-care-tracker/internal/ports/notify"
)

type Notifier struct {
	mu      sync.RWMutex
	pending map[string]notify.Request
}

func NewNotifier() *Notifier {
	return &Notifier{
		pending: make(map[string]notify.Request),
	}
}

// Schedule registra el pedido. Mismo ID = overwrite.
func (n *Notifier) Schedule(ctx context.Context, req notify.Request) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending[req.ID] = req
	return nil
}

// Cancel es idempotente: cancelar un ID desconocido no es error.
func (n *Notifier) Cancel(ctx context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.pending, id)
	return nil
}

func (n *Notifier) CancelAll(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = make(map[string]notify.Request)
	return nil
}

// Pending devuelve los pedidos vivos ordenados por FireAt ascendente.
func (n *Notifier) Pending() []notify.Request {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]notify.Request, 0, len(n.pending))
	for _, req := range n.pending {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FireAt.Before(out[j].FireAt)
	})
	return out
}

// Deliver simula la entrega de una notificación: la saca de pendientes y
// reporta si existía.
func (n *Notifier) Deliver(id string) (notify.Request, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	req, ok := n.pending[id]
	if ok {
		delete(n.pending, id)
	}
	return req, ok
}
