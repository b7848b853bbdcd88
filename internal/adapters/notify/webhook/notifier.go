// Package webhook implementa notify.Notifier contra un servicio externo
// vía HTTP JSON (p.ej. un gateway de push propio).
package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"animal-care-tracker/internal/platform/httpclient"
	"animal-care-tracker/internal/ports/notify"
)

type Notifier struct {
	client *httpclient.Client
}

// New crea el notifier apuntando a baseURL. Endpoints esperados:
//
//	POST   /notifications          agenda (mismo id = overwrite)
//	DELETE /notifications/{id}     cancela
//	DELETE /notifications          cancela todas
func New(baseURL string) (*Notifier, error) {
	client, err := httpclient.NewWithBaseURL(baseURL, httpclient.DefaultTimeout)
	if err != nil {
		return nil, err
	}
	if client.BaseURL == "" {
		return nil, fmt.Errorf("webhook notifier requires a base url")
	}
	return &Notifier{client: client}, nil
}

// NewWithClient permite inyectar el Client (para tests).
func NewWithClient(client *httpclient.Client) *Notifier {
	return &Notifier{client: client}
}

type scheduleRequest struct {
	ID       string            `json:"id"`
	FireAt   time.Time         `json:"fire_at"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Category string            `json:"category"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (n *Notifier) Schedule(ctx context.Context, req notify.Request) error {
	payload := scheduleRequest{
		ID:       req.ID,
		FireAt:   req.FireAt,
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Metadata: req.Metadata,
	}
	if err := n.client.DoJSON(ctx, http.MethodPost, "/notifications", nil, payload, nil); err != nil {
		return fmt.Errorf("webhook schedule: %w", err)
	}
	return nil
}

func (n *Notifier) Cancel(ctx context.Context, id string) error {
	err := n.client.DoJSON(ctx, http.MethodDelete, "/notifications/"+id, nil, nil, nil)
	if err != nil {
		// 404 = ya no existe; la cancelación es idempotente.
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("webhook cancel: %w", err)
	}
	return nil
}

func (n *Notifier) CancelAll(ctx context.Context) error {
	if err := n.client.DoJSON(ctx, http.MethodDelete, "/notifications", nil, nil, nil); err != nil {
		return fmt.Errorf("webhook cancel all: %w", err)
	}
	return nil
}
