package plansfeatures

import (
	"context"
	"errors"
	"os"
	"strings"
)

// Resolver decide capabilities de la instalación (p.ej. animals.unlimited).
// Sin upstream configurado el servicio de animales aplica el límite free.
type Resolver struct {
	client   *Client
	allowAll bool
}

// NewResolver crea un resolver.
// Si ALLOW_ALL_CAPABILITIES=true (env), todo devuelve true (modo dev / fallback).
func NewResolver(client *Client) *Resolver {
	allowAll := strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_ALL_CAPABILITIES")), "true")
	return &Resolver{
		client:   client,
		allowAll: allowAll,
	}
}

// Has responde si la instalación tiene una capability.
// Si allowAll está activo, devuelve true sin llamar a upstream.
func (r *Resolver) Has(ctx context.Context, capability string) (bool, error) {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		return false, errors.New("capability required")
	}
	if r == nil {
		return false, ErrPlansNotConfigured
	}

	if r.allowAll {
		return true, nil
	}

	if r.client == nil || !r.client.IsConfigured() {
		// Preferimos fallar explícito en vez de “permitir” sin control.
		return false, ErrPlansNotConfigured
	}

	resp, err := r.client.GetCapabilities(ctx)
	if err != nil {
		return false, err
	}

	return resp.Capabilities[capability], nil
}

// Resolve devuelve el mapa completo de capabilities.
func (r *Resolver) Resolve(ctx context.Context) (map[string]bool, error) {
	if r == nil {
		return nil, ErrPlansNotConfigured
	}
	if r.allowAll {
		return map[string]bool{"*": true}, nil
	}
	if r.client == nil || !r.client.IsConfigured() {
		return nil, ErrPlansNotConfigured
	}
	resp, err := r.client.GetCapabilities(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Capabilities, nil
}
