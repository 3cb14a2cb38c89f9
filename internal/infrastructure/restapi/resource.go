package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/ports"
)

// Resource acciones genéricas de un módulo sobre su endpoint (ej. "/client").
type Resource[T any] struct {
	client   *Client
	endpoint string
}

// NewResource construye las acciones de un módulo.
func NewResource[T any](c *Client, endpoint string) *Resource[T] {
	return &Resource[T]{client: c, endpoint: endpoint}
}

// Endpoint ruta del módulo en el API.
func (r *Resource[T]) Endpoint() string { return r.endpoint }

func (r *Resource[T]) path(parts ...string) string {
	p := r.endpoint
	for _, s := range parts {
		p += "/" + s
	}
	return p
}

func idPath(id int64) string { return strconv.FormatInt(id, 10) }

// List GET {endpoint}?page=&per_page=&search=&filtros → { data, links, meta }.
func (r *Resource[T]) List(ctx context.Context, params dto.ListParams) (*dto.ListResponse[T], error) {
	var out dto.ListResponse[T]
	if err := r.client.Do(ctx, http.MethodGet, r.endpoint, params.Values(), nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return &out, nil
}

// Find GET {endpoint}/{id} → { data }.
func (r *Resource[T]) Find(ctx context.Context, id int64) (*T, error) {
	var out dto.ItemResponse[T]
	if err := r.client.Do(ctx, http.MethodGet, r.path(idPath(id)), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Create POST {endpoint} → { message } o { message, data }.
func (r *Resource[T]) Create(ctx context.Context, payload any) (*dto.MessageResponse[T], error) {
	return r.message(ctx, http.MethodPost, r.endpoint, payload)
}

// Update PUT {endpoint}/{id}.
func (r *Resource[T]) Update(ctx context.Context, id int64, payload any) (*dto.MessageResponse[T], error) {
	return r.message(ctx, http.MethodPut, r.path(idPath(id)), payload)
}

// Delete DELETE {endpoint}/{id}; devuelve el mensaje del API.
func (r *Resource[T]) Delete(ctx context.Context, id int64) (string, error) {
	out, err := r.message(ctx, http.MethodDelete, r.path(idPath(id)), nil)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// Post sub-acción POST {endpoint}/{sub...} (ej. "15/confirm", "close").
func (r *Resource[T]) Post(ctx context.Context, payload any, sub ...string) (*dto.MessageResponse[T], error) {
	return r.message(ctx, http.MethodPost, r.path(sub...), payload)
}

// Download GET {endpoint}/{sub...} como archivo.
func (r *Resource[T]) Download(ctx context.Context, query url.Values, sub ...string) (*ports.Blob, error) {
	return r.client.Download(ctx, r.path(sub...), query)
}

func (r *Resource[T]) message(ctx context.Context, method, path string, payload any) (*dto.MessageResponse[T], error) {
	var out dto.MessageResponse[T]
	if err := r.client.Do(ctx, method, path, nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
