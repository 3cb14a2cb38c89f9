// Package restapi adaptador HTTP hacia el API REST de negocio: acciones genéricas por módulo
// (listar, buscar, crear, actualizar, eliminar, sub-acciones y descargas) y decodificación
// de errores a *domain.APIError.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-console/internal/application/ports"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

const (
	maxJSONBody     = 4 << 20
	maxDownloadBody = 64 << 20

	networkMessage       = "No se pudo conectar con el servidor"
	invalidResponseError = "Respuesta inválida del servidor"
)

var _ ports.Fetcher = (*Client)(nil)

// Options configuración del cliente.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client // opcional; se comparte entre sesiones
	Logger     *logger.Logger
}

// Client cliente del API de negocio ligado a un token. Sin reintentos: cada fallo se
// devuelve a quien disparó la acción.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		httpClient: hc,
		log:        log,
	}
}

// WithToken copia del cliente con otro token (una por sesión) que comparte el transporte.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Do ejecuta una llamada JSON. body nil no envía cuerpo; out nil descarta la respuesta.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, _, err := c.send(ctx, method, path, query, body, "application/json", maxJSONBody)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.APIError{
			Kind:    domain.KindUnknown,
			Status:  http.StatusOK,
			Message: invalidResponseError,
			Cause:   fmt.Errorf("restapi: deserializar respuesta de %s: %w", path, err),
		}
	}
	return nil
}

// GetRaw devuelve el cuerpo JSON sin deserializar.
func (c *Client) GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	raw, _, err := c.send(ctx, http.MethodGet, path, query, nil, "application/json", maxJSONBody)
	return raw, err
}

// Download descarga un archivo binario (PDF, Excel).
func (c *Client) Download(ctx context.Context, path string, query url.Values) (*ports.Blob, error) {
	raw, header, err := c.send(ctx, http.MethodGet, path, query, nil, "*/*", maxDownloadBody)
	if err != nil {
		return nil, err
	}
	return &ports.Blob{
		ContentType: header.Get("Content-Type"),
		Filename:    filenameFrom(header.Get("Content-Disposition")),
		Data:        raw,
	}, nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, accept string, limit int64) ([]byte, http.Header, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("restapi: serializar request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("restapi: crear request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cause := err
		if ctx.Err() != nil {
			cause = ctx.Err()
		}
		c.log.Warn().Err(err).Str("request_id", requestID).Str("method", method).Str("path", path).Msg("api: llamada fallida")
		return nil, nil, &domain.APIError{Kind: domain.KindNetwork, Message: networkMessage, Cause: cause}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, nil, &domain.APIError{Kind: domain.KindNetwork, Status: resp.StatusCode, Message: networkMessage, Cause: err}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nil, decodeError(resp.StatusCode, raw)
	}
	return raw, resp.Header, nil
}

// decodeError arma el APIError a partir de un cuerpo de forma desconocida.
// Precedencia del mensaje: "message", luego "error" (texto u objeto con "message").
func decodeError(status int, raw []byte) *domain.APIError {
	apiErr := &domain.APIError{Kind: domain.KindFromStatus(status), Status: status}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Cause = errors.New(strings.TrimSpace(truncate(string(raw), 200)))
		return apiErr
	}

	if msg, ok := body["message"].(string); ok && msg != "" {
		apiErr.Message = msg
	} else {
		switch e := body["error"].(type) {
		case string:
			apiErr.Message = e
		case map[string]any:
			if msg, ok := e["message"].(string); ok {
				apiErr.Message = msg
			}
		}
	}

	if fields, ok := body["errors"].(map[string]any); ok {
		apiErr.Fields = make(map[string][]string, len(fields))
		for path, v := range fields {
			switch msgs := v.(type) {
			case string:
				apiErr.Fields[path] = []string{msgs}
			case []any:
				for _, m := range msgs {
					if s, ok := m.(string); ok {
						apiErr.Fields[path] = append(apiErr.Fields[path], s)
					}
				}
			}
		}
	}
	return apiErr
}

func filenameFrom(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
