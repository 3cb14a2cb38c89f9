package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/forms"
	"github.com/jhoicas/backoffice-console/internal/application/session"
	"github.com/jhoicas/backoffice-console/internal/application/validation"
	"github.com/jhoicas/backoffice-console/internal/domain"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// base dependencias comunes de los handlers.
type base struct {
	log     *logger.Logger
	now     func() time.Time
	perPage int
}

func newBase(log *logger.Logger, now func() time.Time) base {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return base{log: log, now: now}
}

// fail responde un error con el código HTTP que corresponde a su tipo. Los errores del API
// conservan su código 4xx; los de red se informan como 502.
func (b base) fail(c *fiber.Ctx, err error, errs validation.FormErrors) error {
	status, code := classify(err)
	msg := ""
	if len(errs.Root) > 0 {
		msg = errs.Root[0]
	}
	if msg == "" {
		msg = domain.MessageOf(err, defaultMessage(status))
	}
	if status >= fiber.StatusInternalServerError {
		b.log.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("http: error")
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:       code,
		Message:    msg,
		Fields:     errs.Fields,
		ErrorCount: errs.Count(),
	})
}

func classify(err error) (int, string) {
	if apiErr, ok := domain.AsAPIError(err); ok {
		if apiErr.Kind == domain.KindNetwork || apiErr.Status < fiber.StatusBadRequest {
			return fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
		}
		return apiErr.Status, strings.ToUpper(string(apiErr.Kind))
	}
	switch {
	case errors.Is(err, forms.ErrInvalid), forms.IsLineError(err):
		return fiber.StatusUnprocessableEntity, "VALIDATION"
	case errors.Is(err, forms.ErrInFlight):
		return fiber.StatusConflict, "IN_FLIGHT"
	case errors.Is(err, session.ErrBadBody):
		return fiber.StatusBadRequest, "INVALID_BODY"
	case errors.Is(err, session.ErrReadOnly):
		return fiber.StatusMethodNotAllowed, "READ_ONLY"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrSessionClosed):
		return fiber.StatusConflict, "SESSION_CLOSED"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

func defaultMessage(status int) string {
	switch status {
	case fiber.StatusUnprocessableEntity:
		return "El formulario tiene errores"
	case fiber.StatusNotFound:
		return "Recurso no encontrado"
	case fiber.StatusBadGateway:
		return "No se pudo conectar con el servidor"
	}
	return domain.GenericMessage
}

// parseID lee :id como entero positivo.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id inválido")
	}
	return id, nil
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
}

// reservedQuery parámetros que no son filtros del listado.
var reservedQuery = map[string]bool{"page": true, "per_page": true, "search": true, "format": true, "confirmed": true}

// setPerPage tamaño de página por defecto cuando la query no trae per_page.
func (b *base) setPerPage(n int) {
	b.perPage = n
}

// listParams lee page, per_page, search y el resto de la query como filtros. Los textos se
// copian: el store los conserva después de la petición.
func (b base) listParams(c *fiber.Ctx) dto.ListParams {
	p := dto.ListParams{
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", b.perPage),
		Search:  utils.CopyString(strings.TrimSpace(c.Query("search"))),
	}
	for k, v := range c.Queries() {
		if reservedQuery[k] || v == "" {
			continue
		}
		if p.Filters == nil {
			p.Filters = make(map[string]string)
		}
		p.Filters[utils.CopyString(k)] = utils.CopyString(v)
	}
	return p.Normalize()
}

// rootErrors errores de formulario con solo el mensaje del error.
func rootErrors(err error, fallback string) validation.FormErrors {
	return forms.ServerErrors(err, fallback)
}
