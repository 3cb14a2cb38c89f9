package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-console/internal/domain/resource"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// ResourceHandler rutas genéricas de los módulos: listado, detalle, alta, edición y borrado.
// El módulo lo resuelve RequireModule a partir de :module.
type ResourceHandler struct {
	base
}

// NewResourceHandler construye el handler.
func NewResourceHandler(log *logger.Logger, now func() time.Time) *ResourceHandler {
	return &ResourceHandler{base: newBase(log, now)}
}

// Modules godoc
// @Summary      Módulos de la consola
// @Tags         modules
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  resource.Metadata
// @Router       /api/modules [get]
func (h *ResourceHandler) Modules(c *fiber.Ctx) error {
	return c.JSON(resource.All())
}

// List godoc
// @Summary      Página de listado de un módulo
// @Tags         modules
// @Security     Bearer
// @Produce      json
// @Param        module    path   string  true   "Ruta del módulo (ej. clients)"
// @Param        page      query  int     false  "Página"  default(1)
// @Param        per_page  query  int     false  "Filas por página"  default(20)
// @Param        search    query  string  false  "Búsqueda"
// @Success      200  {object}  session.ListView
// @Router       /api/{module} [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	// con error del API la vista conserva las filas ya cargadas
	view := GetModule(c).List(c.UserContext(), h.listParams(c))
	return c.Status(viewStatus(view.Error, view.ErrorStatus)).JSON(view)
}

// Get godoc
// @Summary      Detalle de un registro
// @Tags         modules
// @Security     Bearer
// @Produce      json
// @Param        module  path  string  true  "Ruta del módulo"
// @Param        id      path  int     true  "ID"
// @Success      200  {object}  session.ItemView
// @Failure      404  {object}  session.ItemView
// @Router       /api/{module}/{id} [get]
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	view := GetModule(c).Get(c.UserContext(), id)
	return c.Status(viewStatus(view.Error, view.ErrorStatus)).JSON(view)
}

// Create godoc
// @Summary      Alta de un registro
// @Tags         modules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        module  path  string  true  "Ruta del módulo"
// @Success      201  {object}  session.WriteResult
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/{module} [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	res, err := GetModule(c).Create(c.UserContext(), c.Body())
	if err != nil {
		return h.fail(c, err, res.Errors)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Update godoc
// @Summary      Edición de un registro
// @Tags         modules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        module  path  string  true  "Ruta del módulo"
// @Param        id      path  int     true  "ID"
// @Success      200  {object}  session.WriteResult
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/{module}/{id} [put]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	res, err := GetModule(c).Update(c.UserContext(), id, c.Body())
	if err != nil {
		return h.fail(c, err, res.Errors)
	}
	return c.JSON(res)
}

// Delete godoc
// @Summary      Borrado de un registro
// @Tags         modules
// @Security     Bearer
// @Produce      json
// @Param        module  path  string  true  "Ruta del módulo"
// @Param        id      path  int     true  "ID"
// @Success      200  {object}  session.WriteResult
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/{module}/{id} [delete]
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return invalidID(c)
	}
	res, err := GetModule(c).Delete(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err, res.Errors)
	}
	return c.JSON(res)
}

// Lookup godoc
// @Summary      Lista de referencia para selects
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Param        resource  path  string  true  "Clave del módulo (motive, warehouse, product, ...)"
// @Success      200  {array}  object
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lookups/{resource} [get]
func (h *ResourceHandler) Lookup(c *fiber.Ctx) error {
	raw, err := GetSession(c).Lookup(c.UserContext(), c.Params("resource"))
	if err != nil {
		return h.fail(c, err, rootErrors(err, "No se pudo cargar la lista"))
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(raw)
}

// viewStatus código HTTP de una vista: 200 sin error, el del API si lo hay, 502 si no hubo respuesta.
func viewStatus(errMsg string, status int) int {
	if errMsg == "" {
		return fiber.StatusOK
	}
	if status >= fiber.StatusBadRequest {
		return status
	}
	return fiber.StatusBadGateway
}
