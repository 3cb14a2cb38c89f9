package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-console/internal/application/session"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *session.Registry
	JWTSecret string
	Logger    *logger.Logger
	Now       func() time.Time

	// PerPage filas por página cuando la query no trae per_page (0 = dto.DefaultPerPage).
	PerPage int
}

// Router registra las rutas de la API. Las rutas propias de cada módulo van antes que las
// genéricas /:module para que no las capture el parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	// Rutas protegidas (requieren Bearer Token); cada token tiene su sesión de consola
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.Sessions), RequireSession())

	resources := NewResourceHandler(deps.Logger, deps.Now)
	resources.setPerPage(deps.PerPage)
	api.Get("/modules", resources.Modules)
	api.Get("/lookups/:resource", resources.Lookup)

	formHandler := NewFormHandler(deps.Logger, deps.Now)
	api.Post("/forms/:form/validate", formHandler.Validate)
	lineForms := NewLineFormHandler(deps.Logger, deps.Now)
	api.Post("/forms/:form/lines/:index", lineForms.EditLine)

	// Documentos de almacén: confirmar, anular e ingreso desde una compra
	docs := api.Group("/warehouse-documents")
	warehouseHandler := NewWarehouseHandler(deps.Logger, deps.Now)
	docs.Post("/:id/confirm", warehouseHandler.Confirm)
	docs.Post("/:id/cancel", warehouseHandler.Cancel)
	docs.Get("/from-purchase/:id", lineForms.WarehouseFromPurchase)

	// Turnos de caja
	shifts := api.Group("/box-shifts")
	shiftHandler := NewBoxShiftHandler(deps.Logger, deps.Now)
	shiftHandler.setPerPage(deps.PerPage)
	shifts.Post("/open", shiftHandler.Open)
	shifts.Post("/close", shiftHandler.Close)
	shifts.Get("/:id/close-form", shiftHandler.CloseForm)
	shifts.Get("/:id/movements", shiftHandler.Movements)

	// Listas de precios
	prices := api.Group("/price-lists")
	priceHandler := NewPriceListHandler(deps.Logger, deps.Now)
	prices.Post("/get-price", priceHandler.GetPrice)
	prices.Post("/:id/assign-client", priceHandler.AssignClient)

	// Notas de crédito: exportación y formularios precargados desde la venta o compra
	notes := api.Group("/credit-notes")
	noteHandler := NewCreditNoteHandler(deps.Logger, deps.Now)
	noteHandler.setPerPage(deps.PerPage)
	notes.Get("/export", noteHandler.Export)
	notes.Get("/form", lineForms.CreditNoteForm)
	api.Get("/purchase-credit-notes/form", lineForms.PurchaseCreditNoteForm)

	// Genéricas por módulo
	api.Get("/:module", RequireModule(), resources.List)
	api.Post("/:module", RequireModule(), resources.Create)
	api.Get("/:module/:id", RequireModule(), resources.Get)
	api.Put("/:module/:id", RequireModule(), resources.Update)
	api.Delete("/:module/:id", RequireModule(), resources.Delete)
}
