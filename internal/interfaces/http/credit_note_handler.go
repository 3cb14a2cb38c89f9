package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/pkg/format"
	"github.com/jhoicas/backoffice-console/pkg/logger"
)

// exportExtensions extensión del archivo por formato de exportación.
var exportExtensions = map[string]string{
	dto.ExportPDF:   "pdf",
	dto.ExportExcel: "xlsx",
}

// CreditNoteHandler exportación de notas de crédito (protegido).
type CreditNoteHandler struct {
	base
}

// NewCreditNoteHandler construye el handler.
func NewCreditNoteHandler(log *logger.Logger, now func() time.Time) *CreditNoteHandler {
	return &CreditNoteHandler{base: newBase(log, now)}
}

// Export godoc
// @Summary      Exportar notas de crédito
// @Description  Descarga el listado filtrado (search y filtros de la query) en PDF o Excel.
// @Tags         credit-notes
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  true   "pdf | excel"
// @Param        search  query  string  false  "Búsqueda"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/credit-notes/export [get]
func (h *CreditNoteHandler) Export(c *fiber.Ctx) error {
	f := c.Query("format")
	ext, ok := exportExtensions[f]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser pdf o excel"})
	}
	blob, err := GetSession(c).CreditNotes.Export(c.UserContext(), f, h.listParams(c))
	if err != nil {
		return h.fail(c, err, rootErrors(err, "No se pudo exportar"))
	}

	c.Attachment(format.DatedFilename("notas-de-credito", ext, h.now()))
	if blob.ContentType != "" {
		c.Set(fiber.HeaderContentType, blob.ContentType)
	}
	return c.Send(blob.Data)
}
