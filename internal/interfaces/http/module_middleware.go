package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-console/internal/application/dto"
	"github.com/jhoicas/backoffice-console/internal/application/session"
)

// LocalModule key del módulo resuelto por RequireModule.
const LocalModule = "module"

// RequireModule resuelve el parámetro :module (ruta de la consola, ej. "clients") al módulo
// de la sesión. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 404 Not Found → la ruta no corresponde a ningún módulo.
//   - 405 Method Not Allowed → escritura sobre un módulo de solo lectura.
func RequireModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "sesión de consola no disponible"})
		}
		m, ok := s.ModuleByRoute(c.Params("module"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    "MODULE_NOT_FOUND",
				Message: "el módulo '" + c.Params("module") + "' no existe",
			})
		}
		if m.Meta().ReadOnly && c.Method() != fiber.MethodGet {
			return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{
				Code:    "READ_ONLY",
				Message: "el módulo '" + m.Meta().Name + "' es de solo lectura",
			})
		}
		c.Locals(LocalModule, m)
		return c.Next()
	}
}

// GetModule devuelve el módulo resuelto por RequireModule.
func GetModule(c *fiber.Ctx) session.Module {
	m, _ := c.Locals(LocalModule).(session.Module)
	return m
}
