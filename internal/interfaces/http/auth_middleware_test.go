package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-console/internal/application/session"
	"github.com/jhoicas/backoffice-console/internal/infrastructure/restapi"
	apphttp "github.com/jhoicas/backoffice-console/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/backoffice-console/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "backoffice-console-test"
	testExpMin    = 60
)

func newRegistry() *session.Registry {
	return session.NewRegistry(func(token string) *session.Session {
		return session.New(restapi.NewClient(restapi.Options{BaseURL: "http://api"}), token, nil, nil)
	}, nil)
}

// buildAuthApp aplicación mínima: AuthMiddleware + handler que devuelve los locals.
func buildAuthApp(secret string, reg *session.Registry) *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(secret, reg), apphttp.RequireSession(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
			"session":    apphttp.GetSession(c).Key(),
		})
	})
	return app
}

func doAuthRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	resp := doAuthRequest(t, buildAuthApp(testJWTSecret, newRegistry()), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	resp := doAuthRequest(t, buildAuthApp(testJWTSecret, newRegistry()), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	resp := doAuthRequest(t, buildAuthApp(testJWTSecret, newRegistry()), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "admin", testIssuer, -1)
	require.NoError(t, err)

	for _, secret := range []string{testJWTSecret, ""} {
		resp := doAuthRequest(t, buildAuthApp(secret, newRegistry()), "Bearer "+tok)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, bodyString(t, resp), "TOKEN_EXPIRED", "secret=%q", secret)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, buildAuthApp(testJWTSecret, newRegistry()), "Bearer "+tok)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, session.Key(tok), body["session"])
}

func TestAuthMiddleware_SinSecretAceptaTokenOpaco(t *testing.T) {
	resp := doAuthRequest(t, buildAuthApp("", newRegistry()), "Bearer 12|abcdef")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "la firma la valida el API")
}

func TestAuthMiddleware_MismaSesionPorToken(t *testing.T) {
	reg := newRegistry()
	app := buildAuthApp("", reg)

	for i := 0; i < 3; i++ {
		resp := doAuthRequest(t, app, "Bearer tok-a")
		resp.Body.Close()
	}
	resp := doAuthRequest(t, app, "Bearer tok-b")
	resp.Body.Close()

	assert.Equal(t, 2, reg.Len())
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testUserID, testCompanyID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, buildAuthApp(testJWTSecret, newRegistry()), "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
