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

	"github.com/gestaolivre/erp-api/internal/domain/entity"
	apphttp "github.com/gestaolivre/erp-api/internal/interfaces/http"
	pkgjwt "github.com/gestaolivre/erp-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "erp-api-test"
	testExpMin    = 60
)

// buildRoleApp monta uma aplicação Fiber mínima com AuthMiddleware + RequireRole
// e um handler que devolve 200 se passar pelos middlewares.
func buildRoleApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

// buildPermissionApp idem, mas com RequirePermission.
func buildPermissionApp(perm string) *fiber.App {
	app := fiber.New()
	app.Post("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(perm),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

// tokenFor gera um JWT com role e permissions dados.
func tokenFor(t *testing.T, role string, permissions []string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, permissions, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

// doRequest dispara uma requisição contra a app e devolve a resposta.
func doRequest(t *testing.T, app *fiber.App, method, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SemHeader(t *testing.T) {
	app := buildRoleApp(entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoErrado(t *testing.T) {
	app := buildRoleApp(entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_AssinaturaInvalida(t *testing.T) {
	tok, err := pkgjwt.Generate("outro-secret", testUserID, entity.RoleAdmin, nil, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildRoleApp(entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdmin, nil, testIssuer, -5)
	require.NoError(t, err)

	app := buildRoleApp(entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAcessaRotaAdmin(t *testing.T) {
	app := buildRoleApp(entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, tokenFor(t, entity.RoleAdmin, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole_ManagerAcessaRotaMulti(t *testing.T) {
	app := buildRoleApp(entity.RoleAdmin, entity.RoleManager)
	resp := doRequest(t, app, http.MethodGet, tokenFor(t, entity.RoleManager, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"MANAGER deve acessar rota que permite ADMIN ou MANAGER")
}

func TestRequireRole_OperadorBloqueado(t *testing.T) {
	app := buildRoleApp(entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, tokenFor(t, entity.RoleOperator, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_ComPermissao(t *testing.T) {
	app := buildPermissionApp("sales.create")
	resp := doRequest(t, app, http.MethodPost, tokenFor(t, entity.RoleOperator, []string{"sales.create"}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"], "o UserID do token deve chegar ao handler")
}

func TestRequirePermission_SemPermissao(t *testing.T) {
	app := buildPermissionApp("sales.create")
	resp := doRequest(t, app, http.MethodPost, tokenFor(t, entity.RoleOperator, []string{"products.create"}))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "sales.create",
		"a resposta deve indicar a permissão que falta")
}

// ADMIN passa em qualquer permissão, mesmo sem tê-la listada no token.
func TestRequirePermission_AdminPassaDireto(t *testing.T) {
	app := buildPermissionApp("fiscal.emit")
	resp := doRequest(t, app, http.MethodPost, tokenFor(t, entity.RoleAdmin, nil))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
