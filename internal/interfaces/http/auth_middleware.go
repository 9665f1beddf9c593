package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/pkg/jwt"
)

// Locals keys para os dados do token em Fiber.
const (
	LocalUserID      = "user_id"
	LocalRole        = "role"
	LocalPermissions = "permissions"
)

// AuthMiddleware valida o Bearer Token JWT e extrai UserID, Role e Permissions para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, role, permissions, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalPermissions, permissions)
		return c.Next()
	}
}

// RequireRole autoriza apenas os papéis listados. Usar depois de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "papel sem acesso a este recurso"})
	}
}

// RequirePermission autoriza pela permissão granular. ADMIN passa direto.
func RequirePermission(perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == entity.RoleAdmin {
			return c.Next()
		}
		for _, p := range GetPermissions(c) {
			if p == perm {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permissão necessária: " + perm})
	}
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devolve o papel do contexto.
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetPermissions devolve as permissões do contexto.
func GetPermissions(c *fiber.Ctx) []string {
	v := c.Locals(LocalPermissions)
	if v == nil {
		return nil
	}
	s, _ := v.([]string)
	return s
}
