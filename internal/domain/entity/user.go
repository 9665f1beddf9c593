package entity

import "time"

// Papéis válidos para User. ADMIN ignora a lista de permissões.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleOperator = "OPERATOR"
)

// User representa um usuário do sistema.
// Permissions segue o formato "<recurso>.<ação>", ex: "sales.create".
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca em claro após persistir
	Role         string
	Permissions  []string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPermission verifica a permissão: ADMIN passa direto, senão pertencimento à lista.
func (u *User) HasPermission(perm string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}
