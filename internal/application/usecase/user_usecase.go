package usecase

import (
	"context"
	"time"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
)

// UpdateUserRequest campos administráveis de um usuário (role, permissões, status).
type UpdateUserRequest struct {
	Role        string   `json:"role" validate:"omitempty,oneof=ADMIN MANAGER OPERATOR"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}

// UserUseCase administração de usuários (o registro fica no pacote auth).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// GetUser busca por ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return userToResponse(user), nil
}

// UpdateUser altera role, permissões e status de um usuário.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id string, in UpdateUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Permissions != nil {
		user.Permissions = in.Permissions
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return userToResponse(user), nil
}

// ListUsers lista usuários paginados.
func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *userToResponse(u))
	}
	return out, nil
}

func userToResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: u.Permissions,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
