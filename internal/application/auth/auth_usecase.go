// Package auth registro e autenticação de usuários com bcrypt e JWT.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gestaolivre/erp-api/internal/application/dto"
	"github.com/gestaolivre/erp-api/internal/domain"
	"github.com/gestaolivre/erp-api/internal/domain/entity"
	"github.com/gestaolivre/erp-api/internal/domain/repository"
	"github.com/gestaolivre/erp-api/pkg/config"
	"github.com/gestaolivre/erp-api/pkg/jwt"
)

// UseCase registro e login.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

// NewUseCase constrói o caso de uso.
func NewUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register cria um usuário com senha em bcrypt. Email duplicado devolve
// ErrEmailAlreadyExists. Role vazio assume OPERATOR.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleOperator
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Permissions:  in.Permissions,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login autentica por email e senha e devolve um JWT com role e permissões.
// Credenciais inválidas e usuário inativo devolvem ErrUnauthorized, sem
// distinguir qual dos dois falhou.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := uc.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.Permissions, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
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
