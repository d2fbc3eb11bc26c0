package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	jwtsvc "boqbase/internal/pkg/jwt"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"` // user (default) or supplier; staff accounts are seeded
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Service struct {
	users *Repository
	jwt   *jwtsvc.Service
}

func NewService(users *Repository, jwt *jwtsvc.Service) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	role := RoleUser
	if req.Role != "" {
		role = UserRole(req.Role)
	}
	// Staff roles are never self-assigned through the public endpoint.
	if role != RoleUser && role != RoleSupplier {
		return nil, "", ErrRoleNotAllowed
	}

	n, err := s.users.CountByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if n > 0 {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         req.Name,
		Phone:        req.Phone,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
