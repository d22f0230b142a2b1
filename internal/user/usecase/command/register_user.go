package command

import (
	"fmt"
	"time"

	"github.com/freshmarket/marketplace/internal/user/domain"
	"github.com/freshmarket/marketplace/pkg/apperr"
	"github.com/freshmarket/marketplace/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user.
// Role is caller-supplied and unchecked beyond the known values; the
// original system accepts self-assigned roles at registration.
type RegisterUserCommand struct {
	Email    string
	Username string
	Name     string
	Password string
	Role     string
	Company  string
}

// RegisterResponse carries the created user plus its access token
type RegisterResponse struct {
	Token string       `json:"access_token"`
	User  *domain.User `json:"user"`
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(cmd RegisterUserCommand) (*RegisterResponse, error) {
	if cmd.Email == "" {
		return nil, apperr.Invalid("email is required")
	}
	if cmd.Username == "" {
		return nil, apperr.Invalid("username is required")
	}
	if cmd.Name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if cmd.Password == "" {
		return nil, apperr.Invalid("password is required")
	}
	if len(cmd.Password) < 6 {
		return nil, apperr.Invalid("password must be at least 6 characters")
	}

	// Uniqueness holds across active and deactivated users
	if existing, _ := h.repo.FindByUsername(cmd.Username); existing != nil {
		return nil, apperr.Duplicate("email or username already registered")
	}
	if existing, _ := h.repo.FindByEmail(cmd.Email); existing != nil {
		return nil, apperr.Duplicate("email or username already registered")
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := cmd.Role
	if role == "" {
		role = domain.RoleCliente
	}
	if role != domain.RoleCliente && role != domain.RoleAdmin {
		return nil, apperr.Invalid("invalid role")
	}

	now := time.Now()
	user := &domain.User{
		Email:        cmd.Email,
		Username:     cmd.Username,
		Name:         cmd.Name,
		Company:      cmd.Company,
		Role:         role,
		PasswordHash: hashedPassword,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &RegisterResponse{Token: token, User: user}, nil
}
