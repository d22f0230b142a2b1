package command

import (
	"fmt"
	"time"

	"github.com/freshmarket/marketplace/internal/user/domain"
	"github.com/freshmarket/marketplace/pkg/apperr"
)

// DeactivateUserCommand soft-deletes a user (admin only). RequestedBy is the
// acting admin's id; an admin may not deactivate their own account.
type DeactivateUserCommand struct {
	UserID      uint
	RequestedBy uint
}

// DeactivateUserHandler handles user deactivation command
type DeactivateUserHandler struct {
	repo domain.UserRepository
}

// NewDeactivateUserHandler creates a new deactivate user handler
func NewDeactivateUserHandler(repo domain.UserRepository) *DeactivateUserHandler {
	return &DeactivateUserHandler{repo: repo}
}

// Handle executes the deactivate user command
func (h *DeactivateUserHandler) Handle(cmd DeactivateUserCommand) error {
	if cmd.UserID == 0 {
		return apperr.Invalid("invalid user id")
	}

	if cmd.UserID == cmd.RequestedBy {
		return apperr.Invalid("you cannot deactivate your own account")
	}

	user, err := h.repo.FindByID(cmd.UserID)
	if err != nil {
		return apperr.Missing("user not found")
	}

	user.IsActive = false
	user.UpdatedAt = time.Now()

	if err := h.repo.Update(user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	return nil
}
