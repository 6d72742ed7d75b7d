package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/sakif/shareit/internal/apperror"
	"github.com/sakif/shareit/internal/model"
	"github.com/sakif/shareit/internal/repository"
)

// UserService owns user identity and the uniqueness-of-email invariant.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Create registers a new user. The email must be well-formed and unused by
// any existing user.
func (s *UserService) Create(ctx context.Context, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "user name is required")
	}
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if taken {
		return nil, apperror.NotUniqueEmail(email)
	}

	user := &model.User{Name: name, Email: email}
	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", slog.Int64("id", user.ID))
	return user, nil
}

// Update applies a partial update. Blank or absent fields are no-ops. A
// changed email is re-checked for uniqueness against all other users; setting
// the user's own current email again succeeds without the check.
func (s *UserService) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			user.Name = name
		}
	}
	if patch.Email != nil {
		if email := strings.TrimSpace(*patch.Email); email != "" {
			if err := validateEmail(email); err != nil {
				return nil, err
			}
			if email != user.Email {
				taken, err := s.users.EmailTaken(ctx, email, id)
				if err != nil {
					return nil, fmt.Errorf("checking email uniqueness: %w", err)
				}
				if taken {
					return nil, apperror.NotUniqueEmail(email)
				}
			}
			user.Email = email
		}
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", slog.Int64("id", id))
	return user, nil
}

// GetByID returns a single user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Delete removes a user by id. No cascade: the user's items, bookings, and
// comments are left untouched.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", slog.Int64("id", id))
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperror.ValidationFailed("email", "user email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperror.ValidationFailed("email", fmt.Sprintf("%s is not a valid email address", email))
	}
	return nil
}
