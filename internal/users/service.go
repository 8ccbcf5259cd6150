// Package users wraps the admin user-management endpoints. All of them are
// gated on the ADMIN role, checked client-side before any request and
// enforced again by the backend.
package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"steeldesk/internal/gateway"
	"steeldesk/internal/logger"
	"steeldesk/pkg/models"
)

// ErrNotAdmin is returned when the logged-in user lacks the ADMIN role.
var ErrNotAdmin = errors.New("administrator role required")

// Service is the user administration API client.
type Service struct {
	gw       *gateway.Client
	validate *validator.Validate
	log      zerolog.Logger
}

// NewService creates a user admin service using the given gateway.
func NewService(gw *gateway.Client) *Service {
	return &Service{
		gw:       gw,
		validate: validator.New(),
		log:      logger.WithComponent("users"),
	}
}

// RequireAdmin checks the ADMIN gate for the given user.
func RequireAdmin(u models.User) error {
	if !u.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// UserInput is the create/update payload. Password is only sent on create.
type UserInput struct {
	Username string   `json:"username" validate:"required,min=3"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password,omitempty" validate:"omitempty,min=6"`
	Roles    []string `json:"roles" validate:"min=1,dive,oneof=ADMIN USER"`
	Enabled  bool     `json:"enabled"`
}

// List fetches one page of accounts.
func (s *Service) List(ctx context.Context, page, size int) (*models.Page[models.User], error) {
	var out models.Page[models.User]
	endpoint := fmt.Sprintf("/api/admin/users?page=%d&size=%d", page, size)
	if err := s.gw.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a new account.
func (s *Service) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, fmt.Errorf("password is required for a new user")
	}
	var out models.User
	if err := s.gw.Post(ctx, "/api/admin/users", in, &out); err != nil {
		return nil, err
	}
	s.log.Info().Str("username", out.Username).Msg("User created")
	return &out, nil
}

// Update replaces an account's details. Password changes go through
// ResetPassword, not here.
func (s *Service) Update(ctx context.Context, id int64, in UserInput) (*models.User, error) {
	in.Password = ""
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	var out models.User
	if err := s.gw.Put(ctx, "/api/admin/users/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.gw.Delete(ctx, "/api/admin/users/"+strconv.FormatInt(id, 10))
}

// ResetPassword sets a new password for the account.
func (s *Service) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	body := map[string]string{"newPassword": newPassword}
	endpoint := "/api/admin/users/" + strconv.FormatInt(id, 10) + "/reset-password"
	if err := s.gw.Post(ctx, endpoint, body, nil); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", id).Msg("Password reset")
	return nil
}
