package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/pkg/cryptox"
	"github.com/aussiebroadwan/pantry/pkg/slogx"
)

// AdminUserInput is the "add user" form of the admin console.
type AdminUserInput struct {
	Email     string
	Name      string
	Password1 string
	Password2 string
}

// AdminUserPatch lists the account fields staff may change. A nil field is
// left untouched. last_login is not writable.
type AdminUserPatch struct {
	Email       *string
	Name        *string
	Password    *string
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

// AdminService backs the staff-only console. Authorization happens in the
// HTTP layer; nothing here is scoped to a caller.
type AdminService struct {
	Store store.Store
	Users *UserService
}

// ListUsers returns every account ordered by email.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (domain.User, error) {
	return s.Users.GetUserByID(ctx, id)
}

// CreateUser adds a regular account after checking both passwords match.
func (s *AdminService) CreateUser(ctx context.Context, in AdminUserInput) (domain.User, error) {
	if in.Password1 != in.Password2 {
		return domain.User{}, NewValidationError("password2", MsgPasswordMatch)
	}

	u, err := s.Users.CreateUser(ctx, in.Email, in.Name, in.Password1)
	var verr *ValidationError
	if errors.As(err, &verr) {
		// The form names the password field password1.
		if msg, ok := verr.Fields["password"]; ok {
			delete(verr.Fields, "password")
			verr.Add("password1", msg)
		}
	}
	return u, err
}

// UpdateUser applies p to the account id.
func (s *AdminService) UpdateUser(ctx context.Context, id string, p AdminUserPatch) (domain.User, error) {
	log := slogx.FromContext(ctx)

	v := &ValidationError{}
	var email, name string
	if p.Email != nil {
		email = checkEmail(v, "email", *p.Email)
	}
	if p.Name != nil {
		name = checkText(v, "name", *p.Name, domain.MaxNameLength)
	}
	if p.Password != nil {
		checkPassword(v, "password", *p.Password)
	}
	if err := v.Err(); err != nil {
		return domain.User{}, err
	}

	var hash string
	if p.Password != nil {
		h, err := cryptox.HashPassword(*p.Password)
		if err != nil {
			log.Error("failed to hash password", slog.Any("error", err))
			return domain.User{}, err
		}
		hash = h
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, id)
		if err != nil {
			return err
		}

		if p.Email != nil {
			u.Email = email
		}
		if p.Name != nil {
			u.Name = name
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		if p.IsActive != nil {
			u.IsActive = *p.IsActive
		}
		if p.IsStaff != nil {
			u.IsStaff = *p.IsStaff
		}
		if p.IsSuperuser != nil {
			u.IsSuperuser = *p.IsSuperuser
		}

		err = tx.Users().UpdateUser(ctx, u)
		if errors.Is(err, store.ErrAlreadyExists) {
			return NewValidationError("email", MsgEmailTaken)
		}
		if err != nil {
			return err
		}

		// A deactivated account loses its sessions immediately.
		if p.IsActive != nil && !*p.IsActive {
			return tx.AuthTokens().DeleteUserAuthTokens(ctx, id)
		}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrNotFound
	case err != nil:
		if !IsValidation(err) {
			log.Error("failed to update user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	log.Info("user updated by admin", slog.String("target_user_id", id))
	return s.Users.GetUserByID(ctx, id)
}

// DeleteUser removes an account together with everything it owns.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	err := s.Store.Users().DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err == nil {
		slogx.FromContext(ctx).Info("user deleted by admin", slog.String("target_user_id", id))
	}
	return err
}

// ListIngredients returns every user's ingredients ordered by name.
func (s *AdminService) ListIngredients(ctx context.Context) ([]domain.IngredientWithOwner, error) {
	return s.Store.Ingredients().ListAllIngredients(ctx)
}

// DeleteIngredient removes an ingredient regardless of its owner.
func (s *AdminService) DeleteIngredient(ctx context.Context, id string) error {
	err := s.Store.Ingredients().DeleteIngredientByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
