package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/pantry/internal/pantry/domain"
	"github.com/aussiebroadwan/pantry/internal/pantry/store"
	"github.com/aussiebroadwan/pantry/pkg/cryptox"
	"github.com/aussiebroadwan/pantry/pkg/idx"
	"github.com/aussiebroadwan/pantry/pkg/slogx"
)

type UserService struct {
	Store store.Store
}

// ProfileUpdate carries the fields a user may change on their own account.
// A nil field was not supplied.
type ProfileUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

// CreateUser registers a regular active account.
func (s *UserService) CreateUser(ctx context.Context, email, name, password string) (domain.User, error) {
	return s.create(ctx, newUserParams{email: email, name: name, password: password})
}

// CreateSuperuser registers an account with staff and superuser rights.
func (s *UserService) CreateSuperuser(ctx context.Context, email, name, password string) (domain.User, error) {
	return s.create(ctx, newUserParams{
		email:     email,
		name:      name,
		password:  password,
		staff:     true,
		superuser: true,
	})
}

type newUserParams struct {
	email     string
	name      string
	password  string
	staff     bool
	superuser bool
}

func (s *UserService) create(ctx context.Context, p newUserParams) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	v := &ValidationError{}
	email := checkEmail(v, "email", p.email)
	name := checkText(v, "name", p.name, domain.MaxNameLength)
	checkPassword(v, "password", p.password)
	if err := v.Err(); err != nil {
		return domain.User{}, err
	}

	// 2. Hash the password before touching the database
	hash, err := cryptox.HashPassword(p.password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      p.staff,
		IsSuperuser:  p.superuser,
	}

	// 3. Insert, reporting a taken address against the email field
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			return NewValidationError("email", MsgEmailTaken)
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return NewValidationError("email", MsgEmailTaken)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !IsValidation(err) {
			log.Error("failed to create user", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	log.Info("user created",
		slog.String("user_id", u.ID),
		slog.Bool("superuser", u.IsSuperuser),
	)
	return s.Store.Users().GetUserByID(ctx, u.ID)
}

// CheckPassword reports whether candidate matches the stored hash of u.
func (s *UserService) CheckPassword(u domain.User, candidate string) bool {
	return cryptox.VerifyPassword(candidate, u.PasswordHash) == nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNotFound
	}
	return u, err
}

// UpdateProfile changes the caller's own account. With partial false every
// field must be supplied.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	userID string,
	upd ProfileUpdate,
	partial bool,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	v := &ValidationError{}
	if !partial {
		requireFields(v, map[string]bool{
			"email":    upd.Email != nil,
			"name":     upd.Name != nil,
			"password": upd.Password != nil,
		})
	}

	var email, name string
	if upd.Email != nil {
		email = checkEmail(v, "email", *upd.Email)
	}
	if upd.Name != nil {
		name = checkText(v, "name", *upd.Name, domain.MaxNameLength)
	}
	if upd.Password != nil {
		checkPassword(v, "password", *upd.Password)
	}
	if err := v.Err(); err != nil {
		return domain.User{}, err
	}

	var hash string
	if upd.Password != nil {
		h, err := cryptox.HashPassword(*upd.Password)
		if err != nil {
			log.Error("failed to hash password", slog.Any("error", err))
			return domain.User{}, err
		}
		hash = h
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		if upd.Email != nil {
			u.Email = email
		}
		if upd.Name != nil {
			u.Name = name
		}
		if hash != "" {
			u.PasswordHash = hash
		}

		err = tx.Users().UpdateUser(ctx, u)
		if errors.Is(err, store.ErrAlreadyExists) {
			return NewValidationError("email", MsgEmailTaken)
		}
		return err
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrNotFound
	case err != nil:
		if !IsValidation(err) {
			log.Error("failed to update profile", slog.Any("error", err))
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}
