package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"coworking/internal/auth"
	"coworking/internal/db"
	"coworking/internal/entities"
	apperrors "coworking/internal/errors"
	"coworking/internal/repository"
	"coworking/internal/validator"
)

type UserService interface {
	Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error)
	Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error)
	List(ctx context.Context) ([]db.User, error)
	Get(ctx context.Context, actor auth.Principal, id int) (*db.User, error)
	Update(ctx context.Context, actor auth.Principal, id int, upd entities.UserUpdate) (*db.User, error)
	ChangePassword(ctx context.Context, actor auth.Principal, id int, req entities.ChangePasswordRequest) error
	Delete(ctx context.Context, actor auth.Principal, id int) error
	CreateAdmin(ctx context.Context, req entities.RegisterRequest) (*db.User, error)
}

type userService struct {
	repo      repository.UserRepository
	tokens    *auth.TokenManager
	validator *validator.Validator
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, v *validator.Validator) UserService {
	return &userService{repo: repo, tokens: tokens, validator: v}
}

// Register always creates a regular user; admins come from the CLI.
func (s *userService) Register(ctx context.Context, req entities.RegisterRequest) (*entities.AuthResponse, error) {
	u, err := s.createUser(ctx, req, db.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *userService) Login(ctx context.Context, req entities.LoginRequest) (*entities.AuthResponse, error) {
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, apperrors.Wrap(err)
	}
	if !checkPasswordHash(req.Password, u.PasswordHash) {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}
	return s.issue(u)
}

func (s *userService) List(ctx context.Context) ([]db.User, error) {
	users, err := s.repo.List(ctx)
	return users, translate(err, "User")
}

func (s *userService) Get(ctx context.Context, actor auth.Principal, id int) (*db.User, error) {
	if !actor.CanAccess(id) {
		return nil, apperrors.Forbidden("You can only access your own account")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "User")
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, actor auth.Principal, id int, upd entities.UserUpdate) (*db.User, error) {
	if err := s.validator.Struct(&upd); err != nil {
		return nil, err
	}
	if upd.Role != nil && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only administrators can change roles")
	}
	u, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if upd.Email != nil {
		email := normalizeEmail(*upd.Email)
		upd.Email = &email
		if err := s.ensureUniqueEmail(ctx, email, id); err != nil {
			return nil, err
		}
	}

	upd.Apply(u)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, translate(err, "User")
	}
	return u, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor auth.Principal, id int, req entities.ChangePasswordRequest) error {
	if err := s.validator.Struct(&req); err != nil {
		return err
	}
	if actor.UserID != id {
		return apperrors.Forbidden("You can only change your own password")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return translate(err, "User")
	}
	if !checkPasswordHash(req.CurrentPassword, u.PasswordHash) {
		return apperrors.Unauthorized("Current password is incorrect")
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return apperrors.Internal(err)
	}
	return translate(s.repo.UpdatePassword(ctx, id, hash), "User")
}

func (s *userService) Delete(ctx context.Context, actor auth.Principal, id int) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	n, err := s.repo.CountActiveBookings(ctx, id)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if n > 0 {
		return apperrors.Conflict("Cannot delete user: they have %d active booking(s)", n)
	}
	return translate(s.repo.Delete(ctx, id), "User")
}

// CreateAdmin creates an administrator, or promotes the existing account with that email.
func (s *userService) CreateAdmin(ctx context.Context, req entities.RegisterRequest) (*db.User, error) {
	existing, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	switch {
	case err == nil:
		existing.Role = db.RoleAdmin
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, translate(err, "User")
		}
		return existing, nil
	case errors.Is(err, repository.ErrNotFound):
		return s.createUser(ctx, req, db.RoleAdmin)
	default:
		return nil, apperrors.Wrap(err)
	}
}

func (s *userService) createUser(ctx context.Context, req entities.RegisterRequest, role string) (*db.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := s.validator.Struct(&req); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueEmail(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	u := &db.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email '%s' is already registered", req.Email)
		}
		return nil, apperrors.Wrap(err)
	}
	return u, nil
}

func (s *userService) ensureUniqueEmail(ctx context.Context, email string, excludeID int) error {
	exists, err := s.repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return apperrors.Wrap(err)
	}
	if exists {
		return apperrors.Conflict("Email '%s' is already registered", email)
	}
	return nil
}

func (s *userService) issue(u *db.User) (*entities.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(u)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &entities.AuthResponse{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
