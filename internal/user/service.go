package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"laundry-be/internal/auth"
	"laundry-be/internal/logger"
	"laundry-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	RegisterAdmin(ctx context.Context, in RegisterInput, secretKey string) (*User, error)
	RegisterCashier(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, username, password string) (string, *User, error)

	Profile(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error

	AdminProfile(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateAdminProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate, secretKey string) (*User, error)

	ListCashiers(ctx context.Context) ([]*User, error)
	UpdateCashier(ctx context.Context, id uuid.UUID, in CashierUpdate) (*User, error)
	DeleteCashier(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        Repository
	adminSecret string
}

// NewService builds the account service. An empty adminSecret disables
// admin registration.
func NewService(repo Repository, adminSecret string) Service {
	return &service{repo: repo, adminSecret: adminSecret}
}

func (s *service) RegisterAdmin(ctx context.Context, in RegisterInput, secretKey string) (*User, error) {
	if !s.secretMatches(secretKey) {
		logger.FromCtx(ctx).Warn("admin registration rejected", zap.String("username", in.Username))
		return nil, ErrInvalidSecretKey
	}
	return s.register(ctx, in, RoleAdmin)
}

func (s *service) RegisterCashier(ctx context.Context, in RegisterInput) (*User, error) {
	return s.register(ctx, in, RoleCashier)
}

func (s *service) register(ctx context.Context, in RegisterInput, role Role) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("role", string(role)),
	)

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, &User{
		ID:       uuid.New(),
		Username: username,
		Password: hashed,
		Role:     role,
		Name:     strings.TrimSpace(in.Name),
	})
	if err != nil {
		log.Warn("failed to create user", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	log.Info("register completed", zap.String("user_id", u.ID.String()))
	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(zap.String("username", username))

	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("login: unknown username")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login: password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID, string(u.Role), u.Username)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) Profile(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyProfile(ctx, u, in)
}

func (s *service) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !CheckPasswordHash(password, u.Password) {
		return ErrWrongPassword
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("account deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *service) AdminProfile(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != RoleAdmin {
		return nil, ErrAdminRequired
	}
	return u, nil
}

// UpdateAdminProfile is UpdateProfile for admins. A non-empty secretKey
// must match the configured admin secret.
func (s *service) UpdateAdminProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate, secretKey string) (*User, error) {
	u, err := s.AdminProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if secretKey != "" && !s.secretMatches(secretKey) {
		return nil, ErrInvalidSecretKey
	}
	return s.applyProfile(ctx, u, in)
}

func (s *service) applyProfile(ctx context.Context, u *User, in ProfileUpdate) (*User, error) {
	params := UpdateUserParams{
		Username: utils.TrimmedOrNil(in.Username),
		Name:     utils.TrimmedOrNil(in.Name),
	}

	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return nil, ErrPasswordRequired
		}
		if !CheckPasswordHash(in.CurrentPassword, u.Password) {
			return nil, ErrWrongPassword
		}
		hashed, err := HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		params.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, u.ID, params)
	if err != nil {
		logger.FromCtx(ctx).Warn("profile update failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *service) ListCashiers(ctx context.Context) ([]*User, error) {
	return s.repo.ListByRole(ctx, RoleCashier)
}

func (s *service) UpdateCashier(ctx context.Context, id uuid.UUID, in CashierUpdate) (*User, error) {
	if _, err := s.cashier(ctx, id); err != nil {
		return nil, err
	}

	params := UpdateUserParams{
		Username: utils.TrimmedOrNil(in.Username),
		Name:     utils.TrimmedOrNil(in.Name),
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		hashed, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		params.PasswordHash = &hashed
	}

	return s.repo.Update(ctx, id, params)
}

func (s *service) DeleteCashier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.cashier(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrCashierNotFound
		}
		return err
	}
	logger.FromCtx(ctx).Info("cashier deleted", zap.String("user_id", id.String()))
	return nil
}

// cashier loads id and fails with ErrCashierNotFound unless it is a cashier.
func (s *service) cashier(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) || (err == nil && u.Role != RoleCashier) {
		return nil, ErrCashierNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) secretMatches(key string) bool {
	if s.adminSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.adminSecret)) == 1
}
