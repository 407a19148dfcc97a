package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/ezwallet/wallet-system/internal/api/metrics"
	"github.com/ezwallet/wallet-system/internal/core/domain"
	"github.com/ezwallet/wallet-system/internal/core/ports"
	"github.com/ezwallet/wallet-system/internal/core/token"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
	defaultBcryptCost = 12
)

// SessionService implements registration, login and logout. Login issues an
// access/refresh token pair with identical claims and persists the refresh
// token on the user record: one live session per identity, last login wins.
type SessionService struct {
	repo       ports.UserRepository
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
	validate   *validator.Validate
}

func NewSessionService(repo ports.UserRepository, codec *token.Codec, accessTTL, refreshTTL time.Duration) *SessionService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &SessionService{
		repo:       repo,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		bcryptCost: defaultBcryptCost,
		validate:   validator.New(),
	}
}

// Register creates a Regular identity. On a duplicate email or username the
// generic conflict error is returned so callers cannot probe which field
// collided.
func (s *SessionService) Register(ctx context.Context, username, email, password string) error {
	return s.register(ctx, username, email, password, domain.RoleRegular,
		domain.ErrAlreadyRegistered, domain.ErrAlreadyRegistered)
}

// RegisterAdmin creates an Admin identity. Unlike Register it reports which
// field collided.
func (s *SessionService) RegisterAdmin(ctx context.Context, username, email, password string) error {
	return s.register(ctx, username, email, password, domain.RoleAdmin,
		domain.ErrEmailRegistered, domain.ErrUsernameRegistered)
}

func (s *SessionService) register(ctx context.Context, username, email, password, role string, emailConflict, usernameConflict error) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if username == "" {
		return domain.ErrMissingUsername
	}
	if email == "" {
		return domain.ErrMissingEmail
	}
	if password == "" {
		return domain.ErrMissingPassword
	}

	if s.validate.Var(email, "email") != nil {
		return domain.ErrInvalidEmail
	}

	// Email is checked before username: a request colliding on both
	// reports the email conflict.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return emailConflict
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return usernameConflict
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(role).Inc()
	return nil
}

// Login verifies credentials and issues the token pair. The refresh token
// is persisted on the user record, overwriting any prior value.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ErrMissingEmail
	}
	if strings.TrimSpace(password) == "" {
		return nil, domain.ErrMissingPassword
	}
	if s.validate.Var(email, "email") != nil {
		return nil, domain.ErrInvalidEmail
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginFailuresTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginFailuresTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrIncorrectPassword
	}

	claims := token.Claims{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		ID:       user.ID,
	}
	accessToken, err := s.codec.Sign(claims, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.Sign(claims, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = refreshToken
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	metrics.LoginsTotal.Inc()
	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout revokes the session holding refreshToken by clearing the stored
// value. An already-issued access token stays usable until its natural
// expiry; only future refreshes are cut off.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.ErrRefreshTokenMissing
	}

	user, err := s.repo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	user.RefreshToken = ""
	user.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, user)
}
