package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillnet/skillnet/internal/core/domain"
	clientports "github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/emulator/ports"
	"github.com/skillnet/skillnet/internal/pkg/validation"
)

// AuthService implements registration, login and token issuance.
type AuthService struct {
	users      ports.UserRepository
	providers  ports.ProviderRepository
	categories ports.CategoryRepository
	jwtSecret  string
	tokenTTL   time.Duration
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	providers ports.ProviderRepository,
	categories ports.CategoryRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		providers:  providers,
		categories: categories,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		log:        log,
	}
}

// Register creates a client or provider account. Providers also get a
// directory entry under the same id.
func (s *AuthService) Register(ctx context.Context, in clientports.RegisterInput) (*domain.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var category *domain.Category
	if in.Kind == clientports.AccountProvider {
		c, err := s.categories.FindByID(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		category = c
	}

	user, err := s.createUser(ctx, in.Name, in.Email, in.Phone, in.Password, string(in.Kind))
	if err != nil {
		return nil, err
	}

	if category != nil {
		p := &domain.ServiceProvider{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Phone:    user.Phone,
			City:     in.City,
			Category: domain.Ref{ID: category.ID, Name: category.Name},
		}
		if err := s.providers.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("create provider entry: %w", err)
		}
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("account registered")
	return user, nil
}

// EnsureAdmin creates the admin account unless the email is already taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.createUser(ctx, name, email, "", password, domain.BackendRoleAdmin)
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	return err
}

func (s *AuthService) createUser(ctx context.Context, name, email, phone, password, role string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

// Login checks credentials and returns a signed token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, actor ports.Actor) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		// The token outlived its account.
		return nil, domain.ErrUnauthorized
	}
	return user, err
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  user.Role,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
