package service

import (
	"context"
	"errors"
	"time"

	"github.com/Umar7799/user-managment/internal/auth"
	"github.com/Umar7799/user-managment/internal/domain"
	"github.com/Umar7799/user-managment/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountBlocked     = errors.New("account is blocked")
)

type AuthService struct {
	userRepo    repository.UserRepository
	tokens      *auth.TokenService
	broadcaster Broadcaster
	log         zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, broadcaster Broadcaster, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		broadcaster: broadcaster,
		log:         log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	// Cheap pre-check; the unique index on email closes the race
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Status:       domain.StatusActive,
		LastLogin:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishListing(ctx)
	return user, nil
}

// Login verifies credentials and issues a session token. The blocked check
// runs before the password comparison so blocked accounts never receive a
// password-verification side channel.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Blocked() {
		return nil, ErrAccountBlocked
	}

	if err := auth.CheckPassword(input.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	user, err = s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.publishListing(ctx)
	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) publishListing(ctx context.Context) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load listing for broadcast")
		return
	}
	s.broadcaster.BroadcastUsers(users)
}
