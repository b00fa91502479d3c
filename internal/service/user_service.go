package service

import (
	"context"

	"github.com/Umar7799/user-managment/internal/domain"
	"github.com/Umar7799/user-managment/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const blockedNotice = "Your account has been blocked by an administrator."

type UserService struct {
	userRepo    repository.UserRepository
	broadcaster Broadcaster
	log         zerolog.Logger
}

func NewUserService(userRepo repository.UserRepository, broadcaster Broadcaster, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		broadcaster: broadcaster,
		log:         log,
	}
}

// List returns all users ordered by last login, most recent first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// SetStatus transitions a user between active and blocked. Idempotent:
// re-blocking a blocked user succeeds and returns the current record.
func (s *UserService) SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) (*domain.User, error) {
	if status != domain.StatusActive && status != domain.StatusBlocked {
		return nil, domain.ErrInvalidStatus
	}

	user, err := s.userRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if status == domain.StatusBlocked {
		s.broadcaster.NotifyBlocked(id, blockedNotice)
	}
	s.publishListing(ctx)
	return user, nil
}

func (s *UserService) Block(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.SetStatus(ctx, id, domain.StatusBlocked)
}

func (s *UserService) Unblock(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.SetStatus(ctx, id, domain.StatusActive)
}

// Delete removes the record permanently. No soft-delete.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishListing(ctx)
	return user, nil
}

func (s *UserService) publishListing(ctx context.Context) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load listing for broadcast")
		return
	}
	s.broadcaster.BroadcastUsers(users)
}
