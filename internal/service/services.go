package service

import (
	"github.com/Umar7799/user-managment/internal/auth"
	"github.com/Umar7799/user-managment/internal/domain"
	"github.com/Umar7799/user-managment/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Broadcaster pushes registry changes to connected live sessions. The
// websocket hub implements it; services stay decoupled from the transport.
type Broadcaster interface {
	BroadcastUsers(users []*domain.User)
	NotifyBlocked(userID uuid.UUID, message string)
}

type Services struct {
	Auth *AuthService
	User *UserService
}

func NewServices(repos *repository.Repositories, tokens *auth.TokenService, broadcaster Broadcaster, log zerolog.Logger) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, tokens, broadcaster, log),
		User: NewUserService(repos.User, broadcaster, log),
	}
}
