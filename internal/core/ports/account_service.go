package ports

import (
	"context"

	"github.com/tuneup/accounts-api/internal/core/domain"
)

type AccountService interface {
	Register(ctx context.Context, candidate *domain.User) domain.AuthResult
	Authenticate(ctx context.Context, email, password string) domain.AuthResult
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
