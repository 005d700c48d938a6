package ports

import (
	"context"

	"github.com/tuneup/accounts-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
//
// Find methods return domain.ErrUserNotFound when no record matches. Save
// returns the persisted record carrying its store-assigned identifier, or
// domain.ErrUserExists / domain.ErrInvalidData when the store rejects it.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
