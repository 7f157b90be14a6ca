package repository

import (
	"context"

	"github.com/polkiloo/rype/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
	Count(ctx context.Context) (int64, error)
}
