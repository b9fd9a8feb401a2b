package repository

import (
	"context"

	"github.com/oksasatya/go-hris/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Implementations translate store failures into apperr sentinels.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.UserDetail, error)
	// EmailTaken reports whether email belongs to a user other than excludeID (0 = none).
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context, filter entity.UserFilter, page, pageSize int) ([]entity.UserDetail, int, error)
	// Create stores u (Password must already be hashed) and returns the new id.
	Create(ctx context.Context, u *entity.User) (int64, error)
	// Update rewrites email, name, role and organization; the password only when passwordHash is non-nil.
	Update(ctx context.Context, u *entity.User, passwordHash *string) error
	Delete(ctx context.Context, id int64) error
}
