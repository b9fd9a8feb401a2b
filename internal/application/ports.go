package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-hris/internal/domain/entity"
)

// SessionStore persists login sessions. Get returns apperr.ErrNotFound for unknown ids.
type SessionStore interface {
	Save(ctx context.Context, s *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, sid string) (*entity.Session, error)
	Delete(ctx context.Context, sid string) error
}

// ReferenceCache holds copies of the role and organization lists.
type ReferenceCache interface {
	Roles(ctx context.Context) ([]entity.Role, bool, error)
	SetRoles(ctx context.Context, roles []entity.Role) error
	Organizations(ctx context.Context) ([]entity.Organization, bool, error)
	SetOrganizations(ctx context.Context, orgs []entity.Organization) error
	Invalidate(ctx context.Context) error
}

// UserIndex is a secondary full-text index of the directory.
type UserIndex interface {
	Index(ctx context.Context, u *entity.UserDetail) error
	Remove(ctx context.Context, id int64) error
	Search(ctx context.Context, q string, size int) ([]entity.UserDetail, error)
}

// Notifier tells users about account events out of band.
type Notifier interface {
	Welcome(ctx context.Context, u *entity.PublicUser) error
}
