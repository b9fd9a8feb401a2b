package repository

import (
	"context"

	"github.com/oksasatya/go-hris/internal/domain/entity"
)

// ReferenceRepository reads the static role and organization tables.
type ReferenceRepository interface {
	ListRoles(ctx context.Context) ([]entity.Role, error)
	ListOrganizations(ctx context.Context) ([]entity.Organization, error)
	RoleExists(ctx context.Context, id int64) (bool, error)
	OrganizationExists(ctx context.Context, id int64) (bool, error)
}
