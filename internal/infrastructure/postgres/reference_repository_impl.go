package postgres

import (
	"context"
	"time"

	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/internal/domain/repository"
)

const (
	selectRolesSQL = `
		SELECT id, name, COALESCE(description, ''), organization_id
		FROM roles
		ORDER BY name
	`

	selectOrganizationsSQL = `
		SELECT id, name, slug, owner_user_id
		FROM organizations
		ORDER BY name
	`

	roleExistsSQL         = `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`
	organizationExistsSQL = `SELECT EXISTS (SELECT 1 FROM organizations WHERE id = $1)`
)

type ReferenceRepository struct {
	db      DBTX
	timeout time.Duration
}

func NewReferenceRepository(db DBTX, timeout time.Duration) *ReferenceRepository {
	return &ReferenceRepository{db: db, timeout: timeout}
}

func (r *ReferenceRepository) ListRoles(ctx context.Context) ([]entity.Role, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, selectRolesSQL)
	if err != nil {
		return nil, translate(err, nil)
	}
	defer rows.Close()

	roles := []entity.Role{}
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.OrganizationID); err != nil {
			return nil, translate(err, nil)
		}
		roles = append(roles, role)
	}
	return roles, translate(rows.Err(), nil)
}

func (r *ReferenceRepository) ListOrganizations(ctx context.Context) ([]entity.Organization, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, selectOrganizationsSQL)
	if err != nil {
		return nil, translate(err, nil)
	}
	defer rows.Close()

	orgs := []entity.Organization{}
	for rows.Next() {
		var org entity.Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Slug, &org.OwnerUserID); err != nil {
			return nil, translate(err, nil)
		}
		orgs = append(orgs, org)
	}
	return orgs, translate(rows.Err(), nil)
}

func (r *ReferenceRepository) RoleExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, roleExistsSQL, id)
}

func (r *ReferenceRepository) OrganizationExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, organizationExistsSQL, id)
}

func (r *ReferenceRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var ok bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, translate(err, nil)
	}
	return ok, nil
}

var _ repository.ReferenceRepository = (*ReferenceRepository)(nil)
