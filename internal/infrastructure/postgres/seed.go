package postgres

import (
	"context"

	"github.com/oksasatya/go-hris/internal/domain/entity"
)

const (
	seedOrganizationSQL = `
		INSERT INTO organizations (id, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`

	seedRoleSQL = `
		INSERT INTO roles (id, name, description, organization_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	// Explicit ids bypass the sequences; move them past the seeded rows.
	syncOrganizationSeqSQL = `SELECT setval(pg_get_serial_sequence('organizations', 'id'), GREATEST((SELECT MAX(id) FROM organizations), 1))`
	syncRoleSeqSQL         = `SELECT setval(pg_get_serial_sequence('roles', 'id'), GREATEST((SELECT MAX(id) FROM roles), 1))`
)

// DefaultReferenceData returns the tenant and roles every deployment needs before
// the first registration: the default organization plus "User" and "Admin" roles.
func DefaultReferenceData(orgID, userRoleID, adminRoleID int64) (entity.Organization, []entity.Role) {
	org := entity.Organization{ID: orgID, Name: "Default Organization", Slug: "default"}
	roles := []entity.Role{
		{ID: userRoleID, Name: "User", Description: "Default user role", OrganizationID: orgID},
		{ID: adminRoleID, Name: "Admin", Description: "Administrator role", OrganizationID: orgID},
	}
	return org, roles
}

// EnsureDefaults inserts org and roles when missing. Existing rows are left untouched,
// so running it repeatedly is a no-op.
func (r *ReferenceRepository) EnsureDefaults(ctx context.Context, org entity.Organization, roles []entity.Role) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.Exec(ctx, seedOrganizationSQL, org.ID, org.Name, org.Slug); err != nil {
		return translate(err, nil)
	}
	for _, role := range roles {
		if _, err := r.db.Exec(ctx, seedRoleSQL, role.ID, role.Name, role.Description, role.OrganizationID); err != nil {
			return translate(err, nil)
		}
	}
	if _, err := r.db.Exec(ctx, syncOrganizationSeqSQL); err != nil {
		return translate(err, nil)
	}
	if _, err := r.db.Exec(ctx, syncRoleSeqSQL); err != nil {
		return translate(err, nil)
	}
	return nil
}
