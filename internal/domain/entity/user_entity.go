package entity

import (
	"time"
)

// User is the aggregate root for the directory.
// Password holds the bcrypt hash and never leaves the service layer.
type User struct {
	ID             int64
	Email          string
	Password       string
	Name           string
	RoleID         int64
	OrganizationID int64
	CreatedAt      time.Time
}

// PublicUser is the subset of User that is safe to return to clients.
type PublicUser struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	RoleID         int64     `json:"role_id"`
	OrganizationID int64     `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Public strips credentials from u.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		RoleID:         u.RoleID,
		OrganizationID: u.OrganizationID,
		CreatedAt:      u.CreatedAt,
	}
}

// UserDetail is a directory row with role and organization names joined in.
// Names are empty when the referenced row is missing.
type UserDetail struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	RoleID           int64     `json:"role_id"`
	OrganizationID   int64     `json:"organization_id"`
	CreatedAt        time.Time `json:"createdAt"`
	RoleName         *string   `json:"role_name"`
	OrganizationName *string   `json:"organization_name"`
}

// Public drops the joined names.
func (d *UserDetail) Public() *PublicUser {
	return &PublicUser{
		ID:             d.ID,
		Email:          d.Email,
		Name:           d.Name,
		RoleID:         d.RoleID,
		OrganizationID: d.OrganizationID,
		CreatedAt:      d.CreatedAt,
	}
}

// UserFilter narrows a directory listing. Zero values mean "no filter".
type UserFilter struct {
	Search string
	RoleID int64
}
