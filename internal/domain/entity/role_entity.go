package entity

// Role is a named permission label scoped to an organization.
// Roles are reference data; they are seeded, not managed through the API.
type Role struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	OrganizationID int64  `json:"organization_id"`
}
