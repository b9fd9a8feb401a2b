package entity

// Organization groups roles and users. OwnerUserID is nil until an owner is assigned.
type Organization struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	OwnerUserID *int64 `json:"owner_user_id,omitempty"`
}
