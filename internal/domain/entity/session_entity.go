package entity

import "time"

// Session is the server-side record behind a login. Tokens reference it by ID,
// so deleting it revokes every token issued for it.
type Session struct {
	ID        string     `json:"sid"`
	User      PublicUser `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
}
