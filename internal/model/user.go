package model

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleStaff          Role = "staff"
	RoleClientReviewer Role = "client_reviewer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClientReviewer:
		return true
	}
	return false
}

// IsAgency reports whether the user works for the agency rather than
// reviewing on behalf of a client.
func (r Role) IsAgency() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	ClientID       *int64    `json:"client_id,omitempty"` // set for client reviewers
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
