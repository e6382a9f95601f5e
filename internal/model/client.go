package model

import "time"

// Client is a pharma client account within an agency organization.
// BannedPhrases and RequiredDisclaimer extend the built-in compliance
// rule set for all content produced for this client.
type Client struct {
	ID                 int64     `json:"id"`
	OrganizationID     int64     `json:"organization_id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	ContactName        *string   `json:"contact_name,omitempty"`
	ContactEmail       *string   `json:"contact_email,omitempty"`
	BannedPhrases      []string  `json:"banned_phrases"`
	RequiredDisclaimer *string   `json:"required_disclaimer,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	IsDeleted          bool      `json:"-"` // internal, not exposed in API
}
