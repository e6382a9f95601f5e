package model

import "time"

type SuggestionStatus string

const (
	SuggestionStatusPending  SuggestionStatus = "pending"
	SuggestionStatusAccepted SuggestionStatus = "accepted"
	SuggestionStatusRejected SuggestionStatus = "rejected"
)

func (s SuggestionStatus) IsValid() bool {
	switch s {
	case SuggestionStatusPending, SuggestionStatusAccepted, SuggestionStatusRejected:
		return true
	}
	return false
}

// ClientSuggestion is a reviewer's proposed edit: replace Excerpt with
// Replacement. Staff accept or reject it; application of the text change
// happens client-side in the editor.
type ClientSuggestion struct {
	ID            int64            `json:"id"`
	ContentItemID int64            `json:"content_item_id"`
	AuthorUserID  int64            `json:"author_user_id"`
	Excerpt       string           `json:"excerpt"`
	Replacement   string           `json:"replacement"`
	Note          *string          `json:"note,omitempty"`
	Status        SuggestionStatus `json:"status"`
	ResolvedBy    *int64           `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time       `json:"resolved_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
