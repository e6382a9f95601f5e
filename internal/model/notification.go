package model

import "time"

// NotificationKind doubles as the event kind carried by notify_event
// tasks; fanout resolves recipients per kind.
type NotificationKind string

const (
	NotificationKindProjectStatusChanged NotificationKind = "project_status_changed"
	NotificationKindContentSubmitted     NotificationKind = "content_submitted"
	NotificationKindContentDecided       NotificationKind = "content_decided"
	NotificationKindCommentAdded         NotificationKind = "comment_added"
	NotificationKindSuggestionAdded      NotificationKind = "suggestion_added"
	NotificationKindSuggestionResolved   NotificationKind = "suggestion_resolved"
)

func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationKindProjectStatusChanged,
		NotificationKindContentSubmitted,
		NotificationKindContentDecided,
		NotificationKindCommentAdded,
		NotificationKindSuggestionAdded,
		NotificationKindSuggestionResolved:
		return true
	}
	return false
}

type Notification struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"user_id"`
	Kind          NotificationKind `json:"kind"`
	Title         string           `json:"title"`
	Body          string           `json:"body"`
	ProjectID     *int64           `json:"project_id,omitempty"`
	ContentItemID *int64           `json:"content_item_id,omitempty"`
	ReadAt        *time.Time       `json:"read_at,omitempty"`
	EmailedAt     *time.Time       `json:"emailed_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
