package model

import "time"

type Comment struct {
	ID            int64      `json:"id"`
	ContentItemID int64      `json:"content_item_id"`
	AuthorUserID  int64      `json:"author_user_id"`
	Body          string     `json:"body"`
	ResolvedBy    *int64     `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (c *Comment) IsResolved() bool {
	return c.ResolvedAt != nil
}
