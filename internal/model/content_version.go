package model

import (
	"time"

	"inkwire.app/newsroom/internal/content"
)

// ContentVersion is an immutable snapshot of a document. Versions are
// numbered sequentially per item starting at 1.
type ContentVersion struct {
	ID              int64            `json:"id"`
	ContentItemID   int64            `json:"content_item_id"`
	VersionNumber   int32            `json:"version_number"`
	Document        content.Document `json:"document"`
	HTML            string           `json:"html"`
	ComplianceScore *int32           `json:"compliance_score,omitempty"`
	CreatedBy       *int64           `json:"created_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}
