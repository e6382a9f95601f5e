package model

import "time"

type ContentKind string

const (
	ContentKindPressRelease  ContentKind = "press_release"
	ContentKindSocialPost    ContentKind = "social_post"
	ContentKindBlogPost      ContentKind = "blog_post"
	ContentKindEmailCampaign ContentKind = "email_campaign"
)

func (k ContentKind) IsValid() bool {
	switch k {
	case ContentKindPressRelease, ContentKindSocialPost, ContentKindBlogPost, ContentKindEmailCampaign:
		return true
	}
	return false
}

type ContentStatus string

const (
	ContentStatusDraft        ContentStatus = "draft"
	ContentStatusInReview     ContentStatus = "in_review"
	ContentStatusNeedsChanges ContentStatus = "needs_changes"
	ContentStatusApproved     ContentStatus = "approved"
)

// contentTransitions lists the allowed next statuses for each status.
// Review can bounce between in_review and needs_changes; approved is
// terminal.
var contentTransitions = map[ContentStatus][]ContentStatus{
	ContentStatusDraft:        {ContentStatusInReview},
	ContentStatusInReview:     {ContentStatusNeedsChanges, ContentStatusApproved},
	ContentStatusNeedsChanges: {ContentStatusInReview},
	ContentStatusApproved:     {},
}

func (s ContentStatus) IsValid() bool {
	_, ok := contentTransitions[s]
	return ok
}

func (s ContentStatus) CanTransitionTo(next ContentStatus) bool {
	for _, allowed := range contentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ContentItem is the container a document lives in. The actual text is
// stored as immutable ContentVersion rows; CurrentVersionID and
// ComplianceScore are denormalized from the latest one.
type ContentItem struct {
	ID               int64         `json:"id"`
	OrganizationID   int64         `json:"organization_id"`
	ProjectID        int64         `json:"project_id"`
	Title            string        `json:"title"`
	Kind             ContentKind   `json:"kind"`
	Status           ContentStatus `json:"status"`
	CurrentVersionID *int64        `json:"current_version_id,omitempty"`
	ComplianceScore  *int32        `json:"compliance_score,omitempty"`
	CreatedBy        *int64        `json:"created_by,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	IsDeleted        bool          `json:"-"` // internal, not exposed in API
}
