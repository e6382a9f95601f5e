package model

import "time"

type ProjectStatus string

const (
	ProjectStatusRequested  ProjectStatus = "requested"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusInReview   ProjectStatus = "in_review"
	ProjectStatusApproved   ProjectStatus = "approved"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusArchived   ProjectStatus = "archived"
)

// projectTransitions lists the allowed next statuses for each status.
// The workflow is linear; archived is terminal.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusRequested:  {ProjectStatusInProgress},
	ProjectStatusInProgress: {ProjectStatusInReview},
	ProjectStatusInReview:   {ProjectStatusApproved},
	ProjectStatusApproved:   {ProjectStatusCompleted},
	ProjectStatusCompleted:  {ProjectStatusArchived},
	ProjectStatusArchived:   {},
}

func (s ProjectStatus) IsValid() bool {
	_, ok := projectTransitions[s]
	return ok
}

// CanTransitionTo consults the transition table. It returns false for
// unknown statuses on either side.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Project struct {
	ID             int64         `json:"id"`
	OrganizationID int64         `json:"organization_id"`
	ClientID       int64         `json:"client_id"`
	OwnerUserID    *int64        `json:"owner_user_id,omitempty"`
	Title          string        `json:"title"`
	Brief          string        `json:"brief"`
	Status         ProjectStatus `json:"status"`
	DueAt          *time.Time    `json:"due_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	IsDeleted      bool          `json:"-"` // internal, not exposed in API
}
