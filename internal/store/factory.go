package store

import (
	"inkwire.app/newsroom/core/db"
)

// Stores is cheap to construct, so transactional code builds a fresh
// one over the transaction's Querier.
type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.q)
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.q)
}

func (s *Stores) Clients() ClientStore {
	return newClientStore(s.q)
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.q)
}

func (s *Stores) ContentItems() ContentItemStore {
	return newContentItemStore(s.q)
}

func (s *Stores) ContentVersions() ContentVersionStore {
	return newContentVersionStore(s.q)
}

func (s *Stores) Comments() CommentStore {
	return newCommentStore(s.q)
}

func (s *Stores) Suggestions() SuggestionStore {
	return newSuggestionStore(s.q)
}

func (s *Stores) Notifications() NotificationStore {
	return newNotificationStore(s.q)
}

func (s *Stores) Files() FileStore {
	return newFileStore(s.q)
}
