package service

import (
	"inkwire.app/newsroom/internal/mailer"
	"inkwire.app/newsroom/internal/queue"
	"inkwire.app/newsroom/internal/store"
)

type ServicesConfig struct {
	Stores          *store.Stores
	TxRunner        TxRunner
	Producer        queue.Producer
	Debouncer       queue.Debouncer
	Mailer          *mailer.Mailer
	DashboardURL    string
	ClientPortalURL string
}

// Services constructs service instances over shared infrastructure.
// Construction is cheap; accessors build a fresh service per call.
type Services struct {
	cfg ServicesConfig
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{cfg: cfg}
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.cfg.Stores.Organizations())
}

func (s *Services) Users() UserService {
	return NewUserService(s.cfg.Stores.Users(), s.cfg.Stores.Organizations(), s.cfg.Stores.Clients())
}

func (s *Services) Clients() ClientService {
	return NewClientService(s.cfg.Stores.Clients(), s.cfg.Stores.Organizations())
}

func (s *Services) Projects() ProjectService {
	return NewProjectService(s.cfg.Stores.Projects(), s.cfg.Stores.Clients(), s.cfg.Stores.Users(), s.cfg.Producer)
}

func (s *Services) Content() ContentService {
	return NewContentService(s.cfg.Stores, s.cfg.TxRunner, s.cfg.Producer, s.cfg.Debouncer, nil)
}

func (s *Services) Comments() CommentService {
	return NewCommentService(s.cfg.Stores.Comments(), s.cfg.Stores.ContentItems(), s.cfg.Stores.Users(), s.cfg.Producer)
}

func (s *Services) Suggestions() SuggestionService {
	return NewSuggestionService(s.cfg.Stores.Suggestions(), s.cfg.Stores.ContentItems(), s.cfg.Stores.Users(), s.cfg.Producer)
}

func (s *Services) Notifications() NotificationService {
	return NewNotificationService(s.cfg.Stores, s.cfg.TxRunner, s.cfg.Mailer, s.cfg.DashboardURL, s.cfg.ClientPortalURL, nil)
}

func (s *Services) Files() FileService {
	return NewFileService(s.cfg.Stores.Files(), s.cfg.Stores.Projects(), s.cfg.Stores.ContentItems())
}
