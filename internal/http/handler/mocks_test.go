package handler_test

import (
	"context"

	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/generate"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/service"
)

type mockOrganizationService struct {
	createFn func(ctx context.Context, name string, slug *string) (*model.Organization, error)
	getFn    func(ctx context.Context, id int64) (*model.Organization, error)
	updateFn func(ctx context.Context, id int64, name string, slug *string) (*model.Organization, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockOrganizationService) Create(ctx context.Context, name string, slug *string) (*model.Organization, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, slug)
	}
	return nil, nil
}

func (m *mockOrganizationService) Get(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOrganizationService) Update(ctx context.Context, id int64, name string, slug *string) (*model.Organization, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, name, slug)
	}
	return nil, nil
}

func (m *mockOrganizationService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockUserService struct {
	createFn             func(ctx context.Context, params service.CreateUserParams) (*model.User, error)
	getFn                func(ctx context.Context, id int64) (*model.User, error)
	updateFn             func(ctx context.Context, id int64, params service.UpdateUserParams) (*model.User, error)
	deleteFn             func(ctx context.Context, id int64) error
	listByOrganizationFn func(ctx context.Context, orgID int64) ([]model.User, error)
}

func (m *mockUserService) Create(ctx context.Context, params service.CreateUserParams) (*model.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) Update(ctx context.Context, id int64, params service.UpdateUserParams) (*model.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, params)
	}
	return nil, nil
}

func (m *mockUserService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserService) ListByOrganization(ctx context.Context, orgID int64) ([]model.User, error) {
	if m.listByOrganizationFn != nil {
		return m.listByOrganizationFn(ctx, orgID)
	}
	return nil, nil
}

type mockClientService struct {
	createFn             func(ctx context.Context, params service.CreateClientParams) (*model.Client, error)
	getFn                func(ctx context.Context, id int64) (*model.Client, error)
	updateFn             func(ctx context.Context, id int64, params service.UpdateClientParams) (*model.Client, error)
	deleteFn             func(ctx context.Context, id int64) error
	listByOrganizationFn func(ctx context.Context, orgID int64) ([]model.Client, error)
	complianceRulesFn    func(ctx context.Context, clientID int64) (compliance.RuleSet, error)
}

func (m *mockClientService) Create(ctx context.Context, params service.CreateClientParams) (*model.Client, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockClientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockClientService) Update(ctx context.Context, id int64, params service.UpdateClientParams) (*model.Client, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, params)
	}
	return nil, nil
}

func (m *mockClientService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockClientService) ListByOrganization(ctx context.Context, orgID int64) ([]model.Client, error) {
	if m.listByOrganizationFn != nil {
		return m.listByOrganizationFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockClientService) ComplianceRules(ctx context.Context, clientID int64) (compliance.RuleSet, error) {
	if m.complianceRulesFn != nil {
		return m.complianceRulesFn(ctx, clientID)
	}
	return compliance.RuleSet{}, nil
}

type mockProjectService struct {
	createFn             func(ctx context.Context, params service.CreateProjectParams) (*model.Project, error)
	getFn                func(ctx context.Context, id int64) (*model.Project, error)
	updateFn             func(ctx context.Context, id int64, params service.UpdateProjectParams) (*model.Project, error)
	deleteFn             func(ctx context.Context, id int64) error
	listByOrganizationFn func(ctx context.Context, orgID int64) ([]model.Project, error)
	listByClientFn       func(ctx context.Context, clientID int64) ([]model.Project, error)
	transitionFn         func(ctx context.Context, projectID int64, to model.ProjectStatus, actorID *int64) (*model.Project, error)
}

func (m *mockProjectService) Create(ctx context.Context, params service.CreateProjectParams) (*model.Project, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockProjectService) Update(ctx context.Context, id int64, params service.UpdateProjectParams) (*model.Project, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, params)
	}
	return nil, nil
}

func (m *mockProjectService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockProjectService) ListByOrganization(ctx context.Context, orgID int64) ([]model.Project, error) {
	if m.listByOrganizationFn != nil {
		return m.listByOrganizationFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockProjectService) ListByClient(ctx context.Context, clientID int64) ([]model.Project, error) {
	if m.listByClientFn != nil {
		return m.listByClientFn(ctx, clientID)
	}
	return nil, nil
}

func (m *mockProjectService) Transition(ctx context.Context, projectID int64, to model.ProjectStatus, actorID *int64) (*model.Project, error) {
	if m.transitionFn != nil {
		return m.transitionFn(ctx, projectID, to, actorID)
	}
	return nil, nil
}

type mockContentService struct {
	createItemFn     func(ctx context.Context, params service.CreateItemParams) (*model.ContentItem, error)
	getFn            func(ctx context.Context, id int64) (*model.ContentItem, error)
	getWithVersionFn func(ctx context.Context, id int64) (*model.ContentItem, *model.ContentVersion, error)
	listByProjectFn  func(ctx context.Context, projectID int64) ([]model.ContentItem, error)
	saveVersionFn    func(ctx context.Context, params service.SaveVersionParams) (*model.ContentVersion, error)
	listVersionsFn   func(ctx context.Context, itemID int64) ([]model.ContentVersion, error)
	getVersionFn     func(ctx context.Context, versionID int64) (*model.ContentVersion, error)
	submitFn         func(ctx context.Context, itemID int64, actorID *int64) (*model.ContentItem, error)
	reviewFn         func(ctx context.Context, params service.ReviewParams) (*model.ContentItem, error)
}

func (m *mockContentService) CreateItem(ctx context.Context, params service.CreateItemParams) (*model.ContentItem, error) {
	if m.createItemFn != nil {
		return m.createItemFn(ctx, params)
	}
	return nil, nil
}

func (m *mockContentService) Get(ctx context.Context, id int64) (*model.ContentItem, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockContentService) GetWithVersion(ctx context.Context, id int64) (*model.ContentItem, *model.ContentVersion, error) {
	if m.getWithVersionFn != nil {
		return m.getWithVersionFn(ctx, id)
	}
	return nil, nil, nil
}

func (m *mockContentService) ListByProject(ctx context.Context, projectID int64) ([]model.ContentItem, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockContentService) SaveVersion(ctx context.Context, params service.SaveVersionParams) (*model.ContentVersion, error) {
	if m.saveVersionFn != nil {
		return m.saveVersionFn(ctx, params)
	}
	return nil, nil
}

func (m *mockContentService) ListVersions(ctx context.Context, itemID int64) ([]model.ContentVersion, error) {
	if m.listVersionsFn != nil {
		return m.listVersionsFn(ctx, itemID)
	}
	return nil, nil
}

func (m *mockContentService) GetVersion(ctx context.Context, versionID int64) (*model.ContentVersion, error) {
	if m.getVersionFn != nil {
		return m.getVersionFn(ctx, versionID)
	}
	return nil, nil
}

func (m *mockContentService) Submit(ctx context.Context, itemID int64, actorID *int64) (*model.ContentItem, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, itemID, actorID)
	}
	return nil, nil
}

func (m *mockContentService) Review(ctx context.Context, params service.ReviewParams) (*model.ContentItem, error) {
	if m.reviewFn != nil {
		return m.reviewFn(ctx, params)
	}
	return nil, nil
}

type mockCommentService struct {
	createFn  func(ctx context.Context, itemID, authorID int64, body string) (*model.Comment, error)
	listFn    func(ctx context.Context, itemID int64) ([]model.Comment, error)
	resolveFn func(ctx context.Context, commentID, resolvedBy int64) (*model.Comment, error)
}

func (m *mockCommentService) Create(ctx context.Context, itemID, authorID int64, body string) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, itemID, authorID, body)
	}
	return nil, nil
}

func (m *mockCommentService) List(ctx context.Context, itemID int64) ([]model.Comment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, itemID)
	}
	return nil, nil
}

func (m *mockCommentService) Resolve(ctx context.Context, commentID, resolvedBy int64) (*model.Comment, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, commentID, resolvedBy)
	}
	return nil, nil
}

type mockSuggestionService struct {
	createFn  func(ctx context.Context, params service.CreateSuggestionParams) (*model.ClientSuggestion, error)
	listFn    func(ctx context.Context, itemID int64, status *model.SuggestionStatus) ([]model.ClientSuggestion, error)
	resolveFn func(ctx context.Context, suggestionID int64, status model.SuggestionStatus, resolvedBy int64) (*model.ClientSuggestion, error)
}

func (m *mockSuggestionService) Create(ctx context.Context, params service.CreateSuggestionParams) (*model.ClientSuggestion, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockSuggestionService) List(ctx context.Context, itemID int64, status *model.SuggestionStatus) ([]model.ClientSuggestion, error) {
	if m.listFn != nil {
		return m.listFn(ctx, itemID, status)
	}
	return nil, nil
}

func (m *mockSuggestionService) Resolve(ctx context.Context, suggestionID int64, status model.SuggestionStatus, resolvedBy int64) (*model.ClientSuggestion, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, suggestionID, status, resolvedBy)
	}
	return nil, nil
}

type mockNotificationService struct {
	createFn      func(ctx context.Context, notification *model.Notification) error
	listByUserFn  func(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	markReadFn    func(ctx context.Context, notificationID int64) (*model.Notification, error)
	markAllReadFn func(ctx context.Context, userID int64) error
	countUnreadFn func(ctx context.Context, userID int64) (int64, error)
	fanoutEventFn func(ctx context.Context, params service.FanoutParams) (int, error)
}

func (m *mockNotificationService) Create(ctx context.Context, notification *model.Notification) error {
	if m.createFn != nil {
		return m.createFn(ctx, notification)
	}
	return nil
}

func (m *mockNotificationService) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, unreadOnly, limit)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, notificationID int64) (*model.Notification, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, notificationID)
	}
	return nil, nil
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID)
	}
	return nil
}

func (m *mockNotificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationService) FanoutEvent(ctx context.Context, params service.FanoutParams) (int, error) {
	if m.fanoutEventFn != nil {
		return m.fanoutEventFn(ctx, params)
	}
	return 0, nil
}

type mockFileService struct {
	registerFn          func(ctx context.Context, params service.RegisterFileParams) (*model.File, error)
	getFn               func(ctx context.Context, id int64) (*model.File, error)
	listByProjectFn     func(ctx context.Context, projectID int64) ([]model.File, error)
	listByContentItemFn func(ctx context.Context, itemID int64) ([]model.File, error)
	deleteFn            func(ctx context.Context, id int64) error
}

func (m *mockFileService) Register(ctx context.Context, params service.RegisterFileParams) (*model.File, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, params)
	}
	return nil, nil
}

func (m *mockFileService) Get(ctx context.Context, id int64) (*model.File, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockFileService) ListByProject(ctx context.Context, projectID int64) ([]model.File, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockFileService) ListByContentItem(ctx context.Context, itemID int64) ([]model.File, error) {
	if m.listByContentItemFn != nil {
		return m.listByContentItemFn(ctx, itemID)
	}
	return nil, nil
}

func (m *mockFileService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockGenerateService struct {
	generateVariantsFn func(ctx context.Context, req generate.VariantRequest) (*generate.VariantResult, error)
	enhanceTitleFn     func(ctx context.Context, req generate.TitleRequest) (*generate.TitleResult, error)
}

func (m *mockGenerateService) GenerateVariants(ctx context.Context, req generate.VariantRequest) (*generate.VariantResult, error) {
	if m.generateVariantsFn != nil {
		return m.generateVariantsFn(ctx, req)
	}
	return nil, nil
}

func (m *mockGenerateService) EnhanceTitle(ctx context.Context, req generate.TitleRequest) (*generate.TitleResult, error) {
	if m.enhanceTitleFn != nil {
		return m.enhanceTitleFn(ctx, req)
	}
	return nil, nil
}
