package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/store"
)

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrFileUnattached = errors.New("file must attach to a project or a content item")
)

type RegisterFileParams struct {
	ProjectID     *int64
	ContentItemID *int64
	Name          string
	ContentType   string
	SizeBytes     int64
	StorageKey    string
	UploadedBy    *int64
}

// FileService tracks metadata for objects that already live in blob
// storage; upload and download bytes never pass through this API.
type FileService interface {
	Register(ctx context.Context, params RegisterFileParams) (*model.File, error)
	Get(ctx context.Context, id int64) (*model.File, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.File, error)
	ListByContentItem(ctx context.Context, itemID int64) ([]model.File, error)
	Delete(ctx context.Context, id int64) error
}

type fileService struct {
	fileStore    store.FileStore
	projectStore store.ProjectStore
	itemStore    store.ContentItemStore
}

func NewFileService(fileStore store.FileStore, projectStore store.ProjectStore, itemStore store.ContentItemStore) FileService {
	return &fileService{
		fileStore:    fileStore,
		projectStore: projectStore,
		itemStore:    itemStore,
	}
}

func (s *fileService) Register(ctx context.Context, params RegisterFileParams) (*model.File, error) {
	if params.ProjectID == nil && params.ContentItemID == nil {
		return nil, ErrFileUnattached
	}

	var orgID int64
	projectID := params.ProjectID

	if params.ContentItemID != nil {
		item, err := s.itemStore.GetByID(ctx, *params.ContentItemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrContentNotFound
			}
			return nil, fmt.Errorf("getting content item: %w", err)
		}
		orgID = item.OrganizationID
		projectID = &item.ProjectID
	} else {
		project, err := s.projectStore.GetByID(ctx, *params.ProjectID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("getting project: %w", err)
		}
		orgID = project.OrganizationID
	}

	file := &model.File{
		ID:             id.New(),
		OrganizationID: orgID,
		ProjectID:      projectID,
		ContentItemID:  params.ContentItemID,
		Name:           params.Name,
		ContentType:    params.ContentType,
		SizeBytes:      params.SizeBytes,
		StorageKey:     params.StorageKey,
		UploadedBy:     params.UploadedBy,
	}

	if err := s.fileStore.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("registering file: %w", err)
	}

	slog.InfoContext(ctx, "file registered",
		"file_id", file.ID,
		"name", file.Name,
		"size_bytes", file.SizeBytes,
	)
	return file, nil
}

func (s *fileService) Get(ctx context.Context, id int64) (*model.File, error) {
	file, err := s.fileStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("getting file: %w", err)
	}
	return file, nil
}

func (s *fileService) ListByProject(ctx context.Context, projectID int64) ([]model.File, error) {
	return s.fileStore.ListByProject(ctx, projectID)
}

func (s *fileService) ListByContentItem(ctx context.Context, itemID int64) ([]model.File, error) {
	return s.fileStore.ListByContentItem(ctx, itemID)
}

func (s *fileService) Delete(ctx context.Context, id int64) error {
	if err := s.fileStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("deleting file: %w", err)
	}
	slog.InfoContext(ctx, "file deleted", "file_id", id)
	return nil
}
