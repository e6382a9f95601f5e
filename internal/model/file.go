package model

import "time"

// File is upload metadata only. The bytes live in object storage under
// StorageKey; this service never reads them.
type File struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	ProjectID      *int64    `json:"project_id,omitempty"`
	ContentItemID  *int64    `json:"content_item_id,omitempty"`
	Name           string    `json:"name"`
	ContentType    string    `json:"content_type"`
	SizeBytes      int64     `json:"size_bytes"`
	StorageKey     string    `json:"storage_key"`
	UploadedBy     *int64    `json:"uploaded_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
