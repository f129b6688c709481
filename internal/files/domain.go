package files

import "time"

// File is the metadata row for an object stored in the shared drive bucket.
// The bytes themselves live in object storage under ObjectKey.
type File struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  int64     `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListFilesFilter struct {
	Search string
}
