package files

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahoneyreunion/reunion/internal/auth"
	"github.com/mahoneyreunion/reunion/internal/shared"
)

const (
	// MaxUploadBytes bounds a single shared-drive upload.
	MaxUploadBytes = 25 << 20
	// downloadURLTTL is how long a presigned download link stays valid.
	downloadURLTTL = 15 * time.Minute
)

// Service manages shared drive files: metadata rows in Postgres, bytes in
// object storage.
type Service struct {
	repo     Repository
	store    ObjectStore
	activity *shared.ActivityRecorder
	logger   *slog.Logger
}

func NewService(repo Repository, store ObjectStore, activity *shared.ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, store: store, activity: activity, logger: logger}
}

func (s *Service) List(ctx context.Context, filter ListFilesFilter, page shared.Pagination) ([]File, int, error) {
	return s.repo.List(ctx, filter, page)
}

// Upload streams the bytes into object storage, then records the metadata
// row. If the row insert fails the object is removed again so the bucket
// never holds orphans.
func (s *Service) Upload(ctx context.Context, actor *auth.Principal, name, contentType string, r io.Reader, size int64) (File, error) {
	if actor == nil {
		return File{}, shared.ErrUnauthenticated
	}
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return File{}, fmt.Errorf("%w: file name is required", shared.ErrValidation)
	}
	if size <= 0 || size > MaxUploadBytes {
		return File{}, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", shared.ErrValidation, MaxUploadBytes)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := uuid.NewString() + "/" + name
	if err := s.store.Put(ctx, key, contentType, r, size); err != nil {
		return File{}, err
	}

	file, err := s.repo.Create(ctx, File{
		Name:        name,
		ObjectKey:   key,
		ContentType: contentType,
		SizeBytes:   size,
		UploadedBy:  actor.ID,
	})
	if err != nil {
		if rmErr := s.store.Remove(ctx, key); rmErr != nil {
			s.logger.Error("orphaned object after failed insert", slog.String("key", key), slog.Any("error", rmErr))
		}
		return File{}, err
	}

	s.record(ctx, actor, "file.upload", file.ID, map[string]any{"name": file.Name, "size": file.SizeBytes})
	return file, nil
}

// DownloadURL returns a short-lived presigned link for the stored object.
func (s *Service) DownloadURL(ctx context.Context, id int64) (string, error) {
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignedGet(ctx, file.ObjectKey, file.Name, downloadURLTTL)
}

// Delete removes the metadata row first, then the object. A failed object
// removal is logged but not surfaced; the file is already gone for users.
func (s *Service) Delete(ctx context.Context, actor *auth.Principal, id int64) error {
	if actor == nil {
		return shared.ErrUnauthenticated
	}
	file, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, file.ObjectKey); err != nil {
		s.logger.Error("remove object", slog.String("key", file.ObjectKey), slog.Any("error", err))
	}
	s.record(ctx, actor, "file.delete", id, map[string]any{"name": file.Name})
	return nil
}

func (s *Service) record(ctx context.Context, actor *auth.Principal, action string, id int64, meta map[string]any) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, shared.ActivityEntry{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "file",
		EntityID: fmt.Sprintf("%d", id),
		Meta:     meta,
	}); err != nil {
		s.logger.Warn("record activity", slog.String("action", action), slog.Any("error", err))
	}
}
