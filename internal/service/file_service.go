package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shoppinh/jp-order-BE/internal/domain"
)

const (
	maxUploadSize  = 5 * 1024 * 1024 // 5 MB
	maxUploadCount = 10
	imagePrefix    = "images"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// FileStore is the slice of the file repository the service needs.
type FileStore interface {
	Create(ctx context.Context, file *domain.File, actorID uint) error
	FindByID(ctx context.Context, id uint) (*domain.File, error)
	FindExpired(ctx context.Context, now time.Time) ([]domain.File, error)
	RemoveExpiry(ctx context.Context, ids []uint, actorID uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Upload is one file in an upload request.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// FileService stores uploaded objects and their database records. A fresh
// upload expires at the end of the day unless it is claimed; the cleanup job
// removes unclaimed objects and records.
type FileService struct {
	files   FileStore
	storage ObjectStorage
	logger  *slog.Logger
	now     func() time.Time
}

func NewFileService(files FileStore, storage ObjectStorage, logger *slog.Logger) *FileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileService{files: files, storage: storage, logger: logger, now: time.Now}
}

// UploadImages validates and stores a batch of image uploads. The whole
// batch is rejected up front if any file is oversized or not an image;
// partial storage failures surface after the earlier files were stored.
func (s *FileService) UploadImages(ctx context.Context, uploads []Upload, actorID uint) ([]domain.File, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no files given", ErrValidation)
	}
	if len(uploads) > maxUploadCount {
		return nil, fmt.Errorf("%w: at most %d files per upload", ErrValidation, maxUploadCount)
	}
	for _, u := range uploads {
		if u.Size > maxUploadSize {
			return nil, fmt.Errorf("%w: %s", ErrFileTooBig, u.Name)
		}
		if _, ok := allowedImageTypes[normalizeContentType(u.ContentType)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, u.Name)
		}
	}

	expiry := endOfDay(s.now())
	out := make([]domain.File, 0, len(uploads))
	for _, u := range uploads {
		contentType := normalizeContentType(u.ContentType)
		name := uuid.New().String() + allowedImageTypes[contentType]
		objectKey := imagePrefix + "/" + name

		if err := s.storage.Put(ctx, objectKey, u.Content, u.Size, contentType); err != nil {
			return out, err
		}

		record := domain.File{
			OriginalName: u.Name,
			Name:         name,
			Path:         objectKey,
			Type:         domain.FileTypeImage,
			ExpiredDate:  &expiry,
		}
		if err := s.files.Create(ctx, &record, actorID); err != nil {
			return out, err
		}
		out = append(out, record)
	}
	return out, nil
}

// Claim clears the expiry on files that are now referenced by another
// entity, exempting them from cleanup.
func (s *FileService) Claim(ctx context.Context, ids []uint, actorID uint) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no file ids given", ErrValidation)
	}
	return s.files.RemoveExpiry(ctx, ids, actorID)
}

// URL returns a short-lived link to a stored file.
func (s *FileService) URL(ctx context.Context, id uint) (string, error) {
	record, err := s.files.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.PresignedURL(ctx, record.Path)
}

// CleanupExpired removes the objects and records of unclaimed uploads. Object
// removal is best effort: a failed removal is logged and the record is
// deleted anyway so the job never wedges on one broken object.
func (s *FileService) CleanupExpired(ctx context.Context) (int64, error) {
	now := s.now()
	expired, err := s.files.FindExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	for _, record := range expired {
		if err := s.storage.Remove(ctx, record.Path); err != nil {
			s.logger.WarnContext(ctx, "expired object removal failed",
				slog.Uint64("file_id", uint64(record.ID)),
				slog.String("path", record.Path),
				slog.String("error", err.Error()))
		}
	}
	return s.files.DeleteExpired(ctx, now)
}

func normalizeContentType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(contentType))
}

// endOfDay returns the last instant of the day the upload happened, in the
// upload's local time.
func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 0, t.Location())
}
