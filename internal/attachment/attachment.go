// Package attachment uploads and removes the files attached to transactions.
package attachment

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/rs/zerolog"
)

// FileStore is the metadata side of attachments.
type FileStore interface {
	CreateAttachment(ctx context.Context, a model.Attachment) error
	ListAttachments(ctx context.Context, txID string) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, path string) error
	DeleteAttachments(ctx context.Context, txID string) error
}

// Asset is a file picked by the user.
type Asset struct {
	Path     string
	Name     string
	MimeType string
}

// AssetFromPath builds an Asset for a local file, naming it after the file.
func AssetFromPath(path string) Asset {
	return Asset{Path: path, Name: filepath.Base(path)}
}

type Service struct {
	files  FileStore
	bucket Bucket
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(files FileStore, bucket Bucket, log zerolog.Logger) *Service {
	return &Service{files: files, bucket: bucket, log: log, now: time.Now}
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]`)

func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(strings.ToLower(name), "_")
}

func extFromContentType(ct string) string {
	switch ct {
	case constants.ContentTypePDF:
		return "pdf"
	case constants.ContentTypePNG:
		return "png"
	default:
		return "bin"
	}
}

// ContentType trusts a known mime type first, then the file extension.
func ContentType(a Asset) string {
	mime := strings.ToLower(a.MimeType)
	if mime == constants.ContentTypePDF || mime == constants.ContentTypePNG {
		return mime
	}
	name := strings.ToLower(a.Name)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return constants.ContentTypePDF
	case strings.HasSuffix(name, ".png"):
		return constants.ContentTypePNG
	default:
		return constants.ContentTypeOther
	}
}

// FilenameFromPath returns the last segment of an object path.
func FilenameFromPath(path string) string {
	parts := strings.Split(path, "/")
	if last := parts[len(parts)-1]; last != "" {
		return last
	}
	return path
}

// ObjectPath is <owner>/<transaction>/<unix ms>-<sanitized name>.
func ObjectPath(ownerID, txID, name string, at time.Time) string {
	return fmt.Sprintf("%s/%s/%d-%s", ownerID, txID, at.UnixMilli(), SanitizeFilename(name))
}

// Upload stores the asset and records it. If the record can't be written the
// uploaded object is removed again.
func (s *Service) Upload(ctx context.Context, ownerID, txID string, asset Asset) (model.Attachment, error) {
	f, err := os.Open(asset.Path)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return s.UploadReader(ctx, ownerID, txID, asset, f)
}

func (s *Service) UploadReader(ctx context.Context, ownerID, txID string, asset Asset, r io.Reader) (model.Attachment, error) {
	contentType := ContentType(asset)
	original := asset.Name
	if original == "" {
		original = "file." + extFromContentType(contentType)
	}

	now := s.now()
	a := model.Attachment{
		Path:          ObjectPath(ownerID, txID, original, now),
		TransactionID: txID,
		OwnerID:       ownerID,
		ContentType:   contentType,
		CreatedAt:     now,
	}

	if err := s.bucket.Upload(ctx, a.Path, contentType, r); err != nil {
		return model.Attachment{}, fmt.Errorf("failed to upload file: %w", err)
	}

	if err := s.files.CreateAttachment(ctx, a); err != nil {
		if rmErr := s.bucket.Remove(ctx, a.Path); rmErr != nil {
			s.log.Error().Err(rmErr).Str("path", a.Path).Msg("failed to remove orphaned upload")
		}
		return model.Attachment{}, err
	}

	s.log.Info().Str("transaction_id", txID).Str("path", a.Path).Msg("attachment uploaded")
	return a, nil
}

func (s *Service) List(ctx context.Context, txID string) ([]model.Attachment, error) {
	return s.files.ListAttachments(ctx, txID)
}

func (s *Service) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.bucket.Open(ctx, path)
}

// Delete removes one file of a transaction.
func (s *Service) Delete(ctx context.Context, txID, path string) error {
	files, err := s.files.ListAttachments(ctx, txID)
	if err != nil {
		return err
	}
	found := false
	for _, f := range files {
		if f.Path == path {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("file '%s' is not attached to transaction %s", FilenameFromPath(path), txID)
	}

	if err := s.bucket.Remove(ctx, path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return s.files.DeleteAttachment(ctx, path)
}

// DeleteAll removes every file of a transaction.
func (s *Service) DeleteAll(ctx context.Context, txID string) error {
	files, err := s.files.ListAttachments(ctx, txID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	if err := s.bucket.Remove(ctx, paths...); err != nil {
		return fmt.Errorf("failed to remove files: %w", err)
	}
	return s.files.DeleteAttachments(ctx, txID)
}
