// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/utils"
)

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

const (
	FolderAlbumCovers = "covers"
	FolderBeatArtwork = "artwork"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type StorageService struct {
	s3Client s3iface.S3API
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// NewStorageService uploads to S3 when AWS credentials are configured and to the local uploads
// directory otherwise.
func NewStorageService(config *config.Config) (*StorageService, error) {
	if !config.AWS.S3Enabled() {
		return &StorageService{config: config}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// WithS3Client swaps the S3 client, e.g. for a stub in tests.
func (s *StorageService) WithS3Client(client s3iface.S3API) *StorageService {
	s.s3Client = client
	return s
}

func (s *StorageService) MaxUploadBytes() int64 {
	return int64(s.config.Storage.MaxUploadMB) * 1024 * 1024
}

// UploadImage stores an image under folder. The object name is the content hash, so uploading
// the same picture twice yields the same key.
func (s *StorageService) UploadImage(ctx context.Context, folder string, file io.Reader) (*UploadResult, error) {
	limit := s.MaxUploadBytes()
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, mtype.String())
	}

	key := s.objectKey(folder, data, mtype.Extension())
	if s.s3Client != nil {
		return s.uploadToS3(ctx, data, key, mtype.String())
	}
	return s.uploadToLocal(data, key, mtype.String())
}

func (s *StorageService) objectKey(folder string, data []byte, ext string) string {
	name := utils.HashBytes(data)[:32] + ext
	if folder != "" {
		return folder + "/" + name
	}
	return name
}

func (s *StorageService) uploadToS3(ctx context.Context, data []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(data []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.config.Storage.LocalPath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      strings.TrimSuffix(s.config.Storage.PublicBaseURL, "/") + "/" + key,
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

// DeleteFile removes a stored object. A missing local file is not an error.
func (s *StorageService) DeleteFile(ctx context.Context, key string) error {
	if s.s3Client == nil {
		path := filepath.Join(s.config.Storage.LocalPath, filepath.FromSlash(key))
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return nil
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// Discard deletes an upload whose database update failed.
func (s *StorageService) Discard(ctx context.Context, result *UploadResult) {
	if result == nil {
		return
	}
	if err := s.DeleteFile(ctx, result.Key); err != nil {
		logrus.WithError(err).WithField("key", result.Key).Warn("Failed to discard upload")
	}
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}
