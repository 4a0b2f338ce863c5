package services

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/flusk-cnc/flusk-admin-api/utils"
)

// PreviewService handles line-item preview drawings: upload, URL resolution,
// and deletion. Previews are the SVG renderings of the customer's part shown
// in the order detail panel.
type PreviewService interface {
	// UploadPreview validates and stores a preview SVG, returns the storage key
	UploadPreview(fileHeader *multipart.FileHeader) (string, error)

	// GetPreviewURL resolves a storage key to a URL the dashboard can load
	GetPreviewURL(previewKey string) (string, error)

	// DeletePreview removes a preview from storage
	DeletePreview(previewKey string) error
}

// S3PreviewService implements PreviewService using AWS S3 for storage
type S3PreviewService struct {
	s3Service S3Interface
}

// StaticPreviewService implements PreviewService against the local
// filesystem, resolving keys as relative paths under a fixed asset base URL.
// Used when no S3 bucket is configured.
type StaticPreviewService struct {
	baseURL   string
	uploadDir string
}

var previewServiceInstance PreviewService

// InitPreviewService wires the preview service to S3 when a bucket is
// configured, otherwise to the static asset directory.
func InitPreviewService(cfg *config.Config) (PreviewService, error) {
	if cfg.UseS3Previews() {
		s3Service, err := InitS3Service()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 for previews: %w", err)
		}
		previewServiceInstance = &S3PreviewService{s3Service: s3Service}
		return previewServiceInstance, nil
	}

	previewServiceInstance = &StaticPreviewService{
		baseURL:   cfg.AssetBaseURL,
		uploadDir: utils.UploadDir,
	}
	return previewServiceInstance, nil
}

// GetPreviewService returns the initialized preview service instance
func GetPreviewService() PreviewService {
	return previewServiceInstance
}

// SetPreviewService sets the preview service instance (primarily for testing)
func SetPreviewService(service PreviewService) {
	previewServiceInstance = service
}

// UploadPreview validates and uploads a preview SVG to S3
func (s *S3PreviewService) UploadPreview(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidatePreviewFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader)
	if err != nil {
		return "", fmt.Errorf("failed to upload preview: %w", err)
	}

	return s3Key, nil
}

// GetPreviewURL generates a presigned URL for accessing a preview
func (s *S3PreviewService) GetPreviewURL(previewKey string) (string, error) {
	if previewKey == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(previewKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate preview URL: %w", err)
	}

	return url, nil
}

// DeletePreview deletes a preview from S3
func (s *S3PreviewService) DeletePreview(previewKey string) error {
	if previewKey == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(previewKey); err != nil {
		return fmt.Errorf("failed to delete preview: %w", err)
	}

	return nil
}

// UploadPreview validates and saves a preview SVG to the local upload directory
func (s *StaticPreviewService) UploadPreview(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidatePreviewFile(fileHeader); err != nil {
		return "", err
	}

	filename, err := utils.SaveUploadedFile(fileHeader, s.uploadDir)
	if err != nil {
		return "", fmt.Errorf("failed to save preview: %w", err)
	}

	return filename, nil
}

// GetPreviewURL joins the preview key onto the fixed asset base URL
func (s *StaticPreviewService) GetPreviewURL(previewKey string) (string, error) {
	if previewKey == "" {
		return "", nil
	}

	base := strings.TrimSuffix(s.baseURL, "/")
	key := strings.TrimPrefix(previewKey, "/")
	return fmt.Sprintf("%s/%s", base, key), nil
}

// DeletePreview removes a preview from the local upload directory
func (s *StaticPreviewService) DeletePreview(previewKey string) error {
	if previewKey == "" {
		return nil
	}
	return utils.DeleteUploadedFile(previewKey, s.uploadDir)
}
