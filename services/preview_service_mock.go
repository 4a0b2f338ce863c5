package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/flusk-cnc/flusk-admin-api/utils"
)

// MockPreviewService is a mock implementation of PreviewService for testing
type MockPreviewService struct {
	previews map[string]bool // set of stored preview keys
	mu       sync.RWMutex

	// FailUpload forces UploadPreview to return an error
	FailUpload bool
}

// NewMockPreviewService creates a new mock preview service
func NewMockPreviewService() *MockPreviewService {
	return &MockPreviewService{
		previews: make(map[string]bool),
	}
}

// SetAsMockForTesting sets this mock as the global preview service instance
func (m *MockPreviewService) SetAsMockForTesting() {
	SetPreviewService(m)
}

// UploadPreview simulates validating and storing a preview SVG
func (m *MockPreviewService) UploadPreview(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidatePreviewFile(fileHeader); err != nil {
		return "", err
	}

	if m.FailUpload {
		return "", fmt.Errorf("mock upload failure")
	}

	key := fmt.Sprintf("previews/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.previews[key] = true
	m.mu.Unlock()

	return key, nil
}

// GetPreviewURL simulates resolving a preview key to a URL
func (m *MockPreviewService) GetPreviewURL(previewKey string) (string, error) {
	if previewKey == "" {
		return "", nil
	}
	return fmt.Sprintf("https://mock-assets.example.com/%s", previewKey), nil
}

// DeletePreview simulates removing a preview
func (m *MockPreviewService) DeletePreview(previewKey string) error {
	m.mu.Lock()
	delete(m.previews, previewKey)
	m.mu.Unlock()
	return nil
}

// HasPreview reports whether a preview key is in mock storage
func (m *MockPreviewService) HasPreview(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previews[key]
}
