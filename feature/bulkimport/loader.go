package bulkimport

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/harked/alfresco-bulk-import/core/repo"
	"github.com/harked/alfresco-bulk-import/core/storage"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new bulk import feature.
func NewFeature(store repo.Store, client storage.Client, bucket string, repoCfg repo.Config, sourceDir string, logger *zap.Logger) *Feature {
	svc := NewService(store, client, bucket, repoCfg, sourceDir, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service returns the underlying import service.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "bulkimport"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
