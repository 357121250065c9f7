package ruleset

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the ruleset feature. db may be nil, in which case manifests are not persisted.
func NewFeature(cfg Config, reader SourceReader, opts AssemblerOptions, logger *zap.Logger, db *gorm.DB) *Feature {
	var catalog *Catalog
	if db != nil {
		catalog = NewCatalog(db, logger)
	}
	svc := NewService(NewBuilder(cfg, reader, opts, logger), catalog, logger)
	return &Feature{service: svc, handler: NewHandler(svc, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "ruleset"
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

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
