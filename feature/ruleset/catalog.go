package ruleset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ruleset-combiner/core/database"
	"ruleset-combiner/core/entity"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoRuns is returned when the catalog holds no manifest yet.
var ErrNoRuns = errors.New("no combine runs recorded")

// ManifestEntry is one persisted manifest record.
type ManifestEntry struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	RunID      string    `gorm:"column:run_id;size:36;index"`
	Kind       string    `gorm:"column:kind;size:32"`
	SourceName string    `gorm:"column:source_name;size:255"`
	Name       string    `gorm:"column:name;size:255"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName implements gorm's tabler.
func (ManifestEntry) TableName() string {
	return "ruleset_manifest"
}

// catalogColumns are the columns Verify expects on the manifest table.
var catalogColumns = []string{"id", "run_id", "kind", "source_name", "name", "created_at"}

// Catalog persists the manifest of every combine run.
type Catalog struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCatalog creates a Catalog.
func NewCatalog(db *gorm.DB, logger *zap.Logger) *Catalog {
	return &Catalog{db: db, logger: logger}
}

// Migrate creates or updates the manifest table.
func (c *Catalog) Migrate(ctx context.Context) error {
	if err := c.db.WithContext(ctx).AutoMigrate(&ManifestEntry{}); err != nil {
		return fmt.Errorf("migrating manifest table: %w", err)
	}
	return nil
}

// Save stores a manifest under a run id.
func (c *Catalog) Save(ctx context.Context, runID string, m Manifest) error {
	if len(m) == 0 {
		return nil
	}
	now := time.Now()
	entries := make([]ManifestEntry, len(m))
	for i, r := range m {
		entries[i] = ManifestEntry{
			RunID:      runID,
			Kind:       string(r.Kind),
			SourceName: r.SourceName,
			Name:       r.Name,
			CreatedAt:  now,
		}
	}
	if err := c.db.WithContext(ctx).CreateInBatches(entries, 100).Error; err != nil {
		return fmt.Errorf("saving manifest of run %s: %w", runID, err)
	}
	c.logger.Info("Saved manifest", zap.String("run_id", runID), zap.Int("records", len(entries)))
	return nil
}

// LatestRunID returns the id of the most recently saved run.
func (c *Catalog) LatestRunID(ctx context.Context) (string, error) {
	var ids []string
	err := c.db.WithContext(ctx).
		Model(&ManifestEntry{}).
		Order("id DESC").
		Limit(1).
		Pluck("run_id", &ids).Error
	if err != nil {
		return "", fmt.Errorf("reading latest run: %w", err)
	}
	if len(ids) == 0 {
		return "", ErrNoRuns
	}
	return ids[0], nil
}

// Run returns the manifest saved under a run id.
func (c *Catalog) Run(ctx context.Context, runID string) (Manifest, error) {
	var entries []ManifestEntry
	err := c.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("reading run %s: %w", runID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRuns, runID)
	}

	m := make(Manifest, len(entries))
	for i, e := range entries {
		m[i] = ManifestRecord{Kind: entity.Kind(e.Kind), SourceName: e.SourceName, Name: e.Name}
	}
	return m, nil
}

// Verify returns the expected columns missing from the manifest table.
func (c *Catalog) Verify(ctx context.Context) ([]string, error) {
	columns, err := database.GetTableColumns(c.db.WithContext(ctx), ManifestEntry{}.TableName())
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col.Field] = true
	}

	var missing []string
	for _, col := range catalogColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing, nil
}
