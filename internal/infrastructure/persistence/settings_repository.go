package persistence

import (
	"context"

	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements company.SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByUser returns the settings row of userID
func (r *GormSettingsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*company.Settings, error) {
	var model models.CompanySettingsModel
	if err := r.db.WithContext(ctx).Scopes(OwnerScope(userID)).First(&model).Error; err != nil {
		return nil, translateError(err, "Company settings")
	}
	return model.ToDomain(), nil
}

// Save upserts the settings, keyed by user
func (r *GormSettingsRepository) Save(ctx context.Context, settings *company.Settings) error {
	model := models.CompanySettingsModelFromDomain(settings)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(model).Error
	return translateError(err, "Company settings")
}

var _ company.SettingsRepository = (*GormSettingsRepository)(nil)
