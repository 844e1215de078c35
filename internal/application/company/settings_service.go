// Package company contains the company profile use cases.
package company

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/crmdesk/backend/internal/domain/company"
	"github.com/crmdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogoStorage stores uploaded logos. It is implemented by the S3 object storage.
type LogoStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	ObjectURL(storageKey string) string
}

var logoExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// SettingsService reads and writes the per-user company profile
type SettingsService struct {
	repo        company.SettingsRepository
	storage     LogoStorage
	maxLogoSize int64
	logger      *zap.Logger
}

// NewSettingsService creates a SettingsService. storage may be nil when object storage is disabled.
func NewSettingsService(repo company.SettingsRepository, storage LogoStorage, maxLogoSize int64, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:        repo,
		storage:     storage,
		maxLogoSize: maxLogoSize,
		logger:      logger,
	}
}

// Settings returns the stored settings or the defaults when none were saved
func (s *SettingsService) Settings(ctx context.Context, userID uuid.UUID) (*company.Settings, error) {
	settings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return company.DefaultSettings(userID), nil
		}
		return nil, err
	}
	return settings, nil
}

// Get returns the company settings of the user
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*SettingsResponse, error) {
	settings, err := s.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToSettingsResponse(settings)
	return &resp, nil
}

// Upsert creates or replaces the user's company settings
func (s *SettingsService) Upsert(ctx context.Context, userID uuid.UUID, req UpsertSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings.CompanyName = strings.TrimSpace(req.CompanyName)
	settings.Email = strings.TrimSpace(req.Email)
	settings.Phone = strings.TrimSpace(req.Phone)
	settings.Address = strings.TrimSpace(req.Address)
	settings.City = strings.TrimSpace(req.City)
	settings.State = strings.TrimSpace(req.State)
	settings.PostalCode = strings.TrimSpace(req.PostalCode)
	settings.LogoURL = strings.TrimSpace(req.LogoURL)
	settings.TaxID = strings.TrimSpace(req.TaxID)
	settings.GSTNumber = req.GSTNumber
	settings.CINNumber = strings.TrimSpace(req.CINNumber)
	settings.BrandColor = strings.TrimSpace(req.BrandColor)
	settings.ShowTaxID = req.ShowTaxID
	settings.ShowGSTNumber = req.ShowGSTNumber
	settings.ShowCINNumber = req.ShowCINNumber
	settings.InvoiceTemplate = company.InvoiceTemplate(req.InvoiceTemplate)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings.Touch()
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	resp := ToSettingsResponse(settings)
	return &resp, nil
}

// UploadLogo stores the image and points logo_url at it
func (s *SettingsService) UploadLogo(ctx context.Context, userID uuid.UUID, input UploadLogoInput) (*SettingsResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "File storage is not configured")
	}
	if len(input.Data) == 0 {
		return nil, shared.InvalidInput("Logo file is empty")
	}
	if s.maxLogoSize > 0 && int64(len(input.Data)) > s.maxLogoSize {
		return nil, shared.InvalidInput(fmt.Sprintf("Logo must be at most %d KB", s.maxLogoSize/1024))
	}
	ext, ok := logoExtensions[input.ContentType]
	if !ok {
		return nil, shared.InvalidInput("Logo must be a PNG, JPEG, GIF, WebP or SVG image")
	}

	settings, err := s.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := path.Join("logos", userID.String(), uuid.NewString()+ext)
	if err := s.storage.Upload(ctx, key, input.Data, input.ContentType); err != nil {
		s.logger.Error("Failed to upload logo", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	settings.LogoURL = s.storage.ObjectURL(key)
	settings.Touch()
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info("Company logo uploaded", zap.String("user_id", userID.String()), zap.String("key", key))
	resp := ToSettingsResponse(settings)
	return &resp, nil
}

// Templates lists the invoice templates in display order
func (s *SettingsService) Templates() []TemplateInfo {
	out := make([]TemplateInfo, 0, len(company.AllTemplates))
	for _, t := range company.AllTemplates {
		out = append(out, TemplateInfo{ID: string(t), Name: t.DisplayName()})
	}
	return out
}
