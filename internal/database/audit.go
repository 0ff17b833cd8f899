package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"erp-console/internal/models"
)

// Auditor records console actions. Record never fails the caller.
type Auditor interface {
	Record(ctx context.Context, entry models.AuditLog)
	Recent(ctx context.Context, limit int) ([]models.AuditLog, error)
	Enabled() bool
}

type AuditRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewAuditRepository(db *gorm.DB, log zerolog.Logger) *AuditRepository {
	return &AuditRepository{db: db, log: log}
}

func (r *AuditRepository) Enabled() bool { return true }

func (r *AuditRepository) Record(ctx context.Context, entry models.AuditLog) {
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		r.log.Warn().Err(err).
			Str("entity", entry.Entity).
			Str("action", entry.Action).
			Msg("audit record dropped")
	}
}

// Recent returns the newest entries first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 10
	}
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("load audit log: %w", err)
	}
	return logs, nil
}

// NopAuditor is used when no database is configured.
type NopAuditor struct{}

func (NopAuditor) Record(context.Context, models.AuditLog) {}

func (NopAuditor) Recent(context.Context, int) ([]models.AuditLog, error) { return nil, nil }

func (NopAuditor) Enabled() bool { return false }
