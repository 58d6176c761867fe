package repository

import (
	"github.com/Innie12/Inventory-Management-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditFilter narrows the audit log listing.
type AuditFilter struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
	Page       int
	PerPage    int
}

type AuditRepository interface {
	Create(entry *model.AuditLog) error
	List(filter AuditFilter) ([]model.AuditLog, int64, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditRepo) List(filter AuditFilter) ([]model.AuditLog, int64, error) {
	q := r.db.Model(&model.AuditLog{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.AuditLog
	err := q.Order("created_at DESC").
		Limit(filter.PerPage).Offset((filter.Page - 1) * filter.PerPage).
		Find(&entries).Error
	return entries, total, err
}
