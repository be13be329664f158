// internal/services/audit_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/models"
	"github.com/musichub/musichub-backend/internal/utils"
)

type AuditService struct {
	db *gorm.DB
}

type AuditFilter struct {
	UserID       *uuid.UUID
	ResourceType string
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// List pages through audit rows, newest first unless params ask otherwise.
func (s *AuditService) List(ctx context.Context, filter AuditFilter, params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	query = utils.ApplySort(query, params, []string{"created_at", "status"}, "created_at")
	if err := utils.ApplyPagination(query, params).Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, total, nil
}
