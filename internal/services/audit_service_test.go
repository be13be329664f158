// internal/services/audit_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
	"github.com/musichub/musichub-backend/internal/testutil"
	"github.com/musichub/musichub-backend/internal/utils"
)

func TestAuditList(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewAuditService(db)

	manager := testutil.CreateUser(t, db, domain.RoleLabelManager)
	rows := []models.AuditLog{
		{UserID: &manager.ID, Action: "POST /v1/contracts", ResourceType: "contracts", Status: 201},
		{UserID: &manager.ID, Action: "PUT /v1/contracts/:id", ResourceType: "contracts", Status: 200},
		{Action: "POST /v1/auth/login", ResourceType: "auth", Status: 401},
	}
	require.NoError(t, db.Create(&rows).Error)

	params := utils.PaginationParams{Page: 1, Limit: 2, Sort: "created_at", Order: "desc"}

	all, total, err := svc.List(ctx, AuditFilter{}, params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 2)

	mine, total, err := svc.List(ctx, AuditFilter{UserID: &manager.ID}, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, row := range mine {
		assert.Equal(t, manager.ID, *row.UserID)
	}

	auth, total, err := svc.List(ctx, AuditFilter{ResourceType: "auth"}, params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, auth, 1)
	assert.Equal(t, 401, auth[0].Status)
}
