package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/models"
	"assetledger/internal/pagination"
)

// ActivityPageSize is the default page size of the activity list.
const ActivityPageSize = 20

// activityService appends to and reads the activity log.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityRecorder.
func NewActivityService(db *gorm.DB) ActivityRecorder {
	return &activityService{db: db}
}

// Record appends one entry on tx. Any storage error is returned so the
// caller's transaction rolls back together with the mutation.
func (s *activityService) Record(ctx context.Context, tx *gorm.DB, entry ActivityEntry) (*models.ActivityLog, error) {
	switch entry.Action {
	case models.ActionCreate, models.ActionUpdate, models.ActionDelete:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown activity action")
	}
	if entry.UserID == "" || entry.AssetName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "activity entry needs a user and an asset name")
	}

	var changes datatypes.JSON
	if len(entry.Changes) > 0 {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		changes = datatypes.JSON(data)
	}

	log := &models.ActivityLog{
		UserID:        entry.UserID,
		Action:        entry.Action,
		AssetName:     entry.AssetName,
		AssetCategory: entry.AssetCategory,
		Details:       entry.Details,
		Changes:       changes,
		IPAddress:     entry.IPAddress,
	}
	if err := tx.WithContext(ctx).Create(log).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return log, nil
}

// ListActivity returns the user's entries newest first.
func (s *activityService) ListActivity(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error) {
	page.DefaultsWithSize(ActivityPageSize)

	base := s.db.WithContext(ctx).Model(&models.ActivityLog{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.ActivityLog
	if err := base.Order("timestamp DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(logs, page.Page, page.PageSize, total)
	return &resp, nil
}

// RecentActivity returns at most limit of the user's newest entries.
func (s *activityService) RecentActivity(ctx context.Context, userID string, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return logs, nil
}
