package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityAction is the kind of asset mutation an entry records.
type ActivityAction string

const (
	ActionCreate ActivityAction = "create"
	ActionUpdate ActivityAction = "update"
	ActionDelete ActivityAction = "delete"
)

// ErrActivityLogImmutable is returned by the gorm hooks when code tries to
// change or remove an activity entry.
var ErrActivityLogImmutable = errors.New("activity log entries are append-only")

// ActivityLog is an immutable audit record of one asset mutation.
// The asset is captured by name and category rather than by foreign key so the
// history outlives the asset.
type ActivityLog struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Action        ActivityAction `gorm:"size:20;not null" json:"action"`
	AssetName     string         `gorm:"size:255;not null" json:"asset_name"`
	AssetCategory AssetCategory  `gorm:"size:50" json:"asset_category"`
	Details       string         `json:"details"`
	Changes       datatypes.JSON `json:"changes,omitempty"`
	IPAddress     string         `gorm:"size:45" json:"ip_address"`
	Timestamp     time.Time      `gorm:"not null;index" json:"timestamp"`
}

// BeforeCreate stamps the entry with the server clock.
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}

// BeforeUpdate rejects any update.
func (a *ActivityLog) BeforeUpdate(tx *gorm.DB) error {
	return ErrActivityLogImmutable
}

// BeforeDelete rejects any delete.
func (a *ActivityLog) BeforeDelete(tx *gorm.DB) error {
	return ErrActivityLogImmutable
}
