package models

// AssetDocument is a file attached to an asset. The blob itself lives in the
// content store under StoragePath.
type AssetDocument struct {
	Base
	AssetID     string `gorm:"type:uuid;not null;index" json:"asset_id"`
	Name        string `gorm:"size:255" json:"name"`
	FileName    string `gorm:"size:255;not null" json:"file_name"`
	ContentType string `gorm:"size:100;not null" json:"content_type"`
	Size        int64  `gorm:"not null" json:"size"`
	StoragePath string `gorm:"size:512;not null" json:"-"`
}
