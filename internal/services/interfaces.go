package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"assetledger/internal/models"
	"assetledger/internal/pagination"
)

// Actor identifies who performs a mutation and from where. It is passed
// explicitly into every mutating call and ends up on the activity entry.
type Actor struct {
	UserID    string
	IPAddress string
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
}

// AssetInput is the full set of editable asset fields. Create and update
// both take the complete record; update replaces every field.
type AssetInput struct {
	Name        string
	Category    models.AssetCategory
	Value       decimal.Decimal
	Description string
	StartDate   *time.Time
	EndDate     *time.Time

	Latitude  decimal.NullDecimal
	Longitude decimal.NullDecimal
	Area      decimal.NullDecimal
	AreaUnit  string

	WeightGrams decimal.NullDecimal
	GoldPurity  string

	Units                decimal.NullDecimal
	PurchasePricePerUnit decimal.NullDecimal
	CurrentNAV           decimal.NullDecimal
	FolioNumber          string

	SumAssured       decimal.NullDecimal
	PremiumAmount    decimal.NullDecimal
	PremiumFrequency string
	Nominee          string

	InterestRate   decimal.NullDecimal
	MaturityAmount decimal.NullDecimal

	PolicyNumber string
	Institution  string
}

// AssetFilter holds optional filter parameters for listing assets.
type AssetFilter struct {
	Category *models.AssetCategory
	Search   string
	MinValue *decimal.Decimal
	MaxValue *decimal.Decimal
}

// FileUpload is one uploaded file. Open is called once per attach and the
// returned reader is always closed.
type FileUpload struct {
	FileName string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// AssetServicer defines the contract for owner-scoped asset operations.
type AssetServicer interface {
	CreateAsset(ctx context.Context, actor Actor, input AssetInput, files []FileUpload) (*models.Asset, error)
	GetAsset(ctx context.Context, ownerID, assetID string) (*models.Asset, error)
	ListAssets(ctx context.Context, ownerID string, filter AssetFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	UpdateAsset(ctx context.Context, actor Actor, assetID string, input AssetInput, files []FileUpload) (*models.Asset, error)
	DeleteAsset(ctx context.Context, actor Actor, assetID string) error
}

// DocumentServicer defines the contract for asset attachments.
type DocumentServicer interface {
	// Attach validates and stores one file for an asset inside tx. It writes
	// no activity entry; the caller's mutation is responsible for that.
	Attach(ctx context.Context, tx *gorm.DB, ownerID, assetID string, file FileUpload) (*models.AssetDocument, error)
	AttachToAsset(ctx context.Context, actor Actor, assetID string, files []FileUpload) ([]models.AssetDocument, error)
	Remove(ctx context.Context, actor Actor, documentID string) error
	Open(ctx context.Context, ownerID, documentID string) (*models.AssetDocument, io.ReadCloser, error)
}

// ActivityEntry describes one asset mutation to append to the activity log.
type ActivityEntry struct {
	UserID        string
	Action        models.ActivityAction
	AssetName     string
	AssetCategory models.AssetCategory
	Details       string
	Changes       map[string]FieldChange
	IPAddress     string
}

// FieldChange is the before/after pair recorded for an updated field.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ActivityRecorder defines the contract for the append-only activity log.
type ActivityRecorder interface {
	// Record appends entry using the caller's transaction so the entry and
	// the mutation commit or roll back together.
	Record(ctx context.Context, tx *gorm.DB, entry ActivityEntry) (*models.ActivityLog, error)
	ListActivity(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.ActivityLog], error)
	RecentActivity(ctx context.Context, userID string, limit int) ([]models.ActivityLog, error)
}

// CategorySummary contains the total and count for one category.
type CategorySummary struct {
	Category models.AssetCategory `json:"category"`
	Label    string               `json:"label"`
	Color    string               `json:"color"`
	Total    decimal.Decimal      `json:"total" swaggertype:"string" example:"50000"`
	Count    int64                `json:"count"`
}

// ChartData is the series consumed by the dashboard pie chart plus the
// category-keyed breakdown it is drawn from. Amounts are decimal strings.
type ChartData struct {
	Labels    []string                                 `json:"labels"`
	Values    []decimal.Decimal                        `json:"values" swaggertype:"array,string" example:"2500000,50000"`
	Colors    []string                                 `json:"colors"`
	Breakdown map[models.AssetCategory]decimal.Decimal `json:"breakdown" swaggertype:"object,string"`
	Total     decimal.Decimal                          `json:"total" swaggertype:"string" example:"2550000"`
}

// Dashboard is the aggregated overview shown on the home page.
type Dashboard struct {
	TotalValue     decimal.Decimal                `json:"total_value" swaggertype:"string" example:"2550000"`
	FormattedTotal string                         `json:"formatted_total"`
	AssetCount     int64                          `json:"asset_count"`
	Categories     []CategorySummary              `json:"categories"`
	CategoryCounts map[models.AssetCategory]int64 `json:"category_counts"`
	Chart          ChartData                      `json:"chart"`
	RecentAssets   []models.Asset                 `json:"recent_assets"`
	RecentActivity []models.ActivityLog           `json:"recent_activity"`
}

// AggregationServicer defines the contract for read-only portfolio figures.
type AggregationServicer interface {
	PortfolioTotal(ctx context.Context, ownerID string) (decimal.Decimal, error)
	BreakdownByCategory(ctx context.Context, ownerID string) (map[models.AssetCategory]decimal.Decimal, error)
	CategorySummaries(ctx context.Context, ownerID string) ([]CategorySummary, error)
	Dashboard(ctx context.Context, ownerID string) (*Dashboard, error)
	ChartData(ctx context.Context, ownerID string) (*ChartData, error)
}
