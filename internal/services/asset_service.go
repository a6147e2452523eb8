package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/models"
	"assetledger/internal/pagination"
	"assetledger/internal/storage"
)

// AssetPageSize is the default page size of the asset list.
const AssetPageSize = 12

// assetService handles owner-scoped asset CRUD. Every mutation and its
// activity entry share one transaction.
type assetService struct {
	db        *gorm.DB
	store     storage.Storage
	documents DocumentServicer
	activity  ActivityRecorder
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB, store storage.Storage, documents DocumentServicer, activity ActivityRecorder) AssetServicer {
	return &assetService{
		db:        db,
		store:     store,
		documents: documents,
		activity:  activity,
	}
}

// CreateAsset validates input, inserts the asset, attaches files and records
// a create entry. On any failure nothing persists and written blobs are removed.
func (s *assetService) CreateAsset(ctx context.Context, actor Actor, input AssetInput, files []FileUpload) (*models.Asset, error) {
	normalizeAssetInput(&input)
	if err := validateAssetInput(&input); err != nil {
		return nil, err
	}

	asset := &models.Asset{UserID: actor.UserID}
	applyAssetInput(asset, &input)

	var docs []models.AssetDocument
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for _, f := range files {
			doc, err := s.documents.Attach(ctx, tx, actor.UserID, asset.ID, f)
			if err != nil {
				return err
			}
			docs = append(docs, *doc)
		}

		details := "Created asset with value " + asset.Value.String()
		if len(docs) > 0 {
			details += "; uploaded " + documentNames(docs)
		}
		_, err := s.activity.Record(ctx, tx, ActivityEntry{
			UserID:        actor.UserID,
			Action:        models.ActionCreate,
			AssetName:     asset.Name,
			AssetCategory: asset.Category,
			Details:       details,
			IPAddress:     actor.IPAddress,
		})
		return err
	})
	if err != nil {
		removeBlobs(ctx, s.store, docs)
		return nil, err
	}

	asset.Documents = docs
	return asset, nil
}

// GetAsset returns one of the owner's assets with its documents.
func (s *assetService) GetAsset(ctx context.Context, ownerID, assetID string) (*models.Asset, error) {
	db := s.db.Preload("Documents", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	})
	return findOwnedAsset(ctx, db, ownerID, assetID)
}

// ListAssets returns a filtered page of the owner's assets, newest first.
func (s *assetService) ListAssets(ctx context.Context, ownerID string, filter AssetFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.DefaultsWithSize(AssetPageSize)

	base := s.db.WithContext(ctx).Model(&models.Asset{}).Where("user_id = ?", ownerID)
	base = applyAssetFilter(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &resp, nil
}

// UpdateAsset replaces every editable field of an owned asset, attaches new
// files and records an update entry describing the changed fields.
func (s *assetService) UpdateAsset(ctx context.Context, actor Actor, assetID string, input AssetInput, files []FileUpload) (*models.Asset, error) {
	normalizeAssetInput(&input)
	if err := validateAssetInput(&input); err != nil {
		return nil, err
	}

	var docs []models.AssetDocument
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := findOwnedAsset(ctx, tx, actor.UserID, assetID)
		if err != nil {
			return err
		}

		before := *asset
		applyAssetInput(asset, &input)
		changes := diffAssets(&before, asset)

		if err := tx.Save(asset).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for _, f := range files {
			doc, err := s.documents.Attach(ctx, tx, actor.UserID, asset.ID, f)
			if err != nil {
				return err
			}
			docs = append(docs, *doc)
		}

		_, err = s.activity.Record(ctx, tx, ActivityEntry{
			UserID:        actor.UserID,
			Action:        models.ActionUpdate,
			AssetName:     asset.Name,
			AssetCategory: asset.Category,
			Details:       updateDetails(changes, docs),
			Changes:       changes,
			IPAddress:     actor.IPAddress,
		})
		return err
	})
	if err != nil {
		removeBlobs(ctx, s.store, docs)
		return nil, err
	}

	return s.GetAsset(ctx, actor.UserID, assetID)
}

// DeleteAsset removes an owned asset and its documents. Blobs are deleted
// once the transaction has committed.
func (s *assetService) DeleteAsset(ctx context.Context, actor Actor, assetID string) error {
	var docs []models.AssetDocument
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := findOwnedAsset(ctx, tx, actor.UserID, assetID)
		if err != nil {
			return err
		}

		if err := tx.Where("asset_id = ?", asset.ID).Find(&docs).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("asset_id = ?", asset.ID).Delete(&models.AssetDocument{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&models.Asset{}, "id = ?", asset.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		_, err = s.activity.Record(ctx, tx, ActivityEntry{
			UserID:        actor.UserID,
			Action:        models.ActionDelete,
			AssetName:     asset.Name,
			AssetCategory: asset.Category,
			Details:       "Deleted asset with value " + asset.Value.String(),
			IPAddress:     actor.IPAddress,
		})
		return err
	})
	if err != nil {
		return err
	}

	removeBlobs(ctx, s.store, docs)
	return nil
}

// applyAssetFilter applies the optional list filters to a query.
func applyAssetFilter(query *gorm.DB, filter AssetFilter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(search))+"%")
	}
	if filter.MinValue != nil {
		query = query.Where("value >= ?", *filter.MinValue)
	}
	if filter.MaxValue != nil {
		query = query.Where("value <= ?", *filter.MaxValue)
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func normalizeAssetInput(in *AssetInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.AreaUnit = strings.ToLower(strings.TrimSpace(in.AreaUnit))
	in.GoldPurity = strings.ToLower(strings.TrimSpace(in.GoldPurity))
	in.PremiumFrequency = strings.ToLower(strings.TrimSpace(in.PremiumFrequency))
	in.FolioNumber = strings.TrimSpace(in.FolioNumber)
	in.Nominee = strings.TrimSpace(in.Nominee)
	in.PolicyNumber = strings.TrimSpace(in.PolicyNumber)
	in.Institution = strings.TrimSpace(in.Institution)
}

func applyAssetInput(a *models.Asset, in *AssetInput) {
	a.Name = in.Name
	a.Category = in.Category
	a.Value = in.Value
	a.Description = in.Description
	a.StartDate = toDate(in.StartDate)
	a.EndDate = toDate(in.EndDate)
	a.Latitude = in.Latitude
	a.Longitude = in.Longitude
	a.Area = in.Area
	a.AreaUnit = in.AreaUnit
	a.WeightGrams = in.WeightGrams
	a.GoldPurity = in.GoldPurity
	a.Units = in.Units
	a.PurchasePricePerUnit = in.PurchasePricePerUnit
	a.CurrentNAV = in.CurrentNAV
	a.FolioNumber = in.FolioNumber
	a.SumAssured = in.SumAssured
	a.PremiumAmount = in.PremiumAmount
	a.PremiumFrequency = in.PremiumFrequency
	a.Nominee = in.Nominee
	a.InterestRate = in.InterestRate
	a.MaturityAmount = in.MaturityAmount
	a.PolicyNumber = in.PolicyNumber
	a.Institution = in.Institution
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d
}

// assetFields lists the fields compared for the update diff, in the order
// they are named in the activity details.
var assetFields = []struct {
	name  string
	value func(*models.Asset) string
}{
	{"name", func(a *models.Asset) string { return a.Name }},
	{"category", func(a *models.Asset) string { return string(a.Category) }},
	{"value", func(a *models.Asset) string { return a.Value.String() }},
	{"description", func(a *models.Asset) string { return a.Description }},
	{"start_date", func(a *models.Asset) string { return dateString(a.StartDate) }},
	{"end_date", func(a *models.Asset) string { return dateString(a.EndDate) }},
	{"latitude", func(a *models.Asset) string { return nullDecimalString(a.Latitude) }},
	{"longitude", func(a *models.Asset) string { return nullDecimalString(a.Longitude) }},
	{"area", func(a *models.Asset) string { return nullDecimalString(a.Area) }},
	{"area_unit", func(a *models.Asset) string { return a.AreaUnit }},
	{"weight_grams", func(a *models.Asset) string { return nullDecimalString(a.WeightGrams) }},
	{"gold_purity", func(a *models.Asset) string { return a.GoldPurity }},
	{"units", func(a *models.Asset) string { return nullDecimalString(a.Units) }},
	{"purchase_price_per_unit", func(a *models.Asset) string { return nullDecimalString(a.PurchasePricePerUnit) }},
	{"current_nav", func(a *models.Asset) string { return nullDecimalString(a.CurrentNAV) }},
	{"folio_number", func(a *models.Asset) string { return a.FolioNumber }},
	{"sum_assured", func(a *models.Asset) string { return nullDecimalString(a.SumAssured) }},
	{"premium_amount", func(a *models.Asset) string { return nullDecimalString(a.PremiumAmount) }},
	{"premium_frequency", func(a *models.Asset) string { return a.PremiumFrequency }},
	{"nominee", func(a *models.Asset) string { return a.Nominee }},
	{"interest_rate", func(a *models.Asset) string { return nullDecimalString(a.InterestRate) }},
	{"maturity_amount", func(a *models.Asset) string { return nullDecimalString(a.MaturityAmount) }},
	{"policy_number", func(a *models.Asset) string { return a.PolicyNumber }},
	{"institution", func(a *models.Asset) string { return a.Institution }},
}

// diffAssets returns the fields whose value differs between before and after.
func diffAssets(before, after *models.Asset) map[string]FieldChange {
	changes := map[string]FieldChange{}
	for _, f := range assetFields {
		from, to := f.value(before), f.value(after)
		if from != to {
			changes[f.name] = FieldChange{From: from, To: to}
		}
	}
	return changes
}

func updateDetails(changes map[string]FieldChange, docs []models.AssetDocument) string {
	var changed []string
	for _, f := range assetFields {
		if _, ok := changes[f.name]; ok {
			changed = append(changed, f.name)
		}
	}

	details := "Updated asset"
	if len(changed) > 0 {
		details = "Updated " + strings.Join(changed, ", ")
	}
	if len(docs) > 0 {
		details = fmt.Sprintf("%s; uploaded %s", details, documentNames(docs))
	}
	return details
}

func dateString(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format(time.DateOnly)
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
