package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	apperrors "assetledger/internal/errors"
	"assetledger/internal/logger"
	"assetledger/internal/models"
	"assetledger/internal/storage"
	"assetledger/internal/uuid"
)

// documentService stores asset attachments: blob in the content store,
// metadata row in the database.
type documentService struct {
	db       *gorm.DB
	store    storage.Storage
	activity ActivityRecorder
}

// NewDocumentService creates a new DocumentServicer.
func NewDocumentService(db *gorm.DB, store storage.Storage, activity ActivityRecorder) DocumentServicer {
	return &documentService{db: db, store: store, activity: activity}
}

// Attach checks that assetID belongs to ownerID, validates the file, writes
// the blob and then inserts the document row, all on tx. If the row insert
// fails the blob is removed again.
func (s *documentService) Attach(ctx context.Context, tx *gorm.DB, ownerID, assetID string, file FileUpload) (*models.AssetDocument, error) {
	if _, err := findOwnedAsset(ctx, tx, ownerID, assetID); err != nil {
		return nil, err
	}

	dt, ext, problem := checkDocumentHeader(file)
	if problem != "" {
		return nil, filesError(problem)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("open upload: %w", err))
	}
	defer rc.Close()

	body, problem, err := sniffDocument(rc, dt, file.FileName)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("read upload: %w", err))
	}
	if problem != "" {
		return nil, filesError(problem)
	}

	storagePath := fmt.Sprintf("assets/%s/%s/%s%s", ownerID, assetID, uuid.New(), ext)
	counted := &limitedCounter{r: body, max: MaxDocumentSize}
	if err := s.store.Save(ctx, storagePath, counted); err != nil {
		if errors.Is(err, errDocumentTooLarge) {
			return nil, filesError(tooLargeMessage(file.FileName))
		}
		logger.Fault("failed to store document blob", err, "path", storagePath, "asset_id", assetID)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	doc := &models.AssetDocument{
		AssetID:     assetID,
		Name:        displayName(file.FileName),
		FileName:    filepath.Base(file.FileName),
		ContentType: dt.contentTypes[0],
		Size:        counted.n,
		StoragePath: storagePath,
	}
	if err := tx.WithContext(ctx).Create(doc).Error; err != nil {
		deleteBlob(ctx, s.store, storagePath)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return doc, nil
}

// AttachToAsset uploads files to an existing asset and logs the upload as an
// update of that asset.
func (s *documentService) AttachToAsset(ctx context.Context, actor Actor, assetID string, files []FileUpload) ([]models.AssetDocument, error) {
	if len(files) == 0 {
		return nil, filesError("No files were submitted.")
	}

	var docs []models.AssetDocument
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		asset, err := findOwnedAsset(ctx, tx, actor.UserID, assetID)
		if err != nil {
			return err
		}

		for _, f := range files {
			doc, err := s.Attach(ctx, tx, actor.UserID, assetID, f)
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
			Details:       "Uploaded document: " + documentNames(docs),
			IPAddress:     actor.IPAddress,
		})
		return err
	})
	if err != nil {
		removeBlobs(ctx, s.store, docs)
		return nil, err
	}

	return docs, nil
}

// Remove deletes one document of an asset owned by the actor.
func (s *documentService) Remove(ctx context.Context, actor Actor, documentID string) error {
	var doc models.AssetDocument
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findOwnedDocument(ctx, tx, actor.UserID, documentID)
		if err != nil {
			return err
		}
		doc = *found

		asset, err := findOwnedAsset(ctx, tx, actor.UserID, doc.AssetID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.AssetDocument{}, "id = ?", doc.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		_, err = s.activity.Record(ctx, tx, ActivityEntry{
			UserID:        actor.UserID,
			Action:        models.ActionUpdate,
			AssetName:     asset.Name,
			AssetCategory: asset.Category,
			Details:       "Deleted document: " + doc.FileName,
			IPAddress:     actor.IPAddress,
		})
		return err
	})
	if err != nil {
		return err
	}

	deleteBlob(ctx, s.store, doc.StoragePath)
	return nil
}

// Open returns the document metadata and a reader over its blob. The caller
// closes the reader.
func (s *documentService) Open(ctx context.Context, ownerID, documentID string) (*models.AssetDocument, io.ReadCloser, error) {
	doc, err := findOwnedDocument(ctx, s.db, ownerID, documentID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(ctx, doc.StoragePath)
	if err != nil {
		logger.Fault("failed to open document blob", err, "document_id", doc.ID, "path", doc.StoragePath)
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return doc, rc, nil
}

// findOwnedAsset loads an asset only if ownerID owns it. Missing and foreign
// assets produce the same error.
func findOwnedAsset(ctx context.Context, db *gorm.DB, ownerID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", assetID, ownerID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// findOwnedDocument loads a document whose asset belongs to ownerID.
func findOwnedDocument(ctx context.Context, db *gorm.DB, ownerID, documentID string) (*models.AssetDocument, error) {
	owned := db.Session(&gorm.Session{NewDB: true}).Model(&models.Asset{}).Select("id").Where("user_id = ?", ownerID)

	var doc models.AssetDocument
	err := db.WithContext(ctx).
		Where("id = ? AND asset_id IN (?)", documentID, owned).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &doc, nil
}

func filesError(message string) error {
	return apperrors.WithFields(apperrors.ErrValidation, map[string]string{"files": message})
}

// displayName is the file name without directory or extension.
func displayName(fileName string) string {
	base := filepath.Base(fileName)
	if name := strings.TrimSuffix(base, filepath.Ext(base)); name != "" {
		return name
	}
	return base
}

func documentNames(docs []models.AssetDocument) string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.FileName
	}
	return strings.Join(names, ", ")
}

// deleteBlob removes a blob after the database no longer references it.
// Failures leave an orphaned blob and are reported, not returned.
func deleteBlob(ctx context.Context, store storage.Storage, path string) {
	if err := store.Delete(context.WithoutCancel(ctx), path); err != nil {
		logger.Fault("failed to delete document blob", err, "path", path)
	}
}

func removeBlobs(ctx context.Context, store storage.Storage, docs []models.AssetDocument) {
	for _, d := range docs {
		deleteBlob(ctx, store, d.StoragePath)
	}
}
