package testutil

import (
	"bytes"
	"fmt"
	"sync/atomic"
	"testing"

	"assetledger/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAsset inserts an asset directly, bypassing the service and its
// activity entry.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, category models.AssetCategory, value string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:   userID,
		Name:     fmt.Sprintf("Asset %d", nextID()),
		Category: category,
		Value:    decimal.RequireFromString(value),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestDocument inserts a document row for an asset. No blob is written.
func CreateTestDocument(t *testing.T, db *gorm.DB, assetID string) *models.AssetDocument {
	t.Helper()

	n := nextID()
	doc := &models.AssetDocument{
		AssetID:     assetID,
		Name:        fmt.Sprintf("doc%d", n),
		FileName:    fmt.Sprintf("doc%d.pdf", n),
		ContentType: "application/pdf",
		Size:        128,
		StoragePath: fmt.Sprintf("assets/test/%s/doc%d.pdf", assetID, n),
	}
	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("failed to create test document: %v", err)
	}
	return doc
}

// PDFBytes returns size bytes that content sniffing detects as a PDF.
func PDFBytes(size int) []byte {
	return padded([]byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), size)
}

// PNGBytes returns size bytes that content sniffing detects as a PNG.
func PNGBytes(size int) []byte {
	return padded([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), size)
}

func padded(header []byte, size int) []byte {
	if size <= len(header) {
		return header[:size]
	}
	return append(header, bytes.Repeat([]byte{' '}, size-len(header))...)
}
