package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/spf13/afero"
	"gorm.io/gorm"

	"assetledger/internal/models"
	"assetledger/internal/storage"
	"assetledger/internal/testutil"
)

// testEnv wires every service against one in-memory database and an
// in-memory blob store.
type testEnv struct {
	db          *gorm.DB
	fs          afero.Fs
	store       storage.Storage
	activity    ActivityRecorder
	documents   DocumentServicer
	assets      AssetServicer
	aggregation AggregationServicer
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	return setupEnvWith(t, nil)
}

// setupEnvWith lets a test replace the activity recorder, for example with
// one that fails.
func setupEnvWith(t *testing.T, wrap func(ActivityRecorder) ActivityRecorder) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll(blobRoot, 0o750); err != nil {
		t.Fatalf("failed to create blob root: %v", err)
	}
	store := storage.NewFSStorage(afero.NewBasePathFs(fs, blobRoot))

	activity := NewActivityService(db)
	if wrap != nil {
		activity = wrap(activity)
	}
	return newEnv(db, fs, store, activity)
}

const blobRoot = "/blobs"

func newEnv(db *gorm.DB, fs afero.Fs, store storage.Storage, activity ActivityRecorder) *testEnv {
	documents := NewDocumentService(db, store, activity)
	return &testEnv{
		db:          db,
		fs:          fs,
		store:       store,
		activity:    activity,
		documents:   documents,
		assets:      NewAssetService(db, store, documents, activity),
		aggregation: NewAggregationService(db, activity, "INR"),
	}
}

func (e *testEnv) blobCount(t *testing.T) int {
	t.Helper()
	n := 0
	err := afero.Walk(e.fs, blobRoot, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk blob store: %v", err)
	}
	return n
}

func (e *testEnv) activityCount(t *testing.T, userID string) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&models.ActivityLog{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count activity: %v", err)
	}
	return n
}

func actorFor(user *models.User) Actor {
	return Actor{UserID: user.ID, IPAddress: "203.0.113.7"}
}

func upload(name string, data []byte) FileUpload {
	return FileUpload{
		FileName: name,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func withFailingRecorder(r ActivityRecorder) ActivityRecorder {
	return failingRecorder{r}
}

// failingRecorder behaves like the real recorder until Record, which fails
// the way a storage fault would.
type failingRecorder struct {
	ActivityRecorder
}

var errRecorderDown = errors.New("activity table unavailable")

func (failingRecorder) Record(context.Context, *gorm.DB, ActivityEntry) (*models.ActivityLog, error) {
	return nil, errRecorderDown
}

// failingStore rejects every write.
type failingStore struct {
	storage.Storage
}

func (failingStore) Save(context.Context, string, io.Reader) error {
	return errors.New("bucket unreachable")
}
