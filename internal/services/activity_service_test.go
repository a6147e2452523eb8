package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"assetledger/internal/models"
	"assetledger/internal/pagination"
	"assetledger/internal/testutil"
)

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("appends_in_transaction", func(t *testing.T) {
		env := setupEnv(t)
		user := testutil.CreateTestUser(t, env.db)

		var entry *models.ActivityLog
		err := env.db.Transaction(func(tx *gorm.DB) error {
			var err error
			entry, err = env.activity.Record(ctx, tx, ActivityEntry{
				UserID:        user.ID,
				Action:        models.ActionUpdate,
				AssetName:     "Flat A",
				AssetCategory: models.CategoryFlat,
				Details:       "Updated value",
				Changes:       map[string]FieldChange{"value": {From: "1", To: "2"}},
				IPAddress:     "10.0.0.1",
			})
			return err
		})
		testutil.AssertNoError(t, err)

		if entry.ID == 0 {
			t.Fatal("expected an ID")
		}
		if entry.Timestamp.IsZero() {
			t.Error("expected timestamp to be set")
		}
		if string(entry.Changes) != `{"value":{"from":"1","to":"2"}}` {
			t.Errorf("unexpected changes %s", entry.Changes)
		}
	})

	t.Run("rolled_back_with_caller", func(t *testing.T) {
		env := setupEnv(t)
		user := testutil.CreateTestUser(t, env.db)
		errAbort := errors.New("abort")

		err := env.db.Transaction(func(tx *gorm.DB) error {
			if _, err := env.activity.Record(ctx, tx, ActivityEntry{
				UserID: user.ID, Action: models.ActionCreate, AssetName: "Gone",
			}); err != nil {
				return err
			}
			return errAbort
		})
		if !errors.Is(err, errAbort) {
			t.Fatalf("expected abort, got %v", err)
		}
		if n := env.activityCount(t, user.ID); n != 0 {
			t.Errorf("expected entry to roll back, got %d", n)
		}
	})

	t.Run("rejects_unknown_action", func(t *testing.T) {
		env := setupEnv(t)
		_, err := env.activity.Record(ctx, env.db, ActivityEntry{UserID: "u", Action: "upload", AssetName: "x"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestActivityIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	user := testutil.CreateTestUser(t, env.db)

	entry, err := env.activity.Record(ctx, env.db, ActivityEntry{
		UserID: user.ID, Action: models.ActionCreate, AssetName: "Original",
	})
	testutil.AssertNoError(t, err)

	if err := env.db.Model(entry).Update("asset_name", "Rewritten").Error; !errors.Is(err, models.ErrActivityLogImmutable) {
		t.Errorf("expected update to be rejected, got %v", err)
	}
	if err := env.db.Delete(entry).Error; !errors.Is(err, models.ErrActivityLogImmutable) {
		t.Errorf("expected delete to be rejected, got %v", err)
	}

	logs, _ := env.activity.RecentActivity(ctx, user.ID, 1)
	if len(logs) != 1 || logs[0].AssetName != "Original" {
		t.Errorf("entry should be untouched, got %+v", logs)
	}
}

func TestListActivity(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	alice := testutil.CreateTestUser(t, env.db)
	bob := testutil.CreateTestUser(t, env.db)

	for i := 1; i <= 25; i++ {
		_, err := env.activity.Record(ctx, env.db, ActivityEntry{
			UserID: alice.ID, Action: models.ActionCreate, AssetName: fmt.Sprintf("asset %02d", i),
		})
		testutil.AssertNoError(t, err)
	}
	_, err := env.activity.Record(ctx, env.db, ActivityEntry{UserID: bob.ID, Action: models.ActionCreate, AssetName: "bob's"})
	testutil.AssertNoError(t, err)

	t.Run("first_page_newest_first", func(t *testing.T) {
		page, err := env.activity.ListActivity(ctx, alice.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 25 || page.PageSize != ActivityPageSize || page.TotalPages != 2 {
			t.Errorf("unexpected page metadata %+v", page)
		}
		if page.Data[0].AssetName != "asset 25" {
			t.Errorf("expected newest first, got %s", page.Data[0].AssetName)
		}
	})

	t.Run("second_page", func(t *testing.T) {
		page, err := env.activity.ListActivity(ctx, alice.ID, pagination.PageRequest{Page: 2})
		testutil.AssertNoError(t, err)
		if len(page.Data) != 5 || page.Data[4].AssetName != "asset 01" {
			t.Errorf("unexpected second page %+v", page.Data)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		page, err := env.activity.ListActivity(ctx, bob.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected only bob's entry, got %d", page.TotalItems)
		}
	})

	t.Run("recent_limit", func(t *testing.T) {
		logs, err := env.activity.RecentActivity(ctx, alice.ID, 10)
		testutil.AssertNoError(t, err)
		if len(logs) != 10 {
			t.Errorf("expected 10 entries, got %d", len(logs))
		}
	})
}
