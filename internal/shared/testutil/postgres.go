package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/reshetovitsme/edit-audit-bot/internal/shared/database"
	"gorm.io/gorm"
)

// SetupTestDB connects to the database named by TEST_PG_DSN, applies
// migrations and truncates every table. It skips the test if
// TEST_PG_DSN is not set.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}

	db, err := database.Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		t.Fatalf("failed to run migrations: %v", err)
	}

	truncate := "TRUNCATE edit_records, chat_moderators, chat_channel_bindings, chat_admins, chats RESTART IDENTITY CASCADE"
	if err := db.Exec(truncate).Error; err != nil {
		_ = database.Close(db)
		t.Fatalf("failed to truncate tables: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
