package testutil

import (
	"testing"

	"github.com/hairizuan-noorazman/user-admin/database"
	"gorm.io/gorm"
)

// SetupTestDB creates an in-memory SQLite database with the users schema
// applied through the real migrations.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.RunMigrations(sqlDB, database.DriverSQLite); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
