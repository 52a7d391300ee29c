package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "sqlite file",
			cfg:  Config{Driver: "sqlite", Path: "users.db"},
			want: "users.db",
		},
		{
			name: "empty driver defaults to sqlite",
			cfg:  Config{Path: ":memory:"},
			want: ":memory:",
		},
		{
			name:    "sqlite without path",
			cfg:     Config{Driver: "sqlite"},
			wantErr: true,
		},
		{
			name: "mysql",
			cfg:  Config{Driver: "MySQL", Host: "db", Port: 3306, User: "root", Password: "pw", Database: "users"},
			want: "root:pw@tcp(db:3306)/users?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name:    "unsupported",
			cfg:     Config{Driver: "oracle"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.DSN()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrations_UpAndDown(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	version, _, err := MigrationVersion(sqlDB, DriverSQLite)
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, RunMigrations(sqlDB, DriverSQLite))
	assert.True(t, db.Migrator().HasTable("users"))

	version, dirty, err := MigrationVersion(sqlDB, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	require.NoError(t, RunMigrations(sqlDB, DriverSQLite), "re-running is a no-op")

	require.NoError(t, RollbackMigration(sqlDB, DriverSQLite))
	assert.False(t, db.Migrator().HasTable("users"))
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(Config{Driver: "oracle"})
	assert.Error(t, err)
}
