// Package devservertest starts a throwaway users API for tests.
package devservertest

import (
	"net/http/httptest"
	"testing"

	"github.com/hairizuan-noorazman/user-admin/devserver"
	"github.com/hairizuan-noorazman/user-admin/logger"
	"github.com/hairizuan-noorazman/user-admin/testutil"
	"gorm.io/gorm"
)

// New starts a users API over a fresh in-memory database holding n fixture
// users. The server is closed when the test ends.
func New(t *testing.T, n int) (*httptest.Server, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	testutil.CreateUsers(t, db, n)

	store := devserver.NewGormStore(db, logger.NewTestLogger())
	srv := httptest.NewServer(devserver.NewRouter(store, logger.NewTestLogger(), nil))
	t.Cleanup(srv.Close)

	return srv, db
}
