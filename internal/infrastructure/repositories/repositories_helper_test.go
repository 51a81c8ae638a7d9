package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

const profileColumnsDDL = `
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		short_description TEXT NOT NULL,
		long_description TEXT NOT NULL,
		logo_url TEXT,
		founding_year INTEGER NOT NULL,
		operating_status TEXT NOT NULL DEFAULT 'active',
		location TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '{}',
		employee_range TEXT,
		website TEXT,
		email TEXT,
		phone TEXT,
		social_links TEXT NOT NULL DEFAULT '{}',
		funding_received TEXT,
		pitch_deck_url TEXT,`

func createStartupTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE startups (
		id TEXT PRIMARY KEY,`+profileColumnsDDL+`
		is_approved BOOLEAN NOT NULL DEFAULT 0,
		created_by TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		CONSTRAINT uq_startups_slug UNIQUE (slug)
	);`)
}

func createSubmissionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE submissions (
		id TEXT PRIMARY KEY,`+profileColumnsDDL+`
		submitter_email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		admin_notes TEXT,
		reviewed_by TEXT,
		reviewed_at DATETIME,
		approved_startup_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createStartupOwnerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE startup_owners (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		startup_id TEXT NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		CONSTRAINT uq_startup_owners_user_startup UNIQUE (user_id, startup_id)
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX uq_startup_owners_approved ON startup_owners (startup_id) WHERE approved = 1;`)
}

func createDirectoryTables(t *testing.T, db *gorm.DB) {
	createStartupTable(t, db)
	createSubmissionTable(t, db)
	createStartupOwnerTable(t, db)
}
