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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		password_hash TEXT,
		avatar_url TEXT,
		donations_count INTEGER NOT NULL DEFAULT 0,
		received_count INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		is_email_verified BOOLEAN NOT NULL DEFAULT 0,
		verification_token TEXT,
		verification_token_expiry DATETIME,
		password_reset_token TEXT,
		password_reset_token_expiry DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPostTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE posts (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		quantity TEXT NOT NULL,
		location TEXT NOT NULL,
		expiry_date DATETIME NOT NULL,
		status TEXT NOT NULL,
		urgency TEXT,
		owner_id TEXT NOT NULL,
		claimer_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createRatingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ratings (
		id TEXT PRIMARY KEY,
		rater_user_id TEXT NOT NULL,
		rated_user_id TEXT NOT NULL,
		post_id TEXT NOT NULL,
		value INTEGER NOT NULL,
		comment TEXT,
		created_at DATETIME,
		UNIQUE (rater_user_id, rated_user_id, post_id)
	);`)
}
