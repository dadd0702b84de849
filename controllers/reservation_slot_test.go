package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T, dialector gorm.Dialector) *gorm.DB {
	db, err := gorm.Open(dialector, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

// Without the lock two transactions on MySQL both read count=0 for the
// same slot and both insert, so the generated SQL must carry FOR UPDATE.
func TestSlotQueryLocksRangeOnMySQL(t *testing.T) {
	db := dryRunDB(t, mysql.New(mysql.Config{
		DSN:                       "root@tcp(127.0.0.1:3306)/dineflow",
		SkipInitializeWithVersion: true,
	}))

	var count int64
	tx := slotQuery(db, 5, "2026-09-15", "19:00").Count(&count)
	require.NoError(t, tx.Error)
	assert.Contains(t, tx.Statement.SQL.String(), "FOR UPDATE")
}

func TestSlotQuerySkipsLockOnSQLite(t *testing.T) {
	db := dryRunDB(t, sqlite.Open(":memory:"))

	var count int64
	tx := slotQuery(db, 5, "2026-09-15", "19:00").Count(&count)
	require.NoError(t, tx.Error)
	assert.NotContains(t, tx.Statement.SQL.String(), "FOR UPDATE")
}
