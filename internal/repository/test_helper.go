package repository

import (
	"testing"

	"github.com/nimasrn/donor-hub/pkg/pg"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entities lists every table the repositories own, in creation order.
func Entities() []any {
	return []any{
		&DonationEntity{},
		&VolunteerEntity{},
		&EventEntity{},
		&EventRegistrationEntity{},
		&ContactEntity{},
		&SubscriberEntity{},
		&ProjectEntity{},
	}
}

// NewTestDB opens a migrated in-memory sqlite database. It is exported for
// the e2e suite.
func NewTestDB(t testing.TB) *pg.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Entities()...))

	return pg.NewFromGorm(db, db)
}
