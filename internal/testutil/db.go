// Package testutil opens throwaway databases and seeds rows for tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mechanic_shop/internal/config"
	"mechanic_shop/internal/models"
)

// NewDB returns a migrated in-memory SQLite database private to t. A single
// connection serializes writers the way a real database's locks would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_", "?", "_", "&", "_", "=", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func SeedCustomer(t *testing.T, db *gorm.DB, email string) models.Customer {
	t.Helper()
	c := models.Customer{Name: "Customer " + email, Email: email, Phone: "555-0100", Password: "x"}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func SeedMechanic(t *testing.T, db *gorm.DB, name string) models.Mechanic {
	t.Helper()
	m := models.Mechanic{
		Name:   name,
		Email:  strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@shop.test",
		Phone:  "555-0200",
		Salary: 50000,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func SeedInventory(t *testing.T, db *gorm.DB, name string, price float64) models.Inventory {
	t.Helper()
	i := models.Inventory{Name: name, Price: price}
	require.NoError(t, db.Create(&i).Error)
	return i
}

func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
