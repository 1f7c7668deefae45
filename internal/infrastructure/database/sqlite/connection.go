package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"stocky-backend/internal/config"
	"stocky-backend/internal/infrastructure/database/sqlite/models"
	"stocky-backend/internal/logger"
)

type DB struct {
	*gorm.DB
	// path is the database file backing this connection, ":memory:" in tests.
	path string
}

func NewDB(cfg *config.Config) (*DB, error) {
	path := cfg.Database.Path

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	var gormLogLevel gormLogger.LogLevel
	if cfg.Server.Environment == "production" {
		gormLogLevel = gormLogger.Warn
	} else {
		gormLogLevel = gormLogger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting sql.DB: %w", err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY under
	// concurrent requests.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("error migrating schema: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("path", path),
	)

	return &DB{DB: db, path: path}, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.ItemModel{},
		&models.LocationModel{},
		&models.SKUModel{},
		&models.AlertModel{},
		&models.ShoppingListModel{},
		&models.ShoppingListItemModel{},
		&models.ShoppingListLogModel{},
		&models.ScannerAssociationModel{},
	)
}

func (d *DB) Path() string {
	return d.path
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Health() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
