// database.go - Handles database connection and setup

package database // Declares the package name

import ( // Import required packages
	"fmt"  // Error wrapping
	"log"  // Logger backend for gorm
	"os"   // Stdout for the gorm logger
	"time" // Slow query threshold

	"go-commands-backend/config" // Project config
	"go-commands-backend/models" // User and Command models

	"gorm.io/driver/postgres" // Postgres driver for GORM (pgx)
	"gorm.io/driver/sqlite"   // SQLite driver for GORM
	"gorm.io/gorm"            // GORM ORM
	"gorm.io/gorm/logger"     // GORM query logger
)

// Connect opens the configured database, sizes the pool and runs migrations
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(sqliteDSN(cfg.DBPath))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger(cfg.LogLevel),
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the users and commands tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Command{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Ping checks that the database still answers
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sqliteDSN turns on foreign keys so ON DELETE CASCADE is enforced
func sqliteDSN(path string) string {
	return path + "?_foreign_keys=on"
}

func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(
		log.New(os.Stdout, "[gorm] ", log.LstdFlags),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true, // not-found is a normal outcome for ownership lookups
			Colorful:                  false,
		},
	)
}
