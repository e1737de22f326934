package database

import (
	"github.com/muslewski/eventizer-sub001/config"
	"github.com/muslewski/eventizer-sub001/models"
	"github.com/techmaster-vietnam/goerrorkit"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open kết nối PostgreSQL theo cấu hình
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, goerrorkit.WrapWithMessage(err, "Không kết nối được database").WithData(map[string]interface{}{
			"host": cfg.Host,
			"db":   cfg.Name,
		})
	}
	return db, nil
}

// Migrate runs database migrations for the marketplace models (users, offers)
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Offer{},
	)
}
