package database

import (
	"fmt"

	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate создает и обновляет таблицы всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("AutoMigrate completed", "models", len(models.All()))
	return nil
}
