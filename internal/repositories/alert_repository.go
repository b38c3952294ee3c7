package repositories

import (
	"errors"

	"vacancy_backend/internal/models"

	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(db *gorm.DB, alert *models.JobAlert) error
	Latest(db *gorm.DB, userID string) (*models.JobAlert, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
}

type AlertRepositoryImpl struct{}

func NewAlertRepository() AlertRepository {
	return &AlertRepositoryImpl{}
}

func (r *AlertRepositoryImpl) Create(db *gorm.DB, alert *models.JobAlert) error {
	return db.Create(alert).Error
}

func (r *AlertRepositoryImpl) Latest(db *gorm.DB, userID string) (*models.JobAlert, error) {
	var alert models.JobAlert
	err := db.Where("user_id = ?", userID).Order("created_at DESC").First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (r *AlertRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.JobAlert{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
