package repositories

import (
	"errors"

	"vacancy_backend/internal/models"

	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Find(db *gorm.DB, userID, jobID string) (*models.FavoriteJob, error)
	Create(db *gorm.DB, favorite *models.FavoriteJob) error
	Delete(db *gorm.DB, favorite *models.FavoriteJob) error
	ListByUser(db *gorm.DB, userID string) ([]models.FavoriteJob, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
}

type FavoriteRepositoryImpl struct{}

func NewFavoriteRepository() FavoriteRepository {
	return &FavoriteRepositoryImpl{}
}

func (r *FavoriteRepositoryImpl) Find(db *gorm.DB, userID, jobID string) (*models.FavoriteJob, error) {
	var favorite models.FavoriteJob
	err := db.Where("user_id = ? AND job_id = ?", userID, jobID).First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

// Create возвращает gorm.ErrDuplicatedKey, если параллельный запрос уже добавил пару
func (r *FavoriteRepositoryImpl) Create(db *gorm.DB, favorite *models.FavoriteJob) error {
	return db.Create(favorite).Error
}

func (r *FavoriteRepositoryImpl) Delete(db *gorm.DB, favorite *models.FavoriteJob) error {
	return db.Delete(favorite).Error
}

func (r *FavoriteRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.FavoriteJob, error) {
	var favorites []models.FavoriteJob
	err := db.Preload("Job").
		Preload("Job.Recruiter").
		Preload("Job.Recruiter.RecruiterProfile").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *FavoriteRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.FavoriteJob{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
