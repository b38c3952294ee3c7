package repositories

import (
	"errors"
	"time"

	"vacancy_backend/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.AppliedJob) error
	Exists(db *gorm.DB, userID, jobID string) (bool, error)
	FindByID(db *gorm.DB, id string) (*models.AppliedJob, error)
	UpdateStatus(db *gorm.DB, id string, from, to models.ApplicationStatus) error

	ListByUser(db *gorm.DB, userID string) ([]models.AppliedJob, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
	ListByJob(db *gorm.DB, jobID string) ([]models.AppliedJob, error)
	ListByRecruiter(db *gorm.DB, recruiterID string) ([]models.AppliedJob, error)
	CountByJobs(db *gorm.DB, jobIDs []string) (map[string]int64, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

// Create полагается на уникальный индекс (user_id, job_id):
// проигравший в гонке получает ErrAlreadyApplied
func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.AppliedJob) error {
	if application.AppliedAt.IsZero() {
		application.AppliedAt = time.Now()
	}
	if err := db.Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) Exists(db *gorm.DB, userID, jobID string) (bool, error) {
	var count int64
	err := db.Model(&models.AppliedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.AppliedJob, error) {
	var application models.AppliedJob
	if err := db.Preload("Job").First(&application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

// UpdateStatus меняет статус только из ожидаемого from (compare-and-set)
func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, from, to models.ApplicationStatus) error {
	result := db.Model(&models.AppliedJob{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.AppliedJob, error) {
	var applications []models.AppliedJob
	err := db.Preload("Job").
		Preload("Job.Recruiter").
		Preload("Job.Recruiter.RecruiterProfile").
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.AppliedJob{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) ListByJob(db *gorm.DB, jobID string) ([]models.AppliedJob, error) {
	var applications []models.AppliedJob
	err := db.Preload("User").
		Preload("User.UserProfile").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) ListByRecruiter(db *gorm.DB, recruiterID string) ([]models.AppliedJob, error) {
	var applications []models.AppliedJob
	err := db.Preload("User").
		Preload("User.UserProfile").
		Preload("Job").
		Joins("JOIN jobs ON jobs.id = applied_jobs.job_id").
		Where("jobs.recruiter_id = ?", recruiterID).
		Order("applied_jobs.applied_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) CountByJobs(db *gorm.DB, jobIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		JobID string
		Count int64
	}
	err := db.Model(&models.AppliedJob{}).
		Select("job_id, COUNT(*) AS count").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.JobID] = row.Count
	}
	return counts, nil
}
