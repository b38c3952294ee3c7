package repositories

import (
	"errors"
	"time"

	"vacancy_backend/internal/models"

	"gorm.io/gorm"
)

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindVisibleByID(db *gorm.DB, id string) (*models.Job, error)
	Update(db *gorm.DB, job *models.Job) error
	SetVisibility(db *gorm.DB, id string, visible bool) error
	Delete(db *gorm.DB, id string) error

	ListVisible(db *gorm.DB, filter JobFilter, page Page) ([]models.Job, int64, error)
	ListByRecruiter(db *gorm.DB, recruiterID string) ([]models.Job, error)
	CountByRecruiter(db *gorm.DB, recruiterID string) (int64, error)
	CountVisibleByExperience(db *gorm.DB) (map[string]int64, error)
	HideExpired(db *gorm.DB, now time.Time) (int64, error)
}

// JobFilter - точное совпадение по каждому непустому полю.
// Используется и для публичного списка, и для job alert.
type JobFilter struct {
	JobRole    string
	Industry   string
	Location   string
	JobType    string
	Experience string
}

func (f JobFilter) apply(q *gorm.DB) *gorm.DB {
	conditions := []struct {
		column string
		value  string
	}{
		{"job_role", f.JobRole},
		{"industry", f.Industry},
		{"location", f.Location},
		{"job_type", f.JobType},
		{"experience", f.Experience},
	}
	for _, c := range conditions {
		if c.value != "" {
			q = q.Where(c.column+" = ?", c.value)
		}
	}
	return q
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func withRecruiter(db *gorm.DB) *gorm.DB {
	return db.Preload("Recruiter").Preload("Recruiter.RecruiterProfile")
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	if err := db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindVisibleByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := withRecruiter(db).
		Where("id = ? AND is_visible = ?", id, true).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	result := db.Model(job).Select(
		"title", "description", "job_role", "job_type", "experience", "industry",
		"location", "expiration_date", "min_salary", "max_salary", "salary_type",
		"salary", "category", "level", "updated_at",
	).Updates(job)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) SetVisibility(db *gorm.DB, id string, visible bool) error {
	result := db.Model(&models.Job{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_visible": visible,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// Delete удаляет вакансию вместе с откликами и избранным
func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.AppliedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&models.FavoriteJob{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) ListVisible(db *gorm.DB, filter JobFilter, page Page) ([]models.Job, int64, error) {
	query := filter.apply(db.Model(&models.Job{}).Where("is_visible = ?", true)).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	q := withRecruiter(query).Order("created_at DESC")
	if page.Limit > 0 {
		q = q.Offset(page.Offset).Limit(page.Limit)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *JobRepositoryImpl) ListByRecruiter(db *gorm.DB, recruiterID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Where("recruiter_id = ?", recruiterID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountByRecruiter(db *gorm.DB, recruiterID string) (int64, error) {
	var count int64
	err := db.Model(&models.Job{}).Where("recruiter_id = ?", recruiterID).Count(&count).Error
	return count, err
}

// CountVisibleByExperience возвращает счетчик по каждой из фиксированных корзин, включая нули
func (r *JobRepositoryImpl) CountVisibleByExperience(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Experience string
		Count      int64
	}
	err := db.Model(&models.Job{}).
		Select("experience, COUNT(*) AS count").
		Where("is_visible = ? AND experience IN ?", true, models.ExperienceLevels).
		Group("experience").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(models.ExperienceLevels))
	for _, level := range models.ExperienceLevels {
		counts[level] = 0
	}
	for _, row := range rows {
		counts[row.Experience] = row.Count
	}
	return counts, nil
}

// HideExpired скрывает видимые вакансии с истекшим expirationDate
func (r *JobRepositoryImpl) HideExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Job{}).
		Where("is_visible = ? AND expiration_date < ?", true, now).
		Updates(map[string]interface{}{
			"is_visible": false,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
