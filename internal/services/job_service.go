package services

import (
	"context"
	"errors"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type JobService interface {
	CreateJob(db *gorm.DB, actor Actor, req *dto.CreateJobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, db *gorm.DB, actor Actor, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, db *gorm.DB, actor Actor, jobID string) error
	SetVisibility(ctx context.Context, db *gorm.DB, actor Actor, jobID string, visible bool) (*models.Job, error)

	GetJob(db *gorm.DB, jobID string) (*dto.JobResponse, error)
	ListJobs(db *gorm.DB, filter *dto.JobFilterQuery, page, pageSize int) (*dto.JobListResponse, error)
	ListRecruiterJobs(db *gorm.DB, recruiterID string) ([]dto.RecruiterJobResponse, error)
	CountRecruiterJobs(db *gorm.DB, recruiterID string) (int64, error)
	ExperienceCounts(db *gorm.DB) (map[string]int64, error)
}

type JobServiceImpl struct {
	jobRepo         repositories.JobRepository
	accountRepo     repositories.AccountRepository
	applicationRepo repositories.ApplicationRepository
	requirePayment  bool
}

func NewJobService(
	jobRepo repositories.JobRepository,
	accountRepo repositories.AccountRepository,
	applicationRepo repositories.ApplicationRepository,
	requirePayment bool,
) JobService {
	return &JobServiceImpl{
		jobRepo:         jobRepo,
		accountRepo:     accountRepo,
		applicationRepo: applicationRepo,
		requirePayment:  requirePayment,
	}
}

// CreateJob - рекрутер без оплаченной компании получает 403, admin не проверяется
func (s *JobServiceImpl) CreateJob(db *gorm.DB, actor Actor, req *dto.CreateJobRequest) (*models.Job, error) {
	if s.requirePayment && !actor.IsAdmin() {
		if err := s.checkCompanyPaid(db, actor.ID); err != nil {
			return nil, err
		}
	}

	job := &models.Job{
		RecruiterID:    actor.ID,
		Title:          req.Title,
		Description:    req.Description,
		JobRole:        req.JobRole,
		JobType:        req.JobType,
		Experience:     req.Experience,
		Industry:       req.Industry,
		Location:       req.Location,
		ExpirationDate: *req.ExpirationDate,
		MinSalary:      req.MinSalary,
		MaxSalary:      req.MaxSalary,
		SalaryType:     models.SalaryNegotiable,
		Salary:         req.Salary,
		Category:       req.Category,
		Level:          req.Level,
		IsVisible:      true,
	}
	if req.SalaryType != "" {
		job.SalaryType = models.SalaryType(req.SalaryType)
	}
	if err := validateSalaryRange(job.MinSalary, job.MaxSalary); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) checkCompanyPaid(db *gorm.DB, recruiterID string) error {
	account, err := s.accountRepo.FindByID(db, recruiterID)
	if err != nil {
		return handleAccountError(err)
	}
	if account.RecruiterProfile == nil || account.RecruiterProfile.Company.PaymentStatus != models.CompanyPaymentPaid {
		return apperrors.ErrPaymentRequired
	}
	return nil
}

func validateSalaryRange(min, max *float64) error {
	if min != nil && max != nil && *max < *min {
		return apperrors.ValidationError(map[string]string{
			"maxSalary": "Must be greater than or equal to minSalary",
		})
	}
	return nil
}

func (s *JobServiceImpl) UpdateJob(ctx context.Context, db *gorm.DB, actor Actor, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	job, err := AuthorizeJobOwner(tx, s.jobRepo, jobID, actor)
	if err != nil {
		return nil, ownershipToAppError(ctx, err, actor)
	}

	applyJobUpdate(job, req)
	if err := validateSalaryRange(job.MinSalary, job.MaxSalary); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(tx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if req.IsVisible != nil {
		if err := s.jobRepo.SetVisibility(tx, job.ID, *req.IsVisible); err != nil {
			return nil, apperrors.InternalError(err)
		}
		job.IsVisible = *req.IsVisible
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func applyJobUpdate(job *models.Job, req *dto.UpdateJobRequest) {
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.JobRole != nil {
		job.JobRole = *req.JobRole
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.Experience != nil {
		job.Experience = *req.Experience
	}
	if req.Industry != nil {
		job.Industry = *req.Industry
	}
	if req.ExpirationDate != nil {
		job.ExpirationDate = *req.ExpirationDate
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.MinSalary != nil {
		job.MinSalary = req.MinSalary
	}
	if req.MaxSalary != nil {
		job.MaxSalary = req.MaxSalary
	}
	if req.SalaryType != nil {
		job.SalaryType = models.SalaryType(*req.SalaryType)
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.Category != nil {
		job.Category = *req.Category
	}
	if req.Level != nil {
		job.Level = *req.Level
	}
}

func (s *JobServiceImpl) DeleteJob(ctx context.Context, db *gorm.DB, actor Actor, jobID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := AuthorizeJobOwner(tx, s.jobRepo, jobID, actor); err != nil {
		return ownershipToAppError(ctx, err, actor)
	}
	if err := s.jobRepo.Delete(tx, jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return tx.Commit().Error
}

func (s *JobServiceImpl) SetVisibility(ctx context.Context, db *gorm.DB, actor Actor, jobID string, visible bool) (*models.Job, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	job, err := AuthorizeJobOwner(tx, s.jobRepo, jobID, actor)
	if err != nil {
		return nil, ownershipToAppError(ctx, err, actor)
	}
	if err := s.jobRepo.SetVisibility(tx, jobID, visible); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	job.IsVisible = visible
	return job, nil
}

// GetJob - скрытая вакансия для публики не существует
func (s *JobServiceImpl) GetJob(db *gorm.DB, jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindVisibleByID(db, jobID)
	if err != nil {
		return nil, handleJobError(err)
	}
	return dto.NewJobResponse(job), nil
}

func (s *JobServiceImpl) ListJobs(db *gorm.DB, filter *dto.JobFilterQuery, page, pageSize int) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobRepo.ListVisible(db, toJobFilter(filter), repositories.NewPage(page, pageSize))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.JobListResponse{
		Success:  true,
		Count:    len(jobs),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Jobs:     dto.NewJobResponses(jobs),
	}, nil
}

func toJobFilter(q *dto.JobFilterQuery) repositories.JobFilter {
	if q == nil {
		return repositories.JobFilter{}
	}
	return repositories.JobFilter{
		JobRole:    q.JobRole,
		Industry:   q.Industry,
		Location:   q.Location,
		JobType:    q.JobType,
		Experience: q.Experience,
	}
}

// ListRecruiterJobs включает скрытые вакансии и число откликов по каждой
func (s *JobServiceImpl) ListRecruiterJobs(db *gorm.DB, recruiterID string) ([]dto.RecruiterJobResponse, error) {
	jobs, err := s.jobRepo.ListByRecruiter(db, recruiterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	counts, err := s.applicationRepo.CountByJobs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.RecruiterJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.RecruiterJobResponse{Job: j, ApplicantsCount: counts[j.ID]})
	}
	return out, nil
}

func (s *JobServiceImpl) CountRecruiterJobs(db *gorm.DB, recruiterID string) (int64, error) {
	count, err := s.jobRepo.CountByRecruiter(db, recruiterID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *JobServiceImpl) ExperienceCounts(db *gorm.DB) (map[string]int64, error) {
	counts, err := s.jobRepo.CountVisibleByExperience(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return counts, nil
}

func handleJobError(err error) error {
	if errors.Is(err, repositories.ErrJobNotFound) {
		return apperrors.ErrJobNotFound
	}
	return apperrors.InternalError(err)
}
