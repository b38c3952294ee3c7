package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const resumeLinkTTL = 5 * time.Minute

type ApplicationService interface {
	Apply(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.ApplyRequest, resumeFile *multipart.FileHeader) (*models.AppliedJob, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, actor Actor, applicationID string, status models.ApplicationStatus) (*models.AppliedJob, error)
	HasApplied(db *gorm.DB, userID, jobID string) (bool, error)

	ListApplied(db *gorm.DB, userID string) ([]dto.AppliedJobView, error)
	CountApplied(db *gorm.DB, userID string) (int64, error)
	ListForRecruiter(db *gorm.DB, recruiterID string) ([]dto.ApplicationView, error)
	ListApplicants(ctx context.Context, db *gorm.DB, actor Actor, jobID string) ([]dto.ApplicationView, error)
	ResumeDownloadURL(ctx context.Context, db *gorm.DB, actor Actor, applicationID string) (string, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	uploader        *FileUploader
	onApplied       func()
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	uploader *FileUploader,
	onApplied func(),
) ApplicationService {
	if onApplied == nil {
		onApplied = func() {}
	}
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		uploader:        uploader,
		onApplied:       onApplied,
	}
}

// Apply - повторный отклик отклоняется, а не перезаписывается.
// Гонку двух одновременных откликов решает уникальный индекс.
func (s *ApplicationServiceImpl) Apply(ctx context.Context, db *gorm.DB, userID, jobID string, req *dto.ApplyRequest, resumeFile *multipart.FileHeader) (*models.AppliedJob, error) {
	if _, err := s.jobRepo.FindVisibleByID(db, jobID); err != nil {
		return nil, handleJobError(err)
	}

	exists, err := s.applicationRepo.Exists(db, userID, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	application := &models.AppliedJob{
		UserID:      userID,
		JobID:       jobID,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationStatusPending,
	}

	uploadedKey := ""
	switch {
	case req.Resume != "" && req.ResumeID != "":
		application.Resume = req.Resume
		application.ResumeID = req.ResumeID
	case resumeFile != nil:
		resume, err := s.uploader.UploadResume(ctx, userID, resumeFile)
		if err != nil {
			return nil, err
		}
		application.Resume = resume.URL
		application.ResumeID = resume.PublicID
		uploadedKey = resume.PublicID
	default:
		return nil, apperrors.ErrResumeRequired
	}

	if err := s.applicationRepo.Create(db, application); err != nil {
		s.uploader.Delete(ctx, uploadedKey)
		if errors.Is(err, repositories.ErrAlreadyApplied) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}

	s.onApplied()
	logger.CtxInfo(ctx, "Application submitted", "application_id", application.ID, "job_id", jobID)
	return application, nil
}

// UpdateStatus - pending переходит в accepted или rejected, дальше статус не меняется
func (s *ApplicationServiceImpl) UpdateStatus(ctx context.Context, db *gorm.DB, actor Actor, applicationID string, status models.ApplicationStatus) (*models.AppliedJob, error) {
	if !status.Terminal() {
		return nil, apperrors.ValidationError(map[string]string{"status": "Must be one of: accepted, rejected"})
	}

	application, err := AuthorizeApplicationOwner(db, s.applicationRepo, applicationID, actor)
	if err != nil {
		return nil, ownershipToAppError(ctx, err, actor)
	}
	if application.Status.Terminal() {
		return nil, apperrors.ErrApplicationFinalized
	}

	err = s.applicationRepo.UpdateStatus(db, applicationID, models.ApplicationStatusPending, status)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			// статус успели поменять параллельно
			return nil, apperrors.ErrApplicationFinalized
		}
		return nil, apperrors.InternalError(err)
	}

	application.Status = status
	return application, nil
}

func (s *ApplicationServiceImpl) HasApplied(db *gorm.DB, userID, jobID string) (bool, error) {
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		return false, handleJobError(err)
	}
	exists, err := s.applicationRepo.Exists(db, userID, jobID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return exists, nil
}

func (s *ApplicationServiceImpl) ListApplied(db *gorm.DB, userID string) ([]dto.AppliedJobView, error) {
	items, err := s.applicationRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewAppliedJobViews(items), nil
}

func (s *ApplicationServiceImpl) CountApplied(db *gorm.DB, userID string) (int64, error) {
	count, err := s.applicationRepo.CountByUser(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *ApplicationServiceImpl) ListForRecruiter(db *gorm.DB, recruiterID string) ([]dto.ApplicationView, error) {
	items, err := s.applicationRepo.ListByRecruiter(db, recruiterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewApplicationViews(items), nil
}

func (s *ApplicationServiceImpl) ListApplicants(ctx context.Context, db *gorm.DB, actor Actor, jobID string) ([]dto.ApplicationView, error) {
	job, err := AuthorizeJobOwner(db, s.jobRepo, jobID, actor)
	if err != nil {
		return nil, ownershipToAppError(ctx, err, actor)
	}

	items, err := s.applicationRepo.ListByJob(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for i := range items {
		items[i].Job = job
	}
	return dto.NewApplicationViews(items), nil
}

// ResumeDownloadURL - ссылку получает владелец вакансии или сам соискатель
func (s *ApplicationServiceImpl) ResumeDownloadURL(ctx context.Context, db *gorm.DB, actor Actor, applicationID string) (string, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return "", apperrors.ErrApplicationNotFound
		}
		return "", apperrors.InternalError(err)
	}

	isApplicant := application.UserID == actor.ID
	isOwner := application.Job != nil && application.Job.OwnedBy(actor.ID, actor.Role)
	if !isApplicant && !isOwner {
		logger.CtxWarn(ctx, "Resume download denied", "application_id", applicationID, "actor_id", actor.ID)
		return "", apperrors.ErrApplicationNotFound
	}
	if application.ResumeID == "" {
		return "", apperrors.NewBadRequestError("No resume public_id found")
	}

	return s.uploader.SignedURL(ctx, application.ResumeID)
}
