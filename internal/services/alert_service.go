package services

import (
	"errors"
	"strings"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AlertService interface {
	Create(db *gorm.DB, userID string, req *dto.AlertRequest) (*models.JobAlert, error)
	Matches(db *gorm.DB, userID string) ([]*dto.JobResponse, error)
	Count(db *gorm.DB, userID string) (int64, error)
}

type AlertServiceImpl struct {
	alertRepo repositories.AlertRepository
	jobRepo   repositories.JobRepository
}

func NewAlertService(alertRepo repositories.AlertRepository, jobRepo repositories.JobRepository) AlertService {
	return &AlertServiceImpl{alertRepo: alertRepo, jobRepo: jobRepo}
}

func (s *AlertServiceImpl) Create(db *gorm.DB, userID string, req *dto.AlertRequest) (*models.JobAlert, error) {
	alert := &models.JobAlert{
		UserID:     userID,
		JobRole:    strings.TrimSpace(req.JobRole),
		Industry:   strings.TrimSpace(req.Industry),
		Location:   strings.TrimSpace(req.Location),
		Experience: strings.TrimSpace(req.Experience),
		JobType:    strings.TrimSpace(req.JobType),
	}
	if err := s.alertRepo.Create(db, alert); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return alert, nil
}

// Matches подбирает видимые вакансии по последнему сохраненному фильтру
func (s *AlertServiceImpl) Matches(db *gorm.DB, userID string) ([]*dto.JobResponse, error) {
	alert, err := s.alertRepo.Latest(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAlertNotFound) {
			return []*dto.JobResponse{}, nil
		}
		return nil, apperrors.InternalError(err)
	}

	filter := repositories.JobFilter{
		JobRole:    alert.JobRole,
		Industry:   alert.Industry,
		Location:   alert.Location,
		JobType:    alert.JobType,
		Experience: alert.Experience,
	}
	jobs, _, err := s.jobRepo.ListVisible(db, filter, repositories.Page{})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewJobResponses(jobs), nil
}

func (s *AlertServiceImpl) Count(db *gorm.DB, userID string) (int64, error) {
	count, err := s.alertRepo.CountByUser(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
