package services

import (
	"errors"

	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/internal/services/dto"
	"vacancy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type FavoriteService interface {
	Toggle(db *gorm.DB, userID, jobID string) (bool, error)
	List(db *gorm.DB, userID string) ([]*dto.JobResponse, error)
	Count(db *gorm.DB, userID string) (int64, error)
}

type FavoriteServiceImpl struct {
	favoriteRepo repositories.FavoriteRepository
	jobRepo      repositories.JobRepository
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, jobRepo repositories.JobRepository) FavoriteService {
	return &FavoriteServiceImpl{favoriteRepo: favoriteRepo, jobRepo: jobRepo}
}

// Toggle возвращает новое состояние: true - вакансия в избранном
func (s *FavoriteServiceImpl) Toggle(db *gorm.DB, userID, jobID string) (bool, error) {
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		return false, handleJobError(err)
	}

	existing, err := s.favoriteRepo.Find(db, userID, jobID)
	switch {
	case err == nil:
		if err := s.favoriteRepo.Delete(db, existing); err != nil {
			return false, apperrors.InternalError(err)
		}
		return false, nil
	case errors.Is(err, repositories.ErrFavoriteNotFound):
		err = s.favoriteRepo.Create(db, &models.FavoriteJob{UserID: userID, JobID: jobID})
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, apperrors.InternalError(err)
		}
		// дубликат значит, что параллельный запрос уже добавил вакансию
		return true, nil
	default:
		return false, apperrors.InternalError(err)
	}
}

func (s *FavoriteServiceImpl) List(db *gorm.DB, userID string) ([]*dto.JobResponse, error) {
	favorites, err := s.favoriteRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	jobs := make([]*dto.JobResponse, 0, len(favorites))
	for _, f := range favorites {
		if f.Job != nil {
			jobs = append(jobs, dto.NewJobResponse(f.Job))
		}
	}
	return jobs, nil
}

func (s *FavoriteServiceImpl) Count(db *gorm.DB, userID string) (int64, error) {
	count, err := s.favoriteRepo.CountByUser(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
