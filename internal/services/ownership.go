package services

import (
	"context"
	"errors"
	"fmt"

	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/models"
	"vacancy_backend/internal/repositories"
	"vacancy_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Actor - аутентифицированный аккаунт, от имени которого выполняется операция
type Actor struct {
	ID   string
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

type OwnershipReason int

const (
	OwnershipNotFound OwnershipReason = iota
	OwnershipNotOwner
)

func (r OwnershipReason) String() string {
	if r == OwnershipNotOwner {
		return "not_owner"
	}
	return "not_found"
}

// OwnershipError - ресурс не найден или принадлежит другому рекрутеру.
// Клиенту оба случая отдаются одинаково, причина только в логах.
type OwnershipError struct {
	Resource string
	ID       string
	Reason   OwnershipReason
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Resource, e.ID, e.Reason)
}

// AuthorizeJobOwner - единая проверка перед любой мутацией вакансии
func AuthorizeJobOwner(db *gorm.DB, jobs repositories.JobRepository, jobID string, actor Actor) (*models.Job, error) {
	job, err := jobs.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, &OwnershipError{Resource: "job", ID: jobID, Reason: OwnershipNotFound}
		}
		return nil, err
	}
	if !job.OwnedBy(actor.ID, actor.Role) {
		return nil, &OwnershipError{Resource: "job", ID: jobID, Reason: OwnershipNotOwner}
	}
	return job, nil
}

// AuthorizeApplicationOwner - владение откликом определяется родительской вакансией
func AuthorizeApplicationOwner(db *gorm.DB, applications repositories.ApplicationRepository, applicationID string, actor Actor) (*models.AppliedJob, error) {
	application, err := applications.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, &OwnershipError{Resource: "application", ID: applicationID, Reason: OwnershipNotFound}
		}
		return nil, err
	}
	if application.Job == nil || !application.Job.OwnedBy(actor.ID, actor.Role) {
		return nil, &OwnershipError{Resource: "application", ID: applicationID, Reason: OwnershipNotOwner}
	}
	return application, nil
}

// ownershipToAppError логирует причину и скрывает ее от клиента
func ownershipToAppError(ctx context.Context, err error, actor Actor) error {
	var ownErr *OwnershipError
	if !errors.As(err, &ownErr) {
		return apperrors.InternalError(err)
	}

	logger.CtxWarn(ctx, "Ownership check failed",
		"resource", ownErr.Resource,
		"id", ownErr.ID,
		"reason", ownErr.Reason.String(),
		"actor_id", actor.ID,
		"actor_role", actor.Role,
	)

	if ownErr.Resource == "application" {
		return apperrors.ErrApplicationNotFound
	}
	return apperrors.ErrJobNotFound
}
