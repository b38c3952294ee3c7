package workers

import (
	"context"
	"time"

	"vacancy_backend/internal/logger"
	"vacancy_backend/internal/repositories"

	"gorm.io/gorm"
)

// JobExpiryWorker скрывает видимые вакансии с прошедшим expirationDate
type JobExpiryWorker struct {
	db        *gorm.DB
	jobs      repositories.JobRepository
	onExpired func(n int64)
	now       func() time.Time
}

func NewJobExpiryWorker(db *gorm.DB, jobs repositories.JobRepository, onExpired func(n int64)) *JobExpiryWorker {
	if onExpired == nil {
		onExpired = func(int64) {}
	}
	return &JobExpiryWorker{
		db:        db,
		jobs:      jobs,
		onExpired: onExpired,
		now:       time.Now,
	}
}

func (w *JobExpiryWorker) Name() string {
	return "job_expiry"
}

// Run выполняет один проход; вызывается планировщиком
func (w *JobExpiryWorker) Run(ctx context.Context) error {
	hidden, err := w.jobs.HideExpired(w.db.WithContext(ctx), w.now())
	if err != nil {
		logger.WorkerLog(w.Name(), "hide_expired", err)
		return err
	}

	w.onExpired(hidden)
	if hidden > 0 {
		logger.WorkerLog(w.Name(), "hide_expired", nil, "hidden", hidden)
	}
	return nil
}
