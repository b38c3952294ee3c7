package workers

import (
	"context"
	"fmt"

	"vacancy_backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Task - периодическая фоновая задача
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler запускает задачи по cron расписанию
type Scheduler struct {
	cron  *cron.Cron
	tasks int
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Add регистрирует задачу. Пустое расписание отключает задачу.
func (s *Scheduler) Add(ctx context.Context, spec string, task Task) error {
	if spec == "" {
		logger.Info("Worker disabled", "worker", task.Name())
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		// Ошибку уже залогировала сама задача
		_ = task.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", spec, task.Name(), err)
	}
	s.tasks++
	logger.Info("Worker scheduled", "worker", task.Name(), "schedule", spec)
	return nil
}

// Run блокируется до отмены ctx и ждет завершения текущих запусков
func (s *Scheduler) Run(ctx context.Context) error {
	if s.tasks == 0 {
		<-ctx.Done()
		return nil
	}

	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
	return nil
}
