package processor

import (
	"context"

	"gamestore/background-worker-service/internal/app/background-worker/service"
	"gamestore/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler периодически пересчитывает счетчики комментариев
type CronScheduler struct {
	cron       *cron.Cron
	commentSvc service.CommentCountServiceInterface
}

func NewCronScheduler(commentSvc service.CommentCountServiceInterface) *CronScheduler {
	cronLogger := logger.Component("cron")
	l := cron.PrintfLogger(&cronLogger)

	// следующий запуск пропускается, пока предыдущий не закончился
	c := cron.New(cron.WithLogger(l), cron.WithChain(cron.SkipIfStillRunning(l)))

	return &CronScheduler{
		cron:       c,
		commentSvc: commentSvc,
	}
}

// Start регистрирует задачу, запускает планировщик и сразу делает первый пересчет
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() { s.reconcile(ctx) }); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("schedule", schedule).Msg("Cron scheduler started")

	s.reconcile(ctx)
	return nil
}

func (s *CronScheduler) reconcile(ctx context.Context) {
	if err := s.commentSvc.Reconcile(ctx); err != nil {
		logger.Error().Err(err).Msg("Comment count reconcile failed")
	}
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
